package ports

import (
	"context"
	"io"
)

// PinEntry is a single row from a tag-filtered list query against the store.
type PinEntry struct {
	CID       string
	Name      string
	Keyvalues map[string]string
}

// PinStore abstracts the content-addressed pinning gateway. The store is
// append-only: objects are pinned once and retrieved by CID or by keyvalue
// filter; there is no update or delete.
type PinStore interface {
	// PinJSON pins v as a JSON object with the given name and metadata
	// keyvalues and returns the resulting CID.
	PinJSON(ctx context.Context, name string, keyvalues map[string]string, v any) (string, error)
	// PinFile pins raw file content and returns the resulting CID.
	PinFile(ctx context.Context, filename string, keyvalues map[string]string, r io.Reader) (string, error)
	// FetchJSON retrieves the object behind cid into out. Returns
	// domain.ErrRecordNotFound when the gateway responds non-2xx.
	FetchJSON(ctx context.Context, cid string, out any) error
	// List returns pinned entries whose metadata matches all given keyvalues.
	List(ctx context.Context, keyvalues map[string]string) ([]PinEntry, error)
	// TestAuthentication verifies the gateway credentials.
	TestAuthentication(ctx context.Context) error
}
