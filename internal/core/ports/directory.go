package ports

import "context"

// EmailDirectory is an optional keyed index from email to the CID of the
// user's pinned record. The content-addressed store has no index of its own;
// without a directory entry a returning user must present their CID.
type EmailDirectory interface {
	Set(ctx context.Context, email, cid string) error
	// Lookup returns the CID for email, or domain.ErrNoAccount when no entry
	// exists.
	Lookup(ctx context.Context, email string) (string, error)
}
