package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pintunes/pintunes-api/internal/core/domain"
	"github.com/pintunes/pintunes-api/internal/core/ports"
)

// stubPinStore is an in-memory PinStore. Pinned objects are kept as JSON so
// FetchJSON exercises the same decode path as the real client. Every call is
// appended to calls so tests can assert that no network round trip happened.
type stubPinStore struct {
	objects map[string][]byte
	entries []ports.PinEntry
	nextCID int

	calls []string

	pinJSONErr  error
	pinFileErr  error
	fetchErr    map[string]error
	listErr     error
	testAuthErr error
}

func newStubPinStore() *stubPinStore {
	return &stubPinStore{
		objects:  make(map[string][]byte),
		fetchErr: make(map[string]error),
	}
}

func (s *stubPinStore) PinJSON(_ context.Context, _ string, keyvalues map[string]string, v any) (string, error) {
	s.calls = append(s.calls, "pin_json")
	if s.pinJSONErr != nil {
		return "", s.pinJSONErr
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	s.nextCID++
	cid := fmt.Sprintf("Qm%03d", s.nextCID)
	s.objects[cid] = raw
	s.entries = append(s.entries, ports.PinEntry{CID: cid, Keyvalues: keyvalues})
	return cid, nil
}

func (s *stubPinStore) PinFile(_ context.Context, _ string, _ map[string]string, r io.Reader) (string, error) {
	s.calls = append(s.calls, "pin_file")
	if s.pinFileErr != nil {
		return "", s.pinFileErr
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.nextCID++
	cid := fmt.Sprintf("Qmfile%03d", s.nextCID)
	s.objects[cid] = raw
	return cid, nil
}

func (s *stubPinStore) FetchJSON(_ context.Context, cid string, out any) error {
	s.calls = append(s.calls, "fetch")
	if err, ok := s.fetchErr[cid]; ok {
		return err
	}
	raw, ok := s.objects[cid]
	if !ok {
		return domain.ErrRecordNotFound
	}
	return json.Unmarshal(raw, out)
}

func (s *stubPinStore) List(_ context.Context, keyvalues map[string]string) ([]ports.PinEntry, error) {
	s.calls = append(s.calls, "list")
	if s.listErr != nil {
		return nil, s.listErr
	}
	var matched []ports.PinEntry
	for _, entry := range s.entries {
		ok := true
		for k, v := range keyvalues {
			if entry.Keyvalues[k] != v {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

func (s *stubPinStore) TestAuthentication(_ context.Context) error {
	s.calls = append(s.calls, "test_auth")
	return s.testAuthErr
}

// stubDirectory is an in-memory EmailDirectory.
type stubDirectory struct {
	index map[string]string
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{index: make(map[string]string)}
}

func (d *stubDirectory) Set(_ context.Context, email, cid string) error {
	d.index[email] = cid
	return nil
}

func (d *stubDirectory) Lookup(_ context.Context, email string) (string, error) {
	cid, ok := d.index[email]
	if !ok {
		return "", domain.ErrNoAccount
	}
	return cid, nil
}
