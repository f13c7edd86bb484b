package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pintunes/pintunes-api/internal/core/domain"
)

// EmailDirectory is a keyed index from email to the CID of the user's pinned
// record. The content-addressed store itself has no index, so without this a
// returning user must present their CID at login.
// Key format: directory:email:<email>
type EmailDirectory struct {
	client *redis.Client
}

// NewEmailDirectory creates an EmailDirectory wrapping the given Redis client.
func NewEmailDirectory(client *redis.Client) *EmailDirectory {
	return &EmailDirectory{client: client}
}

// Set records the CID for an email. Entries never expire: the pinned record
// is permanent and so is its handle.
func (d *EmailDirectory) Set(ctx context.Context, email, cid string) error {
	if err := d.client.Set(ctx, d.key(email), cid, 0).Err(); err != nil {
		return fmt.Errorf("directory set: %w", err)
	}
	return nil
}

// Lookup returns the CID for an email, or domain.ErrNoAccount when no entry
// exists.
func (d *EmailDirectory) Lookup(ctx context.Context, email string) (string, error) {
	cid, err := d.client.Get(ctx, d.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNoAccount
		}
		return "", fmt.Errorf("directory lookup: %w", err)
	}
	return cid, nil
}

func (d *EmailDirectory) key(email string) string {
	return "directory:email:" + email
}
