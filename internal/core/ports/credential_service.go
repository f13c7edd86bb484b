package ports

import (
	"context"

	"github.com/pintunes/pintunes-api/internal/core/domain"
)

// LoginResult carries everything the login endpoint returns to the client.
type LoginResult struct {
	Session domain.Session
	Profile domain.Profile
	Token   string
}

// CredentialService implements signup, login, and profile resolution against
// the content-addressed store.
type CredentialService interface {
	// Signup validates the fields, hashes the password, pins the record, and
	// returns its CID. The caller is responsible for keeping the CID; there
	// is no server-side account recovery.
	Signup(ctx context.Context, username, email, password string) (string, error)
	// Login verifies email and password against the record behind cid. When
	// cid is empty the email directory is consulted if one is configured;
	// otherwise domain.ErrNoAccount is returned without any store fetch.
	Login(ctx context.Context, email, password, cid string) (*LoginResult, error)
	// Resolve fetches the profile behind cid with the password hash stripped.
	Resolve(ctx context.Context, cid string) (*domain.Profile, error)
}
