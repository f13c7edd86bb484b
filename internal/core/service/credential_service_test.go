package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pintunes/pintunes-api/internal/core/domain"
)

func newCredentialService(store *stubPinStore, directory *stubDirectory) *CredentialService {
	if directory == nil {
		// Pass an untyped nil so the service sees "no directory configured".
		return NewCredentialService(store, nil, "secret", time.Hour, zerolog.Nop())
	}
	return NewCredentialService(store, directory, "secret", time.Hour, zerolog.Nop())
}

func TestCredentialService_Signup_Success(t *testing.T) {
	store := newStubPinStore()
	svc := newCredentialService(store, nil)

	cid, err := svc.Signup(context.Background(), "ana", "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if cid == "" {
		t.Fatalf("expected cid, got empty")
	}

	var record domain.UserRecord
	if err := json.Unmarshal(store.objects[cid], &record); err != nil {
		t.Fatalf("pinned record is not valid JSON: %v", err)
	}
	if record.PasswordHash == "pw" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte("pw")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if record.Username != "ana" || record.Email != "a@x.com" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestCredentialService_Signup_Validation(t *testing.T) {
	store := newStubPinStore()
	svc := newCredentialService(store, nil)

	if _, err := svc.Signup(context.Background(), "", "a@x.com", "pw"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Fatalf("expected no store calls, got %v", store.calls)
	}
}

func TestCredentialService_Signup_IndexesEmail(t *testing.T) {
	store := newStubPinStore()
	directory := newStubDirectory()
	svc := newCredentialService(store, directory)

	cid, err := svc.Signup(context.Background(), "ana", "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if directory.index["a@x.com"] != cid {
		t.Fatalf("expected directory entry %s, got %s", cid, directory.index["a@x.com"])
	}
}

func TestCredentialService_SignupThenLogin(t *testing.T) {
	store := newStubPinStore()
	svc := newCredentialService(store, nil)

	cid, err := svc.Signup(context.Background(), "ana", "a@x.com", "pw")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	result, err := svc.Login(context.Background(), "a@x.com", "pw", cid)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Session.CID != cid || result.Session.Username != "ana" {
		t.Fatalf("unexpected session: %+v", result.Session)
	}
	if result.Token == "" {
		t.Fatalf("expected session token")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["cid"] != cid || claims["username"] != "ana" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// The profile handed back to the client must not carry the hash.
	raw, err := json.Marshal(result.Profile)
	if err != nil {
		t.Fatalf("marshal profile: %v", err)
	}
	var asMap map[string]any
	_ = json.Unmarshal(raw, &asMap)
	if _, ok := asMap["password_hash"]; ok {
		t.Fatalf("profile leaks the password hash: %s", raw)
	}
}

func TestCredentialService_Login_WrongPassword(t *testing.T) {
	store := newStubPinStore()
	svc := newCredentialService(store, nil)

	cid, _ := svc.Signup(context.Background(), "ana", "a@x.com", "pw")
	if _, err := svc.Login(context.Background(), "a@x.com", "wrong", cid); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCredentialService_Login_WrongEmail(t *testing.T) {
	store := newStubPinStore()
	svc := newCredentialService(store, nil)

	cid, _ := svc.Signup(context.Background(), "ana", "a@x.com", "pw")
	if _, err := svc.Login(context.Background(), "b@x.com", "pw", cid); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCredentialService_Login_NoCIDNoDirectory(t *testing.T) {
	store := newStubPinStore()
	svc := newCredentialService(store, nil)

	_, _ = svc.Signup(context.Background(), "ana", "a@x.com", "pw")
	calls := len(store.calls)

	if _, err := svc.Login(context.Background(), "a@x.com", "pw", ""); !errors.Is(err, domain.ErrNoAccount) {
		t.Fatalf("expected ErrNoAccount, got %v", err)
	}
	if len(store.calls) != calls {
		t.Fatalf("expected no store fetch without a cid, got %v", store.calls[calls:])
	}
}

func TestCredentialService_Login_DirectoryLookup(t *testing.T) {
	store := newStubPinStore()
	directory := newStubDirectory()
	svc := newCredentialService(store, directory)

	cid, _ := svc.Signup(context.Background(), "ana", "a@x.com", "pw")

	result, err := svc.Login(context.Background(), "a@x.com", "pw", "")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Session.CID != cid {
		t.Fatalf("expected cid %s from directory, got %s", cid, result.Session.CID)
	}
}

func TestCredentialService_Login_RecordGone(t *testing.T) {
	store := newStubPinStore()
	svc := newCredentialService(store, nil)

	if _, err := svc.Login(context.Background(), "a@x.com", "pw", "QmMissing"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestCredentialService_Resolve_StripsHash(t *testing.T) {
	store := newStubPinStore()
	svc := newCredentialService(store, nil)

	cid, _ := svc.Signup(context.Background(), "ana", "a@x.com", "pw")

	profile, err := svc.Resolve(context.Background(), cid)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if profile.Username != "ana" || profile.Email != "a@x.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}
