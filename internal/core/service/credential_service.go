package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pintunes/pintunes-api/internal/api/metrics"
	"github.com/pintunes/pintunes-api/internal/core/domain"
	"github.com/pintunes/pintunes-api/internal/core/ports"
)

const (
	userRecordName = "pintunes-user"
	tagTypeUser    = "user"
)

// CredentialService implements signup and login against the pinning gateway.
// There is no server-side account table: the pinned record's CID is the only
// durable handle, optionally indexed by email in the directory.
type CredentialService struct {
	store     ports.PinStore
	directory ports.EmailDirectory // nil when no directory is configured
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewCredentialService(store ports.PinStore, directory ports.EmailDirectory, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *CredentialService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &CredentialService{
		store:     store,
		directory: directory,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *CredentialService) Signup(ctx context.Context, username, email, password string) (string, error) {
	if username == "" || email == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "invalid").Inc()
		return "", fmt.Errorf("%w: missing required fields", domain.ErrValidation)
	}

	if err := s.store.TestAuthentication(ctx); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return "", fmt.Errorf("store authentication: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	record := domain.UserRecord{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		LastLogin:    now,
	}

	cid, err := s.store.PinJSON(ctx, userRecordName, map[string]string{
		"type":  tagTypeUser,
		"email": email,
	}, record)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		return "", fmt.Errorf("pin user record: %w", err)
	}

	// Best effort: a missing directory entry only costs the user the
	// convenience of logging in without their CID.
	if s.directory != nil {
		if err := s.directory.Set(ctx, email, cid); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("failed to index email")
		}
	}

	metrics.AuthAttemptsTotal.WithLabelValues("signup", "ok").Inc()
	s.logger.Info().Str("cid", cid).Str("username", username).Msg("user record pinned")
	return cid, nil
}

func (s *CredentialService) Login(ctx context.Context, email, password, cid string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrValidation)
	}

	if cid == "" {
		resolved, err := s.lookupCID(ctx, email)
		if err != nil {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "not_found").Inc()
			return nil, err
		}
		cid = resolved
	}

	var record domain.UserRecord
	if err := s.store.FetchJSON(ctx, cid, &record); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "not_found").Inc()
		return nil, fmt.Errorf("fetch user record: %w", err)
	}

	if record.Email != email ||
		bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	session := domain.Session{
		Username: record.Username,
		Email:    record.Email,
		CID:      cid,
	}

	token, err := s.signToken(session)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
	s.logger.Info().Str("cid", cid).Str("username", record.Username).Msg("login succeeded")

	return &ports.LoginResult{
		Session: session,
		Profile: record.Profile(),
		Token:   token,
	}, nil
}

func (s *CredentialService) Resolve(ctx context.Context, cid string) (*domain.Profile, error) {
	if cid == "" {
		return nil, fmt.Errorf("%w: missing cid", domain.ErrValidation)
	}

	var record domain.UserRecord
	if err := s.store.FetchJSON(ctx, cid, &record); err != nil {
		return nil, fmt.Errorf("fetch user record: %w", err)
	}

	profile := record.Profile()
	return &profile, nil
}

// lookupCID resolves email to a CID through the directory. Without a
// directory there is nothing to consult and no network fetch is attempted.
func (s *CredentialService) lookupCID(ctx context.Context, email string) (string, error) {
	if s.directory == nil {
		return "", domain.ErrNoAccount
	}
	cid, err := s.directory.Lookup(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNoAccount) {
			return "", domain.ErrNoAccount
		}
		return "", fmt.Errorf("directory lookup: %w", err)
	}
	return cid, nil
}

func (s *CredentialService) signToken(session domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"username": session.Username,
		"email":    session.Email,
		"cid":      session.CID,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
