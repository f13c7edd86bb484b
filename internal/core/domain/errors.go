package domain

import "errors"

var (
	// ErrValidation covers missing or malformed caller input.
	ErrValidation = errors.New("invalid input")
	// ErrNoAccount is returned when login is attempted without a CID and no
	// directory entry exists; the caller must sign up first.
	ErrNoAccount = errors.New("no user data found, please sign up first")
	// ErrInvalidCredentials is returned on an email/password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRecordNotFound is returned when the store cannot produce a record
	// for a CID.
	ErrRecordNotFound = errors.New("record not found")
	// ErrConfiguration is returned when a required upstream credential is
	// unset; the dependent endpoint fails fast rather than attempting a call.
	ErrConfiguration = errors.New("service configuration missing")
	// ErrUpstream covers any other store or language-API failure.
	ErrUpstream = errors.New("upstream request failed")
)
