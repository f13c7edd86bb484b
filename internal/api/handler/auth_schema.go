package handler

import "github.com/pintunes/pintunes-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// --- Request / Response types ---

// authRequest is the single consolidated payload for POST /auth; action
// selects signup or login. The divergent per-action routes of earlier
// iterations collapse into this one contract.
type authRequest struct {
	Action   string `json:"action"   validate:"required,oneof=signup login"`
	Username string `json:"username"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	CID      string `json:"cid"`
}

type signupResponse struct {
	Success bool   `json:"success"`
	CID     string `json:"cid"`
}

type loginResponse struct {
	Success bool           `json:"success"`
	CID     string         `json:"cid"`
	Token   string         `json:"token"`
	User    domain.Profile `json:"user"`
}

type userDataRequest struct {
	CID string `json:"cid" validate:"required"`
}
