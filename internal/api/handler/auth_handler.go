package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pintunes/pintunes-api/internal/core/domain"
	"github.com/pintunes/pintunes-api/internal/core/ports"
)

// AuthHandler handles the consolidated POST /auth endpoint.
type AuthHandler struct {
	credentials ports.CredentialService
}

func NewAuthHandler(credentials ports.CredentialService) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

// Handle dispatches signup and login requests.
//
// @Summary      Sign up or log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authRequest  true  "Auth request; action selects signup or login"
// @Success      200   {object}  loginResponse
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth [post]
func (h *AuthHandler) Handle(c echo.Context) error {
	var req authRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	switch req.Action {
	case "signup":
		return h.signup(c, req)
	default:
		return h.login(c, req)
	}
}

func (h *AuthHandler) signup(c echo.Context, req authRequest) error {
	cid, err := h.credentials.Signup(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return h.authError(c, err)
	}
	return c.JSON(http.StatusCreated, signupResponse{Success: true, CID: cid})
}

func (h *AuthHandler) login(c echo.Context, req authRequest) error {
	result, err := h.credentials.Login(c.Request().Context(), req.Email, req.Password, req.CID)
	if err != nil {
		return h.authError(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		CID:     result.Session.CID,
		Token:   result.Token,
		User:    result.Profile,
	})
}

func (h *AuthHandler) authError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing required fields"})
	case errors.Is(err, domain.ErrNoAccount):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No user data found. Please sign up first."})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid credentials"})
	case errors.Is(err, domain.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Failed to fetch user data"})
	case errors.Is(err, domain.ErrConfiguration):
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Pinata configuration is missing"})
	default:
		return err
	}
}
