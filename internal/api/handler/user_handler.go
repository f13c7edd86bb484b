package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pintunes/pintunes-api/internal/core/domain"
	"github.com/pintunes/pintunes-api/internal/core/ports"
)

// UserHandler handles POST /getUserData.
type UserHandler struct {
	credentials ports.CredentialService
}

func NewUserHandler(credentials ports.CredentialService) *UserHandler {
	return &UserHandler{credentials: credentials}
}

// GetUserData resolves a CID to the stored profile with the credential
// material stripped.
//
// @Summary      Fetch a user profile by CID
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      userDataRequest  true  "Record CID"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /getUserData [post]
func (h *UserHandler) GetUserData(c echo.Context) error {
	var req userDataRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if req.CID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No CID provided"})
	}

	profile, err := h.credentials.Resolve(c.Request().Context(), req.CID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Failed to fetch user data"})
		}
		return err
	}

	return c.JSON(http.StatusOK, profile)
}
