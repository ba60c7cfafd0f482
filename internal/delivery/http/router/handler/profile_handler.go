package handler

import (
	"log/slog"
	"net/http"

	"joylist/internal/delivery/http/response"
	"joylist/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for public profile handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

// Search handles the public user search. A blank query returns an empty
// result set rather than every user.
func (h *ProfileHandler) Search(c echo.Context) error {
	profiles, err := h.uc.SearchUsers(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profiles, "Users retrieved successfully")
}

// Get handles the public profile lookup by username.
func (h *ProfileHandler) Get(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Username is required")
	}

	profile, err := h.uc.GetUserByUsername(c.Request().Context(), username)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "User retrieved successfully")
}

// ShareQR renders a PNG QR code linking to the user's public list page.
func (h *ProfileHandler) ShareQR(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Username is required")
	}

	png, err := h.uc.ShareQR(c.Request().Context(), username)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
