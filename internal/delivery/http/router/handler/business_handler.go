// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"joylist/internal/delivery/http/middleware"
	"joylist/internal/delivery/http/response"
	"joylist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BusinessHandler holds dependencies for business-listing handlers.
type BusinessHandler struct {
	uc     usecase.BusinessUsecase
	logger *slog.Logger
}

// NewBusinessHandler is the constructor for BusinessHandler, injected by Fx.
func NewBusinessHandler(uc usecase.BusinessUsecase, logger *slog.Logger) *BusinessHandler {
	return &BusinessHandler{
		uc:     uc,
		logger: logger,
	}
}

// List handles the public request for every listing with owner profiles.
func (h *BusinessHandler) List(c echo.Context) error {
	businesses, err := h.uc.GetAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, businesses, "Businesses retrieved successfully")
}

// Get handles the public request for a single listing by id.
func (h *BusinessHandler) Get(c echo.Context) error {
	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
	}

	business, err := h.uc.GetByID(c.Request().Context(), businessID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, business, "Business retrieved successfully")
}

// ListByUser handles the public request for one user's listings.
func (h *BusinessHandler) ListByUser(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return response.BadRequest(c, "INVALID_INPUT", "User id is required")
	}

	businesses, err := h.uc.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, businesses, "Businesses retrieved successfully")
}

// Create handles an authenticated listing submission.
func (h *BusinessHandler) Create(c echo.Context) error {
	callerID, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "You must be signed in to do that.")
	}

	// Bind into a value: a literal "null" body then yields the zero input,
	// which fails field validation instead of dereferencing nil.
	var input usecase.UpsertBusinessInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid business input")
	}

	business, err := h.uc.Create(c.Request().Context(), callerID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, business, "Business created successfully")
}

// Update handles an authenticated edit of an existing listing.
func (h *BusinessHandler) Update(c echo.Context) error {
	callerID, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "You must be signed in to do that.")
	}

	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
	}

	var input usecase.UpsertBusinessInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid business input")
	}

	business, err := h.uc.Update(c.Request().Context(), callerID, businessID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, business, "Business updated successfully")
}

// Delete handles an authenticated removal. The removed record comes back in
// the response body.
func (h *BusinessHandler) Delete(c echo.Context) error {
	callerID, ok := callerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "You must be signed in to do that.")
	}

	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
	}

	business, err := h.uc.Delete(c.Request().Context(), callerID, businessID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, business, "Business deleted successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// callerIdentity reads the authenticated user id set by the auth middleware.
func callerIdentity(c echo.Context) (string, bool) {
	callerID, ok := c.Get(middleware.ContextKeyUserID).(string)

	return callerID, ok && callerID != ""
}
