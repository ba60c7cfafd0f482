// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"joylist/internal/delivery/http/middleware"
	"joylist/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	BusinessHandler *handler.BusinessHandler
	ProfileHandler  *handler.ProfileHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	businessHandler *handler.BusinessHandler
	profileHandler  *handler.ProfileHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		businessHandler: params.BusinessHandler,
		profileHandler:  params.ProfileHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Public reads: anyone can browse listings and profiles.
	api.GET("/businesses", r.businessHandler.List)
	api.GET("/businesses/:id", r.businessHandler.Get)
	api.GET("/users/:userId/businesses", r.businessHandler.ListByUser)

	api.GET("/profiles/search", r.profileHandler.Search)
	api.GET("/profiles/:username", r.profileHandler.Get)
	api.GET("/profiles/:username/qr", r.profileHandler.ShareQR)

	// Mutations require a valid session token.
	mutations := api.Group("/businesses")
	mutations.Use(r.authMiddleware.Authenticate)
	{
		mutations.POST("", r.businessHandler.Create)
		mutations.PUT("/:id", r.businessHandler.Update)
		mutations.DELETE("/:id", r.businessHandler.Delete)
	}
}
