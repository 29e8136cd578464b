// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pantry/internal/delivery/http/middleware"
	"pantry/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	PantryHandler  *handler.PantryHandler
	ItemHandler    *handler.ItemHandler
	InviteHandler  *handler.InviteHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	pantryHandler  *handler.PantryHandler
	itemHandler    *handler.ItemHandler
	inviteHandler  *handler.InviteHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		pantryHandler:  params.PantryHandler,
		itemHandler:    params.ItemHandler,
		inviteHandler:  params.InviteHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Session routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/login/provider", r.authHandler.LoginWithProvider)
		authGroup.POST("/signup", r.authHandler.SignUp)
		authGroup.POST("/signup/invite", r.authHandler.SignUpWithInvite)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me)
	}

	// Everything below requires a verified session token.
	api := e.Group("", r.authMiddleware.Authenticate)

	api.GET("/state", r.pantryHandler.State)

	pantryGroup := api.Group("/pantries")
	{
		pantryGroup.POST("", r.pantryHandler.Create)
		pantryGroup.DELETE("/:id", r.pantryHandler.Delete)
		pantryGroup.POST("/select", r.pantryHandler.Select)
	}

	itemGroup := api.Group("/items")
	{
		itemGroup.POST("", r.itemHandler.Add)
		itemGroup.PUT("", r.itemHandler.Update)
		itemGroup.DELETE("/:list/:id", r.itemHandler.Remove)
		itemGroup.POST("/move", r.itemHandler.Move)
	}

	inviteGroup := api.Group("/invites")
	{
		inviteGroup.POST("", r.inviteHandler.Create)
		inviteGroup.GET("/:code/qr", r.inviteHandler.QR)
		inviteGroup.POST("/redeem", r.inviteHandler.Redeem)
	}

	meGroup := api.Group("/me")
	{
		meGroup.GET("", r.userHandler.Get)
		meGroup.PUT("/preferences", r.userHandler.UpdatePreferences)
	}
}
