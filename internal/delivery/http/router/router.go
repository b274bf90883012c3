// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fixly/internal/delivery/http/middleware"
	"fixly/internal/delivery/http/router/handler"
	"fixly/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler        *handler.UserHandler
	ProviderHandler    *handler.ProviderHandler
	BookingHandler     *handler.BookingHandler
	TicketHandler      *handler.TicketHandler
	AuthMiddleware     *middleware.AuthMiddleware
	ApprovalMiddleware *middleware.ApprovalMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler        *handler.UserHandler
	providerHandler    *handler.ProviderHandler
	bookingHandler     *handler.BookingHandler
	ticketHandler      *handler.TicketHandler
	authMiddleware     *middleware.AuthMiddleware
	approvalMiddleware *middleware.ApprovalMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:        params.UserHandler,
		providerHandler:    params.ProviderHandler,
		bookingHandler:     params.BookingHandler,
		ticketHandler:      params.TicketHandler,
		authMiddleware:     params.AuthMiddleware,
		approvalMiddleware: params.ApprovalMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes, no token required
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/register/provider", r.providerHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.Refresh)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// Routes for any authenticated account, regardless of approval.
	// Me lets a pending user see their own review status.
	e.GET("/me", r.userHandler.Me, r.authMiddleware.Authenticate)
	e.POST("/auth/logout/all", r.userHandler.LogoutAll, r.authMiddleware.Authenticate)

	// Customer routes: approved customers only
	bookingGroup := e.Group("/bookings")
	bookingGroup.Use(r.authMiddleware.Authenticate)
	bookingGroup.Use(r.authMiddleware.RequireRole(entity.RoleCustomer))
	bookingGroup.Use(r.approvalMiddleware.RequireApproved)
	{
		bookingGroup.POST("", r.bookingHandler.Submit)
		bookingGroup.GET("", r.bookingHandler.ListMine)
	}

	// Support tickets: any approved account may file and list its own
	ticketGroup := e.Group("/tickets")
	ticketGroup.Use(r.authMiddleware.Authenticate)
	ticketGroup.Use(r.approvalMiddleware.RequireApproved)
	{
		ticketGroup.POST("", r.ticketHandler.Create)
		ticketGroup.GET("", r.ticketHandler.ListMine)
	}

	// Provider routes: approved providers only
	providerGroup := e.Group("/provider")
	providerGroup.Use(r.authMiddleware.Authenticate)
	providerGroup.Use(r.authMiddleware.RequireRole(entity.RoleProvider))
	providerGroup.Use(r.approvalMiddleware.RequireApproved)
	{
		providerGroup.GET("/profile", r.providerHandler.GetProfile)
		providerGroup.PUT("/profile", r.providerHandler.UpdateProfile)
		providerGroup.PUT("/availability", r.providerHandler.SetAvailability)
		providerGroup.GET("/jobs", r.bookingHandler.ListJobs)
		providerGroup.PUT("/jobs/:id/status", r.bookingHandler.UpdateStatus)
	}

	// Admin routes: approved admins only. The use cases re-verify the actor
	// inside their transactions; this gate just fails fast.
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	adminGroup.Use(r.approvalMiddleware.RequireApproved)
	{
		adminGroup.GET("/users/pending", r.userHandler.ListPendingUsers)
		adminGroup.POST("/users/:id/approve", r.userHandler.ApproveUser)
		adminGroup.POST("/users/:id/reject", r.userHandler.RejectUser)
		adminGroup.GET("/bookings/open", r.bookingHandler.ListOpen)
		adminGroup.GET("/providers/available", r.bookingHandler.ListAvailableProviders)
		adminGroup.POST("/bookings/:id/assign", r.bookingHandler.Assign)
		adminGroup.GET("/tickets", r.ticketHandler.ListAll)
		adminGroup.PUT("/tickets/:id/status", r.ticketHandler.Advance)
	}
}
