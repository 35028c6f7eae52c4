// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package api serves the HTTP API: authentication, destinations,
// wishlists, contact, the admin console, and health, with the policy
// engine gating access.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"

	"github.com/telusuri/telusuri/internal/api/admin"
	"github.com/telusuri/telusuri/internal/api/auth"
	"github.com/telusuri/telusuri/internal/api/contact"
	"github.com/telusuri/telusuri/internal/api/destination"
	"github.com/telusuri/telusuri/internal/api/health"
	"github.com/telusuri/telusuri/internal/api/user"
	"github.com/telusuri/telusuri/internal/api/wishlist"
	"github.com/telusuri/telusuri/internal/config"
)

// New initialize a new Server and configure an Echo server.
func New(
	appConfig config.Config,
	logger *slog.Logger,
	opts ...Option,
) *Server {
	e := echo.New()
	e.HideBanner = true

	// Initialize CORS configuration
	corsConfig := middleware.CORSConfig{}

	allowOrigins := appConfig.API.Security.CORS.AllowOrigins
	if len(allowOrigins) > 0 {
		corsConfig.AllowOrigins = allowOrigins
	}

	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(corsConfig))

	s := &Server{
		Echo:      e,
		logger:    logger,
		appConfig: appConfig,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RegisterRoutes wires the handler packages onto the Echo server. The
// configured dependencies must be set before calling.
func (s *Server) RegisterRoutes() {
	e := s.Echo

	healthHandler := health.New(s.gormDB, s.logger)
	e.GET("/health", healthHandler.Get)
	e.GET("/health/ready", healthHandler.Ready)

	authHandler := auth.New(s.appConfig, s.db, s.token, s.logger)
	e.POST("/api/user/register", authHandler.Register)
	e.POST("/api/user/login", authHandler.Login)
	e.POST("/api/user/logout", authHandler.Logout, s.requireAuth)
	e.PUT("/api/user/refresh-token", authHandler.Refresh)

	userHandler := user.New(s.db, s.images, s.logger)
	e.GET("/api/user/:userId", userHandler.Get, s.optionalAuth)
	e.GET("/api/profile", userHandler.GetProfile, s.requireAuth)
	e.PATCH("/api/profile", userHandler.UpdateProfile, s.requireAuth, s.rejectBanned)
	e.PUT(
		"/api/profile/image",
		userHandler.UpdateProfileImage,
		s.requireAuth,
		s.rejectBanned,
	)
	e.GET("/api/notifications", userHandler.Notifications, s.requireAuth)

	destinationHandler := destination.New(
		s.db, s.engine.Manager, s.images, s.logger,
	)
	e.POST(
		"/api/destination/add",
		destinationHandler.Create,
		s.requireAuth,
		s.rejectBanned,
		s.requireWriter,
	)
	e.PUT(
		"/api/destination/:postId",
		destinationHandler.Update,
		s.requireAuth,
		s.rejectBanned,
		s.requireDestinationOwner(authzActionEdit),
	)
	e.DELETE(
		"/api/destination/:postId",
		destinationHandler.Delete,
		s.requireAuth,
		s.rejectBanned,
		s.requireDestinationOwner(authzActionDelete),
	)
	e.GET("/api/destination/:postId", destinationHandler.Get, s.optionalAuth)
	e.GET("/api/destinations", destinationHandler.List, s.optionalAuth)
	e.POST(
		"/api/destination/rating/:postId",
		destinationHandler.Rate,
		s.requireAuth,
		s.rejectBanned,
	)

	wishlistHandler := wishlist.New(s.db, s.images, s.logger)
	e.GET("/api/wishlists", wishlistHandler.List, s.requireAuth)
	e.POST("/api/wishlist/:postId", wishlistHandler.Add, s.requireAuth)
	e.DELETE("/api/wishlist/:postId", wishlistHandler.Remove, s.requireAuth)

	contactHandler := contact.New(s.db, s.logger)
	e.POST("/api/contact", contactHandler.Create, s.optionalAuth)

	adminHandler := admin.New(s.db, s.engine, s.logger)
	adminGroup := e.Group("/api/admin", s.requireAuth, s.requireAdmin)
	adminGroup.GET("/analytics", adminHandler.Analytics)
	adminGroup.GET("/destination-analytic", adminHandler.DestinationAnalytics)
	adminGroup.GET("/user-analytic", adminHandler.UserAnalytics)
	adminGroup.GET("/destinations", adminHandler.Destinations)
	adminGroup.PUT("/destination/:postId/restore", adminHandler.RestoreDestination)
	adminGroup.GET("/users", adminHandler.Users)
	adminGroup.PUT("/user/:userId/promote", adminHandler.Promote)
	adminGroup.PUT("/user/:userId/demote", adminHandler.Demote)
	adminGroup.PUT("/user/:userId/ban", adminHandler.Ban)
	adminGroup.PUT("/user/:userId/unban", adminHandler.Unban)
	adminGroup.GET("/contacts", adminHandler.Contacts)
}

// Start starts the Echo server with the configured port.
func (s *Server) Start() {
	go func() {
		s.logger.Info("starting server")
		listenAddr := fmt.Sprintf(":%d", s.appConfig.API.Port)
		if err := s.Echo.Start(listenAddr); err != nil && err != http.ErrServerClosed {
			s.logger.Error(
				"failed to start server",
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Stop gracefully shuts down the Echo server.
func (s *Server) Stop(
	ctx context.Context,
) {
	s.logger.Info("stopping server")

	if err := s.Echo.Shutdown(ctx); err != nil {
		s.logger.Error(
			"server shutdown failed",
			slog.String("error", err.Error()),
		)
	} else {
		s.logger.Info("server stopped gracefully")
	}
}
