// Package server wires handlers, middleware and routes together and owns the
// HTTP server lifecycle. It is the composition root: every dependency chain
// (DB → repository → service → handler) is assembled here and nowhere else.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"settings-api/internal/auth"
	"settings-api/internal/handler"
	"settings-api/internal/middleware"
	sqliteRepo "settings-api/internal/repository/sqlite"
	"settings-api/internal/service"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
}

// Server is the HTTP server and the resources it owns. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, builds every service and handler, and registers
// the routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and the route table.
//
// Guard ordering is load-bearing: RequireAuth runs before RequireAdmin on
// the admin subtree, so an unauthenticated caller is rejected before any
// roster lookup hits the database.
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	// Global middleware, in execution order.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	profileService := service.NewProfileService(s.db.Profiles(), s.logger)
	privacyService := service.NewPrivacyService(s.db.Privacy(), s.logger)
	adminService := service.NewAdminService(s.db.Admins(), s.logger)
	subscriptionService := service.NewSubscriptionService(
		s.db.Plans(), s.db.Subscriptions(), s.db.Contacts(), s.logger)

	profileHandler := handler.NewProfileHandler(profileService, s.logger)
	privacyHandler := handler.NewPrivacyHandler(privacyService, s.logger)
	adminHandler := handler.NewAdminHandler(adminService, s.logger)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService, s.logger)
	healthHandler := handler.NewHealthHandler(s.db)

	requireAuth := auth.RequireAuth(tokens)
	requireAdmin := auth.RequireAdmin(s.db.Admins(), s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HandleHealth)

		// Authenticated user routes.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/user/profile", profileHandler.HandleGet)
			r.Put("/user/profile", profileHandler.HandleUpdate)

			r.Get("/privacy", privacyHandler.HandleGet)
			r.Put("/privacy", privacyHandler.HandleUpdate)

			r.Get("/subscription/plans", subscriptionHandler.HandlePlans)
			r.Get("/subscription/current", subscriptionHandler.HandleCurrent)
			r.Post("/subscription/upgrade", subscriptionHandler.HandleUpgrade)
			r.Post("/subscription/cancel", subscriptionHandler.HandleCancel)
			r.Post("/subscription/contact", subscriptionHandler.HandleContact)
		})

		// Admin routes: authentication first, then the roster check.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(requireAdmin)

			r.Get("/admins", adminHandler.HandleList)
			r.Get("/admins/{id}", adminHandler.HandleGet)
			r.Post("/admins", adminHandler.HandleCreate)
			r.Put("/admins/{id}", adminHandler.HandleUpdate)
			r.Delete("/admins/{id}", adminHandler.HandleDelete)
		})
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight requests
// and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// Router exposes the assembled router for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
