package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/syntacsdev/qasystem/internal/auth"
	"github.com/syntacsdev/qasystem/internal/qa"
	"github.com/syntacsdev/qasystem/internal/web/feed"
	"github.com/syntacsdev/qasystem/internal/web/handlers"
	"github.com/syntacsdev/qasystem/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	registry    *qa.Registry
	port        int
	bind        string
	router      *chi.Mux
	authService *auth.Service
	feedHub     *feed.Hub
	handlers    *handlers.Handlers
}

// NewServer creates a new web server over an already-synced registry
func NewServer(registry *qa.Registry, authService *auth.Service, port int, bind string) *Server {
	s := &Server{
		registry:    registry,
		port:        port,
		bind:        bind,
		router:      chi.NewRouter(),
		authService: authService,
		feedHub:     feed.NewHub(),
	}
	s.setupRoutes()
	return s
}

// FeedHub returns the websocket feed hub
func (s *Server) FeedHub() *feed.Hub {
	return s.feedHub
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router

	// Global middleware (timeout is per-group so the feed socket stays open)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)

	h := handlers.New(s.registry, s.authService, s.feedHub)
	s.handlers = h

	// Feed endpoint - no timeout (long-lived connections)
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(s.authService))
		r.Get("/api/feed", s.feedHub.ServeHTTP)
	})

	// Public routes (no auth required)
	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Post("/api/login", h.Login)
		r.Post("/api/logout", h.Logout)
		r.Post("/api/register", h.Register)
	})

	// Protected routes (session auth required)
	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Use(middleware.SessionAuth(s.authService))

		r.Get("/api/me", h.Me)

		r.Route("/api/questions", func(r chi.Router) {
			r.Get("/", h.QuestionList)
			r.Post("/", h.QuestionCreate)
			r.Get("/{id}", h.QuestionGet)
			r.Delete("/{id}", h.QuestionDelete)
			r.Post("/{id}/answers", h.QuestionAddAnswer)
			r.Get("/{id}/comments", h.QuestionComments)
			r.Post("/{id}/comments", h.QuestionAddComment)
		})

		r.Route("/api/reviews", func(r chi.Router) {
			r.Get("/", h.ReviewList)
			r.Post("/", h.ReviewCreate)
			r.Delete("/{id}", h.ReviewDelete)
		})

		r.Route("/api/messages", func(r chi.Router) {
			r.Get("/", h.MessageList)
			r.Post("/", h.MessageSend)
			r.Post("/{id}/read", h.MessageMarkRead)
		})

		r.Get("/api/users", h.UserList)
		r.Post("/api/reviewers/request", h.RequestReviewer)
		r.Get("/api/profiles/{username}", h.ProfileGet)
		r.Put("/api/profiles/me", h.ProfileUpdate)

		// Admin-only management
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(qa.RoleAdmin, qa.RoleStaff))
			r.Get("/api/reviewers/pending", h.PendingReviewers)
			r.Post("/api/reviewers/approve/{username}", h.ApproveReviewer)
			r.Get("/api/invites", h.InviteList)
			r.Post("/api/invites", h.InviteCreate)
		})
	})
}

// Start starts the web server and blocks until the context is cancelled
func (s *Server) Start(ctx context.Context) error {
	var addr string
	if s.bind != "" {
		addr = fmt.Sprintf("%s:%d", s.bind, s.port)
	} else {
		addr = fmt.Sprintf(":%d", s.port)
	}

	server := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout disabled (0) so the feed socket can stay open;
		// the per-group chi timeout protects regular requests
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		// Stop the feed hub first to close all client connections
		s.feedHub.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
