package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/audit"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/chat"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/config"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/db"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/nlp"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/tickets"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/users"
)

// Server is the break-glass ticket backend's HTTP server.
type Server struct {
	cfg        *config.Config
	db         *db.DB
	tickets    *tickets.Store
	users      *users.Store
	audit      *audit.Store
	nlp        *nlp.Service
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies and registers every feature
// package's routes.
func New(cfg *config.Config, database *db.DB) *Server {
	s := &Server{
		cfg:     cfg,
		db:      database,
		tickets: tickets.NewStore(database),
		users:   users.NewStore(database),
		audit:   audit.NewStore(database),
	}
	s.nlp = nlp.NewService(s.tickets, s.users, s.audit, nlp.ServiceConfig{
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		Preferences:         preferencesFromConfig(cfg),
	})

	s.router = s.buildRouter()
	return s
}

// preferencesFromConfig translates the YAML-facing style knobs into
// rendering preferences.
func preferencesFromConfig(cfg *config.Config) nlp.Preferences {
	return nlp.NewPreferencesBuilder().
		Style(nlp.Style(cfg.ResponseStyle)).
		Emoji(cfg.EmojiEnabled).
		Verbose(cfg.VerboseResponses).
		MaxResponseLength(cfg.MaxResponseLength).
		Build()
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(corsOpts.AllowedOrigins) == 0 {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	nlp.RegisterRoutes(r, s.nlp)
	tickets.RegisterRoutes(r, s.tickets)
	audit.RegisterRoutes(r, s.audit)
	chat.New(s.nlp).RegisterRoutes(r)

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// Tickets returns the ticket store.
func (s *Server) Tickets() *tickets.Store { return s.tickets }

// Users returns the user store.
func (s *Server) Users() *users.Store { return s.users }

// Audit returns the audit store.
func (s *Server) Audit() *audit.Store { return s.audit }

// NLP returns the query pipeline service.
func (s *Server) NLP() *nlp.Service { return s.nlp }

// Start begins listening on the configured address.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("firefighter server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
