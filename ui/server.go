// Package ui exposes the collection-layer JSON API: session lifecycle,
// write-once score submission, the decide trigger, and one-shot aggregation
// for callers that assemble inputs themselves. It is collection tooling, not
// a presentation layer; reports come back as markdown or HTML fragments for
// external renderers.
package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gopanel/internal"
	"gopanel/internal/aggregate"
	"gopanel/internal/batch"
	"gopanel/internal/session"
)

// Server is the HTTP application
type Server struct {
	router  *chi.Mux
	engine  *aggregate.Engine
	batch   *batch.Executor
	reviews *session.ReviewService // nil when no database is configured
	log     *internal.Logger
}

// Config holds server construction options
type Config struct {
	Engine  *aggregate.Engine
	Batch   *batch.Executor
	Reviews *session.ReviewService
	Log     *internal.Logger
}

// NewServer creates the HTTP application. Review-session routes are only
// mounted when a review service is available; one-shot aggregation always is.
func NewServer(cfg Config) *Server {
	logger := cfg.Log
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:  chi.NewRouter(),
		engine:  cfg.Engine,
		batch:   cfg.Batch,
		reviews: cfg.Reviews,
		log:     logger,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Post("/api/aggregate", s.handleAggregate)
	s.router.Post("/api/aggregate/batch", s.handleAggregateBatch)

	if s.reviews != nil {
		s.router.Route("/api/reviews", func(r chi.Router) {
			r.Post("/", s.handleCreateReview)
			r.Get("/", s.handleListReviews)
			r.Route("/{reviewID}", func(r chi.Router) {
				r.Get("/", s.handleGetReview)
				r.Post("/experts", s.handleAddExpert)
				r.Post("/scores", s.handleSubmitScore)
				r.Post("/decide", s.handleDecide)
				r.Get("/report", s.handleReport)
			})
		})
	}
}

// Router returns the underlying handler for mounting or testing
func (s *Server) Router() http.Handler {
	return s.router
}

// Listen serves until the listener fails
func (s *Server) Listen(addr string) error {
	s.log.Info("listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}
