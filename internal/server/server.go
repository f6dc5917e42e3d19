package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/team-survey/internal/db"
	"github.com/jonathan/team-survey/internal/server/middleware"
	"github.com/jonathan/team-survey/internal/server/ratelimit"
	"github.com/jonathan/team-survey/internal/sheets"
	"github.com/jonathan/team-survey/internal/survey"
	"go.uber.org/zap"
)

// Store is the answer store the services read and write.
type Store interface {
	InsertResponse(ctx context.Context, r *db.Response) (int64, error)
	ListAnswerRows(ctx context.Context, filter db.ResponseFilter) ([]db.AnswerRow, error)
	DistinctDepartments(ctx context.Context) ([]string, error)
	DistinctLocations(ctx context.Context) ([]string, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	submissions     *SubmissionService
	stats           *StatsService
	rateLimiter     *ratelimit.Limiter
	logger          *zap.Logger
	shutdownTimeout time.Duration
	onShutdown      []func(context.Context) error
}

// Config holds server configuration
type Config struct {
	Port            int
	ShutdownTimeout time.Duration
	// RateLimit nil uses the limiter defaults.
	RateLimit *ratelimit.Config
}

// Deps are the collaborators the server is built from.
type Deps struct {
	Store   Store
	Catalog *survey.Catalog
	Mirror  sheets.Enqueuer
	Logger  *zap.Logger
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	catalog := deps.Catalog
	if catalog == nil {
		catalog = survey.DefaultCatalog()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}

	s := &Server{
		submissions:     NewSubmissionService(deps.Store, catalog, deps.Mirror, logger.Named("submit")),
		stats:           NewStatsService(deps.Store, survey.NewAggregator(catalog)),
		rateLimiter:     ratelimit.NewLimiter(cfg.RateLimit),
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/submit", s.handleSubmit)
	mux.HandleFunc("GET /api/filter-options", s.handleFilterOptions)
	mux.HandleFunc("GET /api/dashboard-stats", s.handleDashboardStats)
	mux.HandleFunc("GET /health", s.handleHealth)

	// CORS wraps the limiter so 429 responses carry the CORS headers.
	handler := s.rateLimiter.Middleware(logger)(mux)
	handler = withCORS(handler)
	handler = middleware.AccessLog(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recover(logger)(handler)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// OnShutdown registers fn to run after the listener stops, in registration
// order. Each fn gets the remaining shutdown deadline.
func (s *Server) OnShutdown(fn func(context.Context) error) {
	s.onShutdown = append(s.onShutdown, fn)
}

// Start serves until ctx is cancelled, then shuts down gracefully. The
// shutdown hooks also run when the listener fails to start.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Join(fmt.Errorf("server error: %w", err), s.Shutdown())
		}
	case <-ctx.Done():
	}
	return s.Shutdown()
}

// Shutdown stops the listener and runs the registered shutdown hooks.
func (s *Server) Shutdown() error {
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown failed: %w", err))
	}
	s.rateLimiter.Stop()
	for _, fn := range s.onShutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.Info("server stopped")
	return errors.Join(errs...)
}

// withCORS adds CORS headers
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps err to a status and logs server-side failures.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r.Context())))
	}
	s.errorResponse(w, status, publicMessage(err))
}
