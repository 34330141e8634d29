package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dd0wney/cluso-segmenter/pkg/api/middleware"
	"github.com/dd0wney/cluso-segmenter/pkg/logging"
	"github.com/dd0wney/cluso-segmenter/pkg/metrics"
)

const version = "1.0.0"

// Config holds the server settings.
type Config struct {
	Port                      int
	ReadTimeout               time.Duration
	WriteTimeout              time.Duration
	IdleTimeout               time.Duration
	DefaultMinimumSegmentSize int
	// APIKeyHash is a bcrypt hash of the expected API key. Empty disables
	// authentication.
	APIKeyHash string
}

// Server is the HTTP API for the graph segmenter
type Server struct {
	cfg       Config
	logger    logging.Logger
	registry  *metrics.Registry
	startTime time.Time
}

// NewServer creates a new API server
func NewServer(cfg Config, logger logging.Logger, registry *metrics.Registry) *Server {
	if logger == nil {
		logger = logging.DefaultLogger().With(logging.Component("api"))
	}
	if registry == nil {
		registry = metrics.DefaultRegistry()
	}
	return &Server{
		cfg:       cfg,
		logger:    logger,
		registry:  registry,
		startTime: time.Now(),
	}
}

// Handler builds the full HTTP handler including the middleware chain.
// Exposed separately from Start so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.registry.Handler())
	mux.HandleFunc("/segment", s.handleSegment)

	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(s.cfg.APIKeyHash)(handler)
	handler = middleware.Metrics(s.registry)(handler)
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.CORS()(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.PanicRecovery(s.logger)(handler)
	return handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("segmenter API listening",
		logging.String("addr", addr),
		logging.String("version", version),
	)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	return server.ListenAndServe()
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "method_not_allowed")
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    time.Since(s.startTime).String(),
	})
}
