package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/tallerhub/aiops-reporter/internal/config"
)

// Server wraps the HTTP server and lifecycle helpers.
type Server struct {
	cfg        config.ServerConfig
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router with middleware applied and binds it to the
// configured address.
func NewServer(cfg config.ServerConfig, logger *slog.Logger, h *Handlers) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/aiops/check-business", h.CheckBusiness)
	mux.HandleFunc("/metrics", h.Metrics)
	mux.HandleFunc("/health", h.Health)

	var handler http.Handler = mux
	handler = CORS(cfg.CORSOrigin, handler)
	handler = Logging(logger, handler)
	handler = Recovery(logger, handler)

	return &Server{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start serves requests until Shutdown is invoked.
func (s *Server) Start() error {
	s.logger.Info("http server listening", slog.String("address", s.cfg.Address))
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// GracefulTimeout returns the configured graceful timeout duration.
func (s *Server) GracefulTimeout() time.Duration {
	return s.cfg.GracefulTimeout
}
