package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tallerhub/aiops-reporter/internal/models"
	"github.com/tallerhub/aiops-reporter/internal/utils"
)

// CheckRunner executes one business check pipeline run.
type CheckRunner interface {
	Run(ctx context.Context) (models.Report, error)
}

// Pinger is the liveness probe against the transactional store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers carries the HTTP endpoints and their collaborators.
type Handlers struct {
	logger         *slog.Logger
	checks         CheckRunner
	db             Pinger
	metricsHandler http.Handler
	promConfigured bool
	groqConfigured bool
	startedAt      time.Time
}

// NewHandlers constructs the endpoint set.
func NewHandlers(
	logger *slog.Logger,
	checks CheckRunner,
	db Pinger,
	metricsHandler http.Handler,
	promConfigured, groqConfigured bool,
) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		logger:         logger,
		checks:         checks,
		db:             db,
		metricsHandler: metricsHandler,
		promConfigured: promConfigured,
		groqConfigured: groqConfigured,
		startedAt:      time.Now(),
	}
}

// CheckBusiness handles GET /aiops/check-business. Any outcome that reaches
// report assembly is a 200, including degraded classifications; only a
// data-store failure surfaces as 500.
func (h *Handlers) CheckBusiness(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	report, err := h.checks.Run(r.Context())
	if err != nil {
		h.logger.Error("business check failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Status:    "error",
			Error:     errorCode(err),
			Message:   "no se pudo completar el chequeo de negocio",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Metrics handles GET /metrics by delegating to the registry's scrape handler.
func (h *Handlers) Metrics(w http.ResponseWriter, r *http.Request) {
	h.metricsHandler.ServeHTTP(w, r)
}

type healthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
	Uptime   string            `json:"uptime,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Health handles GET /health. The store liveness probe decides the verdict;
// the other collaborators are reported by configuration state only.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status: "unhealthy",
			Error:  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status: "healthy",
		Services: map[string]string{
			"database":   "connected",
			"prometheus": configuredLabel(h.promConfigured),
			"groq":       configuredLabel(h.groqConfigured),
		},
		Uptime: utils.FormatUptime(time.Since(h.startedAt)),
	})
}

func configuredLabel(ok bool) string {
	if ok {
		return "configured"
	}
	return "not_configured"
}

func errorCode(err error) string {
	if errors.Is(err, utils.ErrDataSource) {
		return "data_source_failure"
	}
	return "internal_error"
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
