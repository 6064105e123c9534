package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tallerhub/aiops-reporter/internal/analyzer"
	"github.com/tallerhub/aiops-reporter/internal/metrics"
	"github.com/tallerhub/aiops-reporter/internal/models"
	"github.com/tallerhub/aiops-reporter/internal/utils"
)

// BusinessCollector produces the business snapshot. A failure here is fatal
// to the check run.
type BusinessCollector interface {
	Collect(ctx context.Context) (models.BusinessSnapshot, error)
}

// SystemCollector produces the infrastructure snapshot. It cannot fail.
type SystemCollector interface {
	Collect(ctx context.Context) models.SystemSnapshot
}

// Classifier turns a composed prompt into a structured classification.
type Classifier interface {
	Classify(ctx context.Context, prompt string) models.Classification
}

// CheckService drives one business check end to end: collect both snapshots
// concurrently, classify, derive severity, assemble the report. Concurrent
// requests share nothing but the metrics registry.
type CheckService struct {
	logger     *slog.Logger
	business   BusinessCollector
	system     SystemCollector
	classifier Classifier
	severity   *analyzer.SeverityMapper
	registry   *metrics.Registry
	latencies  *utils.LatencyTracker
}

// NewCheckService wires the pipeline components together.
func NewCheckService(
	logger *slog.Logger,
	business BusinessCollector,
	system SystemCollector,
	classifier Classifier,
	registry *metrics.Registry,
) *CheckService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckService{
		logger:     logger,
		business:   business,
		system:     system,
		classifier: classifier,
		severity:   analyzer.NewSeverityMapper(registry),
		registry:   registry,
		latencies:  utils.NewLatencyTracker(1024),
	}
}

// Run executes the full pipeline once. Only a business snapshot failure
// propagates; a degraded classification still yields a report and counts as
// a successful run.
func (s *CheckService) Run(ctx context.Context) (models.Report, error) {
	start := time.Now()

	var (
		wg       sync.WaitGroup
		business models.BusinessSnapshot
		bizErr   error
		system   models.SystemSnapshot
	)

	// The two collectors are fully independent; run them as one fan-out.
	wg.Add(2)
	go func() {
		defer wg.Done()
		business, bizErr = s.business.Collect(ctx)
	}()
	go func() {
		defer wg.Done()
		system = s.system.Collect(ctx)
	}()
	wg.Wait()

	if bizErr != nil {
		s.registry.ObserveCheck(time.Since(start), metrics.OutcomeError)
		return models.Report{}, bizErr
	}

	prompt := analyzer.ComposePrompt(business, system)
	classification := s.classifier.Classify(ctx, prompt)
	severity := s.severity.MapAndPublish(classification)

	report := AssembleReport(time.Now().UTC(), business, system, classification, severity)

	duration := time.Since(start)
	s.registry.ObserveCheck(duration, metrics.OutcomeSuccess)
	s.latencies.Observe(duration)
	if count := s.latencies.Count(); count >= 20 && count%20 == 0 {
		s.logger.Info("check latency", slog.Duration("p95", s.latencies.Percentile(95)), slog.Int("samples", count))
	}

	s.logger.Info("business check completed",
		slog.String("severity", severity.String()),
		slog.String("category", classification.Category),
		slog.Duration("duration", duration))

	return report, nil
}
