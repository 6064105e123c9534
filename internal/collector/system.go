package collector

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tallerhub/aiops-reporter/internal/models"
)

// PromQL expressions behind the three infrastructure gauges.
const (
	ExprCPUUsage        = `100 - (avg(rate(node_cpu_seconds_total{mode="idle"}[5m])) * 100)`
	ExprMemoryAvailable = `(node_memory_MemAvailable_bytes / node_memory_MemTotal_bytes) * 100`
	ExprDiskUsage       = `100 - ((node_filesystem_avail_bytes{mountpoint="/"} / node_filesystem_size_bytes{mountpoint="/"}) * 100)`
)

// InstantQuerier evaluates a PromQL expression to a single sample.
type InstantQuerier interface {
	QueryInstant(ctx context.Context, expr string) (float64, error)
}

// SystemCollector assembles a SystemSnapshot from three independent instant
// queries. It never fails: a branch that errors yields an absent sample while
// its siblings proceed. Infrastructure-metric unavailability must never block
// business reporting.
type SystemCollector struct {
	prom   InstantQuerier
	logger *slog.Logger
}

// NewSystemCollector constructs a collector over the given querier.
func NewSystemCollector(prom InstantQuerier, logger *slog.Logger) *SystemCollector {
	if logger == nil {
		logger = slog.Default()
	}
	return &SystemCollector{prom: prom, logger: logger}
}

// Collect fans out the three queries concurrently and joins once all finish.
func (c *SystemCollector) Collect(ctx context.Context) models.SystemSnapshot {
	var snap models.SystemSnapshot

	branches := []struct {
		name string
		expr string
		dst  *models.Sample
	}{
		{"cpu_usage", ExprCPUUsage, &snap.CPUUsage},
		{"memory_available", ExprMemoryAvailable, &snap.MemoryAvailable},
		{"disk_usage", ExprDiskUsage, &snap.DiskUsage},
	}

	var wg sync.WaitGroup
	for i := range branches {
		branch := branches[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := c.prom.QueryInstant(ctx, branch.expr)
			if err != nil {
				c.logger.Warn("system metric unavailable",
					slog.String("metric", branch.name), slog.Any("error", err))
				return
			}
			*branch.dst = models.SampleOf(value)
		}()
	}
	wg.Wait()

	return snap
}
