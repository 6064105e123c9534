package collector

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tallerhub/aiops-reporter/internal/models"
	"github.com/tallerhub/aiops-reporter/internal/utils"
)

// Work-order lifecycle statuses counted in a snapshot.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// BusinessStore is the aggregate-query surface of the workshop database.
type BusinessStore interface {
	CountWorkOrdersByStatus(ctx context.Context, status string) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountVehicles(ctx context.Context) (int64, error)
	SumInvoicesSince(ctx context.Context, since time.Time) (float64, error)
	CountActiveTechnicians(ctx context.Context) (int64, error)
	CountActiveServices(ctx context.Context) (int64, error)
}

// BusinessCollector assembles a BusinessSnapshot from eight independent
// aggregate queries. Unlike the system collector, any query failure aborts
// the snapshot: business figures are the point of the report.
type BusinessCollector struct {
	store  BusinessStore
	logger *slog.Logger
	now    func() time.Time
}

// NewBusinessCollector constructs a collector over the given store.
func NewBusinessCollector(store BusinessStore, logger *slog.Logger) *BusinessCollector {
	if logger == nil {
		logger = slog.Default()
	}
	return &BusinessCollector{store: store, logger: logger, now: time.Now}
}

// Collect runs all eight queries concurrently and joins them into one
// snapshot. Latency is bounded by the slowest single query, not their sum.
func (c *BusinessCollector) Collect(ctx context.Context) (models.BusinessSnapshot, error) {
	capturedAt := c.now()
	midnight := utils.StartOfDay(capturedAt)

	var snap models.BusinessSnapshot
	snap.CapturedAt = capturedAt

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := c.store.CountWorkOrdersByStatus(ctx, StatusPending)
		snap.PendingOrders = n
		return err
	})
	g.Go(func() error {
		n, err := c.store.CountWorkOrdersByStatus(ctx, StatusInProgress)
		snap.InProgressOrders = n
		return err
	})
	g.Go(func() error {
		n, err := c.store.CountWorkOrdersByStatus(ctx, StatusCompleted)
		snap.CompletedOrders = n
		return err
	})
	g.Go(func() error {
		n, err := c.store.CountCustomers(ctx)
		snap.Customers = n
		return err
	})
	g.Go(func() error {
		n, err := c.store.CountVehicles(ctx)
		snap.Vehicles = n
		return err
	})
	g.Go(func() error {
		total, err := c.store.SumInvoicesSince(ctx, midnight)
		snap.RevenueToday = total
		return err
	})
	g.Go(func() error {
		n, err := c.store.CountActiveTechnicians(ctx)
		snap.ActiveTechnicians = n
		return err
	})
	g.Go(func() error {
		n, err := c.store.CountActiveServices(ctx)
		snap.ActiveServices = n
		return err
	})

	if err := g.Wait(); err != nil {
		c.logger.Error("business snapshot failed", slog.Any("error", err))
		return models.BusinessSnapshot{}, utils.DataSourceError("collector.business", err)
	}
	return snap, nil
}
