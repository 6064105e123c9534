package collector

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallerhub/aiops-reporter/internal/utils"
)

type fakeStore struct {
	statusCounts map[string]int64
	customers    int64
	vehicles     int64
	revenue      float64
	technicians  int64
	services     int64

	failOn       string
	gotSince     time.Time
	sinceRecords chan time.Time
}

func (f *fakeStore) err(op string) error {
	if f.failOn == op {
		return errors.New("connection refused")
	}
	return nil
}

func (f *fakeStore) CountWorkOrdersByStatus(_ context.Context, status string) (int64, error) {
	return f.statusCounts[status], f.err("status:" + status)
}

func (f *fakeStore) CountCustomers(context.Context) (int64, error) {
	return f.customers, f.err("customers")
}

func (f *fakeStore) CountVehicles(context.Context) (int64, error) {
	return f.vehicles, f.err("vehicles")
}

func (f *fakeStore) SumInvoicesSince(_ context.Context, since time.Time) (float64, error) {
	if f.sinceRecords != nil {
		f.sinceRecords <- since
	}
	return f.revenue, f.err("invoices")
}

func (f *fakeStore) CountActiveTechnicians(context.Context) (int64, error) {
	return f.technicians, f.err("technicians")
}

func (f *fakeStore) CountActiveServices(context.Context) (int64, error) {
	return f.services, f.err("services")
}

func TestBusinessCollectorAssemblesSnapshot(t *testing.T) {
	store := &fakeStore{
		statusCounts: map[string]int64{
			StatusPending:    5,
			StatusInProgress: 2,
			StatusCompleted:  10,
		},
		customers:    40,
		vehicles:     55,
		revenue:      1234.50,
		technicians:  6,
		services:     12,
		sinceRecords: make(chan time.Time, 1),
	}

	c := NewBusinessCollector(store, slog.Default())
	fixed := time.Date(2025, 6, 3, 15, 30, 0, 0, time.Local)
	c.now = func() time.Time { return fixed }

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), snap.PendingOrders)
	assert.Equal(t, int64(2), snap.InProgressOrders)
	assert.Equal(t, int64(10), snap.CompletedOrders)
	assert.Equal(t, int64(40), snap.Customers)
	assert.Equal(t, int64(55), snap.Vehicles)
	assert.Equal(t, 1234.50, snap.RevenueToday)
	assert.Equal(t, int64(6), snap.ActiveTechnicians)
	assert.Equal(t, int64(12), snap.ActiveServices)
	assert.Equal(t, fixed, snap.CapturedAt)

	// Revenue window starts at local midnight of the collection instant.
	since := <-store.sinceRecords
	assert.Equal(t, utils.StartOfDay(fixed), since)
}

func TestBusinessCollectorEmptyDayRevenueIsZero(t *testing.T) {
	store := &fakeStore{statusCounts: map[string]int64{}}
	c := NewBusinessCollector(store, slog.Default())

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, snap.RevenueToday)
}

func TestBusinessCollectorQueryFailureIsHard(t *testing.T) {
	store := &fakeStore{
		statusCounts: map[string]int64{StatusPending: 1},
		failOn:       "customers",
	}
	c := NewBusinessCollector(store, slog.Default())

	_, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrDataSource))
}
