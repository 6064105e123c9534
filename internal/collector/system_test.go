package collector

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeQuerier struct {
	values map[string]float64
	fail   map[string]bool
}

func (f *fakeQuerier) QueryInstant(_ context.Context, expr string) (float64, error) {
	if f.fail[expr] {
		return 0, errors.New("backend unavailable")
	}
	return f.values[expr], nil
}

func TestSystemCollectorAllPresent(t *testing.T) {
	prom := &fakeQuerier{values: map[string]float64{
		ExprCPUUsage:        42.5,
		ExprMemoryAvailable: 61.07,
		ExprDiskUsage:       73.9,
	}}

	snap := NewSystemCollector(prom, slog.Default()).Collect(context.Background())

	assert.True(t, snap.CPUUsage.Present)
	assert.True(t, snap.MemoryAvailable.Present)
	assert.True(t, snap.DiskUsage.Present)
	assert.InDelta(t, 42.5, snap.CPUUsage.Value, 1e-9)
	assert.InDelta(t, 61.07, snap.MemoryAvailable.Value, 1e-9)
	assert.InDelta(t, 73.9, snap.DiskUsage.Value, 1e-9)
}

func TestSystemCollectorOneBranchFailureIsIsolated(t *testing.T) {
	prom := &fakeQuerier{
		values: map[string]float64{
			ExprCPUUsage:  42.5,
			ExprDiskUsage: 73.9,
		},
		fail: map[string]bool{ExprMemoryAvailable: true},
	}

	snap := NewSystemCollector(prom, slog.Default()).Collect(context.Background())

	assert.True(t, snap.CPUUsage.Present)
	assert.False(t, snap.MemoryAvailable.Present)
	assert.True(t, snap.DiskUsage.Present)
}

func TestSystemCollectorTotalFailureNeverErrors(t *testing.T) {
	prom := &fakeQuerier{fail: map[string]bool{
		ExprCPUUsage:        true,
		ExprMemoryAvailable: true,
		ExprDiskUsage:       true,
	}}

	snap := NewSystemCollector(prom, slog.Default()).Collect(context.Background())

	assert.False(t, snap.CPUUsage.Present)
	assert.False(t, snap.MemoryAvailable.Present)
	assert.False(t, snap.DiskUsage.Present)
	assert.Equal(t, "N/A", snap.CPUUsage.FormatPercent())
}
