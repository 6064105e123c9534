package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// BusinessRepository issues the aggregate queries behind a business snapshot.
// Every method maps to exactly one statement; callers own the fan-out.
type BusinessRepository struct {
	db *sql.DB
}

// NewBusinessRepository creates a repository over an open pool.
func NewBusinessRepository(db *sql.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

// Ping is the liveness probe used by the health endpoint.
func (r *BusinessRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CountWorkOrdersByStatus counts work orders in a single status.
func (r *BusinessRepository) CountWorkOrdersByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM work_orders WHERE status = $1", status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count work orders %q: %w", status, err)
	}
	return n, nil
}

// CountCustomers counts all registered customers.
func (r *BusinessRepository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// CountVehicles counts all registered vehicles.
func (r *BusinessRepository) CountVehicles(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vehicles").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return n, nil
}

// SumInvoicesSince totals invoiced revenue issued at or after the cutoff.
// An empty day yields 0, not NULL.
func (r *BusinessRepository) SumInvoicesSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total), 0) FROM invoices WHERE issued_at >= $1", since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum invoices: %w", err)
	}
	return total, nil
}

// CountActiveTechnicians counts technicians flagged active.
func (r *BusinessRepository) CountActiveTechnicians(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM technicians WHERE active = TRUE",
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active technicians: %w", err)
	}
	return n, nil
}

// CountActiveServices counts catalog services flagged active.
func (r *BusinessRepository) CountActiveServices(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM services WHERE active = TRUE",
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active services: %w", err)
	}
	return n, nil
}
