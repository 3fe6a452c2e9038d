package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DashboardRepositoryInterface interface {
	CountOrders(ctx context.Context) (int, error)
	CountCompletedOrders(ctx context.Context) (int, error)
	// StageCounts groups orders by their stored current stage. Alias
	// folding onto canonical names is the dashboard service's job.
	StageCounts(ctx context.Context) (map[string]int, error)
}

type dashboardRepository struct{ storage *pgxpool.Pool }

func NewDashboardRepository(storage *pgxpool.Pool) DashboardRepositoryInterface {
	return &dashboardRepository{storage: storage}
}

func (r *dashboardRepository) CountOrders(ctx context.Context) (int, error) {
	var n int
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&n)
	return n, err
}

func (r *dashboardRepository) CountCompletedOrders(ctx context.Context) (int, error) {
	var n int
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE completed_at IS NOT NULL").Scan(&n)
	return n, err
}

func (r *dashboardRepository) StageCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT current_stage, COUNT(*) FROM orders WHERE current_stage IS NOT NULL GROUP BY current_stage")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var stage string
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, err
		}
		counts[stage] = n
	}
	return counts, rows.Err()
}
