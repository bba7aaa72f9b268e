package repo

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics(ctx context.Context) (Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m Metrics
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE featured),
			COUNT(*) FILTER (WHERE manage_stock AND stock_quantity <= 0),
			COUNT(*) FILTER (WHERE manage_stock AND stock_quantity > 0 AND stock_quantity < $1)
		FROM products
	`, LowStockThreshold).Scan(&m.TotalProducts, &m.ActiveProducts, &m.DraftProducts,
		&m.FeaturedProducts, &m.OutOfStockCount, &m.LowStockCount)
	if err != nil {
		return Metrics{}, fmt.Errorf("computing dashboard metrics: %w", err)
	}
	return m, nil
}
