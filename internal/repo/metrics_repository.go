package repo

import "context"

// LowStockThreshold is the stock level under which a managed product counts as low.
const LowStockThreshold = 5

type Metrics struct {
	TotalProducts    int `json:"total_products"`
	ActiveProducts   int `json:"active_products"`
	DraftProducts    int `json:"draft_products"`
	FeaturedProducts int `json:"featured_products"`
	OutOfStockCount  int `json:"out_of_stock_count"`
	LowStockCount    int `json:"low_stock_count"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ctx context.Context) (Metrics, error)
}
