package repo

import (
	"context"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

type InMemoryMetricsRepository struct {
	productRepo *InMemoryProductRepository
}

func NewInMemoryMetricsRepository(productRepo *InMemoryProductRepository) *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{productRepo: productRepo}
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics(_ context.Context) (Metrics, error) {
	m := Metrics{}
	for _, p := range i.productRepo.Snapshot() {
		m.TotalProducts++
		switch p.Status {
		case models.StatusActive:
			m.ActiveProducts++
		case models.StatusDraft:
			m.DraftProducts++
		}
		if p.Featured {
			m.FeaturedProducts++
		}
		if !p.ManageStock {
			continue
		}
		if p.StockQuantity <= 0 {
			m.OutOfStockCount++
		} else if p.StockQuantity < LowStockThreshold {
			m.LowStockCount++
		}
	}
	return m, nil
}
