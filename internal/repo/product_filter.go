package repo

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

// PriceBounds is an inclusive effective-price window. Callers only build one when Min >= 0 and Max > Min.
type PriceBounds struct {
	Min int
	Max int
}

// ProductFilter is a validated listing query. Page and Limit are already clamped.
type ProductFilter struct {
	Search        string
	CategorySlugs []string
	SubcategoryID string
	GroupID       string
	Price         *PriceBounds
	InStock       bool
	Featured      bool
	// Statuses restricts visibility; empty means every status.
	Statuses []models.ProductStatus
	Sort     models.ProductSort
	Page     int
	Limit    int
}

// Offset saturates at math.MaxInt instead of wrapping for very large pages.
func (pf ProductFilter) Offset() int {
	if pf.Page < 1 || pf.Limit < 1 {
		return 0
	}
	if pf.Page-1 > math.MaxInt/pf.Limit {
		return math.MaxInt
	}
	return (pf.Page - 1) * pf.Limit
}

func priceRangeFrom(lowest, highest decimal.NullDecimal) models.PriceRange {
	if !lowest.Valid || !highest.Valid {
		return models.PriceRange{}
	}
	pr := models.PriceRange{
		Min: int(lowest.Decimal.Floor().IntPart()),
		Max: int(highest.Decimal.Ceil().IntPart()),
	}
	if pr.Max <= pr.Min {
		pr.Max = pr.Min + 1
	}
	return pr
}
