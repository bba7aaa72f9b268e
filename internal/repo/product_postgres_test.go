package repo

import (
	"strings"
	"testing"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"sofa":      "sofa",
		"100%":      `100\%`,
		"a_b":       `a\_b`,
		`back\lash`: `back\\lash`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFilterConditions(t *testing.T) {
	t.Run("Empty filter adds nothing", func(t *testing.T) {
		query, args, next := filterConditions(ProductFilter{})
		if query != "" || len(args) != 0 || next != 1 {
			t.Errorf("expected no conditions, got %q %v %d", query, args, next)
		}
	})

	t.Run("Placeholders are numbered in order", func(t *testing.T) {
		pf := ProductFilter{
			Search:        "50%",
			CategorySlugs: []string{"sofas"},
			Price:         &PriceBounds{Min: 10, Max: 20},
			InStock:       true,
			Statuses:      []models.ProductStatus{models.StatusActive},
		}
		query, args, next := filterConditions(pf)

		for _, want := range []string{"ILIKE $1", "ANY($2)", ">= $3", "<= $4", "status = ANY($5)", "stock_quantity > 0"} {
			if !strings.Contains(query, want) {
				t.Errorf("expected %q in %q", want, query)
			}
		}
		if next != 6 {
			t.Errorf("expected next placeholder 6, got %d", next)
		}
		if args[0] != `%50\%%` {
			t.Errorf("expected escaped search pattern, got %v", args[0])
		}
		if len(args) != 5 {
			t.Errorf("expected 5 args, got %d", len(args))
		}
	})
}

func TestOrderClause(t *testing.T) {
	tests := map[models.ProductSort]string{
		models.SortName:      "name ASC, id ASC",
		models.SortCreatedAt: "created_at DESC, id ASC",
		models.SortFeatured:  "featured DESC, name ASC, id ASC",
		models.SortPriceAsc:  effectivePriceExpr + " ASC, id ASC",
		models.SortPriceDesc: effectivePriceExpr + " DESC, id ASC",
		"unknown":            "name ASC, id ASC",
	}
	for sort, want := range tests {
		if got := orderClause(sort); got != want {
			t.Errorf("orderClause(%q) = %q, want %q", sort, got, want)
		}
	}
}
