package repo

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	taxonomy *InMemoryTaxonomyRepository
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

// SetTaxonomy lets category and group filters resolve slugs against t.
func (r *InMemoryProductRepository) SetTaxonomy(t *InMemoryTaxonomyRepository) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taxonomy = t
}

func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Slug == product.Slug {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now
	r.products = append(r.products, product)
	return product, nil
}

func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetBySlug(_ context.Context, slug string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.products {
		if p.ID == product.ID {
			idx = i
		} else if p.Slug == product.Slug {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	if idx < 0 {
		return models.Product{}, ErrProductNotFound
	}
	product.CreatedAt = r.products[idx].CreatedAt
	product.UpdatedAt = time.Now().UTC()
	r.products[idx] = product
	return product, nil
}

func (r *InMemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) AdjustStock(_ context.Context, id string, delta int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID != id {
			continue
		}
		if p.StockQuantity+delta < 0 {
			return models.Product{}, ErrInvalidQuantityChange
		}
		p.StockQuantity += delta
		p.UpdatedAt = time.Now().UTC()
		r.products[i] = p
		return p, nil
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Filter(_ context.Context, pf ProductFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scope := r.categoryScope(pf)

	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesFilter(p, pf, scope) {
			filtered = append(filtered, p)
		}
	}
	sort.SliceStable(filtered, lessFunc(filtered, pf.Sort))

	total := len(filtered)
	start := clamp(pf.Offset(), 0, total)
	end := clamp(start+pf.Limit, start, total)

	return slices.Clone(filtered[start:end]), total, nil
}

func (r *InMemoryProductRepository) PriceRange(_ context.Context) (models.PriceRange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var lowest, highest decimal.NullDecimal
	for _, p := range r.products {
		if p.Status != models.StatusActive {
			continue
		}
		price := p.EffectivePrice()
		if !lowest.Valid || price.LessThan(lowest.Decimal) {
			lowest = decimal.NewNullDecimal(price)
		}
		if !highest.Valid || price.GreaterThan(highest.Decimal) {
			highest = decimal.NewNullDecimal(price)
		}
	}
	return priceRangeFrom(lowest, highest), nil
}

// Snapshot returns a copy of every stored product.
func (r *InMemoryProductRepository) Snapshot() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.products)
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

// categoryFilter holds the category ids a product must belong to; nil sets mean "no constraint".
type categoryFilter struct {
	bySlug  map[string]bool
	byGroup map[string]bool
}

func (r *InMemoryProductRepository) categoryScope(pf ProductFilter) categoryFilter {
	var scope categoryFilter
	if len(pf.CategorySlugs) == 0 && pf.GroupID == "" {
		return scope
	}

	var categories []models.Category
	if r.taxonomy != nil {
		categories = r.taxonomy.categoriesSnapshot()
	}
	if len(pf.CategorySlugs) > 0 {
		scope.bySlug = map[string]bool{}
		for _, c := range categories {
			if slices.Contains(pf.CategorySlugs, c.Slug) {
				scope.bySlug[c.ID] = true
			}
		}
	}
	if pf.GroupID != "" {
		scope.byGroup = map[string]bool{}
		for _, c := range categories {
			if c.GroupID != nil && *c.GroupID == pf.GroupID {
				scope.byGroup[c.ID] = true
			}
		}
	}
	return scope
}

func matchesFilter(p models.Product, pf ProductFilter, scope categoryFilter) bool {
	if pf.Search != "" {
		needle := strings.ToLower(pf.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) && !strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	categoryID := ""
	if p.CategoryID != nil {
		categoryID = *p.CategoryID
	}
	if scope.bySlug != nil && !scope.bySlug[categoryID] {
		return false
	}
	if scope.byGroup != nil && !scope.byGroup[categoryID] {
		return false
	}
	if pf.SubcategoryID != "" && (p.SubcategoryID == nil || *p.SubcategoryID != pf.SubcategoryID) {
		return false
	}
	if pf.Price != nil {
		price := p.EffectivePrice()
		if price.LessThan(decimal.NewFromInt(int64(pf.Price.Min))) || price.GreaterThan(decimal.NewFromInt(int64(pf.Price.Max))) {
			return false
		}
	}
	if pf.InStock && !p.InStock() {
		return false
	}
	if pf.Featured && !p.Featured {
		return false
	}
	if len(pf.Statuses) > 0 && !slices.Contains(pf.Statuses, p.Status) {
		return false
	}
	return true
}

func lessFunc(products []models.Product, s models.ProductSort) func(i, j int) bool {
	byID := func(a, b models.Product) bool { return a.ID < b.ID }
	return func(i, j int) bool {
		a, b := products[i], products[j]
		switch s {
		case models.SortPriceAsc, models.SortPriceDesc:
			if cmp := a.EffectivePrice().Cmp(b.EffectivePrice()); cmp != 0 {
				if s == models.SortPriceAsc {
					return cmp < 0
				}
				return cmp > 0
			}
			return byID(a, b)
		case models.SortCreatedAt:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return byID(a, b)
		case models.SortFeatured:
			if a.Featured != b.Featured {
				return a.Featured
			}
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return byID(a, b)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
