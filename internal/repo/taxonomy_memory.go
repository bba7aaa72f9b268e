package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

type InMemoryTaxonomyRepository struct {
	mu         sync.RWMutex
	groups     []models.NavGroup
	categories []models.Category
	subs       []models.Subcategory
}

func NewInMemoryTaxonomyRepository() *InMemoryTaxonomyRepository {
	return &InMemoryTaxonomyRepository{}
}

func (r *InMemoryTaxonomyRepository) Tree(_ context.Context) (models.Taxonomy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return buildTree(slices.Clone(r.groups), slices.Clone(r.categories), slices.Clone(r.subs)), nil
}

func (r *InMemoryTaxonomyRepository) GetCategoryBySlug(_ context.Context, slug string) (models.CategoryNode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Slug != slug {
			continue
		}
		node := models.CategoryNode{Category: c, Subcategories: []models.Subcategory{}}
		for _, s := range r.subs {
			if s.CategoryID == c.ID {
				node.Subcategories = append(node.Subcategories, s)
			}
		}
		return node, nil
	}
	return models.CategoryNode{}, ErrNotFound
}

func (r *InMemoryTaxonomyRepository) categoriesSnapshot() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.categories)
}

func (r *InMemoryTaxonomyRepository) CreateGroup(_ context.Context, g models.NavGroup) (models.NavGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.groups, func(x models.NavGroup) bool { return x.Slug == g.Slug }) {
		return models.NavGroup{}, ErrDuplicatedValueUnique
	}
	g.ID = uuid.NewString()
	r.groups = append(r.groups, g)
	return g, nil
}

func (r *InMemoryTaxonomyRepository) UpdateGroup(_ context.Context, g models.NavGroup) (models.NavGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.groups, func(x models.NavGroup) bool { return x.Slug == g.Slug && x.ID != g.ID }) {
		return models.NavGroup{}, ErrDuplicatedValueUnique
	}
	for i := range r.groups {
		if r.groups[i].ID == g.ID {
			r.groups[i] = g
			return g, nil
		}
	}
	return models.NavGroup{}, ErrNotFound
}

func (r *InMemoryTaxonomyRepository) DeleteGroup(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.groups, func(x models.NavGroup) bool { return x.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	r.groups = slices.Delete(r.groups, idx, idx+1)
	for i := range r.categories {
		if r.categories[i].GroupID != nil && *r.categories[i].GroupID == id {
			r.categories[i].GroupID = nil
		}
	}
	return nil
}

func (r *InMemoryTaxonomyRepository) CreateCategory(_ context.Context, c models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.categories, func(x models.Category) bool { return x.Slug == c.Slug }) {
		return models.Category{}, ErrDuplicatedValueUnique
	}
	c.ID = uuid.NewString()
	r.categories = append(r.categories, c)
	return c, nil
}

func (r *InMemoryTaxonomyRepository) UpdateCategory(_ context.Context, c models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.categories, func(x models.Category) bool { return x.Slug == c.Slug && x.ID != c.ID }) {
		return models.Category{}, ErrDuplicatedValueUnique
	}
	for i := range r.categories {
		if r.categories[i].ID == c.ID {
			r.categories[i] = c
			return c, nil
		}
	}
	return models.Category{}, ErrNotFound
}

func (r *InMemoryTaxonomyRepository) DeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.categories, func(x models.Category) bool { return x.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	r.categories = slices.Delete(r.categories, idx, idx+1)
	r.subs = slices.DeleteFunc(r.subs, func(s models.Subcategory) bool { return s.CategoryID == id })
	return nil
}

func (r *InMemoryTaxonomyRepository) CreateSubcategory(_ context.Context, s models.Subcategory) (models.Subcategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !slices.ContainsFunc(r.categories, func(x models.Category) bool { return x.ID == s.CategoryID }) {
		return models.Subcategory{}, ErrNotFound
	}
	if slices.ContainsFunc(r.subs, func(x models.Subcategory) bool { return x.Slug == s.Slug }) {
		return models.Subcategory{}, ErrDuplicatedValueUnique
	}
	s.ID = uuid.NewString()
	r.subs = append(r.subs, s)
	return s, nil
}

func (r *InMemoryTaxonomyRepository) UpdateSubcategory(_ context.Context, s models.Subcategory) (models.Subcategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.subs, func(x models.Subcategory) bool { return x.Slug == s.Slug && x.ID != s.ID }) {
		return models.Subcategory{}, ErrDuplicatedValueUnique
	}
	for i := range r.subs {
		if r.subs[i].ID == s.ID {
			r.subs[i] = s
			return s, nil
		}
	}
	return models.Subcategory{}, ErrNotFound
}

func (r *InMemoryTaxonomyRepository) DeleteSubcategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.subs, func(x models.Subcategory) bool { return x.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	r.subs = slices.Delete(r.subs, idx, idx+1)
	return nil
}

func (r *InMemoryTaxonomyRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups, r.categories, r.subs = nil, nil, nil
}
