package repo

import (
	"context"
	"sort"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

// TaxonomyRepository manages the navigation tree: groups, categories and subcategories.
type TaxonomyRepository interface {
	Tree(ctx context.Context) (models.Taxonomy, error)
	GetCategoryBySlug(ctx context.Context, slug string) (models.CategoryNode, error)

	CreateGroup(ctx context.Context, g models.NavGroup) (models.NavGroup, error)
	UpdateGroup(ctx context.Context, g models.NavGroup) (models.NavGroup, error)
	DeleteGroup(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, c models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, c models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateSubcategory(ctx context.Context, s models.Subcategory) (models.Subcategory, error)
	UpdateSubcategory(ctx context.Context, s models.Subcategory) (models.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id string) error
}

// buildTree nests categories under their groups and subcategories under their categories,
// each level ordered by position then name.
func buildTree(groups []models.NavGroup, categories []models.Category, subs []models.Subcategory) models.Taxonomy {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Position != groups[j].Position {
			return groups[i].Position < groups[j].Position
		}
		return groups[i].Name < groups[j].Name
	})
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Position != categories[j].Position {
			return categories[i].Position < categories[j].Position
		}
		return categories[i].Name < categories[j].Name
	})
	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].Position != subs[j].Position {
			return subs[i].Position < subs[j].Position
		}
		return subs[i].Name < subs[j].Name
	})

	subsByCategory := map[string][]models.Subcategory{}
	for _, s := range subs {
		subsByCategory[s.CategoryID] = append(subsByCategory[s.CategoryID], s)
	}

	nodesByGroup := map[string][]models.CategoryNode{}
	tree := models.Taxonomy{Groups: []models.GroupNode{}, Ungrouped: []models.CategoryNode{}}
	for _, c := range categories {
		node := models.CategoryNode{Category: c, Subcategories: subsByCategory[c.ID]}
		if node.Subcategories == nil {
			node.Subcategories = []models.Subcategory{}
		}
		if c.GroupID == nil {
			tree.Ungrouped = append(tree.Ungrouped, node)
			continue
		}
		nodesByGroup[*c.GroupID] = append(nodesByGroup[*c.GroupID], node)
	}

	for _, g := range groups {
		node := models.GroupNode{NavGroup: g, Categories: nodesByGroup[g.ID]}
		if node.Categories == nil {
			node.Categories = []models.CategoryNode{}
		}
		tree.Groups = append(tree.Groups, node)
	}
	return tree
}
