package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

type PostgresTaxonomyRepository struct {
	db *sqlx.DB
}

func NewPostgresTaxonomyRepository(db *sqlx.DB) *PostgresTaxonomyRepository {
	return &PostgresTaxonomyRepository{db: db}
}

func (r *PostgresTaxonomyRepository) Tree(ctx context.Context) (models.Taxonomy, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var groups []models.NavGroup
	if err := r.db.SelectContext(ctx, &groups, `SELECT id, name, slug, position FROM nav_groups`); err != nil {
		return models.Taxonomy{}, fmt.Errorf("listing groups: %w", err)
	}
	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories,
		`SELECT id, group_id, name, slug, description, image_url, position FROM categories`); err != nil {
		return models.Taxonomy{}, fmt.Errorf("listing categories: %w", err)
	}
	var subs []models.Subcategory
	if err := r.db.SelectContext(ctx, &subs,
		`SELECT id, category_id, name, slug, position FROM subcategories`); err != nil {
		return models.Taxonomy{}, fmt.Errorf("listing subcategories: %w", err)
	}
	return buildTree(groups, categories, subs), nil
}

func (r *PostgresTaxonomyRepository) GetCategoryBySlug(ctx context.Context, slug string) (models.CategoryNode, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var node models.CategoryNode
	err := r.db.GetContext(ctx, &node.Category,
		`SELECT id, group_id, name, slug, description, image_url, position FROM categories WHERE slug = $1`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CategoryNode{}, ErrNotFound
	}
	if err != nil {
		return models.CategoryNode{}, fmt.Errorf("fetching category: %w", err)
	}

	node.Subcategories = []models.Subcategory{}
	err = r.db.SelectContext(ctx, &node.Subcategories,
		`SELECT id, category_id, name, slug, position FROM subcategories WHERE category_id = $1 ORDER BY position, name`, node.ID)
	if err != nil {
		return models.CategoryNode{}, fmt.Errorf("listing subcategories: %w", err)
	}
	return node, nil
}

func (r *PostgresTaxonomyRepository) CreateGroup(ctx context.Context, g models.NavGroup) (models.NavGroup, error) {
	g.ID = uuid.NewString()
	err := r.namedExec(ctx, `INSERT INTO nav_groups (id, name, slug, position) VALUES (:id, :name, :slug, :position)`, g)
	return g, err
}

func (r *PostgresTaxonomyRepository) UpdateGroup(ctx context.Context, g models.NavGroup) (models.NavGroup, error) {
	err := r.namedExec(ctx, `UPDATE nav_groups SET name = :name, slug = :slug, position = :position WHERE id = :id`, g)
	return g, err
}

func (r *PostgresTaxonomyRepository) DeleteGroup(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "nav_groups", id)
}

func (r *PostgresTaxonomyRepository) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	c.ID = uuid.NewString()
	err := r.namedExec(ctx, `INSERT INTO categories (id, group_id, name, slug, description, image_url, position)
		VALUES (:id, :group_id, :name, :slug, :description, :image_url, :position)`, c)
	return c, err
}

func (r *PostgresTaxonomyRepository) UpdateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	err := r.namedExec(ctx, `UPDATE categories SET group_id = :group_id, name = :name, slug = :slug,
		description = :description, image_url = :image_url, position = :position WHERE id = :id`, c)
	return c, err
}

func (r *PostgresTaxonomyRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "categories", id)
}

func (r *PostgresTaxonomyRepository) CreateSubcategory(ctx context.Context, s models.Subcategory) (models.Subcategory, error) {
	s.ID = uuid.NewString()
	err := r.namedExec(ctx, `INSERT INTO subcategories (id, category_id, name, slug, position)
		VALUES (:id, :category_id, :name, :slug, :position)`, s)
	if isForeignKeyViolation(err) {
		return models.Subcategory{}, ErrNotFound
	}
	return s, err
}

func (r *PostgresTaxonomyRepository) UpdateSubcategory(ctx context.Context, s models.Subcategory) (models.Subcategory, error) {
	err := r.namedExec(ctx, `UPDATE subcategories SET category_id = :category_id, name = :name, slug = :slug,
		position = :position WHERE id = :id`, s)
	if isForeignKeyViolation(err) {
		return models.Subcategory{}, ErrNotFound
	}
	return s, err
}

func (r *PostgresTaxonomyRepository) DeleteSubcategory(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "subcategories", id)
}

// namedExec runs a write and maps "no row touched" to ErrNotFound and slug clashes to ErrDuplicatedValueUnique.
func (r *PostgresTaxonomyRepository) namedExec(ctx context.Context, query string, arg any) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.NamedExecContext(ctx, query, arg)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatedValueUnique
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// table is always one of the package's own constants.
func (r *PostgresTaxonomyRepository) deleteByID(ctx context.Context, table, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
