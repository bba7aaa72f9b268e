package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

const slideColumns = `id, title, subtitle, image_url, link_url, position, active`

type PostgresSlideRepository struct {
	db *sqlx.DB
}

func NewPostgresSlideRepository(db *sqlx.DB) *PostgresSlideRepository {
	return &PostgresSlideRepository{db: db}
}

func (r *PostgresSlideRepository) ListActive(ctx context.Context) ([]models.Slide, error) {
	return r.list(ctx, `SELECT `+slideColumns+` FROM slides WHERE active = TRUE ORDER BY position, id`)
}

func (r *PostgresSlideRepository) ListAll(ctx context.Context) ([]models.Slide, error) {
	return r.list(ctx, `SELECT `+slideColumns+` FROM slides ORDER BY position, id`)
}

func (r *PostgresSlideRepository) list(ctx context.Context, query string) ([]models.Slide, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	slides := []models.Slide{}
	if err := r.db.SelectContext(ctx, &slides, query); err != nil {
		return nil, fmt.Errorf("listing slides: %w", err)
	}
	return slides, nil
}

func (r *PostgresSlideRepository) Create(ctx context.Context, s models.Slide) (models.Slide, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	s.ID = uuid.NewString()
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO slides (`+slideColumns+`)
		VALUES (:id, :title, :subtitle, :image_url, :link_url, :position, :active)`, s)
	if err != nil {
		return models.Slide{}, fmt.Errorf("inserting slide: %w", err)
	}
	return s, nil
}

func (r *PostgresSlideRepository) Update(ctx context.Context, s models.Slide) (models.Slide, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.NamedExecContext(ctx, `UPDATE slides SET title = :title, subtitle = :subtitle,
		image_url = :image_url, link_url = :link_url, position = :position, active = :active WHERE id = :id`, s)
	if err != nil {
		return models.Slide{}, fmt.Errorf("updating slide: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Slide{}, ErrNotFound
	}
	return s, nil
}

func (r *PostgresSlideRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM slides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting slide: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
