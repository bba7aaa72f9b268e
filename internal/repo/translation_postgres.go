package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

type PostgresTranslationRepository struct {
	db *sqlx.DB
}

func NewPostgresTranslationRepository(db *sqlx.DB) *PostgresTranslationRepository {
	return &PostgresTranslationRepository{db: db}
}

func (r *PostgresTranslationRepository) ListByLocale(ctx context.Context, locale string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rows []models.Translation
	err := r.db.SelectContext(ctx, &rows, `SELECT locale, key, value FROM translations WHERE locale = $1`, locale)
	if err != nil {
		return nil, fmt.Errorf("listing translations: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, t := range rows {
		out[t.Key] = t.Value
	}
	return out, nil
}

func (r *PostgresTranslationRepository) Upsert(ctx context.Context, locale, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO translations (locale, key, value) VALUES (:locale, :key, :value)
		ON CONFLICT (locale, key) DO UPDATE SET value = EXCLUDED.value`,
		models.Translation{Locale: locale, Key: key, Value: value})
	if err != nil {
		return fmt.Errorf("upserting translation: %w", err)
	}
	return nil
}

func (r *PostgresTranslationRepository) Delete(ctx context.Context, locale, key string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM translations WHERE locale = $1 AND key = $2`, locale, key)
	if err != nil {
		return fmt.Errorf("deleting translation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
