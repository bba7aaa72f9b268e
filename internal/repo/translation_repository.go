package repo

import (
	"context"
)

// TranslationRepository stores UI strings keyed by locale and message key.
type TranslationRepository interface {
	ListByLocale(ctx context.Context, locale string) (map[string]string, error)
	Upsert(ctx context.Context, locale, key, value string) error
	Delete(ctx context.Context, locale, key string) error
}
