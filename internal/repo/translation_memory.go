package repo

import (
	"context"
	"maps"
	"sync"
)

type InMemoryTranslationRepository struct {
	mu      sync.RWMutex
	locales map[string]map[string]string
}

func NewInMemoryTranslationRepository() *InMemoryTranslationRepository {
	return &InMemoryTranslationRepository{locales: map[string]map[string]string{}}
}

func (r *InMemoryTranslationRepository) ListByLocale(_ context.Context, locale string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := map[string]string{}
	maps.Copy(out, r.locales[locale])
	return out, nil
}

func (r *InMemoryTranslationRepository) Upsert(_ context.Context, locale, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.locales[locale] == nil {
		r.locales[locale] = map[string]string{}
	}
	r.locales[locale][key] = value
	return nil
}

func (r *InMemoryTranslationRepository) Delete(_ context.Context, locale, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.locales[locale][key]; !ok {
		return ErrNotFound
	}
	delete(r.locales[locale], key)
	return nil
}

func (r *InMemoryTranslationRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locales = map[string]map[string]string{}
}
