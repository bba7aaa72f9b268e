package repo

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

type InMemorySlideRepository struct {
	mu     sync.RWMutex
	slides []models.Slide
}

func NewInMemorySlideRepository() *InMemorySlideRepository {
	return &InMemorySlideRepository{slides: []models.Slide{}}
}

func (r *InMemorySlideRepository) ListActive(_ context.Context) ([]models.Slide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := []models.Slide{}
	for _, s := range r.slides {
		if s.Active {
			active = append(active, s)
		}
	}
	sortSlides(active)
	return active, nil
}

func (r *InMemorySlideRepository) ListAll(_ context.Context) ([]models.Slide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := slices.Clone(r.slides)
	sortSlides(all)
	return all, nil
}

func (r *InMemorySlideRepository) Create(_ context.Context, s models.Slide) (models.Slide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = uuid.NewString()
	r.slides = append(r.slides, s)
	return s, nil
}

func (r *InMemorySlideRepository) Update(_ context.Context, s models.Slide) (models.Slide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.slides {
		if r.slides[i].ID == s.ID {
			r.slides[i] = s
			return s, nil
		}
	}
	return models.Slide{}, ErrNotFound
}

func (r *InMemorySlideRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.slides, func(s models.Slide) bool { return s.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	r.slides = slices.Delete(r.slides, idx, idx+1)
	return nil
}

func (r *InMemorySlideRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slides = []models.Slide{}
}

func sortSlides(s []models.Slide) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Position < s[j].Position })
}
