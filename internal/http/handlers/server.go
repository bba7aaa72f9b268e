package handlers

import (
	"go.uber.org/zap"

	"github.com/rogerio-castellano/furniture-storefront/internal/auth"
	"github.com/rogerio-castellano/furniture-storefront/internal/repo"
	"github.com/rogerio-castellano/furniture-storefront/internal/storage"
)

const defaultMaxUploadSize = 5 << 20

var (
	productRepo     repo.ProductRepository
	taxonomyRepo    repo.TaxonomyRepository
	slideRepo       repo.SlideRepository
	translationRepo repo.TranslationRepository
	metricsRepo     repo.MetricsRepository
	userRepo        repo.UserRepository

	refreshStore  auth.RefreshStore
	objectStore   storage.ObjectStore
	maxUploadSize int64 = defaultMaxUploadSize

	logger = zap.NewNop()
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetTaxonomyRepo(r repo.TaxonomyRepository) {
	taxonomyRepo = r
}

func SetSlideRepo(r repo.SlideRepository) {
	slideRepo = r
}

func SetTranslationRepo(r repo.TranslationRepository) {
	translationRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetRefreshStore(s auth.RefreshStore) {
	refreshStore = s
}

func SetObjectStore(s storage.ObjectStore) {
	objectStore = s
}

// SetMaxUploadSize caps upload bodies; non-positive values restore the 5 MiB default.
func SetMaxUploadSize(n int64) {
	if n <= 0 {
		n = defaultMaxUploadSize
	}
	maxUploadSize = n
}

func SetLogger(l *zap.Logger) {
	logger = l
}
