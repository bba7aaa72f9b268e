package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/furniture-storefront/internal/auth"
	"github.com/rogerio-castellano/furniture-storefront/internal/http/handlers"
	"github.com/rogerio-castellano/furniture-storefront/internal/http/router"
	"github.com/rogerio-castellano/furniture-storefront/internal/models"
	"github.com/rogerio-castellano/furniture-storefront/internal/repo"
	"github.com/rogerio-castellano/furniture-storefront/internal/storage"
)

const adminPassword = "secret-admin"

var (
	productRepo     *repo.InMemoryProductRepository
	taxonomyRepo    *repo.InMemoryTaxonomyRepository
	slideRepo       *repo.InMemorySlideRepository
	translationRepo *repo.InMemoryTranslationRepository
	userRepo        *repo.InMemoryUserRepository
	objectStore     *storage.MemoryStore

	adminUser  models.User
	adminToken string
	userToken  string
)

func TestMain(m *testing.M) {
	if err := setupTestRepos(); err != nil {
		fmt.Fprintf(os.Stderr, "setting up test repositories: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func setupTestRepos() error {
	ctx := context.Background()

	taxonomyRepo = repo.NewInMemoryTaxonomyRepository()
	productRepo = repo.NewInMemoryProductRepository()
	productRepo.SetTaxonomy(taxonomyRepo)
	slideRepo = repo.NewInMemorySlideRepository()
	translationRepo = repo.NewInMemoryTranslationRepository()
	userRepo = repo.NewInMemoryUserRepository()
	objectStore = storage.NewMemoryStore("https://cdn.test")

	handlers.SetProductRepo(productRepo)
	handlers.SetTaxonomyRepo(taxonomyRepo)
	handlers.SetSlideRepo(slideRepo)
	handlers.SetTranslationRepo(translationRepo)
	handlers.SetMetricsRepo(repo.NewInMemoryMetricsRepository(productRepo))
	handlers.SetUserRepo(userRepo)
	handlers.SetRefreshStore(auth.NewMemoryRefreshStore(time.Hour))
	handlers.SetObjectStore(objectStore)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}
	adminUser, err = userRepo.CreateUser(ctx, models.User{Email: "admin@example.com", PasswordHash: string(hash), Role: models.RoleAdmin})
	if err != nil {
		return err
	}
	customer, err := userRepo.CreateUser(ctx, models.User{Email: "customer@example.com", PasswordHash: string(hash), Role: models.RoleUser})
	if err != nil {
		return err
	}

	if adminToken, err = auth.GenerateToken(adminUser); err != nil {
		return err
	}
	userToken, err = auth.GenerateToken(customer)
	return err
}

func newRouter() http.Handler {
	return router.NewRouter(router.Options{})
}

func do(t *testing.T, r http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return v
}

type catalogIDs struct {
	living, sofas, tables, corner string
}

// seedCatalog stores three active products and one draft.
func seedCatalog(t *testing.T) catalogIDs {
	t.Helper()
	ctx := context.Background()
	t.Cleanup(clearCatalog)

	living, _ := taxonomyRepo.CreateGroup(ctx, models.NavGroup{Name: "Living", Slug: "living"})
	sofas, _ := taxonomyRepo.CreateCategory(ctx, models.Category{Name: "Sofas", Slug: "sofas", GroupID: &living.ID})
	tables, _ := taxonomyRepo.CreateCategory(ctx, models.Category{Name: "Tables", Slug: "tables"})
	corner, _ := taxonomyRepo.CreateSubcategory(ctx, models.Subcategory{Name: "Corner", Slug: "corner", CategoryID: sofas.ID})

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []models.Product{
		{Name: "Oslo Sofa", Slug: "oslo-sofa", Price: decimal.NewFromInt(900), StockQuantity: 3,
			Status: models.StatusActive, Featured: true, CategoryID: &sofas.ID, SubcategoryID: &corner.ID, CreatedAt: base},
		{Name: "Bergen Sofa", Slug: "bergen-sofa", Price: decimal.NewFromInt(700),
			SalePrice: decimal.NewNullDecimal(decimal.NewFromInt(450)), Status: models.StatusActive,
			CategoryID: &sofas.ID, CreatedAt: base.Add(time.Hour)},
		{Name: "Oak Table", Slug: "oak-table", Price: decimal.NewFromInt(300), StockQuantity: 10,
			Status: models.StatusActive, CategoryID: &tables.ID, Description: "solid 100% oak", CreatedAt: base.Add(2 * time.Hour)},
		{Name: "Draft Chair", Slug: "draft-chair", Price: decimal.NewFromInt(50), Status: models.StatusDraft, CreatedAt: base},
	}
	for _, p := range seed {
		p.ManageStock = true
		if _, err := productRepo.Create(ctx, p); err != nil {
			t.Fatalf("seeding %s: %v", p.Slug, err)
		}
	}
	return catalogIDs{living: living.ID, sofas: sofas.ID, tables: tables.ID, corner: corner.ID}
}

func clearCatalog() {
	productRepo.Clear()
	taxonomyRepo.Clear()
}

func slugsOf(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Slug
	}
	return out
}

func equalSlugs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
