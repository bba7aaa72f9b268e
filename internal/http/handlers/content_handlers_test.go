package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/furniture-storefront/internal/http/handlers"
	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

func TestTaxonomyHandlers(t *testing.T) {
	t.Cleanup(clearCatalog)
	r := newRouter()

	w := do(t, r, http.MethodPost, "/admin/groups", adminToken, handlers.GroupRequest{Name: "Bedroom", Slug: "bedroom"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for group, got %d", w.Code)
	}
	group := decode[models.NavGroup](t, w)

	w = do(t, r, http.MethodPost, "/admin/categories", adminToken, handlers.CategoryRequest{GroupID: &group.ID, Name: "Beds", Slug: "beds"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for category, got %d", w.Code)
	}
	beds := decode[models.Category](t, w)

	w = do(t, r, http.MethodPost, "/admin/subcategories", adminToken, handlers.SubcategoryRequest{CategoryID: beds.ID, Name: "Bunk", Slug: "bunk"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created for subcategory, got %d", w.Code)
	}

	t.Run("Tree nests the new entries", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/taxonomy", "", nil)
		tree := decode[models.Taxonomy](t, w)
		if len(tree.Groups) != 1 || len(tree.Groups[0].Categories) != 1 {
			t.Fatalf("unexpected tree %+v", tree)
		}
		if subs := tree.Groups[0].Categories[0].Subcategories; len(subs) != 1 || subs[0].Slug != "bunk" {
			t.Errorf("expected the bunk subcategory, got %+v", subs)
		}
	})

	t.Run("Category by slug", func(t *testing.T) {
		w := do(t, r, http.MethodGet, "/categories/beds", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		if node := decode[models.CategoryNode](t, w); len(node.Subcategories) != 1 {
			t.Errorf("expected one subcategory, got %d", len(node.Subcategories))
		}
		if w := do(t, r, http.MethodGet, "/categories/chairs", "", nil); w.Code != http.StatusNotFound {
			t.Errorf("expected 404 for unknown category, got %d", w.Code)
		}
	})

	t.Run("Duplicate slug conflicts", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/admin/categories", adminToken, handlers.CategoryRequest{Name: "Beds again", Slug: "beds"})
		if w.Code != http.StatusConflict {
			t.Errorf("expected 409 Conflict, got %d", w.Code)
		}
	})

	t.Run("Invalid slug is rejected", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/admin/groups", adminToken, handlers.GroupRequest{Name: "Outdoor", Slug: "out door"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})

	t.Run("Subcategory of unknown category", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/admin/subcategories", adminToken, handlers.SubcategoryRequest{CategoryID: uuid.NewString(), Name: "X", Slug: "x"})
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 Not Found, got %d", w.Code)
		}
	})

	t.Run("Deleting the group ungroups its categories", func(t *testing.T) {
		w := do(t, r, http.MethodDelete, "/admin/groups/"+group.ID, adminToken, nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204 No Content, got %d", w.Code)
		}
		tree := decode[models.Taxonomy](t, do(t, r, http.MethodGet, "/taxonomy", "", nil))
		if len(tree.Groups) != 0 || len(tree.Ungrouped) != 1 {
			t.Errorf("expected beds to move to ungrouped, got %+v", tree)
		}
	})
}

func TestSlideHandlers(t *testing.T) {
	t.Cleanup(slideRepo.Clear)
	r := newRouter()
	inactive := false

	first := decode[models.Slide](t, do(t, r, http.MethodPost, "/admin/slides", adminToken,
		handlers.SlideRequest{Title: "Summer", ImageURL: "https://cdn.test/summer.jpg", Position: 2}))
	do(t, r, http.MethodPost, "/admin/slides", adminToken,
		handlers.SlideRequest{Title: "Winter", ImageURL: "https://cdn.test/winter.jpg", Position: 1, Active: &inactive})
	do(t, r, http.MethodPost, "/admin/slides", adminToken,
		handlers.SlideRequest{Title: "Spring", ImageURL: "https://cdn.test/spring.jpg", Position: 0})

	t.Run("Public list shows active slides by position", func(t *testing.T) {
		slides := decode[[]models.Slide](t, do(t, r, http.MethodGet, "/slides", "", nil))
		if len(slides) != 2 || slides[0].Title != "Spring" || slides[1].Title != "Summer" {
			t.Errorf("unexpected slides %+v", slides)
		}
	})

	t.Run("Admin list includes inactive slides", func(t *testing.T) {
		slides := decode[[]models.Slide](t, do(t, r, http.MethodGet, "/admin/slides", adminToken, nil))
		if len(slides) != 3 {
			t.Errorf("expected 3 slides, got %d", len(slides))
		}
	})

	t.Run("Title and image are required", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/admin/slides", adminToken, handlers.SlideRequest{})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 Bad Request, got %d", w.Code)
		}
		if resp := decode[handlers.ValidationErrorsResponse](t, w); len(resp.Errors) != 2 {
			t.Errorf("expected 2 validation errors, got %+v", resp.Errors)
		}
	})

	t.Run("Update and delete", func(t *testing.T) {
		w := do(t, r, http.MethodPut, "/admin/slides/"+first.ID, adminToken,
			handlers.SlideRequest{Title: "Late summer", ImageURL: first.ImageURL, Position: 2})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		if w := do(t, r, http.MethodDelete, "/admin/slides/"+first.ID, adminToken, nil); w.Code != http.StatusNoContent {
			t.Errorf("expected 204 No Content, got %d", w.Code)
		}
		if w := do(t, r, http.MethodPut, "/admin/slides/"+first.ID, adminToken,
			handlers.SlideRequest{Title: "Gone", ImageURL: first.ImageURL}); w.Code != http.StatusNotFound {
			t.Errorf("expected 404 after delete, got %d", w.Code)
		}
	})
}

func TestTranslationHandlers(t *testing.T) {
	t.Cleanup(translationRepo.Clear)
	r := newRouter()

	w := do(t, r, http.MethodPut, "/admin/translations/pt-BR/cart.title", adminToken, handlers.TranslationRequest{Value: "Carrinho"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	strs := decode[map[string]string](t, do(t, r, http.MethodGet, "/translations/pt-BR", "", nil))
	if strs["cart.title"] != "Carrinho" {
		t.Errorf("expected the stored string, got %v", strs)
	}

	if w := do(t, r, http.MethodGet, "/translations/english", "", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed locale, got %d", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/admin/translations/pt-BR/cart.title", adminToken, nil); w.Code != http.StatusNoContent {
		t.Errorf("expected 204 No Content, got %d", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/admin/translations/pt-BR/cart.title", adminToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}
