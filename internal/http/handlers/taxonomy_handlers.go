package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
	"github.com/rogerio-castellano/furniture-storefront/internal/repo"
)

// GetTaxonomyHandler godoc
// @Summary Navigation tree of groups, categories and subcategories
// @Tags taxonomy
// @Produce json
// @Success 200 {object} models.Taxonomy
// @Failure 500 {object} ErrorResponse
// @Router /taxonomy [get]
func GetTaxonomyHandler(w http.ResponseWriter, r *http.Request) {
	tree, err := taxonomyRepo.Tree(r.Context())
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, tree, cacheHeaders(publicCacheControl))
}

// GetCategoryHandler godoc
// @Summary Category with its subcategories
// @Tags taxonomy
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} models.CategoryNode
// @Failure 404 {object} ErrorResponse
// @Router /categories/{slug} [get]
func GetCategoryHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !taxonomySlugPattern.MatchString(slug) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	node, err := taxonomyRepo.GetCategoryBySlug(r.Context(), slug)
	if errors.Is(err, repo.ErrNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, node, cacheHeaders(publicCacheControl))
}

// CreateGroupHandler godoc
// @Summary Create a navigation group
// @Tags admin-taxonomy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param group body GroupRequest true "Group"
// @Success 201 {object} models.NavGroup
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/groups [post]
func CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	saveGroup(w, r, "")
}

// UpdateGroupHandler godoc
// @Summary Update a navigation group
// @Tags admin-taxonomy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param group body GroupRequest true "Group"
// @Success 200 {object} models.NavGroup
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/groups/{id} [put]
func UpdateGroupHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	saveGroup(w, r, id)
}

func saveGroup(w http.ResponseWriter, r *http.Request, id string) {
	var req GroupRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	req.Name, req.Slug = strings.TrimSpace(req.Name), strings.TrimSpace(req.Slug)
	if errs := validateTaxonomyEntry(req.Name, req.Slug); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	g := models.NavGroup{ID: id, Name: req.Name, Slug: req.Slug, Position: req.Position}
	var err error
	if id == "" {
		g, err = taxonomyRepo.CreateGroup(r.Context(), g)
	} else {
		g, err = taxonomyRepo.UpdateGroup(r.Context(), g)
	}
	writeSaved(w, r, g, id == "", err)
}

// DeleteGroupHandler godoc
// @Summary Delete a navigation group; its categories become ungrouped
// @Tags admin-taxonomy
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /admin/groups/{id} [delete]
func DeleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	deleteEntry(w, r, taxonomyRepo.DeleteGroup)
}

// CreateCategoryHandler godoc
// @Summary Create a category
// @Tags admin-taxonomy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/categories [post]
func CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	saveCategory(w, r, "")
}

// UpdateCategoryHandler godoc
// @Summary Update a category
// @Tags admin-taxonomy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param category body CategoryRequest true "Category"
// @Success 200 {object} models.Category
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/categories/{id} [put]
func UpdateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	saveCategory(w, r, id)
}

func saveCategory(w http.ResponseWriter, r *http.Request, id string) {
	var req CategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	req.Name, req.Slug = strings.TrimSpace(req.Name), strings.TrimSpace(req.Slug)
	errs := validateTaxonomyEntry(req.Name, req.Slug)
	groupID := emptyToNil(req.GroupID)
	if groupID != nil && !validID(*groupID) {
		errs = append(errs, ValidationError{Field: "group_id", Description: "Invalid group id"})
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	c := models.Category{
		ID:          id,
		GroupID:     groupID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Position:    req.Position,
	}
	var err error
	if id == "" {
		c, err = taxonomyRepo.CreateCategory(r.Context(), c)
	} else {
		c, err = taxonomyRepo.UpdateCategory(r.Context(), c)
	}
	writeSaved(w, r, c, id == "", err)
}

// DeleteCategoryHandler godoc
// @Summary Delete a category and its subcategories
// @Tags admin-taxonomy
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /admin/categories/{id} [delete]
func DeleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	deleteEntry(w, r, taxonomyRepo.DeleteCategory)
}

// CreateSubcategoryHandler godoc
// @Summary Create a subcategory
// @Tags admin-taxonomy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subcategory body SubcategoryRequest true "Subcategory"
// @Success 201 {object} models.Subcategory
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 404 {object} ErrorResponse "Unknown category"
// @Router /admin/subcategories [post]
func CreateSubcategoryHandler(w http.ResponseWriter, r *http.Request) {
	saveSubcategory(w, r, "")
}

// UpdateSubcategoryHandler godoc
// @Summary Update a subcategory
// @Tags admin-taxonomy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subcategory ID"
// @Param subcategory body SubcategoryRequest true "Subcategory"
// @Success 200 {object} models.Subcategory
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/subcategories/{id} [put]
func UpdateSubcategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	saveSubcategory(w, r, id)
}

func saveSubcategory(w http.ResponseWriter, r *http.Request, id string) {
	var req SubcategoryRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	req.Name, req.Slug = strings.TrimSpace(req.Name), strings.TrimSpace(req.Slug)
	errs := validateTaxonomyEntry(req.Name, req.Slug)
	if !validID(req.CategoryID) {
		errs = append(errs, ValidationError{Field: "category_id", Description: "Invalid category id"})
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	s := models.Subcategory{ID: id, CategoryID: req.CategoryID, Name: req.Name, Slug: req.Slug, Position: req.Position}
	var err error
	if id == "" {
		s, err = taxonomyRepo.CreateSubcategory(r.Context(), s)
	} else {
		s, err = taxonomyRepo.UpdateSubcategory(r.Context(), s)
	}
	writeSaved(w, r, s, id == "", err)
}

// DeleteSubcategoryHandler godoc
// @Summary Delete a subcategory
// @Tags admin-taxonomy
// @Security BearerAuth
// @Param id path string true "Subcategory ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /admin/subcategories/{id} [delete]
func DeleteSubcategoryHandler(w http.ResponseWriter, r *http.Request) {
	deleteEntry(w, r, taxonomyRepo.DeleteSubcategory)
}

// writeSaved maps a create or update outcome onto the response.
func writeSaved(w http.ResponseWriter, r *http.Request, v any, created bool, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrDuplicatedValueUnique):
		writeError(w, http.StatusConflict, "slug already in use")
	case err != nil:
		storeFailure(w, r, err)
	case created:
		respond(w, http.StatusCreated, v)
	default:
		respond(w, http.StatusOK, v)
	}
}

func deleteEntry(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id string) error) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	err := del(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func idParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validID(id) {
		writeError(w, http.StatusBadRequest, "invalid ID")
		return "", false
	}
	return id, true
}
