package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/furniture-storefront/internal/repo"
)

// GetProductByIDHandler godoc
// @Summary Get any product by ID
// @Tags admin-products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	product, err := productRepo.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, product, cacheHeaders(adminCacheControl))
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Status defaults to draft and the slug is derived from the name when empty.
// @Tags admin-products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	normalizeProduct(&req)
	if errs := validateProduct(req); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	created, err := productRepo.Create(r.Context(), req.toProduct())
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		writeError(w, http.StatusConflict, "a product with this slug already exists")
		return
	}
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

// UpdateProductHandler godoc
// @Summary Replace a product
// @Tags admin-products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} models.Product
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	normalizeProduct(&req)
	if errs := validateProduct(req); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	product := req.toProduct()
	product.ID = id
	updated, err := productRepo.Update(r.Context(), product)
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repo.ErrDuplicatedValueUnique):
		writeError(w, http.StatusConflict, "a product with this slug already exists")
	case err != nil:
		storeFailure(w, r, err)
	default:
		respond(w, http.StatusOK, updated)
	}
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags admin-products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	err := productRepo.Delete(r.Context(), id)
	if errors.Is(err, repo.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdjustStockHandler godoc
// @Summary Adjust stock quantity
// @Description Adds delta to the stock. The result may not become negative.
// @Tags admin-products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param adjustment body QuantityAdjustmentRequest true "Stock delta"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/products/{id}/stock [post]
func AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req QuantityAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil || req.Delta == 0 {
		writeError(w, http.StatusBadRequest, "delta must be a non-zero integer")
		return
	}

	product, err := productRepo.AdjustStock(r.Context(), id, req.Delta)
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repo.ErrInvalidQuantityChange):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		storeFailure(w, r, err)
	default:
		respond(w, http.StatusOK, product)
	}
}

func productIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validID(id) {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return "", false
	}
	return id, true
}

