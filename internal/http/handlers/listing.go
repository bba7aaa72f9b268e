package handlers

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/furniture-storefront/internal/auth"
	"github.com/rogerio-castellano/furniture-storefront/internal/models"
	"github.com/rogerio-castellano/furniture-storefront/internal/repo"
)

const (
	DefaultPageLimit = 12
	MaxPageLimit     = 50
	maxSearchLength  = 100
	maxOpaqueIDLen   = 64
)

// MaxPage keeps (page-1)*limit within int for every accepted limit.
const MaxPage = math.MaxInt / MaxPageLimit

// parseListingQuery turns untrusted query parameters into a bounded filter.
// Malformed values fall back to defaults; nothing here is an error.
func parseListingQuery(q url.Values, admin bool) repo.ProductFilter {
	pf := repo.ProductFilter{
		Page:          parsePage(q.Get("page")),
		Limit:         parseLimit(q.Get("limit")),
		Search:        parseSearch(q.Get("search")),
		CategorySlugs: parseCategories(q.Get("category")),
		SubcategoryID: parseOpaqueID(q.Get("subcategory")),
		GroupID:       parseOpaqueID(q.Get("groupId")),
		Price:         parsePriceBounds(q.Get("minPrice"), q.Get("maxPrice")),
		InStock:       q.Get("inStock") == "true",
		Featured:      q.Get("featured") == "true",
		Sort:          models.ParseProductSort(q.Get("sort")),
	}

	if admin {
		pf.Statuses = parseStatuses(q.Get("status"))
	} else {
		pf.Statuses = []models.ProductStatus{models.StatusActive}
	}
	return pf
}

func parsePage(s string) int {
	page, err := strconv.Atoi(s)
	if err != nil || page < 1 {
		return 1
	}
	return min(page, MaxPage)
}

func parseLimit(s string) int {
	limit, err := strconv.Atoi(s)
	if err != nil {
		return DefaultPageLimit
	}
	return min(max(limit, 1), MaxPageLimit)
}

func parseSearch(s string) string {
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxSearchLength {
		s = strings.TrimSpace(string(runes[:maxSearchLength]))
	}
	return s
}

// parseCategories keeps the comma-separated slugs that pass the slug pattern.
func parseCategories(s string) []string {
	if s == "" {
		return nil
	}
	seen := map[string]bool{}
	var slugs []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if !taxonomySlugPattern.MatchString(part) || seen[part] {
			continue
		}
		seen[part] = true
		slugs = append(slugs, part)
	}
	return slugs
}

func parseOpaqueID(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxOpaqueIDLen {
		return ""
	}
	return s
}

// parsePriceBounds applies the price filter only when min >= 0 and max > min.
func parsePriceBounds(minStr, maxStr string) *repo.PriceBounds {
	lo, err := strconv.Atoi(minStr)
	if err != nil {
		return nil
	}
	hi, err := strconv.Atoi(maxStr)
	if err != nil {
		return nil
	}
	if lo < 0 || hi <= lo {
		return nil
	}
	return &repo.PriceBounds{Min: lo, Max: hi}
}

// parseStatuses reads a comma-separated status list. Empty or fully invalid input means every status.
func parseStatuses(s string) []models.ProductStatus {
	var out []models.ProductStatus
	for _, part := range strings.Split(s, ",") {
		st := models.ProductStatus(strings.TrimSpace(part))
		if st.Valid() {
			out = append(out, st)
		}
	}
	return out
}

// GetProductsHandler godoc
// @Summary List products with filters, sorting and pagination
// @Description Public callers only see active products. admin=true requires an admin token and unlocks the status filter.
// @Tags products
// @Produce json
// @Param page query int false "Page number (>= 1)"
// @Param limit query int false "Page size (1-50, default 12)"
// @Param search query string false "Text contained in name or description"
// @Param category query string false "Comma-separated category slugs"
// @Param subcategory query string false "Subcategory id"
// @Param groupId query string false "Navigation group id"
// @Param minPrice query int false "Lowest effective price"
// @Param maxPrice query int false "Highest effective price"
// @Param inStock query string false "Only products in stock when 'true'"
// @Param featured query string false "Only featured products when 'true'"
// @Param sort query string false "name, price_asc, price_desc, created_at or featured"
// @Param status query string false "Comma-separated statuses (admin only)"
// @Param admin query string false "Admin scope when 'true'"
// @Success 200 {object} models.ProductPage
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	admin := q.Get("admin") == "true"
	if admin {
		id, ok := auth.IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !id.IsAdmin() {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
	}

	pf := parseListingQuery(q, admin)
	products, total, err := productRepo.Filter(r.Context(), pf)
	if err != nil {
		storeFailure(w, r, err)
		return
	}

	cacheControl := publicCacheControl
	if admin {
		cacheControl = adminCacheControl
	}
	respond(w, http.StatusOK, models.ProductPage{
		Products:   products,
		Pagination: models.NewPagination(pf.Page, pf.Limit, total),
	}, cacheHeaders(cacheControl))
}

// GetPriceRangeHandler godoc
// @Summary Whole-number bounds of the effective prices of active products
// @Tags products
// @Produce json
// @Success 200 {object} models.PriceRange
// @Failure 500 {object} ErrorResponse
// @Router /products/price-range [get]
func GetPriceRangeHandler(w http.ResponseWriter, r *http.Request) {
	pr, err := productRepo.PriceRange(r.Context())
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, pr, cacheHeaders(publicCacheControl))
}

// GetProductBySlugHandler godoc
// @Summary Get an active product by slug
// @Tags products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} models.Product
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{slug} [get]
func GetProductBySlugHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !productSlugPattern.MatchString(slug) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	product, err := productRepo.GetBySlug(r.Context(), slug)
	if errors.Is(err, repo.ErrProductNotFound) || (err == nil && product.Status != models.StatusActive) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, product, cacheHeaders(publicCacheControl))
}
