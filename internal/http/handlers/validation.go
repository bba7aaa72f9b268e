package handlers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

const maxGalleryImages = 12

var (
	productSlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// taxonomySlugPattern also guards the category listing filter.
	taxonomySlugPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	localePattern       = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// normalizeProduct fills the slug and status defaults in place.
func normalizeProduct(p *ProductRequest) {
	p.Name = strings.TrimSpace(p.Name)
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = slugify(p.Name)
	}
	if p.Status == "" {
		p.Status = string(models.StatusDraft)
	}
}

func validateProduct(p ProductRequest) []ValidationError {
	errs := []ValidationError{}
	if p.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Description: "Name is required"})
	}
	if !productSlugPattern.MatchString(p.Slug) {
		errs = append(errs, ValidationError{Field: "slug", Description: "Slug must be lowercase letters, digits and single hyphens"})
	}
	if p.Price.IsNegative() {
		errs = append(errs, ValidationError{Field: "price", Description: "Price cannot be negative"})
	}
	if p.SalePrice.Valid {
		if p.SalePrice.Decimal.IsNegative() {
			errs = append(errs, ValidationError{Field: "sale_price", Description: "Sale price cannot be negative"})
		} else if !p.SalePrice.Decimal.LessThan(p.Price) {
			errs = append(errs, ValidationError{Field: "sale_price", Description: "Sale price must be lower than price"})
		}
	}
	if p.StockQuantity < 0 {
		errs = append(errs, ValidationError{Field: "stock_quantity", Description: "Stock quantity cannot be negative"})
	}
	if !models.ProductStatus(p.Status).Valid() {
		errs = append(errs, ValidationError{Field: "status", Description: "Status must be active, inactive or draft"})
	}
	if len(p.Gallery) > maxGalleryImages {
		errs = append(errs, ValidationError{Field: "gallery", Description: fmt.Sprintf("At most %d gallery images", maxGalleryImages)})
	}
	if p.CategoryID != nil && *p.CategoryID != "" && !validID(*p.CategoryID) {
		errs = append(errs, ValidationError{Field: "category_id", Description: "Invalid category id"})
	}
	if p.SubcategoryID != nil && *p.SubcategoryID != "" && !validID(*p.SubcategoryID) {
		errs = append(errs, ValidationError{Field: "subcategory_id", Description: "Invalid subcategory id"})
	}
	if p.Weight != nil && *p.Weight < 0 {
		errs = append(errs, ValidationError{Field: "weight", Description: "Weight cannot be negative"})
	}
	if d := p.Dimensions; d != nil && (d.Length < 0 || d.Width < 0 || d.Height < 0) {
		errs = append(errs, ValidationError{Field: "dimensions", Description: "Dimensions cannot be negative"})
	}
	return errs
}

func validateTaxonomyEntry(name, slug string) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(name) == "" {
		errs = append(errs, ValidationError{Field: "name", Description: "Name is required"})
	}
	if !taxonomySlugPattern.MatchString(slug) {
		errs = append(errs, ValidationError{Field: "slug", Description: "Slug may only contain letters, digits and hyphens"})
	}
	return errs
}

// slugify lowercases s and joins its alphanumeric runs with single hyphens.
func slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

func decimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
