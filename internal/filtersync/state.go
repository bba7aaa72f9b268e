// Package filtersync keeps a catalog filter state, its URL query string and
// the product fetches consistent on the client side.
package filtersync

import (
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

const maxSearchLength = 100

var categorySlugPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// Bounds are the whole-number price limits of the catalog, as served by /products/price-range.
type Bounds struct {
	Min int
	Max int
}

// FilterState is the full set of listing filters. Categories are kept sorted and unique.
type FilterState struct {
	Categories []string
	MinPrice   int
	MaxPrice   int
	InStock    bool
	Featured   bool
	Page       int
	Sort       models.ProductSort
	Search     string
}

// Defaults is the state with nothing filtered: the price spans the whole catalog.
func Defaults(b Bounds) FilterState {
	return FilterState{
		MinPrice: b.Min,
		MaxPrice: b.Max,
		Page:     1,
		Sort:     models.DefaultSort,
	}
}

func (s FilterState) Equal(o FilterState) bool {
	return slices.Equal(s.Categories, o.Categories) &&
		s.MinPrice == o.MinPrice &&
		s.MaxPrice == o.MaxPrice &&
		s.InStock == o.InStock &&
		s.Featured == o.Featured &&
		s.Page == o.Page &&
		s.Sort == o.Sort &&
		s.Search == o.Search
}

func (s FilterState) clone() FilterState {
	s.Categories = slices.Clone(s.Categories)
	return s
}

// Clamp moves the price range inside b and keeps min below max whenever the bounds allow it.
func (s FilterState) Clamp(b Bounds) FilterState {
	lo := min(max(s.MinPrice, b.Min), b.Max)
	hi := min(max(s.MaxPrice, b.Min), b.Max)
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		switch {
		case hi < b.Max:
			hi++
		case lo > b.Min:
			lo--
		}
	}
	s.MinPrice, s.MaxPrice = lo, hi
	if s.Page < 1 {
		s.Page = 1
	}
	s.Sort = models.ParseProductSort(string(s.Sort))
	return s
}

// Encode writes the dimensions that differ from d. The defaults encode to an empty query.
func Encode(s FilterState, d FilterState) url.Values {
	v := url.Values{}
	if len(s.Categories) > 0 {
		v.Set("category", strings.Join(s.Categories, ","))
	}
	if s.MinPrice != d.MinPrice {
		v.Set("minPrice", strconv.Itoa(s.MinPrice))
	}
	if s.MaxPrice != d.MaxPrice {
		v.Set("maxPrice", strconv.Itoa(s.MaxPrice))
	}
	if s.InStock {
		v.Set("inStock", "true")
	}
	if s.Featured {
		v.Set("featured", "true")
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	if s.Sort != d.Sort {
		v.Set("sort", string(s.Sort))
	}
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	return v
}

// Decode reads a query string written by Encode. Missing or malformed values take the default.
func Decode(v url.Values, d FilterState) FilterState {
	s := d.clone()
	s.Categories = parseCategories(v.Get("category"))
	if n, err := strconv.Atoi(v.Get("minPrice")); err == nil {
		s.MinPrice = n
	}
	if n, err := strconv.Atoi(v.Get("maxPrice")); err == nil {
		s.MaxPrice = n
	}
	s.InStock = v.Get("inStock") == "true"
	s.Featured = v.Get("featured") == "true"
	if n, err := strconv.Atoi(v.Get("page")); err == nil && n > 1 {
		s.Page = n
	}
	if raw := v.Get("sort"); raw != "" {
		s.Sort = models.ParseProductSort(raw)
	}
	s.Search = normalizeSearch(v.Get("search"))
	return s
}

// Query is the full request for the listing endpoint. Unlike Encode it always sends both price
// bounds, since the server ignores a one-sided range.
func (s FilterState) Query(limit int) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(max(s.Page, 1)))
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	v.Set("sort", string(models.ParseProductSort(string(s.Sort))))
	v.Set("minPrice", strconv.Itoa(s.MinPrice))
	v.Set("maxPrice", strconv.Itoa(s.MaxPrice))
	if len(s.Categories) > 0 {
		v.Set("category", strings.Join(s.Categories, ","))
	}
	if s.InStock {
		v.Set("inStock", "true")
	}
	if s.Featured {
		v.Set("featured", "true")
	}
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	return v
}

func parseCategories(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if categorySlugPattern.MatchString(part) {
			out = append(out, part)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func normalizeSearch(s string) string {
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxSearchLength {
		s = strings.TrimSpace(string(runes[:maxSearchLength]))
	}
	return s
}

// toggle adds slug to the sorted set, or removes it when present.
func toggle(set []string, slug string) []string {
	i, found := slices.BinarySearch(set, slug)
	if found {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return slices.Insert(slices.Clone(set), i, slug)
}
