package models

// ProductSort is the allow-listed ordering of a product listing.
type ProductSort string

const (
	SortName      ProductSort = "name"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortCreatedAt ProductSort = "created_at"
	SortFeatured  ProductSort = "featured"
)

// DefaultSort is used whenever the requested ordering is missing or unknown.
const DefaultSort = SortName

// ParseProductSort maps raw input onto the allow-list, falling back to DefaultSort.
func ParseProductSort(s string) ProductSort {
	switch ProductSort(s) {
	case SortName, SortPriceAsc, SortPriceDesc, SortCreatedAt, SortFeatured:
		return ProductSort(s)
	}
	return DefaultSort
}
