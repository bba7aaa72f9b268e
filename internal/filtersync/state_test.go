package filtersync

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

var testBounds = Bounds{Min: 50, Max: 2400}

func TestEncodeOmitsDefaults(t *testing.T) {
	d := Defaults(testBounds)
	assert.Empty(t, Encode(d, d).Encode())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := Defaults(testBounds)
	states := []FilterState{
		d,
		{Categories: []string{"beds", "sofas"}, MinPrice: 100, MaxPrice: 900, Page: 3, Sort: models.SortPriceDesc},
		{MinPrice: 50, MaxPrice: 2400, InStock: true, Featured: true, Page: 1, Sort: models.SortName, Search: "100% oak"},
		{Categories: []string{"Outdoor-2024"}, MinPrice: 60, MaxPrice: 2400, Page: 2, Sort: models.SortFeatured},
	}
	for _, s := range states {
		encoded := Encode(s, d).Encode()
		values, err := url.ParseQuery(encoded)
		assert.NoError(t, err)
		assert.True(t, Decode(values, d).Equal(s), "round trip of %q", encoded)
	}
}

func TestEncodeWritesOnlyChangedDimensions(t *testing.T) {
	d := Defaults(testBounds)
	s := d
	s.MaxPrice = 800
	s.Categories = []string{"chairs", "tables"}

	v := Encode(s, d)
	assert.Equal(t, "chairs,tables", v.Get("category"))
	assert.Equal(t, "800", v.Get("maxPrice"))
	assert.False(t, v.Has("minPrice"))
	assert.False(t, v.Has("page"))
	assert.False(t, v.Has("sort"))
}

func TestDecodeMalformedValuesFallBack(t *testing.T) {
	d := Defaults(testBounds)
	v := url.Values{
		"category": {"sofas,bad slug,,sofas,beds"},
		"minPrice": {"cheap"},
		"page":     {"-2"},
		"sort":     {"bogus"},
		"inStock":  {"1"},
		"search":   {"  lamp  "},
	}
	got := Decode(v, d)
	assert.Equal(t, []string{"beds", "sofas"}, got.Categories)
	assert.Equal(t, d.MinPrice, got.MinPrice)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, models.SortName, got.Sort)
	assert.False(t, got.InStock)
	assert.Equal(t, "lamp", got.Search)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name         string
		lo, hi       int
		wantLo, want int
	}{
		{"Inside the bounds", 100, 900, 100, 900},
		{"Below and above", -10, 99999, 50, 2400},
		{"Swapped", 900, 100, 100, 900},
		{"Equal values widen upward", 300, 300, 300, 301},
		{"Equal at the top widen downward", 5000, 2400, 2399, 2400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FilterState{MinPrice: tt.lo, MaxPrice: tt.hi}.Clamp(testBounds)
			assert.Equal(t, tt.wantLo, s.MinPrice)
			assert.Equal(t, tt.want, s.MaxPrice)
			assert.Equal(t, 1, s.Page)
		})
	}
}

func TestQueryAlwaysSendsBothPriceBounds(t *testing.T) {
	q := Defaults(testBounds).Query(24)
	assert.Equal(t, "50", q.Get("minPrice"))
	assert.Equal(t, "2400", q.Get("maxPrice"))
	assert.Equal(t, "24", q.Get("limit"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "name", q.Get("sort"))
}

func TestToggle(t *testing.T) {
	set := toggle(nil, "sofas")
	set = toggle(set, "beds")
	assert.Equal(t, []string{"beds", "sofas"}, set)
	assert.Equal(t, []string{"beds"}, toggle(set, "sofas"))
}
