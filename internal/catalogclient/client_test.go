package catalogclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/furniture-storefront/internal/catalogclient"
	"github.com/rogerio-castellano/furniture-storefront/internal/filtersync"
	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

func TestClient(t *testing.T) {
	var (
		mu        sync.Mutex
		lastQuery url.Values
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/products/price-range":
			_, _ = w.Write([]byte(`{"min":50,"max":2400}`))
		case "/products":
			mu.Lock()
			lastQuery = r.URL.Query()
			mu.Unlock()
			if r.URL.Query().Get("sort") == "explode" {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"database error"}`))
				return
			}
			_, _ = w.Write([]byte(`{"products":[{"id":"p1","name":"Oslo Sofa","slug":"oslo-sofa","price":"900"}],"pagination":{"page":1,"limit":12,"total":1,"totalPages":1}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	c := catalogclient.New(srv.URL+"/", nil)

	t.Run("Price range", func(t *testing.T) {
		pr, err := c.PriceRange(context.Background())
		require.NoError(t, err)
		assert.Equal(t, models.PriceRange{Min: 50, Max: 2400}, pr)
	})

	t.Run("Listing forwards the query", func(t *testing.T) {
		q := url.Values{"category": {"sofas"}, "minPrice": {"50"}}
		page, err := c.ListProducts(context.Background(), q)
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		assert.Equal(t, "oslo-sofa", page.Products[0].Slug)
		assert.Equal(t, 1, page.Pagination.Total)
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "sofas", lastQuery.Get("category"))
	})

	t.Run("Error status carries the message", func(t *testing.T) {
		_, err := c.ListProducts(context.Background(), url.Values{"sort": {"explode"}})
		var statusErr *catalogclient.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
		assert.Equal(t, "database error", statusErr.Message)
	})
}

type recordingHistory struct{ entries []string }

func (h *recordingHistory) Replace(q string) { h.entries = append(h.entries, q) }

func TestClientDrivesSynchronizer(t *testing.T) {
	queries := make(chan url.Values, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/products/price-range" {
			_, _ = w.Write([]byte(`{"min":10,"max":500}`))
			return
		}
		queries <- r.URL.Query()
		_, _ = w.Write([]byte(`{"products":[],"pagination":{"page":1,"limit":12,"total":0,"totalPages":0}}`))
	}))
	t.Cleanup(srv.Close)

	history := &recordingHistory{}
	syncer := filtersync.New(catalogclient.New(srv.URL, srv.Client()), history)
	t.Cleanup(syncer.Close)

	require.NoError(t, syncer.Init(context.Background(), "featured=true"))
	syncer.Wait()

	q := <-queries
	assert.Equal(t, "true", q.Get("featured"))
	assert.Equal(t, "10", q.Get("minPrice"))
	assert.Equal(t, "500", q.Get("maxPrice"))
	assert.Equal(t, []string{"featured=true"}, history.entries)
	_, ok := syncer.Products()
	assert.True(t, ok)
}
