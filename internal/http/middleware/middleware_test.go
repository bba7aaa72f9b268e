package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/furniture-storefront/internal/auth"
	"github.com/rogerio-castellano/furniture-storefront/internal/http/ban"
	rl "github.com/rogerio-castellano/furniture-storefront/internal/http/rate_limiter"
	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(models.User{ID: "u-1", Email: "x@y.z", Role: role})
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return "Bearer " + token
}

func TestRequireAdmin(t *testing.T) {
	h := Authenticate(RequireAdmin(ok))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"Anonymous", "", http.StatusUnauthorized},
		{"Garbage token", "Bearer nope", http.StatusUnauthorized},
		{"User role", bearer(t, models.RoleUser), http.StatusForbidden},
		{"Admin role", bearer(t, models.RoleAdmin), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	rec := ban.NewMemoryRecorder()
	h := RateLimit(rl.NewWindowLimiter(2, time.Minute), "read", rec, zap.NewNop())(ok)

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected [200 200 429], got %v", codes)
	}
	strikes, _ := rec.Drain(context.Background())
	if len(strikes) != 1 || strikes[0].Target != "10.0.0.1" || strikes[0].Scope != "read" {
		t.Errorf("unexpected strikes %+v", strikes)
	}
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimitFailsOpen(t *testing.T) {
	h := RateLimit(brokenLimiter{}, "read", nil, zap.NewNop())(ok)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 when the limiter errors, got %d", w.Code)
	}
}
