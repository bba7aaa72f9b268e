package handlers_test

import (
	"net/http"
	"testing"

	"github.com/rogerio-castellano/furniture-storefront/internal/http/handlers"
	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

func login(t *testing.T, r http.Handler, email, password string) handlers.LoginResult {
	t.Helper()
	w := do(t, r, http.MethodPost, "/login", "", handlers.CredentialsRequest{Email: email, Password: password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200 OK, got %d", email, w.Code)
	}
	return decode[handlers.LoginResult](t, w)
}

func TestAuthFlow(t *testing.T) {
	r := newRouter()

	t.Run("Login with valid credentials", func(t *testing.T) {
		resp := login(t, r, "Admin@Example.com", adminPassword)
		if resp.AccessToken == "" {
			t.Error("expected access token in response")
		}
		if resp.RefreshToken == "" {
			t.Error("expected refresh token in response")
		}
		if resp.User.Role != models.RoleAdmin {
			t.Errorf("expected admin role, got %q", resp.User.Role)
		}
	})

	t.Run("Login with wrong password", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/login", "", handlers.CredentialsRequest{Email: "admin@example.com", Password: "nope"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})

	t.Run("Login with unknown email", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/login", "", handlers.CredentialsRequest{Email: "ghost@example.com", Password: adminPassword})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})

	t.Run("Access token opens the admin area", func(t *testing.T) {
		resp := login(t, r, "admin@example.com", adminPassword)
		w := do(t, r, http.MethodGet, "/admin/metrics", resp.AccessToken, nil)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200 OK, got %d", w.Code)
		}
	})

	t.Run("Refresh rotates the token", func(t *testing.T) {
		resp := login(t, r, "admin@example.com", adminPassword)

		w := do(t, r, http.MethodPost, "/refresh", "", handlers.RefreshRequest{RefreshToken: resp.RefreshToken})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		rotated := decode[handlers.LoginResult](t, w)
		if rotated.RefreshToken == "" || rotated.RefreshToken == resp.RefreshToken {
			t.Error("expected a new refresh token")
		}

		w = do(t, r, http.MethodPost, "/refresh", "", handlers.RefreshRequest{RefreshToken: resp.RefreshToken})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected reused refresh token to be rejected, got %d", w.Code)
		}
	})

	t.Run("Logout revokes the refresh token", func(t *testing.T) {
		resp := login(t, r, "admin@example.com", adminPassword)
		if w := do(t, r, http.MethodPost, "/logout", "", handlers.RefreshRequest{RefreshToken: resp.RefreshToken}); w.Code != http.StatusNoContent {
			t.Fatalf("expected 204 No Content, got %d", w.Code)
		}
		w := do(t, r, http.MethodPost, "/refresh", "", handlers.RefreshRequest{RefreshToken: resp.RefreshToken})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 after logout, got %d", w.Code)
		}
	})
}

func TestRegisterHandler(t *testing.T) {
	r := newRouter()

	t.Run("Valid registration returns tokens", func(t *testing.T) {
		body := handlers.RegisterRequest{Email: "new@example.com", Password: "strongpassword", FullName: " Ana Lima "}
		w := do(t, r, http.MethodPost, "/register", "", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d", w.Code)
		}
		resp := decode[handlers.LoginResult](t, w)
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Error("expected tokens in response")
		}
		if resp.User.Role != models.RoleUser || resp.User.FullName != "Ana Lima" {
			t.Errorf("unexpected user %+v", resp.User)
		}
	})

	t.Run("Duplicate email returns 409", func(t *testing.T) {
		body := handlers.RegisterRequest{Email: "NEW@example.com", Password: "anotherpassword"}
		if w := do(t, r, http.MethodPost, "/register", "", body); w.Code != http.StatusConflict {
			t.Errorf("expected 409 Conflict, got %d", w.Code)
		}
	})

	t.Run("Invalid input", func(t *testing.T) {
		tests := []struct {
			name string
			body handlers.RegisterRequest
		}{
			{"Malformed email", handlers.RegisterRequest{Email: "not-an-email", Password: "strongpassword"}},
			{"Short password", handlers.RegisterRequest{Email: "short@example.com", Password: "abc"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if w := do(t, r, http.MethodPost, "/register", "", tt.body); w.Code != http.StatusBadRequest {
					t.Errorf("expected 400 Bad Request, got %d", w.Code)
				}
			})
		}
	})
}

func TestProfileHandlers(t *testing.T) {
	r := newRouter()

	if w := do(t, r, http.MethodGet, "/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	w := do(t, r, http.MethodPut, "/me", userToken, handlers.ProfileRequest{FullName: "Customer One", Phone: "+55 11 99999-0000"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	me := decode[models.User](t, do(t, r, http.MethodGet, "/me", userToken, nil))
	if me.FullName != "Customer One" || me.Email != "customer@example.com" {
		t.Errorf("unexpected profile %+v", me)
	}
}

func TestAdminUserHandlers(t *testing.T) {
	r := newRouter()

	t.Run("Customers cannot create users", func(t *testing.T) {
		body := handlers.CreateUserRequest{Email: "staff@example.com", Password: "staffpassword", Role: models.RoleAdmin}
		if w := do(t, r, http.MethodPost, "/admin/users", userToken, body); w.Code != http.StatusForbidden {
			t.Errorf("expected 403 Forbidden, got %d", w.Code)
		}
	})

	t.Run("Unknown role is rejected", func(t *testing.T) {
		body := handlers.CreateUserRequest{Email: "staff@example.com", Password: "staffpassword", Role: "owner"}
		if w := do(t, r, http.MethodPost, "/admin/users", adminToken, body); w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})

	var staff models.User
	t.Run("Admin creates a user", func(t *testing.T) {
		body := handlers.CreateUserRequest{Email: "staff@example.com", Password: "staffpassword", Role: models.RoleUser}
		w := do(t, r, http.MethodPost, "/admin/users", adminToken, body)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d", w.Code)
		}
		staff = decode[models.User](t, w)
	})

	t.Run("Admin promotes the user", func(t *testing.T) {
		w := do(t, r, http.MethodPut, "/admin/users/"+staff.ID+"/role", adminToken, handlers.RoleRequest{Role: models.RoleAdmin})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		if got := decode[models.User](t, w); got.Role != models.RoleAdmin {
			t.Errorf("expected admin role, got %q", got.Role)
		}
		login(t, r, "staff@example.com", "staffpassword")
	})

	t.Run("List users", func(t *testing.T) {
		users := decode[[]models.User](t, do(t, r, http.MethodGet, "/admin/users", adminToken, nil))
		found := false
		for _, u := range users {
			if u.ID == staff.ID {
				found = true
			}
			if u.PasswordHash != "" {
				t.Errorf("password hash of %s leaked", u.Email)
			}
		}
		if !found {
			t.Errorf("expected staff@example.com in %d users", len(users))
		}
	})
}
