package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/furniture-storefront/internal/auth"
	"github.com/rogerio-castellano/furniture-storefront/internal/models"
	"github.com/rogerio-castellano/furniture-storefront/internal/repo"
)

const minPasswordLength = 8

// RegisterHandler godoc
// @Summary Register a customer account and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body RegisterRequest true "Account"
// @Success 201 {object} LoginResult
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 409 {object} ErrorResponse
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	email := normalizeEmail(req.Email)
	if errs := validateCredentials(email, req.Password); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	user, ok := createAccount(w, r, models.User{
		Email:    email,
		Role:     models.RoleUser,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
	}, req.Password)
	if !ok {
		return
	}
	issueTokens(w, r, user, http.StatusCreated)
}

// LoginHandler godoc
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Email and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	user, err := userRepo.GetByEmail(r.Context(), normalizeEmail(creds.Email))
	if err != nil {
		if !errors.Is(err, repo.ErrUserNotFound) {
			storeFailure(w, r, err)
			return
		}
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	issueTokens(w, r, user, http.StatusOK)
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new token pair
// @Description The presented refresh token is consumed.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} LoginResult
// @Failure 401 {object} ErrorResponse
// @Router /refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	userID, next, err := refreshStore.Rotate(r.Context(), req.RefreshToken)
	if errors.Is(err, auth.ErrRefreshTokenNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	if err != nil {
		storeFailure(w, r, err)
		return
	}

	user, err := userRepo.GetByID(r.Context(), userID)
	if err != nil {
		_ = refreshStore.Revoke(r.Context(), next)
		if errors.Is(err, repo.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		storeFailure(w, r, err)
		return
	}

	access, err := auth.GenerateToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not generate token")
		return
	}
	respond(w, http.StatusOK, LoginResult{
		AccessToken:  access,
		RefreshToken: next,
		ExpiresIn:    int(auth.AccessTokenTTL().Seconds()),
		User:         user,
	})
}

// LogoutHandler godoc
// @Summary Revoke a refresh token
// @Tags auth
// @Accept json
// @Param token body RefreshRequest true "Refresh token"
// @Success 204
// @Router /logout [post]
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if err := refreshStore.Revoke(r.Context(), req.RefreshToken); err != nil {
		logger.Warn("refresh token revoke failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMeHandler godoc
// @Summary Profile of the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /me [get]
func GetMeHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	user, err := userRepo.GetByID(r.Context(), id.UserID)
	if errors.Is(err, repo.ErrUserNotFound) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, user, cacheHeaders(adminCacheControl))
}

// UpdateMeHandler godoc
// @Summary Update name and phone of the authenticated user
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body ProfileRequest true "Profile"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Router /me [put]
func UpdateMeHandler(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	id, _ := auth.IdentityFrom(r.Context())
	user, err := userRepo.UpdateProfile(r.Context(), models.User{
		ID:       id.UserID,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
	})
	if errors.Is(err, repo.ErrUserNotFound) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, user)
}

// CreateUserHandler godoc
// @Summary Create user with custom role
// @Tags admin-users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body CreateUserRequest true "User to create with role"
// @Success 201 {object} models.User
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/users [post]
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	email := normalizeEmail(req.Email)
	errs := validateCredentials(email, req.Password)
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if !validRole(req.Role) {
		errs = append(errs, ValidationError{Field: "role", Description: "Role must be admin or user"})
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	user, ok := createAccount(w, r, models.User{
		Email:    email,
		Role:     req.Role,
		FullName: strings.TrimSpace(req.FullName),
	}, req.Password)
	if !ok {
		return
	}
	respond(w, http.StatusCreated, user)
}

// ListUsersHandler godoc
// @Summary List every account
// @Tags admin-users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /admin/users [get]
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := userRepo.List(r.Context())
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, users, cacheHeaders(adminCacheControl))
}

// SetUserRoleHandler godoc
// @Summary Change the role of an account
// @Tags admin-users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param role body RoleRequest true "Role"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{id}/role [put]
func SetUserRoleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req RoleRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if !validRole(req.Role) {
		writeError(w, http.StatusBadRequest, "role must be admin or user")
		return
	}

	user, err := userRepo.SetRole(r.Context(), id, req.Role)
	if errors.Is(err, repo.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, user)
}

func createAccount(w http.ResponseWriter, r *http.Request, user models.User, password string) (models.User, bool) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return models.User{}, false
	}
	user.PasswordHash = string(hashed)

	created, err := userRepo.CreateUser(r.Context(), user)
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		writeError(w, http.StatusConflict, "email already registered")
		return models.User{}, false
	}
	if err != nil {
		storeFailure(w, r, err)
		return models.User{}, false
	}
	return created, true
}

func issueTokens(w http.ResponseWriter, r *http.Request, user models.User, status int) {
	access, err := auth.GenerateToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not generate token")
		return
	}
	refresh, err := refreshStore.Issue(r.Context(), user.ID)
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, status, LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(auth.AccessTokenTTL().Seconds()),
		User:         user,
	})
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateCredentials(email, password string) []ValidationError {
	errs := []ValidationError{}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs = append(errs, ValidationError{Field: "email", Description: "Email is invalid"})
	}
	if len(password) < minPasswordLength {
		errs = append(errs, ValidationError{Field: "password", Description: "Password must have at least 8 characters"})
	}
	return errs
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleUser
}
