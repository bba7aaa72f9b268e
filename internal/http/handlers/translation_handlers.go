package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/furniture-storefront/internal/repo"
)

const maxTranslationKeyLength = 200

// GetTranslationsHandler godoc
// @Summary UI strings of a locale as a key/value map
// @Tags translations
// @Produce json
// @Param locale path string true "Locale such as en or pt-BR"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /translations/{locale} [get]
func GetTranslationsHandler(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	if !localePattern.MatchString(locale) {
		writeError(w, http.StatusBadRequest, "invalid locale")
		return
	}

	messages, err := translationRepo.ListByLocale(r.Context(), locale)
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, messages, cacheHeaders(publicCacheControl))
}

// UpsertTranslationHandler godoc
// @Summary Create or replace one UI string
// @Tags admin-translations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param locale path string true "Locale"
// @Param key path string true "Message key"
// @Param translation body TranslationRequest true "Value"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/translations/{locale}/{key} [put]
func UpsertTranslationHandler(w http.ResponseWriter, r *http.Request) {
	locale, key, ok := translationParams(w, r)
	if !ok {
		return
	}
	var req TranslationRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if err := translationRepo.Upsert(r.Context(), locale, key, req.Value); err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, MessageResponse{Message: "translation saved"})
}

// DeleteTranslationHandler godoc
// @Summary Delete one UI string
// @Tags admin-translations
// @Security BearerAuth
// @Param locale path string true "Locale"
// @Param key path string true "Message key"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /admin/translations/{locale}/{key} [delete]
func DeleteTranslationHandler(w http.ResponseWriter, r *http.Request) {
	locale, key, ok := translationParams(w, r)
	if !ok {
		return
	}

	err := translationRepo.Delete(r.Context(), locale, key)
	if errors.Is(err, repo.ErrNotFound) {
		writeError(w, http.StatusNotFound, "translation not found")
		return
	}
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func translationParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	locale, key := chi.URLParam(r, "locale"), chi.URLParam(r, "key")
	if !localePattern.MatchString(locale) {
		writeError(w, http.StatusBadRequest, "invalid locale")
		return "", "", false
	}
	if key == "" || len(key) > maxTranslationKeyLength {
		writeError(w, http.StatusBadRequest, "invalid key")
		return "", "", false
	}
	return locale, key, true
}
