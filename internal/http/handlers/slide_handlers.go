package handlers

import (
	"net/http"
	"strings"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

// GetSlidesHandler godoc
// @Summary Active homepage slides ordered by position
// @Tags slides
// @Produce json
// @Success 200 {array} models.Slide
// @Failure 500 {object} ErrorResponse
// @Router /slides [get]
func GetSlidesHandler(w http.ResponseWriter, r *http.Request) {
	slides, err := slideRepo.ListActive(r.Context())
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, slides, cacheHeaders(publicCacheControl))
}

// ListAllSlidesHandler godoc
// @Summary Every slide, including inactive ones
// @Tags admin-slides
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Slide
// @Router /admin/slides [get]
func ListAllSlidesHandler(w http.ResponseWriter, r *http.Request) {
	slides, err := slideRepo.ListAll(r.Context())
	if err != nil {
		storeFailure(w, r, err)
		return
	}
	respond(w, http.StatusOK, slides, cacheHeaders(adminCacheControl))
}

// CreateSlideHandler godoc
// @Summary Create a homepage slide
// @Tags admin-slides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slide body SlideRequest true "Slide"
// @Success 201 {object} models.Slide
// @Failure 400 {object} ValidationErrorsResponse
// @Router /admin/slides [post]
func CreateSlideHandler(w http.ResponseWriter, r *http.Request) {
	saveSlide(w, r, "")
}

// UpdateSlideHandler godoc
// @Summary Update a homepage slide
// @Tags admin-slides
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slide ID"
// @Param slide body SlideRequest true "Slide"
// @Success 200 {object} models.Slide
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/slides/{id} [put]
func UpdateSlideHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	saveSlide(w, r, id)
}

func saveSlide(w http.ResponseWriter, r *http.Request, id string) {
	var req SlideRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	errs := []ValidationError{}
	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, ValidationError{Field: "title", Description: "Title is required"})
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		errs = append(errs, ValidationError{Field: "image_url", Description: "Image URL is required"})
	}
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	s := models.Slide{
		ID:       id,
		Title:    strings.TrimSpace(req.Title),
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		Active:   active,
	}
	var err error
	if id == "" {
		s, err = slideRepo.Create(r.Context(), s)
	} else {
		s, err = slideRepo.Update(r.Context(), s)
	}
	writeSaved(w, r, s, id == "", err)
}

// DeleteSlideHandler godoc
// @Summary Delete a homepage slide
// @Tags admin-slides
// @Security BearerAuth
// @Param id path string true "Slide ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /admin/slides/{id} [delete]
func DeleteSlideHandler(w http.ResponseWriter, r *http.Request) {
	deleteEntry(w, r, slideRepo.Delete)
}
