package handlers

import (
	"errors"
	"io"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/furniture-storefront/internal/storage"
)

var folderPattern = regexp.MustCompile(`^[a-z0-9-]+(/[a-z0-9-]+)*$`)

const defaultUploadFolder = "products"

// UploadImageHandler godoc
// @Summary Upload an image and return its public URL
// @Description Accepts jpeg, png, webp and gif up to the configured size.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Param folder formData string false "Destination folder (default products)"
// @Success 201 {object} UploadResult
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/uploads [post]
func UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	// multipart framing needs a little room on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+64<<10)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = defaultUploadFolder
	}
	if !folderPattern.MatchString(folder) {
		writeError(w, http.StatusBadRequest, "invalid folder")
		return
	}

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}
	contentType := http.DetectContentType(sniff[:n])
	if storage.CheckImageType(contentType) != nil {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported image type")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}

	url, err := objectStore.Upload(r.Context(), file, folder, contentType)
	if err != nil {
		logger.Error("image upload failed", zap.String("folder", folder), zap.Error(err))
		writeError(w, http.StatusBadGateway, "upload failed")
		return
	}
	respond(w, http.StatusCreated, UploadResult{URL: url})
}
