package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	publicCacheControl = "public, max-age=60, stale-while-revalidate=300"
	adminCacheControl  = "private, no-cache"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// respond writes data and logs a failed write, which leaves nothing else to do.
func respond(w http.ResponseWriter, status int, data any, headers ...http.Header) {
	if err := writeJSON(w, status, data, headers...); err != nil {
		logger.Warn("failed to write JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, ErrorResponse{Error: msg})
}

func writeValidationErrors(w http.ResponseWriter, errs []ValidationError) {
	respond(w, http.StatusBadRequest, ValidationErrorsResponse{Errors: errs})
}

// storeFailure logs the cause and answers with a message that does not leak it.
func storeFailure(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("store failure", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "database error")
}

func cacheHeaders(value string) http.Header {
	return http.Header{"Cache-Control": []string{value}}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
