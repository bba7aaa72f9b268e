package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

var ErrUnsupportedType = errors.New("unsupported image type")

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ObjectStore uploads an image into folder and returns its public URL.
type ObjectStore interface {
	Upload(ctx context.Context, r io.Reader, folder, contentType string) (string, error)
}

// CheckImageType accepts jpeg, png, webp and gif, ignoring any content type parameters.
func CheckImageType(contentType string) error {
	if _, ok := imageExt(contentType); !ok {
		return ErrUnsupportedType
	}
	return nil
}

func imageExt(contentType string) (string, bool) {
	base, _, _ := strings.Cut(contentType, ";")
	ext, ok := allowedImageTypes[strings.TrimSpace(strings.ToLower(base))]
	return ext, ok
}
