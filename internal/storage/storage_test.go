package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCheckImageType(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/png", "image/webp", "image/gif", "IMAGE/PNG; charset=binary"} {
		if err := CheckImageType(ct); err != nil {
			t.Errorf("expected %q to be accepted, got %v", ct, err)
		}
	}
	for _, ct := range []string{"", "image/svg+xml", "application/pdf", "text/plain"} {
		if err := CheckImageType(ct); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("expected %q to be rejected", ct)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("http://local")
	url, err := s.Upload(context.Background(), strings.NewReader("img"), "products", "image/png")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if !strings.HasPrefix(url, "http://local/products/") || !strings.HasSuffix(url, ".png") {
		t.Errorf("unexpected url %s", url)
	}
	key := strings.TrimPrefix(url, "http://local/")
	if data, ok := s.Object(key); !ok || string(data) != "img" {
		t.Errorf("expected stored object, got %q %v", data, ok)
	}
}
