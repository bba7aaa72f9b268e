package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps uploads in memory. It backs local runs without cloud credentials.
type MemoryStore struct {
	mu      sync.Mutex
	baseURL string
	objects map[string][]byte
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{baseURL: baseURL, objects: map[string][]byte{}}
}

func (s *MemoryStore) Upload(_ context.Context, r io.Reader, folder, contentType string) (string, error) {
	ext, ok := imageExt(contentType)
	if !ok {
		return "", ErrUnsupportedType
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s.%s", folder, uuid.NewString(), ext)
	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return s.baseURL + "/" + key, nil
}

func (s *MemoryStore) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}
