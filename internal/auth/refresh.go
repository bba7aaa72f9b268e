package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found or expired")

// RefreshStore issues single-use refresh tokens. Rotate consumes a token and hands out its replacement.
type RefreshStore interface {
	Issue(ctx context.Context, userID string) (string, error)
	Rotate(ctx context.Context, token string) (userID, next string, err error)
	Revoke(ctx context.Context, token string) error
}

func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

type refreshEntry struct {
	userID    string
	expiresAt time.Time
}

type MemoryRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]refreshEntry
	ttl    time.Duration
	now    func() time.Time
}

func NewMemoryRefreshStore(ttl time.Duration) *MemoryRefreshStore {
	return &MemoryRefreshStore{tokens: map[string]refreshEntry{}, ttl: ttl, now: time.Now}
}

func (s *MemoryRefreshStore) Issue(_ context.Context, userID string) (string, error) {
	token, err := newRefreshToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.tokens[token] = refreshEntry{userID: userID, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

func (s *MemoryRefreshStore) Rotate(ctx context.Context, token string) (string, string, error) {
	s.mu.Lock()
	entry, ok := s.tokens[token]
	delete(s.tokens, token)
	s.mu.Unlock()

	if !ok || s.now().After(entry.expiresAt) {
		return "", "", ErrRefreshTokenNotFound
	}
	next, err := s.Issue(ctx, entry.userID)
	if err != nil {
		return "", "", err
	}
	return entry.userID, next, nil
}

func (s *MemoryRefreshStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

// PurgeExpired drops expired tokens and reports how many were removed.
func (s *MemoryRefreshStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for token, entry := range s.tokens {
		if now.After(entry.expiresAt) {
			delete(s.tokens, token)
			removed++
		}
	}
	return removed
}

// StartCleaner purges expired tokens every interval until ctx is done.
func (s *MemoryRefreshStore) StartCleaner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.PurgeExpired()
		}
	}
}

const refreshKeyPrefix = "auth:refresh:"

// RedisRefreshStore keeps tokens as expiring keys so several API instances share them.
type RedisRefreshStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRefreshStore(rdb *redis.Client, ttl time.Duration) *RedisRefreshStore {
	return &RedisRefreshStore{rdb: rdb, ttl: ttl}
}

func (s *RedisRefreshStore) Issue(ctx context.Context, userID string) (string, error) {
	token, err := newRefreshToken()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, refreshKeyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing refresh token: %w", err)
	}
	return token, nil
}

func (s *RedisRefreshStore) Rotate(ctx context.Context, token string) (string, string, error) {
	userID, err := s.rdb.GetDel(ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", "", ErrRefreshTokenNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("reading refresh token: %w", err)
	}
	next, err := s.Issue(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return userID, next, nil
}

func (s *RedisRefreshStore) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKeyPrefix+token).Err()
}
