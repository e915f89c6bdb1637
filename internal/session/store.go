package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/AvaneeshKarthiks/FinWise/internal/cache"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps session data server-side keyed by session id.
type Store interface {
	Load(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions under "session:<id>".
type RedisStore struct {
	helper *cache.CacheHelper
	logger *slog.Logger
}

func NewRedisStore(helper *cache.CacheHelper, logger *slog.Logger) *RedisStore {
	return &RedisStore{helper: helper, logger: logger}
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Data, error) {
	var data Data
	if err := s.helper.Get(ctx, id, &data); err != nil {
		if errors.Is(err, cache.ErrCacheNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &data, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	return s.helper.Set(ctx, id, data, ttl)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	cache.SafeDelete(ctx, s.logger, s.helper, id)
	return nil
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// MemoryStore is a process-local Store for single-instance deployments
// and tests. Expired entries are dropped on access.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return nil, ErrSessionNotFound
	}
	data := entry.data
	return &data, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, data *Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = memoryEntry{data: *data, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}
