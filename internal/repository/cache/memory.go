package cache

import (
	"context"
	"sync"
	"time"

	"github.com/urbanpulse/backend/internal/domain/repository"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// memoryRepository is a process-local TTL cache used when Redis is not
// configured or the process runs in demo mode. Per-key operations are
// atomic under one mutex; that is all the gateway contract requires.
type memoryRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryRepository() repository.CacheRepository {
	return &memoryRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *memoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if m.now().After(entry.expires) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, nil
	}

	// Copy so callers cannot mutate the cached bytes.
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (m *memoryRepository) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.entries[key] = memoryEntry{
		value:   stored,
		expires: m.now().Add(ttl),
	}
	m.mu.Unlock()
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := m.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return val != nil, nil
}
