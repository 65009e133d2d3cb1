// File: services/session/store.go
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"tripplanner/models"

	"github.com/go-redis/redis/v8"
)

const itineraryPrefix = "session:itinerary:"

// Store keeps the latest itinerary of each browser session.
type Store interface {
	// Get returns nil with no error when the session has no itinerary.
	Get(ctx context.Context, sessionID string) (*models.Itinerary, error)
	Set(ctx context.Context, sessionID string, it *models.Itinerary) error
	Clear(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.Itinerary, error) {
	data, err := s.client.Get(ctx, itineraryPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var it models.Itinerary
	if err := json.Unmarshal(data, &it); err != nil {
		return nil, err
	}
	// SessionID is not serialized.
	it.SessionID = sessionID
	return &it, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, it *models.Itinerary) error {
	b, err := json.Marshal(it)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, itineraryPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, itineraryPrefix+sessionID).Err()
}

type memoryEntry struct {
	it      models.Itinerary
	expires time.Time
}

// MemoryStore is the single-process fallback used when Redis is disabled.
// Expired entries are swept on Set, at most once per ttl.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*models.Itinerary, error) {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && s.now().After(e.expires) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return nil, nil
	}
	it := e.it
	return &it, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, it *models.Itinerary) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ttl > 0 && !now.Before(s.nextSweep) {
		s.sweepLocked(now)
		s.nextSweep = now.Add(s.ttl)
	}
	s.entries[sessionID] = memoryEntry{it: *it, expires: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) sweepLocked(now time.Time) {
	for id, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, id)
		}
	}
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
