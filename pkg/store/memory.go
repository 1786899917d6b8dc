package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps state in process. Used for single node runs and tests.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ KeyValueStore = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 10*time.Minute)}
}

func expiry(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return cache.NoExpiration
	}
	return ttl
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	x, found := s.cache.Get(key)
	if !found {
		return "", ErrNotFound
	}
	val, ok := x.(string)
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.cache.Set(key, value, expiry(ttl))
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.cache.Delete(k)
	}
	return nil
}

func (s *MemoryStore) AddMember(_ context.Context, key, member string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := map[string]struct{}{}
	if x, found := s.cache.Get(key); found {
		if existing, ok := x.(map[string]struct{}); ok {
			for m := range existing {
				set[m] = struct{}{}
			}
		}
	}
	set[member] = struct{}{}
	s.cache.Set(key, set, expiry(ttl))
	return nil
}

func (s *MemoryStore) Members(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, found := s.cache.Get(key)
	if !found {
		return []string{}, nil
	}
	set, ok := x.(map[string]struct{})
	if !ok {
		return []string{}, nil
	}
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	sort.Strings(members)
	return members, nil
}
