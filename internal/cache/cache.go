// Package cache provides the in-memory result cache used by the API
// layer. Travel searches re-run the full bounded enumeration, so their
// results are cached by query key and flushed whenever the network
// mutates (any mutation can move prices and schedules).
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Interface defines the contract for cache implementations.
type Interface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// Flush drops every entry; called after any network mutation
	Flush()

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, bool, error)
}

// Service is the go-cache backed implementation.
type Service struct {
	cache *gocache.Cache
}

var _ Interface = (*Service)(nil)

func NewService(defaultExpiration, cleanUpInterval time.Duration) *Service {
	return &Service{cache: gocache.New(defaultExpiration, cleanUpInterval)}
}

func (s *Service) Set(key string, value interface{}, duration time.Duration) {
	s.cache.Set(key, value, duration)
}

func (s *Service) Get(key string) (interface{}, bool) {
	return s.cache.Get(key)
}

func (s *Service) Delete(key string) {
	s.cache.Delete(key)
}

func (s *Service) Flush() {
	s.cache.Flush()
}

// GetOrSet returns the cached value for key, or runs loader and caches
// its result. The second return reports whether the value was a cache
// hit.
func (s *Service) GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, bool, error) {
	if val, found := s.Get(key); found {
		return val, true, nil
	}

	val, err := loader()
	if err != nil {
		return nil, false, err
	}

	s.Set(key, val, duration)
	return val, false, nil
}
