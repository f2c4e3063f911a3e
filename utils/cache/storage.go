package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sony/gobreaker"
)

const (
	storageOpTimeout = 2 * time.Second

	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
)

// KeyValueStore is the subset of RedisCache the fiber storage adapter needs
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// FiberStorage exposes a KeyValueStore as a fiber.Storage so fiber
// middleware (the rate limiter) can keep its counters in Redis.
// Keys are namespaced with prefix.
//
// Calls pass through a circuit breaker that opens after
// breakerFailureThreshold consecutive failures. While it is open every call
// returns gobreaker.ErrOpenState without touching the store.
type FiberStorage struct {
	store   KeyValueStore
	prefix  string
	breaker *gobreaker.CircuitBreaker
}

var _ fiber.Storage = (*FiberStorage)(nil)

// NewFiberStorage creates a fiber.Storage backed by store
func NewFiberStorage(store KeyValueStore, prefix string) *FiberStorage {
	return &FiberStorage{
		store:   store,
		prefix:  prefix,
		breaker: newStorageBreaker(prefix),
	}
}

func newStorageBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("[CACHE] circuit breaker %q changed from %s to %s", name, from, to)
		},
	})
}

// Get returns nil, nil when the key does not exist
func (s *FiberStorage) Get(key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageOpTimeout)
	defer cancel()

	res, err := s.breaker.Execute(func() (interface{}, error) {
		val, err := s.store.Get(ctx, s.prefix+key)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []byte(val), nil
	})
	if err != nil || res == nil {
		return nil, err
	}
	return res.([]byte), nil
}

func (s *FiberStorage) Set(key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}

	return s.run(func(ctx context.Context) error {
		return s.store.Set(ctx, s.prefix+key, val, exp)
	})
}

func (s *FiberStorage) Delete(key string) error {
	if len(key) == 0 {
		return nil
	}

	return s.run(func(ctx context.Context) error {
		return s.store.Delete(ctx, s.prefix+key)
	})
}

// Reset drops every key under the prefix
func (s *FiberStorage) Reset() error {
	return s.run(func(ctx context.Context) error {
		return s.store.DeletePrefix(ctx, s.prefix)
	})
}

// Close is a no-op; the underlying connection is owned by the caller
func (s *FiberStorage) Close() error {
	return nil
}

func (s *FiberStorage) run(op func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), storageOpTimeout)
	defer cancel()

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, op(ctx)
	})
	return err
}
