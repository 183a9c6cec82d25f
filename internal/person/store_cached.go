package person

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker"

	"github.com/taibuivan/personapi/internal/platform/constants"
)

// ErrCacheMiss is returned by a [Cache] when the key is absent.
var ErrCacheMiss = errors.New("person: cache miss")

// Cache is the key-value store behind [CachedRepository].
type Cache interface {
	Get(context context.Context, key string) ([]byte, error)
	Set(context context.Context, key string, value []byte, ttl time.Duration) error
	Delete(context context.Context, keys ...string) error
}

// CachedRepository serves GetPerson from a cache and falls back to the
// wrapped repository. Writes go to the repository first and then evict the
// cached entry.
//
// Reads and fills run through a circuit breaker; while it is open they skip
// the cache and go to the repository. Evictions always reach the cache. An
// id whose eviction failed is never served from or written to the cache
// until a later eviction succeeds.
type CachedRepository struct {
	Repository
	cache   Cache
	breaker *gobreaker.CircuitBreaker
	ttl     time.Duration
	logger  *slog.Logger

	// writes counts completed repository writes. A read that saw it change
	// may hold an old row and does not fill the cache.
	writes atomic.Uint64

	mu    sync.Mutex
	stale map[int64]struct{}
}

// NewCachedRepository wraps repo with cache.
func NewCachedRepository(repo Repository, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		Repository: repo,
		cache:      cache,
		breaker:    NewCircuitBreaker("person-cache"),
		ttl:        ttl,
		logger:     logger,
		stale:      make(map[int64]struct{}),
	}
}

// NewCircuitBreaker returns a gobreaker configured to trip after 3 consecutive
// failures and reset after 30 seconds in the open state. Cache misses do not
// count as failures.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrCacheMiss)
		},
	})
}

func cacheKey(id int64) string {
	return constants.RedisPrefixPerson + strconv.FormatInt(id, 10)
}

func (repository *CachedRepository) GetPerson(context context.Context, id int64) (*Person, error) {
	key := cacheKey(id)

	if !repository.retryEviction(context, id) {
		return repository.Repository.GetPerson(context, id)
	}

	raw, err := repository.breaker.Execute(func() (any, error) {
		return repository.cache.Get(context, key)
	})
	if err == nil {
		p := &Person{}
		if jsonErr := json.Unmarshal(raw.([]byte), p); jsonErr == nil {
			return p, nil
		}
		repository.logger.Warn("person_cache_corrupt_entry", slog.String("key", key))
	} else if !errors.Is(err, ErrCacheMiss) {
		repository.logger.Debug("person_cache_get_failed", slog.String("key", key), slog.Any("error", err))
	}

	generation := repository.writes.Load()

	p, err := repository.Repository.GetPerson(context, id)
	if err != nil {
		return nil, err
	}

	if repository.writes.Load() == generation {
		repository.store(context, key, p)
	}
	return p, nil
}

func (repository *CachedRepository) UpdatePerson(context context.Context, p *Person) error {
	if err := repository.Repository.UpdatePerson(context, p); err != nil {
		return err
	}
	repository.writes.Add(1)
	repository.evict(context, p.ID)
	return nil
}

func (repository *CachedRepository) DeletePerson(context context.Context, id int64) error {
	if err := repository.Repository.DeletePerson(context, id); err != nil {
		return err
	}
	repository.writes.Add(1)
	repository.evict(context, id)
	return nil
}

// store writes p to the cache. Failures are logged and otherwise ignored.
func (repository *CachedRepository) store(context context.Context, key string, p *Person) {
	encoded, err := json.Marshal(p)
	if err != nil {
		return
	}

	_, err = repository.breaker.Execute(func() (any, error) {
		return nil, repository.cache.Set(context, key, encoded, repository.ttl)
	})
	if err != nil {
		repository.logger.Debug("person_cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}
}

// evict removes the cached entry for id. It bypasses the breaker: an open
// breaker must not leave an outdated row behind. A failed eviction marks the
// id stale.
func (repository *CachedRepository) evict(context context.Context, id int64) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	key := cacheKey(id)
	if err := repository.cache.Delete(context, key); err != nil {
		repository.stale[id] = struct{}{}
		repository.logger.Warn("person_cache_evict_failed", slog.String("key", key), slog.Any("error", err))
		return
	}
	delete(repository.stale, id)
}

// retryEviction reports whether the cache may be used for id, retrying a
// previously failed eviction first.
func (repository *CachedRepository) retryEviction(context context.Context, id int64) bool {
	repository.mu.Lock()
	_, isStale := repository.stale[id]
	repository.mu.Unlock()

	if !isStale {
		return true
	}

	repository.evict(context, id)

	repository.mu.Lock()
	defer repository.mu.Unlock()
	_, isStale = repository.stale[id]
	return !isStale
}
