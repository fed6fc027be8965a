package forecast

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shuv1824/packlist/internal/types"
)

// Forecaster is anything that can produce a per-day forecast for a trip.
type Forecaster interface {
	Forecast(ctx context.Context, destination string, days int) ([]types.DayForecast, error)
}

type cacheEntry struct {
	days      []types.DayForecast
	fetchedAt time.Time
	inflight  int
}

// CachedService wraps a Forecaster with a per-destination TTL cache
type CachedService struct {
	service  Forecaster
	cache    map[string]*cacheEntry
	cacheTTL time.Duration
	mu       sync.RWMutex
	now      func() time.Time
}

// NewCachedService creates a cached forecast service
func NewCachedService(service Forecaster, cacheTTL time.Duration) *CachedService {
	return &CachedService{
		service:  service,
		cache:    make(map[string]*cacheEntry),
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

func cacheKey(destination string, days int) string {
	return fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(destination)), days)
}

func copyDays(days []types.DayForecast) []types.DayForecast {
	result := make([]types.DayForecast, len(days))
	copy(result, days)
	return result
}

// Forecast returns cached data or fetches fresh data
func (c *CachedService) Forecast(ctx context.Context, destination string, days int) ([]types.DayForecast, error) {
	key := cacheKey(destination, days)

	c.mu.RLock()
	if e, ok := c.cache[key]; ok && c.fresh(e) {
		result := copyDays(e.days)
		c.mu.RUnlock()
		return result, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	// Double-check after acquiring write lock
	e, ok := c.cache[key]
	if ok && c.fresh(e) {
		result := copyDays(e.days)
		c.mu.Unlock()
		return result, nil
	}

	// Serve stale data while another goroutine refreshes this key
	if ok && e.inflight > 0 && e.days != nil {
		result := copyDays(e.days)
		c.mu.Unlock()
		return result, nil
	}

	if !ok {
		e = &cacheEntry{}
		c.cache[key] = e
	}
	e.inflight++
	c.mu.Unlock()

	data, err := c.service.Forecast(ctx, destination, days)

	c.mu.Lock()
	e.inflight--
	if err == nil {
		e.days = copyDays(data)
		e.fetchedAt = c.now()
	} else if e.days == nil && e.inflight == 0 && c.cache[key] == e {
		// Nothing to serve and nobody else is filling it.
		delete(c.cache, key)
	}
	c.mu.Unlock()

	return data, err
}

// Prune drops expired entries and reports how many were removed.
func (c *CachedService) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.cache {
		if e.inflight == 0 && !c.fresh(e) {
			delete(c.cache, key)
			removed++
		}
	}
	return removed
}

func (c *CachedService) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// fresh must be called with mu held.
func (c *CachedService) fresh(e *cacheEntry) bool {
	return e.days != nil && c.now().Sub(e.fetchedAt) < c.cacheTTL
}
