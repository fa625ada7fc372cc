package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
)

// CachedProvider wraps a Provider with a Redis read-through cache.
// Cache failures never surface to callers: any Redis error falls back to
// the inner provider, so a dead cache only costs latency.
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
	ttl   time.Duration
	log   *slog.Logger
}

// NewCachedProvider decorates inner with a Redis cache using the given TTL.
func NewCachedProvider(inner Provider, rdb *redis.Client, ttl time.Duration, log *slog.Logger) *CachedProvider {
	return &CachedProvider{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

func (c *CachedProvider) SearchCorridor(ctx context.Context, q CorridorQuery) ([]domain.DiscoveredPOI, error) {
	key := corridorKey(q)

	var cached []domain.DiscoveredPOI
	if c.lookup(ctx, key, &cached) {
		// the key ignores SegmentIndex so shared geometry serves any
		// leg; restamp the index the caller actually asked about
		for i := range cached {
			seg := q.SegmentIndex
			cached[i].SegmentIndex = &seg
		}
		return cached, nil
	}

	pois, err := c.inner.SearchCorridor(ctx, q)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, pois)
	return pois, nil
}

func (c *CachedProvider) SearchDestinations(ctx context.Context, q DestinationQuery) ([]domain.DestinationCandidate, error) {
	key := destinationKey(q)

	var cached []domain.DestinationCandidate
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	candidates, err := c.inner.SearchDestinations(ctx, q)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, candidates)
	return candidates, nil
}

// lookup reports whether key held a usable cached value and decoded it
// into out. Misses, read errors and corrupt entries all report false.
func (c *CachedProvider) lookup(ctx context.Context, key string, out any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug("places cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Debug("places cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *CachedProvider) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Debug("places cache write failed", "key", key, "error", err)
	}
}

// corridorKey folds a corridor query into a stable cache key. Coordinates
// are rounded to ~100 m so float jitter between recomputes still hits.
func corridorKey(q CorridorQuery) string {
	cats := append([]string(nil), q.Categories...)
	slices.Sort(cats)
	return fmt.Sprintf("places:corridor:%.3f,%.3f:r%.1f:%s",
		q.Lat, q.Lng, q.RadiusKm, strings.Join(cats, ","))
}

func destinationKey(q DestinationQuery) string {
	tags := append([]string(nil), q.Tags...)
	slices.Sort(tags)
	return fmt.Sprintf("places:dest:%.3f,%.3f:d%.0f:l%d:%s",
		q.Origin.Lat, q.Origin.Lng, q.MaxDistanceKm, q.Limit, strings.Join(tags, ","))
}
