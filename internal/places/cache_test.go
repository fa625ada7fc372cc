package places_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chicaron82/roadtrip-planner-sub003/internal/domain"
	"github.com/chicaron82/roadtrip-planner-sub003/internal/places"
)

// fakeProvider is a hand-written test double for places.Provider.
// Each method counts its calls and delegates to a function field.
type fakeProvider struct {
	corridorCalls int
	destCalls     int
	corridor      func(q places.CorridorQuery) ([]domain.DiscoveredPOI, error)
	destinations  func(q places.DestinationQuery) ([]domain.DestinationCandidate, error)
}

func (f *fakeProvider) SearchCorridor(_ context.Context, q places.CorridorQuery) ([]domain.DiscoveredPOI, error) {
	f.corridorCalls++
	return f.corridor(q)
}

func (f *fakeProvider) SearchDestinations(_ context.Context, q places.DestinationQuery) ([]domain.DestinationCandidate, error) {
	f.destCalls++
	return f.destinations(q)
}

// compile-time check: fakeProvider must satisfy places.Provider.
var _ places.Provider = (*fakeProvider)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func twoPOIs() []domain.DiscoveredPOI {
	return []domain.DiscoveredPOI{
		{ID: "poi-1", Name: "Big Apple", RankingScore: 82.5},
		{ID: "poi-2", Name: "Riverside Lookout", RankingScore: 55},
	}
}

func newCachedProvider(t *testing.T, inner places.Provider, ttl time.Duration) (*places.CachedProvider, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return places.NewCachedProvider(inner, client, ttl, discardLogger()), mr
}

func TestCachedProvider_ServesRepeatLookupFromCache(t *testing.T) {
	fake := &fakeProvider{
		corridor: func(places.CorridorQuery) ([]domain.DiscoveredPOI, error) {
			return twoPOIs(), nil
		},
	}
	cached, _ := newCachedProvider(t, fake, time.Minute)
	ctx := context.Background()

	first, err := cached.SearchCorridor(ctx, corridorQuery())
	require.NoError(t, err)

	second, err := cached.SearchCorridor(ctx, corridorQuery())

	require.NoError(t, err)
	assert.Equal(t, 1, fake.corridorCalls, "second lookup should not reach the provider")
	require.Len(t, second, 2)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, first[0].RankingScore, second[0].RankingScore)
}

func TestCachedProvider_CacheHitRestampsSegmentIndex(t *testing.T) {
	fake := &fakeProvider{
		corridor: func(places.CorridorQuery) ([]domain.DiscoveredPOI, error) {
			return twoPOIs(), nil
		},
	}
	cached, _ := newCachedProvider(t, fake, time.Minute)
	ctx := context.Background()

	q := corridorQuery()
	_, err := cached.SearchCorridor(ctx, q)
	require.NoError(t, err)

	// same geometry asked about a different leg: served from cache, but the
	// segment index must reflect the new query
	q.SegmentIndex = 5
	got, err := cached.SearchCorridor(ctx, q)

	require.NoError(t, err)
	assert.Equal(t, 1, fake.corridorCalls)
	require.NotNil(t, got[0].SegmentIndex)
	assert.Equal(t, 5, *got[0].SegmentIndex)
}

func TestCachedProvider_ExpiredEntryRefetches(t *testing.T) {
	fake := &fakeProvider{
		corridor: func(places.CorridorQuery) ([]domain.DiscoveredPOI, error) {
			return twoPOIs(), nil
		},
	}
	cached, mr := newCachedProvider(t, fake, time.Minute)
	ctx := context.Background()

	_, err := cached.SearchCorridor(ctx, corridorQuery())
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cached.SearchCorridor(ctx, corridorQuery())

	require.NoError(t, err)
	assert.Equal(t, 2, fake.corridorCalls, "expired entry should refetch")
}

func TestCachedProvider_RedisDownFallsBackToInner(t *testing.T) {
	fake := &fakeProvider{
		corridor: func(places.CorridorQuery) ([]domain.DiscoveredPOI, error) {
			return twoPOIs(), nil
		},
	}
	cached, mr := newCachedProvider(t, fake, time.Minute)
	mr.Close()
	ctx := context.Background()

	got, err := cached.SearchCorridor(ctx, corridorQuery())

	require.NoError(t, err, "a dead cache must not fail the lookup")
	assert.Len(t, got, 2)
	assert.Equal(t, 1, fake.corridorCalls)
}

func TestCachedProvider_CorruptEntryFallsBackToInner(t *testing.T) {
	fake := &fakeProvider{
		corridor: func(places.CorridorQuery) ([]domain.DiscoveredPOI, error) {
			return twoPOIs(), nil
		},
	}
	cached, mr := newCachedProvider(t, fake, time.Minute)
	ctx := context.Background()

	_, err := cached.SearchCorridor(ctx, corridorQuery())
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	require.NoError(t, mr.Set(keys[0], "{not json"))

	got, err := cached.SearchCorridor(ctx, corridorQuery())

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 2, fake.corridorCalls, "corrupt entry should refetch")
}

func TestCachedProvider_ProviderErrorNotCached(t *testing.T) {
	fake := &fakeProvider{
		corridor: func(places.CorridorQuery) ([]domain.DiscoveredPOI, error) {
			return nil, domain.ErrProvider
		},
	}
	cached, _ := newCachedProvider(t, fake, time.Minute)
	ctx := context.Background()

	_, err := cached.SearchCorridor(ctx, corridorQuery())
	assert.ErrorIs(t, err, domain.ErrProvider)

	_, err = cached.SearchCorridor(ctx, corridorQuery())

	assert.ErrorIs(t, err, domain.ErrProvider)
	assert.Equal(t, 2, fake.corridorCalls, "failures should not leave cache entries behind")
}

func TestCachedProvider_SearchDestinationsCached(t *testing.T) {
	fake := &fakeProvider{
		destinations: func(places.DestinationQuery) ([]domain.DestinationCandidate, error) {
			return []domain.DestinationCandidate{
				{Location: domain.Location{Name: "Mont-Tremblant"}, DistanceKm: 140},
			}, nil
		},
	}
	cached, _ := newCachedProvider(t, fake, time.Minute)
	ctx := context.Background()

	q := places.DestinationQuery{
		Origin:        domain.Location{Name: "Montreal", Lat: 45.5, Lng: -73.57},
		MaxDistanceKm: 650,
	}

	_, err := cached.SearchDestinations(ctx, q)
	require.NoError(t, err)

	got, err := cached.SearchDestinations(ctx, q)

	require.NoError(t, err)
	assert.Equal(t, 1, fake.destCalls)
	require.Len(t, got, 1)
	assert.Equal(t, "Mont-Tremblant", got[0].Location.Name)
}
