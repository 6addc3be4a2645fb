package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/models"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := NewRedisCache(RedisConfig{
		Host: mr.Host(),
		Port: mr.Port(),
		TTL:  time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return c, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	req := models.FlightRequest{Origin: "BOM", Destination: "NRT", OutboundDate: "2025-01-01", ReturnDate: "2025-01-10"}
	want := &models.SearchResult{
		Flights:                []models.FlightInfo{{Airline: "ANA", Price: 45210}},
		AIFlightRecommendation: "Take the ANA flight.",
	}

	_, found := c.Get(ctx, "/search_flights/", req)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "/search_flights/", req, want))

	got, found := c.Get(ctx, "/search_flights/", req)
	require.True(t, found)
	assert.Equal(t, want.Flights, got.Flights)
	assert.Equal(t, want.AIFlightRecommendation, got.AIFlightRecommendation)

	_, found = c.Get(ctx, "/complete_search/", req)
	assert.False(t, found, "keys are scoped by endpoint")

	mr.FastForward(2 * time.Minute)
	_, found = c.Get(ctx, "/search_flights/", req)
	assert.False(t, found, "entries expire after the TTL")
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	_, err := NewRedisCache(RedisConfig{Host: host, Port: port})
	assert.Error(t, err)
}

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "/search_hotels/", "x", &models.SearchResult{}))
	_, found := c.Get(ctx, "/search_hotels/", "x")
	assert.False(t, found)
	assert.NoError(t, c.Close())
}
