package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetLimiterReusesPerEndpoint(t *testing.T) {
	l := NewEndpointLimiterWithDefaults()

	a := l.GetLimiter("/search_flights/")
	b := l.GetLimiter("/search_flights/")
	c := l.GetLimiter("/search_hotels/")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 10, a.Burst())
}

func TestSetEndpointLimit(t *testing.T) {
	l := NewEndpointLimiterWithDefaults()
	l.SetEndpointLimit("/generate_pdf/", 1, 1)

	assert.Equal(t, 1, l.GetLimiter("/generate_pdf/").Burst())
}

func TestWaitHonoursContext(t *testing.T) {
	l := NewEndpointLimiter(Config{RequestsPerSecond: 0.001, BurstSize: 1})

	assert.NoError(t, l.Wait(context.Background(), "/search_hotels/"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "/search_hotels/"))
}
