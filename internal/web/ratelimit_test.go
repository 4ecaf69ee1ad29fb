package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamalux/pricing/internal/config"
	"github.com/lamalux/pricing/internal/core"
)

func TestIPRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := newIPRateLimiter(60, 1)

	assert.True(t, rl.allow("203.0.113.1:1000"))

	rl.stop()
	rl.stop()

	// The limiter still serves after the cleanup goroutine exits.
	assert.True(t, rl.allow("203.0.113.2:1000"))
}

func TestShutdown_StopsRateLimiter(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 120, Burst: 20}
	srv := NewServer(core.NewService(newFakeStore()), cfg)

	require.NotNil(t, srv.limiter)
	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case <-srv.limiter.stopCh:
	default:
		t.Fatal("cleanup stop channel not closed on shutdown")
	}

	// Shutdown is reentrant.
	require.NoError(t, srv.Shutdown(context.Background()))

	// Requests through the router keep working after shutdown of the
	// background cleanup.
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
