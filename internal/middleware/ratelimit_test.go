package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigstage/music-event-backend/internal/config"
)

func limiterConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled: true,
		Limit:   2,
		Window:  time.Minute,
		Prefix:  "rl",
	}
}

func runLimited(t *testing.T, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	// httptest requests carry RemoteAddr 192.0.2.1:1234.
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectEvalSha(limiterScript.Hash(), []string{"rl:192.0.2.1"}, int64(60000)).
		SetVal(int64(1))

	rec := runLimited(t, RateLimit(limiterConfig(), rdb))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectEvalSha(limiterScript.Hash(), []string{"rl:192.0.2.1"}, int64(60000)).
		SetVal(int64(3))

	rec := runLimited(t, RateLimit(limiterConfig(), rdb))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRateLimitFailsOpenOnRedisError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectEvalSha(limiterScript.Hash(), []string{"rl:192.0.2.1"}, int64(60000)).
		SetErr(assert.AnError)

	rec := runLimited(t, RateLimit(limiterConfig(), rdb))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitDisabledIsPassThrough(t *testing.T) {
	cfg := limiterConfig()
	cfg.Enabled = false
	rec := runLimited(t, RateLimit(cfg, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
