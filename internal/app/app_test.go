package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/cricket-league/internal/config"
	"github.com/riskibarqy/cricket-league/internal/platform/logging"
)

func TestNew_WithoutCredentialsServesFallback(t *testing.T) {
	a, err := New(context.Background(), config.Config{AppEnv: config.EnvDev, HTTPAddr: ":0"}, logging.NewNop())
	require.NoError(t, err)
	defer a.Close()

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages/standings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"source":"fallback"`)
}

func TestNew_RequiresAddr(t *testing.T) {
	_, err := New(context.Background(), config.Config{}, logging.NewNop())
	require.Error(t, err)
}

func TestNew_RedisPreferenceStore(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Config{
		AppEnv:   config.EnvDev,
		HTTPAddr: ":0",
		Redis:    config.RedisConfig{URL: "redis://" + mr.Addr()},
	}

	a, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/preferences/favorite-team", nil)
	req.Header.Set("X-Visitor-ID", "visitor-1")
	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.NoError(t, a.Close())
}

func TestNew_UnreachableRedisFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), config.Config{HTTPAddr: ":0", Redis: config.RedisConfig{URL: "redis://" + addr}}, logging.NewNop())
	require.Error(t, err)
}
