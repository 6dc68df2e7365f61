package youtube

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/cricket-league/internal/usecase"
)

func TestClient_Stats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/videos"), r.URL.Path)
		assert.Equal(t, "yt-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"items":[
			{"id":"abc123","statistics":{"viewCount":"1200"},"contentDetails":{"duration":"PT4M13S"}},
			{"id":"def456","statistics":{"viewCount":"7"},"contentDetails":{"duration":"PT1H"}}
		]}`)
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), ClientConfig{APIKey: "yt-key", Endpoint: server.URL + "/"})
	require.NoError(t, err)

	stats, err := client.Stats(context.Background(), []string{"abc123", "def456", "abc123", ""})
	require.NoError(t, err)
	assert.Equal(t, usecase.VideoStats{ViewCount: 1200, DurationSeconds: 253}, stats["abc123"])
	assert.Equal(t, usecase.VideoStats{ViewCount: 7, DurationSeconds: 3600}, stats["def456"])
}

func TestClient_StatsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"quotaExceeded"}}`)
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), ClientConfig{APIKey: "yt-key", Endpoint: server.URL + "/"})
	require.NoError(t, err)

	_, err = client.Stats(context.Background(), []string{"abc123"})
	assert.Error(t, err)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), ClientConfig{})
	assert.True(t, errors.Is(err, usecase.ErrNotConfigured))
}

func TestParseDuration(t *testing.T) {
	tests := map[string]int{
		"PT4M13S":  253,
		"PT1H":     3600,
		"PT1H2M3S": 3723,
		"P1DT5M":   86700,
		"PT0S":     0,
		"pt30s":    30,
		"":         0,
		"4:13":     0,
		"PT4X":     0,
		"PT4":      0,
		"PTM":      0,
	}
	for in, want := range tests {
		if got := ParseDuration(in); got != want {
			t.Fatalf("ParseDuration(%q)=%d want=%d", in, got, want)
		}
	}
}
