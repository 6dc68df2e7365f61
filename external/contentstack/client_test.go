package contentstack

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/cricket-league/internal/platform/resilience"
	"github.com/riskibarqy/cricket-league/internal/usecase"
)

func TestDeliveryClient_EntriesSendsCredentialsAndIncludes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/content_types/match/entries", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get("api_key"))
		assert.Equal(t, "token-1", r.Header.Get("access_token"))
		assert.Equal(t, "staging", r.URL.Query().Get("environment"))
		assert.Equal(t, "en-gb", r.URL.Query().Get("locale"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, []string{"team_a", "team_b", "venue"}, r.URL.Query()["include[]"])

		_, _ = io.WriteString(w, `{"entries":[{"uid":"m1","match_number":1}]}`)
	}))
	defer server.Close()

	client := NewDeliveryClient(DeliveryConfig{
		BaseURL:       server.URL,
		APIKey:        "key-1",
		DeliveryToken: "token-1",
		Environment:   "staging",
		Locale:        "en-us",
	})

	entries, err := client.Entries(context.Background(), usecase.ContentTypeMatch, usecase.ContentQuery{
		Locale:  "en-gb",
		Limit:   50,
		Include: usecase.ReferenceIncludes[usecase.ContentTypeMatch],
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "m1", entries[0]["uid"])
}

func TestDeliveryClient_NotConfiguredMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewDeliveryClient(DeliveryConfig{BaseURL: server.URL, APIKey: "key-only"})

	_, err := client.Entries(context.Background(), usecase.ContentTypeTeam, usecase.ContentQuery{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrNotConfigured))
	assert.Zero(t, calls.Load())
}

func TestDeliveryClient_MissingEntriesIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := NewDeliveryClient(DeliveryConfig{BaseURL: server.URL, APIKey: "k", DeliveryToken: "t"})

	entries, err := client.Entries(context.Background(), usecase.ContentTypeTeam, usecase.ContentQuery{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeliveryClient_MalformedBodyFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"entries": [`)
	}))
	defer server.Close()

	client := NewDeliveryClient(DeliveryConfig{BaseURL: server.URL, APIKey: "k", DeliveryToken: "t"})

	_, err := client.Entries(context.Background(), usecase.ContentTypeTeam, usecase.ContentQuery{})
	assert.Error(t, err)
}

func TestDeliveryClient_ErrorStatusCarriesProviderMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error_message":"Access token is invalid","error_code":109}`)
	}))
	defer server.Close()

	client := NewDeliveryClient(DeliveryConfig{BaseURL: server.URL, APIKey: "k", DeliveryToken: "t"})

	_, err := client.Entries(context.Background(), usecase.ContentTypeTeam, usecase.ContentQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Access token is invalid")
	assert.False(t, isTransient(err))
}

func TestDeliveryClient_BreakerOpensOnTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	clock := clockwork.NewFakeClock()
	client := NewDeliveryClient(DeliveryConfig{
		BaseURL:       server.URL,
		APIKey:        "k",
		DeliveryToken: "t",
		Clock:         clock,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.Entries(ctx, usecase.ContentTypeTeam, usecase.ContentQuery{})
		require.Error(t, err)
		assert.True(t, isTransient(err))
	}

	_, err := client.Entries(ctx, usecase.ContentTypeTeam, usecase.ContentQuery{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrDependencyUnavailable))
	assert.Equal(t, int32(2), calls.Load())

	clock.Advance(time.Minute)
	_, _ = client.Entries(ctx, usecase.ContentTypeTeam, usecase.ContentQuery{})
	assert.Equal(t, int32(3), calls.Load())
}

func TestManagementClient_CreateAndPublish(t *testing.T) {
	var published map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-1", r.Header.Get("api_key"))
		assert.Equal(t, "mgmt-1", r.Header.Get("authorization"))
		assert.Equal(t, "en-us", r.URL.Query().Get("locale"))

		raw, _ := io.ReadAll(r.Body)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v3/content_types/player_registration/entries":
			var body map[string]map[string]any
			require.NoError(t, sonic.Unmarshal(raw, &body))
			assert.Equal(t, "Asha Rao", body["entry"]["full_name"])
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"notice":"Entry created successfully.","entry":{"uid":"blt123"}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/v3/content_types/player_registration/entries/blt123/publish":
			require.NoError(t, sonic.Unmarshal(raw, &published))
			_, _ = io.WriteString(w, `{"notice":"The requested action has been performed."}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewManagementClient(ManagementConfig{
		BaseURL:         server.URL,
		APIKey:          "key-1",
		ManagementToken: "mgmt-1",
		Environment:     "production",
	})
	ctx := context.Background()

	uid, err := client.CreateEntry(ctx, "player_registration", map[string]any{"full_name": "Asha Rao"})
	require.NoError(t, err)
	assert.Equal(t, "blt123", uid)

	require.NoError(t, client.PublishEntry(ctx, "player_registration", uid))
	entry, _ := published["entry"].(map[string]any)
	assert.Equal(t, []any{"production"}, entry["environments"])
	assert.Equal(t, []any{"en-us"}, entry["locales"])
}

func TestManagementClient_NotConfigured(t *testing.T) {
	client := NewManagementClient(ManagementConfig{APIKey: "k"})

	_, err := client.CreateEntry(context.Background(), "team", map[string]any{})
	assert.True(t, errors.Is(err, usecase.ErrNotConfigured))
	assert.False(t, client.Configured())
}

func TestManagementClient_CreateWithoutUIDFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"entry":{}}`)
	}))
	defer server.Close()

	client := NewManagementClient(ManagementConfig{BaseURL: server.URL, APIKey: "k", ManagementToken: "m"})

	_, err := client.CreateEntry(context.Background(), "team", map[string]any{"name": "x"})
	assert.Error(t, err)
}

func TestRegionHosts(t *testing.T) {
	tests := map[string]string{
		"us":       "https://cdn.contentstack.io",
		"EU":       "https://eu-cdn.contentstack.com",
		"azure-na": "https://azure-na-cdn.contentstack.com",
		"gcp-na":   "https://gcp-na-cdn.contentstack.com",
		"mars":     "https://cdn.contentstack.io",
	}
	for region, want := range tests {
		if got := RegionHosts(region).Delivery; got != want {
			t.Fatalf("RegionHosts(%q).Delivery=%q want=%q", region, got, want)
		}
	}
	if got := RegionHosts("eu").Management; got != "https://eu-api.contentstack.com" {
		t.Fatalf("unexpected eu management host %q", got)
	}
}
