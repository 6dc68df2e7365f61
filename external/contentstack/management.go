package contentstack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/cricket-league/internal/platform/logging"
	"github.com/riskibarqy/cricket-league/internal/platform/resilience"
	"github.com/riskibarqy/cricket-league/internal/usecase"
)

type ManagementConfig struct {
	HTTPClient      *http.Client
	BaseURL         string
	Region          string
	APIKey          string
	ManagementToken string
	Environment     string
	Locale          string
	Timeout         time.Duration
	Logger          *logging.Logger
	CircuitBreaker  resilience.BreakerConfig
	Clock           clockwork.Clock
}

// ManagementClient writes entries through the Content Management API.
// Writes are never retried or collapsed.
type ManagementClient struct {
	transport
	baseURL     string
	apiKey      string
	token       string
	environment string
	locale      string
}

func NewManagementClient(cfg ManagementConfig) *ManagementClient {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = RegionHosts(cfg.Region).Management
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "production"
	}
	locale := strings.TrimSpace(cfg.Locale)
	if locale == "" {
		locale = "en-us"
	}

	breaker := resilience.NewBreaker(cfg.CircuitBreaker, cfg.Clock)
	apiKey := strings.TrimSpace(cfg.APIKey)
	token := strings.TrimSpace(cfg.ManagementToken)

	return &ManagementClient{
		transport: transport{
			name:       "management",
			httpClient: newHTTPClient(cfg.HTTPClient, cfg.Timeout),
			guard:      resilience.NewGuard(breaker, cfg.CircuitBreaker.Enabled, isTransient),
			logger:     logger.Named("contentstack"),
			secrets:    []string{apiKey, token},
		},
		baseURL:     baseURL,
		apiKey:      apiKey,
		token:       token,
		environment: environment,
		locale:      locale,
	}
}

func (c *ManagementClient) Configured() bool {
	return c.apiKey != "" && c.token != ""
}

// CreateEntry stores a new entry and returns its UID.
func (c *ManagementClient) CreateEntry(ctx context.Context, contentType string, fields map[string]any) (string, error) {
	raw, err := c.write(ctx, http.MethodPost, c.entriesPath(contentType), map[string]any{"entry": fields})
	if err != nil {
		return "", fmt.Errorf("create %s entry: %w", contentType, err)
	}

	var payload entryEnvelope
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode created %s entry: %w", contentType, err)
	}
	if strings.TrimSpace(payload.Entry.UID) == "" {
		return "", crerr.Newf("create %s entry: response has no uid", contentType)
	}
	return payload.Entry.UID, nil
}

// PublishEntry publishes an entry to the configured environment and locale.
func (c *ManagementClient) PublishEntry(ctx context.Context, contentType, uid string) error {
	if strings.TrimSpace(uid) == "" {
		return fmt.Errorf("%w: entry uid is required", usecase.ErrInvalidInput)
	}
	body := map[string]any{
		"entry": map[string]any{
			"environments": []string{c.environment},
			"locales":      []string{c.locale},
		},
	}
	_, err := c.write(ctx, http.MethodPost, c.entriesPath(contentType)+"/"+url.PathEscape(uid)+"/publish", body)
	if err != nil {
		return fmt.Errorf("publish %s entry uid=%s: %w", contentType, uid, err)
	}
	return nil
}

func (c *ManagementClient) entriesPath(contentType string) string {
	return "/v3/content_types/" + url.PathEscape(strings.TrimSpace(contentType)) + "/entries"
}

func (c *ManagementClient) write(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: contentstack management credentials are missing", usecase.ErrNotConfigured)
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return nil, crerr.Wrap(err, "marshal entry payload")
	}

	return c.do(ctx, request{
		method: method,
		url:    c.baseURL + path + "?locale=" + url.QueryEscape(c.locale),
		headers: map[string]string{
			"api_key":       c.apiKey,
			"authorization": c.token,
		},
		body: body,
	})
}
