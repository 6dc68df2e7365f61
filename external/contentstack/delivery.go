package contentstack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/cricket-league/internal/platform/logging"
	"github.com/riskibarqy/cricket-league/internal/platform/resilience"
	"github.com/riskibarqy/cricket-league/internal/usecase"
)

type DeliveryConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Region         string
	APIKey         string
	DeliveryToken  string
	Environment    string
	Locale         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
	Clock          clockwork.Clock
}

// DeliveryClient reads published entries from the Content Delivery API.
type DeliveryClient struct {
	transport
	baseURL     string
	apiKey      string
	token       string
	environment string
	locale      string
}

func NewDeliveryClient(cfg DeliveryConfig) *DeliveryClient {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = RegionHosts(cfg.Region).Delivery
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "production"
	}

	breaker := resilience.NewBreaker(cfg.CircuitBreaker, cfg.Clock)
	apiKey := strings.TrimSpace(cfg.APIKey)
	token := strings.TrimSpace(cfg.DeliveryToken)

	return &DeliveryClient{
		transport: transport{
			name:       "delivery",
			httpClient: newHTTPClient(cfg.HTTPClient, cfg.Timeout),
			guard:      resilience.NewGuard(breaker, cfg.CircuitBreaker.Enabled, isTransient),
			logger:     logger.Named("contentstack"),
			secrets:    []string{apiKey, token},
		},
		baseURL:     baseURL,
		apiKey:      apiKey,
		token:       token,
		environment: environment,
		locale:      strings.TrimSpace(cfg.Locale),
	}
}

func (c *DeliveryClient) Configured() bool {
	return c.apiKey != "" && c.token != ""
}

// Entries returns the raw entries of one content type, with the requested
// references expanded inline.
func (c *DeliveryClient) Entries(ctx context.Context, contentType string, query usecase.ContentQuery) ([]map[string]any, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: contentstack delivery credentials are missing", usecase.ErrNotConfigured)
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return nil, fmt.Errorf("%w: content type is required", usecase.ErrInvalidInput)
	}

	fullURL := c.entriesURL(contentType, query)
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		url:    fullURL,
		headers: map[string]string{
			"api_key":      c.apiKey,
			"access_token": c.token,
		},
		flightKey: fullURL,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s entries: %w", contentType, err)
	}

	var payload entriesEnvelope
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode %s entries: %w", contentType, err)
	}
	if payload.Entries == nil {
		return []map[string]any{}, nil
	}
	return payload.Entries, nil
}

func (c *DeliveryClient) entriesURL(contentType string, query usecase.ContentQuery) string {
	values := url.Values{}
	values.Set("environment", c.environment)

	locale := strings.TrimSpace(query.Locale)
	if locale == "" {
		locale = c.locale
	}
	if locale != "" {
		values.Set("locale", locale)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	for _, ref := range query.Include {
		if ref = strings.TrimSpace(ref); ref != "" {
			values.Add("include[]", ref)
		}
	}

	return c.baseURL + "/v3/content_types/" + url.PathEscape(contentType) + "/entries?" + values.Encode()
}
