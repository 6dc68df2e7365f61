package newsdata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/cricket-league/internal/platform/logging"
	"github.com/riskibarqy/cricket-league/internal/platform/resilience"
	"github.com/riskibarqy/cricket-league/internal/usecase"
)

const (
	defaultBaseURL = "https://newsdata.io"

	// DefaultPageSize is the largest page free-plan keys accept.
	DefaultPageSize = 10
	// MaxPageSize is the paid-plan ceiling.
	MaxPageSize = 50
)

var errNewsDataTransient = crerr.New("newsdata transient failure")

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Query          string
	Language       string
	PageSize       int
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
	Clock          clockwork.Clock
}

// Client reads the latest headlines from newsdata.io.
type Client struct {
	http     *fasthttp.Client
	baseURL  string
	apiKey   string
	query    string
	language string
	pageSize int
	timeout  time.Duration
	logger   *logging.Logger
	guard    *resilience.Guard
	redactor *strings.Replacer
}

type latestEnvelope struct {
	Status  string `json:"status"`
	Results any    `json:"results"`
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	query := strings.TrimSpace(cfg.Query)
	if query == "" {
		query = "cricket"
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)

	redactor := strings.NewReplacer()
	if apiKey != "" {
		redactor = strings.NewReplacer(apiKey, "REDACTED")
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "cricket-league",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
		},
		baseURL:  baseURL,
		apiKey:   apiKey,
		query:    query,
		language: strings.TrimSpace(cfg.Language),
		pageSize: pageSize,
		timeout:  timeout,
		logger:   logger.Named("newsdata"),
		guard: resilience.NewGuard(
			resilience.NewBreaker(cfg.CircuitBreaker, cfg.Clock),
			cfg.CircuitBreaker.Enabled,
			func(err error) bool { return crerr.Is(err, errNewsDataTransient) },
		),
		redactor: redactor,
	}
}

// Latest returns raw headline objects. A positive limit below the configured
// page size shrinks the request; the page size is never exceeded.
func (c *Client) Latest(ctx context.Context, limit int) ([]map[string]any, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: newsdata api key is missing", usecase.ErrNotConfigured)
	}

	fullURL := c.latestURL(limit)
	out, err := c.guard.Do(ctx, fullURL, func(ctx context.Context) (any, error) {
		return c.fetch(ctx, fullURL)
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "newsdata circuit breaker rejected request", "state", c.guard.State())
			return nil, fmt.Errorf("%w: news feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var payload latestEnvelope
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode newsdata payload: %w", err)
	}
	if !strings.EqualFold(payload.Status, "success") {
		return nil, crerr.Newf("newsdata status=%q message=%s", payload.Status, resultMessage(payload.Results))
	}

	items, _ := payload.Results.([]any)
	headlines := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			headlines = append(headlines, m)
		}
	}
	if limit > 0 && len(headlines) > limit {
		headlines = headlines[:limit]
	}
	return headlines, nil
}

func (c *Client) latestURL(limit int) string {
	values := url.Values{}
	values.Set("apikey", c.apiKey)
	values.Set("q", c.query)
	if c.language != "" {
		values.Set("language", c.language)
	}
	size := c.pageSize
	if limit > 0 {
		size = min(limit, size)
	}
	values.Set("size", strconv.Itoa(size))
	return c.baseURL + "/api/1/latest?" + values.Encode()
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		callErr := fmt.Errorf("%w: send request: %s", errNewsDataTransient, c.redactor.Replace(err.Error()))
		c.logger.WarnContext(ctx, "newsdata request failed", "error", callErr)
		return nil, callErr
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	if status >= 200 && status < 300 {
		return body, nil
	}

	callErr := fmt.Errorf("newsdata status=%d body=%s", status, abbreviate(body))
	if status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError {
		callErr = fmt.Errorf("%w: %v", errNewsDataTransient, callErr)
	}
	c.logger.WarnContext(ctx, "newsdata request failed", "status", status)
	return nil, callErr
}

func resultMessage(results any) string {
	if m, ok := results.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok {
			return msg
		}
	}
	return "unknown error"
}

func abbreviate(raw []byte) string {
	const max = 512
	text := strings.TrimSpace(string(raw))
	if len(text) <= max {
		return text
	}
	return text[:max] + "...(truncated)"
}
