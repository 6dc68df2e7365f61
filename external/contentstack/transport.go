package contentstack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/cricket-league/internal/platform/logging"
	"github.com/riskibarqy/cricket-league/internal/platform/resilience"
	"github.com/riskibarqy/cricket-league/internal/usecase"
)

const maxResponseBytes = 6 << 20

var errContentstackTransient = crerr.New("contentstack transient failure")

// transport is the request plumbing shared by the delivery and management clients.
type transport struct {
	name       string
	httpClient *http.Client
	guard      *resilience.Guard
	logger     *logging.Logger
	secrets    []string
}

type request struct {
	method  string
	url     string
	headers map[string]string
	body    []byte
	// flightKey collapses identical concurrent reads; empty for writes.
	flightKey string
}

func newHTTPClient(client *http.Client, timeout time.Duration) *http.Client {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func (t *transport) do(ctx context.Context, req request) ([]byte, error) {
	out, err := t.guard.Do(ctx, req.flightKey, func(ctx context.Context) (any, error) {
		return t.execute(ctx, req)
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			t.logger.WarnContext(ctx, "contentstack circuit breaker rejected request", "client", t.name, "state", t.guard.State())
			return nil, fmt.Errorf("%w: content service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (t *transport) execute(ctx context.Context, req request) ([]byte, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, body)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	httpReq.Header.Set("accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for key, value := range req.headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		callErr := fmt.Errorf("%w: send request: %s", errContentstackTransient, t.sanitize(err.Error()))
		t.logger.WarnContext(ctx, "contentstack request failed", "client", t.name, "method", req.method, "url", req.url, "error", callErr)
		return nil, callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errContentstackTransient, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	callErr := fmt.Errorf("contentstack status=%d message=%s", resp.StatusCode, errorMessage(raw))
	if isRetryableStatus(resp.StatusCode) {
		callErr = fmt.Errorf("%w: %v", errContentstackTransient, callErr)
	}
	t.logger.WarnContext(ctx, "contentstack request failed", "client", t.name, "method", req.method, "url", req.url, "status", resp.StatusCode)
	return nil, callErr
}

func (t *transport) sanitize(value string) string {
	for _, secret := range t.secrets {
		if secret != "" {
			value = strings.ReplaceAll(value, secret, "REDACTED")
		}
	}
	return value
}

func isTransient(err error) bool {
	return crerr.Is(err, errContentstackTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
