package resend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/cricket-league/internal/platform/logging"
	"github.com/riskibarqy/cricket-league/internal/usecase"
)

const defaultBaseURL = "https://api.resend.com"

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client sends transactional email through the Resend API. Sends are not
// retried so a message is never delivered twice.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Name    string `json:"name"`
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger.Named("resend"),
	}
}

func (c *Client) Send(ctx context.Context, email usecase.Email) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: resend api key is missing", usecase.ErrNotConfigured)
	}
	if len(email.To) == 0 {
		return "", fmt.Errorf("%w: email recipient is required", usecase.ErrInvalidInput)
	}

	body, err := sonic.Marshal(sendRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		return "", crerr.Wrap(err, "marshal email")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", crerr.Wrap(err, "build email request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", crerr.Wrap(err, "send email")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", crerr.Wrap(err, "read email response")
	}

	var payload sendResponse
	_ = sonic.Unmarshal(raw, &payload)

	if resp.StatusCode/100 != 2 {
		message := payload.Message
		if message == "" {
			message = strings.TrimSpace(string(raw))
		}
		c.logger.WarnContext(ctx, "resend rejected email", "status", resp.StatusCode, "name", payload.Name)
		return "", crerr.Newf("resend status=%d message=%s", resp.StatusCode, message)
	}
	if payload.ID == "" {
		return "", crerr.New("resend response has no id")
	}
	return payload.ID, nil
}
