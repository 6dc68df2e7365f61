package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/riskibarqy/cricket-league/internal/platform/logging"
	"github.com/riskibarqy/cricket-league/internal/usecase"
)

// videos.list accepts at most 50 ids per call.
const maxIDsPerCall = 50

type ClientConfig struct {
	APIKey string
	// Endpoint overrides the API host, used against local test servers.
	Endpoint string
	Timeout  time.Duration
	Logger   *logging.Logger
}

// Client reads public video statistics from the YouTube Data API.
type Client struct {
	service *yt.Service
	timeout time.Duration
	logger  *logging.Logger
}

func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: youtube api key is missing", usecase.ErrNotConfigured)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	opts := []option.ClientOption{option.WithAPIKey(strings.TrimSpace(cfg.APIKey))}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, crerr.Wrap(err, "create youtube service")
	}
	return &Client{service: service, timeout: timeout, logger: logger.Named("youtube")}, nil
}

// Stats returns view counts and durations keyed by video id. Ids the API
// does not know are absent from the result.
func (c *Client) Stats(ctx context.Context, videoIDs []string) (map[string]usecase.VideoStats, error) {
	ids := uniqueIDs(videoIDs)
	out := make(map[string]usecase.VideoStats, len(ids))

	for start := 0; start < len(ids); start += maxIDsPerCall {
		end := min(start+maxIDsPerCall, len(ids))

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.service.Videos.List([]string{"statistics", "contentDetails"}).
			Id(ids[start:end]...).
			MaxResults(maxIDsPerCall).
			Context(callCtx).
			Do()
		cancel()
		if err != nil {
			c.logger.WarnContext(ctx, "youtube videos.list failed", "ids", end-start, "error", err)
			return nil, crerr.Wrap(err, "youtube videos.list")
		}

		for _, item := range resp.Items {
			if item == nil || item.Id == "" {
				continue
			}
			var stats usecase.VideoStats
			if item.Statistics != nil {
				stats.ViewCount = int64(item.Statistics.ViewCount)
			}
			if item.ContentDetails != nil {
				stats.DurationSeconds = ParseDuration(item.ContentDetails.Duration)
			}
			out[item.Id] = stats
		}
	}
	return out, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
