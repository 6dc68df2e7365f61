package redis

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "pref"

// NewClient parses a redis:// or rediss:// URL and verifies the connection.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, crerr.Wrap(err, "parse REDIS_URL")
	}
	opts.PoolSize = 20
	opts.MinIdleConns = 2
	opts.MaxRetries = 2
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrap(err, "connect redis")
	}
	return client, nil
}

// PreferenceStore persists visitor preferences as plain string keys that
// expire after ttl of inactivity. Reads and writes both reset the expiry.
type PreferenceStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewPreferenceStore(client *goredis.Client, ttl time.Duration) *PreferenceStore {
	return &PreferenceStore{client: client, ttl: ttl}
}

func preferenceKey(visitorID, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, visitorID, key)
}

func (s *PreferenceStore) Get(ctx context.Context, visitorID, key string) (string, bool, error) {
	k := preferenceKey(visitorID, key)
	var cmd *goredis.StringCmd
	if s.ttl > 0 {
		cmd = s.client.GetEx(ctx, k, s.ttl)
	} else {
		cmd = s.client.Get(ctx, k)
	}
	value, err := cmd.Result()
	if crerr.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, crerr.Wrap(err, "redis get preference")
	}
	return value, true, nil
}

// Set writes the value and refreshes its expiry.
func (s *PreferenceStore) Set(ctx context.Context, visitorID, key, value string) error {
	if err := s.client.Set(ctx, preferenceKey(visitorID, key), value, s.ttl).Err(); err != nil {
		return crerr.Wrap(err, "redis set preference")
	}
	return nil
}

func (s *PreferenceStore) Remove(ctx context.Context, visitorID, key string) error {
	if err := s.client.Del(ctx, preferenceKey(visitorID, key)).Err(); err != nil {
		return crerr.Wrap(err, "redis delete preference")
	}
	return nil
}
