package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/cricket-league/internal/platform/logging"
	"github.com/riskibarqy/cricket-league/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

var contentstackRegions = []string{"us", "eu", "azure-na", "azure-eu", "gcp-na"}

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	CacheEnabled       bool
	CacheTTL           time.Duration
	LeagueName         string
	WebhookSecret      string

	Contentstack ContentstackConfig
	NewsData     NewsDataConfig
	Resend       ResendConfig
	YouTube      YouTubeConfig
	Redis        RedisConfig
	QStash       QStashConfig

	Uptrace   UptraceConfig
	Pyroscope PyroscopeConfig
	Pprof     PprofConfig
}

type ContentstackConfig struct {
	APIKey               string
	DeliveryToken        string
	ManagementToken      string
	Environment          string
	Region               string
	Locale               string
	DeliveryBaseURL      string
	ManagementBaseURL    string
	Timeout              time.Duration
	PublishRegistrations bool
	Circuit              resilience.BreakerConfig
}

// DeliveryConfigured reports whether reads can leave fallback mode.
func (c ContentstackConfig) DeliveryConfigured() bool {
	return c.APIKey != "" && c.DeliveryToken != ""
}

// ManagementConfigured reports whether writes can leave demo mode.
func (c ContentstackConfig) ManagementConfigured() bool {
	return c.APIKey != "" && c.ManagementToken != ""
}

type NewsDataConfig struct {
	APIKey   string
	BaseURL  string
	Query    string
	Language string
	PageSize int
	Timeout  time.Duration
	Circuit  resilience.BreakerConfig
}

type ResendConfig struct {
	APIKey  string
	BaseURL string
	From    string
	Timeout time.Duration
}

type YouTubeConfig struct {
	APIKey  string
	Timeout time.Duration
}

type RedisConfig struct {
	URL           string
	PreferenceTTL time.Duration
}

type QStashConfig struct {
	Enabled       bool
	BaseURL       string
	Token         string
	TargetBaseURL string
	Retries       int
	Circuit       resilience.BreakerConfig
}

type UptraceConfig struct {
	Enabled bool
	DSN     string
}

type PyroscopeConfig struct {
	Enabled           bool
	ServerAddress     string
	AppName           string
	AuthToken         string
	BasicAuthUser     string
	BasicAuthPassword string
	UploadRate        time.Duration
}

type PprofConfig struct {
	Enabled bool
	Addr    string
}

// Load reads the environment, after merging a local .env file when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "cricket-league-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LeagueName:         strings.TrimSpace(getEnv("LEAGUE_NAME", "Cricket League")),
		WebhookSecret:      strings.TrimSpace(getEnv("WEBHOOK_SECRET", "")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	if cfg.SwaggerEnabled, err = getEnvAsBool("SWAGGER_ENABLED", swaggerDefault); err != nil {
		return Config{}, err
	}
	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", "true"); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "60s"); err != nil {
		return Config{}, err
	}

	if cfg.Contentstack, err = loadContentstack(); err != nil {
		return Config{}, err
	}
	if cfg.NewsData, err = loadNewsData(); err != nil {
		return Config{}, err
	}
	if cfg.Resend, err = loadResend(cfg.LeagueName); err != nil {
		return Config{}, err
	}
	if cfg.YouTube, err = loadYouTube(); err != nil {
		return Config{}, err
	}
	if cfg.Redis, err = loadRedis(); err != nil {
		return Config{}, err
	}
	if cfg.QStash, err = loadQStash(cfg.WebhookSecret); err != nil {
		return Config{}, err
	}
	if cfg.Uptrace, err = loadUptrace(); err != nil {
		return Config{}, err
	}
	if cfg.Pyroscope, err = loadPyroscope(cfg.ServiceName); err != nil {
		return Config{}, err
	}
	if cfg.Pprof, err = loadPprof(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadContentstack() (ContentstackConfig, error) {
	out := ContentstackConfig{
		APIKey:            strings.TrimSpace(getEnv("CONTENTSTACK_API_KEY", "")),
		DeliveryToken:     strings.TrimSpace(getEnv("CONTENTSTACK_DELIVERY_TOKEN", "")),
		ManagementToken:   strings.TrimSpace(getEnv("CONTENTSTACK_MANAGEMENT_TOKEN", "")),
		Environment:       strings.TrimSpace(getEnv("CONTENTSTACK_ENVIRONMENT", "production")),
		Region:            strings.ToLower(strings.TrimSpace(getEnv("CONTENTSTACK_REGION", "us"))),
		Locale:            strings.TrimSpace(getEnv("CONTENTSTACK_LOCALE", "en-us")),
		DeliveryBaseURL:   strings.TrimSpace(getEnv("CONTENTSTACK_DELIVERY_BASE_URL", "")),
		ManagementBaseURL: strings.TrimSpace(getEnv("CONTENTSTACK_MANAGEMENT_BASE_URL", "")),
	}
	if !contains(contentstackRegions, out.Region) {
		return ContentstackConfig{}, fmt.Errorf("invalid CONTENTSTACK_REGION %q: valid values are %s", out.Region, strings.Join(contentstackRegions, ", "))
	}

	var err error
	if out.Timeout, err = getEnvAsDuration("CONTENTSTACK_TIMEOUT", "8s"); err != nil {
		return ContentstackConfig{}, err
	}
	if out.PublishRegistrations, err = getEnvAsBool("CONTENTSTACK_PUBLISH_REGISTRATIONS", "false"); err != nil {
		return ContentstackConfig{}, err
	}
	if out.Circuit, err = loadBreaker("CONTENTSTACK"); err != nil {
		return ContentstackConfig{}, err
	}
	return out, nil
}

func loadNewsData() (NewsDataConfig, error) {
	out := NewsDataConfig{
		APIKey:   strings.TrimSpace(getEnv("NEWSDATA_API_KEY", "")),
		BaseURL:  strings.TrimSpace(getEnv("NEWSDATA_BASE_URL", "https://newsdata.io")),
		Query:    strings.TrimSpace(getEnv("NEWSDATA_QUERY", "cricket")),
		Language: strings.TrimSpace(getEnv("NEWSDATA_LANGUAGE", "en")),
	}

	var err error
	if out.PageSize, err = getEnvAsInt("NEWSDATA_PAGE_SIZE", 10); err != nil {
		return NewsDataConfig{}, err
	}
	if out.PageSize < 1 || out.PageSize > 50 {
		return NewsDataConfig{}, fmt.Errorf("NEWSDATA_PAGE_SIZE must be between 1 and 50, got %d", out.PageSize)
	}
	if out.Timeout, err = getEnvAsDuration("NEWSDATA_TIMEOUT", "5s"); err != nil {
		return NewsDataConfig{}, err
	}
	if out.Circuit, err = loadBreaker("NEWSDATA"); err != nil {
		return NewsDataConfig{}, err
	}
	return out, nil
}

func loadResend(leagueName string) (ResendConfig, error) {
	out := ResendConfig{
		APIKey:  strings.TrimSpace(getEnv("RESEND_API_KEY", "")),
		BaseURL: strings.TrimSpace(getEnv("RESEND_BASE_URL", "https://api.resend.com")),
		From:    strings.TrimSpace(getEnv("EMAIL_FROM", leagueName+" <onboarding@resend.dev>")),
	}

	var err error
	if out.Timeout, err = getEnvAsDuration("RESEND_TIMEOUT", "10s"); err != nil {
		return ResendConfig{}, err
	}
	return out, nil
}

func loadYouTube() (YouTubeConfig, error) {
	out := YouTubeConfig{APIKey: strings.TrimSpace(getEnv("YOUTUBE_API_KEY", ""))}

	var err error
	if out.Timeout, err = getEnvAsDuration("YOUTUBE_TIMEOUT", "5s"); err != nil {
		return YouTubeConfig{}, err
	}
	return out, nil
}

func loadRedis() (RedisConfig, error) {
	out := RedisConfig{URL: strings.TrimSpace(getEnv("REDIS_URL", ""))}

	var err error
	if out.PreferenceTTL, err = getEnvAsDuration("PREFERENCE_TTL", "720h"); err != nil {
		return RedisConfig{}, err
	}
	return out, nil
}

func loadQStash(webhookSecret string) (QStashConfig, error) {
	out := QStashConfig{
		BaseURL:       strings.TrimSpace(getEnv("QSTASH_BASE_URL", "https://qstash.upstash.io")),
		Token:         strings.TrimSpace(getEnv("QSTASH_TOKEN", "")),
		TargetBaseURL: strings.TrimSpace(getEnv("QSTASH_TARGET_BASE_URL", "")),
	}

	var err error
	if out.Enabled, err = getEnvAsBool("QSTASH_ENABLED", "false"); err != nil {
		return QStashConfig{}, err
	}
	if out.Retries, err = getEnvAsInt("QSTASH_RETRIES", 3); err != nil {
		return QStashConfig{}, fmt.Errorf("parse QSTASH_RETRIES: %w", err)
	}
	if out.Retries < 0 {
		return QStashConfig{}, fmt.Errorf("QSTASH_RETRIES must be >= 0")
	}
	if out.Circuit, err = loadBreaker("QSTASH"); err != nil {
		return QStashConfig{}, err
	}

	if out.Enabled {
		if out.Token == "" {
			return QStashConfig{}, fmt.Errorf("QSTASH_TOKEN is required when QSTASH_ENABLED=true")
		}
		if out.TargetBaseURL == "" {
			return QStashConfig{}, fmt.Errorf("QSTASH_TARGET_BASE_URL is required when QSTASH_ENABLED=true")
		}
		if webhookSecret == "" {
			return QStashConfig{}, fmt.Errorf("WEBHOOK_SECRET is required when QSTASH_ENABLED=true")
		}
	}
	return out, nil
}

func loadUptrace() (UptraceConfig, error) {
	out := UptraceConfig{DSN: strings.TrimSpace(getEnv("UPTRACE_DSN", ""))}
	if out.DSN == "" {
		out.DSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	var err error
	if out.Enabled, err = getEnvAsBool("UPTRACE_ENABLED", "false"); err != nil {
		return UptraceConfig{}, err
	}
	if out.Enabled && out.DSN == "" {
		return UptraceConfig{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	return out, nil
}

func loadPyroscope(serviceName string) (PyroscopeConfig, error) {
	out := PyroscopeConfig{
		ServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		AppName:           strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", serviceName)),
		AuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		BasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		BasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
	}

	var err error
	if out.Enabled, err = getEnvAsBool("PYROSCOPE_ENABLED", "false"); err != nil {
		return PyroscopeConfig{}, err
	}
	if out.UploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return PyroscopeConfig{}, err
	}
	if out.Enabled && out.ServerAddress == "" {
		return PyroscopeConfig{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	return out, nil
}

func loadPprof() (PprofConfig, error) {
	out := PprofConfig{Addr: strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))}

	var err error
	if out.Enabled, err = getEnvAsBool("PPROF_ENABLED", "false"); err != nil {
		return PprofConfig{}, err
	}
	if out.Enabled && out.Addr == "" {
		return PprofConfig{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	return out, nil
}

// loadBreaker reads <PREFIX>_CIRCUIT_{ENABLED,FAILURE_COUNT,OPEN_TIMEOUT,HALF_OPEN_MAX_REQ}.
func loadBreaker(prefix string) (resilience.BreakerConfig, error) {
	defaults := resilience.DefaultBreakerConfig()
	var (
		out resilience.BreakerConfig
		err error
	)

	if out.Enabled, err = getEnvAsBool(prefix+"_CIRCUIT_ENABLED", strconv.FormatBool(defaults.Enabled)); err != nil {
		return out, err
	}

	key := prefix + "_CIRCUIT_FAILURE_COUNT"
	if out.FailureThreshold, err = getEnvAsInt(key, defaults.FailureThreshold); err != nil {
		return out, fmt.Errorf("parse %s: %w", key, err)
	}
	if out.FailureThreshold < 1 {
		return out, fmt.Errorf("%s must be >= 1", key)
	}

	if out.OpenTimeout, err = getEnvAsDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", defaults.OpenTimeout.String()); err != nil {
		return out, err
	}

	key = prefix + "_CIRCUIT_HALF_OPEN_MAX_REQ"
	if out.HalfOpenMaxReq, err = getEnvAsInt(key, defaults.HalfOpenMaxReq); err != nil {
		return out, fmt.Errorf("parse %s: %w", key, err)
	}
	if out.HalfOpenMaxReq < 1 {
		return out, fmt.Errorf("%s must be >= 1", key)
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvAsBool(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(getEnv(key, fallback))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration rejects zero and negative durations.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(parts[1]), "\"'")
		}
	}
	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
