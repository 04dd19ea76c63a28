package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every tunable for the ingestion and processing services.
// All values come from environment variables with sane defaults.
type Config struct {
	HNAPIBaseURL       string
	HNSearchAPIBaseURL string
	HNAPITimeout       time.Duration
	HNCommentLimit     int

	RedditBaseURL   string
	RedditUserAgent string
	RedditTimeout   time.Duration
	Subreddits      []string
	Keywords        []string
	PostLimit       int
	AgeFilterHours  int

	CompanyPages   []CompanyPage
	CompanyTimeout time.Duration

	PollingInterval time.Duration
	MaxRetries      int
	RetryDelay      time.Duration

	NATSURL         string
	NATSConnTimeout time.Duration

	ClickHouseDSN          string
	ClickHouseMaxOpenConns int
	ClickHouseMaxIdleConns int
	ClickHouseConnMaxLife  time.Duration
	ClickHouseDialTimeout  time.Duration
	ClickHouseQueryTimeout time.Duration
	ClickHouseUsername     string
	ClickHousePassword     string
	ClickHouseDatabase     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	ArchiveAfterDays int

	TracingEnabled bool
	OTLPEndpoint   string
}

// CompanyPage is one monitored career page.
type CompanyPage struct {
	Name string
	URL  string
}

func LoadConfig() (*Config, error) {
	config := &Config{
		HNAPIBaseURL:       getEnvString("HN_API_BASE_URL", "https://hacker-news.firebaseio.com/v0"),
		HNSearchAPIBaseURL: getEnvString("HN_SEARCH_API_BASE_URL", "https://hn.algolia.com/api/v1"),
		HNAPITimeout:       getEnvDuration("HN_API_TIMEOUT", 10*time.Second),
		HNCommentLimit:     getEnvInt("HN_COMMENT_LIMIT", 500),

		RedditBaseURL:   getEnvString("REDDIT_BASE_URL", "https://www.reddit.com"),
		RedditUserAgent: getEnvString("REDDIT_USER_AGENT", "redbot/1.0"),
		RedditTimeout:   getEnvDuration("REDDIT_TIMEOUT", 10*time.Second),
		Subreddits:      getEnvStrings("SUBREDDITS", []string{"forhire", "jobbit", "remotejs", "jobopenings"}),
		Keywords:        getEnvStrings("KEYWORDS", []string{"hiring", "developer", "engineer", "remote"}),
		PostLimit:       getEnvInt("POST_LIMIT", 100),
		AgeFilterHours:  getEnvInt("AGE_FILTER_HOURS", 24),

		CompanyPages:   parseCompanyPages(getEnvString("COMPANY_PAGES", "")),
		CompanyTimeout: getEnvDuration("COMPANY_TIMEOUT", 10*time.Second),

		PollingInterval: getEnvDuration("POLLING_INTERVAL", 15*time.Minute),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("RETRY_DELAY", 30*time.Second),

		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		ClickHouseDSN:          getEnvString("CLICKHOUSE_DSN", "localhost:9000"),
		ClickHouseMaxOpenConns: getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 10),
		ClickHouseMaxIdleConns: getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 5),
		ClickHouseConnMaxLife:  getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", time.Hour),
		ClickHouseDialTimeout:  getEnvDuration("CLICKHOUSE_DIAL_TIMEOUT", 30*time.Second),
		ClickHouseQueryTimeout: getEnvDuration("CLICKHOUSE_QUERY_TIMEOUT", time.Minute),
		ClickHouseUsername:     getEnvString("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword:     getEnvString("CLICKHOUSE_PASSWORD", ""),
		ClickHouseDatabase:     getEnvString("CLICKHOUSE_DATABASE", "redbot"),

		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 24*time.Hour),

		ArchiveAfterDays: getEnvInt("ARCHIVE_AFTER_DAYS", 90),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnvString("OTLP_ENDPOINT", "localhost:4317"),
	}

	return config, nil
}

// parseCompanyPages reads "Name=URL,Name=URL" pairs.
func parseCompanyPages(raw string) []CompanyPage {
	if raw == "" {
		return nil
	}

	var pages []CompanyPage
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			continue
		}
		pages = append(pages, CompanyPage{Name: parts[0], URL: parts[1]})
	}
	return pages
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvStrings(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		var values []string
		for _, v := range strings.Split(value, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			return values
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
