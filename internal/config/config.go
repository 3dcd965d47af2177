package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceName    string `yaml:"service_name"`
	ServiceVersion string `yaml:"service_version"`
	Port           string `yaml:"port"`

	CoinbaseAPIURL      string `yaml:"coinbase_api_url"`
	CoinbaseExchangeURL string `yaml:"coinbase_exchange_url"`
	UpstreamTimeoutSecs int    `yaml:"upstream_timeout_secs"`

	RateLimitPerMinute int `yaml:"rate_limit_requests_per_minute"`
	RateLimitPerHour   int `yaml:"rate_limit_requests_per_hour"`

	CacheEnabled    bool   `yaml:"cache_enabled"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	RedisURL        string `yaml:"redis_url"`

	AnalysisTrendThreshold float64  `yaml:"analysis_trend_threshold"`
	CORSAllowedOrigins     []string `yaml:"cors_allowed_origins"`

	TelegramBotToken string `yaml:"telegram_bot_token"`

	MCPTransport          string `yaml:"mcp_transport"`
	MCPHTTPEnabled        bool   `yaml:"mcp_http_enabled"`
	MCPHTTPBind           string `yaml:"mcp_http_bind"`
	MCPHTTPPort           int    `yaml:"mcp_http_port"`
	MCPRequestTimeoutSecs int    `yaml:"mcp_request_timeout_secs"`
	MCPRateLimitPerMin    int    `yaml:"mcp_rate_limit_per_min"`

	TUIPairs []string `yaml:"tui_pairs"`
}

func defaults() *Config {
	return &Config{
		ServiceName:            "market-bridge",
		ServiceVersion:         "1.0.0",
		Port:                   "8080",
		CoinbaseAPIURL:         "https://api.coinbase.com/v2",
		CoinbaseExchangeURL:    "https://api.exchange.coinbase.com",
		UpstreamTimeoutSecs:    10,
		RateLimitPerMinute:     100,
		RateLimitPerHour:       1000,
		CacheTTLSeconds:        60,
		RedisURL:               "localhost:6379",
		AnalysisTrendThreshold: 0.005,
		MCPTransport:           "stdio",
		MCPHTTPBind:            "127.0.0.1",
		MCPHTTPPort:            8090,
		MCPRequestTimeoutSecs:  10,
		MCPRateLimitPerMin:     60,
		TUIPairs:               []string{"BTC-USD", "ETH-USD", "SOL-USD"},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE, then environment variables.
func Load() *Config {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, cfg); err != nil {
			log.Printf("Warning: ignoring CONFIG_FILE %q: %v", path, err)
		}
	}

	cfg.ServiceName = envString("SERVICE_NAME", cfg.ServiceName)
	cfg.ServiceVersion = envString("SERVICE_VERSION", cfg.ServiceVersion)
	cfg.Port = envString("PORT", cfg.Port)

	cfg.CoinbaseAPIURL = strings.TrimRight(envString("COINBASE_API_URL", cfg.CoinbaseAPIURL), "/")
	cfg.CoinbaseExchangeURL = strings.TrimRight(envString("COINBASE_EXCHANGE_URL", cfg.CoinbaseExchangeURL), "/")
	cfg.UpstreamTimeoutSecs = envPositiveInt("UPSTREAM_TIMEOUT_SECS", cfg.UpstreamTimeoutSecs)

	cfg.RateLimitPerMinute = envNonNegativeInt("RATE_LIMIT_REQUESTS_PER_MINUTE", cfg.RateLimitPerMinute)
	cfg.RateLimitPerHour = envNonNegativeInt("RATE_LIMIT_REQUESTS_PER_HOUR", cfg.RateLimitPerHour)

	cfg.CacheEnabled = envBool("CACHE_ENABLED", cfg.CacheEnabled)
	cfg.CacheTTLSeconds = envPositiveInt("CACHE_TTL_SECONDS", cfg.CacheTTLSeconds)
	cfg.RedisURL = envString("REDIS_URL", cfg.RedisURL)
	if cfg.CacheEnabled && strings.TrimSpace(os.Getenv("REDIS_URL")) == "" {
		log.Printf("Warning: REDIS_URL not set, defaulting to %s", cfg.RedisURL)
	}

	if v := strings.TrimSpace(os.Getenv("ANALYSIS_TREND_THRESHOLD")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 && n < 1 {
			cfg.AnalysisTrendThreshold = n
		} else {
			log.Printf("Warning: invalid ANALYSIS_TREND_THRESHOLD=%q, using %g", v, cfg.AnalysisTrendThreshold)
		}
	}
	if v, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok {
		cfg.CORSAllowedOrigins = splitList(v, false)
	}

	cfg.TelegramBotToken = envString("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)

	cfg.MCPTransport = strings.ToLower(envString("MCP_TRANSPORT", cfg.MCPTransport))
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Printf("Warning: unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}
	cfg.MCPHTTPEnabled = envBool("MCP_HTTP_ENABLED", cfg.MCPHTTPEnabled)
	cfg.MCPHTTPBind = envString("MCP_HTTP_BIND", cfg.MCPHTTPBind)
	cfg.MCPHTTPPort = envPositiveInt("MCP_HTTP_PORT", cfg.MCPHTTPPort)
	cfg.MCPRequestTimeoutSecs = envPositiveInt("MCP_REQUEST_TIMEOUT_SECS", cfg.MCPRequestTimeoutSecs)
	cfg.MCPRateLimitPerMin = envPositiveInt("MCP_RATE_LIMIT_PER_MIN", cfg.MCPRateLimitPerMin)

	if v := strings.TrimSpace(os.Getenv("TUI_PAIRS")); v != "" {
		if pairs := splitList(v, true); len(pairs) > 0 {
			cfg.TUIPairs = pairs
		}
	}

	return cfg
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, cfg)
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	switch {
	case v == "":
		return fallback
	case strings.EqualFold(v, "true"), v == "1":
		return true
	case strings.EqualFold(v, "false"), v == "0":
		return false
	default:
		log.Printf("Warning: invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
}

func envPositiveInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// envNonNegativeInt accepts 0 to disable a limit.
func envNonNegativeInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(raw string, upper bool) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if upper {
			item = strings.ToUpper(item)
		}
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
