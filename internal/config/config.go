// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	Billing   BillingConfig   `koanf:"billing"`
	Payment   PaymentConfig   `koanf:"payment"`
	News      NewsConfig      `koanf:"news"`
	Storage   StorageConfig   `koanf:"storage"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	DrainDelay      time.Duration `koanf:"drain_delay"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath    string        `koanf:"private_key_path"`
	PublicKeyPath     string        `koanf:"public_key_path"`
	AccessTokenExpire time.Duration `koanf:"access_token_expire"`
	Issuer            string        `koanf:"issuer"`
	Audience          string        `koanf:"audience"`
}

// BillingConfig is the single source of the tier breakpoint table.
// Both user-tier derivation and course-tier derivation read these two
// values; there is deliberately no second copy anywhere.
type BillingConfig struct {
	IntermediateBreakpoint int64  `koanf:"intermediate_breakpoint"`
	PremiumBreakpoint      int64  `koanf:"premium_breakpoint"`
	Currency               string `koanf:"currency"`
}

type PaymentConfig struct {
	KeyID     string        `koanf:"key_id"`
	KeySecret string        `koanf:"key_secret"`
	BaseURL   string        `koanf:"base_url"`
	Timeout   time.Duration `koanf:"timeout"`
}

type NewsConfig struct {
	APIKey      string        `koanf:"api_key"`
	BaseURL     string        `koanf:"base_url"`
	Query       string        `koanf:"query"`
	Language    string        `koanf:"language"`
	PageSize    int           `koanf:"page_size"`
	HeadlineCap int           `koanf:"headline_cap"`
	Timeout     time.Duration `koanf:"timeout"`
}

type StorageConfig struct {
	Endpoint        string        `koanf:"endpoint"`
	Region          string        `koanf:"region"`
	Bucket          string        `koanf:"bucket"`
	AccessKeyID     string        `koanf:"access_key_id"`
	SecretAccessKey string        `koanf:"secret_access_key"`
	PresignExpire   time.Duration `koanf:"presign_expire"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		k := koanf.New(".")

		if err := loadDefaults(k); err != nil {
			loadErr = fmt.Errorf("load defaults: %w", err)
			return
		}

		if configPath != "" {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				loadErr = fmt.Errorf("load config file: %w", err)
				return
			}
		}

		if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
			loadErr = fmt.Errorf("load env vars: %w", err)
			return
		}

		cfg = &Config{}
		if err := k.Unmarshal("", cfg); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if err := validate(cfg); err != nil {
			loadErr = fmt.Errorf("validate config: %w", err)
			return
		}
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call Load() first")
	}
	return cfg
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "Prompt Academy API",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.request_timeout":  "60s",
		"server.shutdown_timeout": "15s",
		"server.drain_delay":      "3s",

		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,

		// Access tokens expire after one day.
		"jwt.access_token_expire": "24h",
		"jwt.issuer":              "platform-api",
		"jwt.audience":            "platform-api-clients",
		"jwt.private_key_path":    "keys/private.pem",
		"jwt.public_key_path":     "keys/public.pem",

		"billing.intermediate_breakpoint": 200,
		"billing.premium_breakpoint":      1000,
		"billing.currency":                "INR",

		"payment.base_url": "https://api.razorpay.com/v1",
		"payment.timeout":  "10s",

		"news.base_url":     "https://newsapi.org/v2",
		"news.query":        "artificial intelligence OR AI OR machine learning OR deep learning OR neural network OR ChatGPT OR OpenAI OR Google AI OR Microsoft AI",
		"news.language":     "en",
		"news.page_size":    60,
		"news.headline_cap": 30,
		"news.timeout":      "10s",

		"storage.region":         "us-east-1",
		"storage.bucket":         "platform-media",
		"storage.presign_expire": "15m",

		"rate_limit.requests": 100,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    20,

		"cors.allowed_origins": []string{"http://localhost:3000"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "platform-api",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":              "database.url",
	"REDIS_URL":                 "redis.url",
	"ENVIRONMENT":               "app.environment",
	"HOST":                      "server.host",
	"PORT":                      "server.port",
	"LOG_LEVEL":                 "log.level",
	"LOG_FORMAT":                "log.format",
	"JWT_PRIVATE_KEY_PATH":      "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":       "jwt.public_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE":   "jwt.access_token_expire",
	"JWT_ISSUER":                "jwt.issuer",
	"JWT_AUDIENCE":              "jwt.audience",
	"BILLING_INTERMEDIATE":      "billing.intermediate_breakpoint",
	"BILLING_PREMIUM":           "billing.premium_breakpoint",
	"BILLING_CURRENCY":          "billing.currency",
	"RAZORPAY_KEY_ID":           "payment.key_id",
	"RAZORPAY_KEY_SECRET":       "payment.key_secret",
	"PAYMENT_BASE_URL":          "payment.base_url",
	"NEWS_API":                  "news.api_key",
	"NEWS_BASE_URL":             "news.base_url",
	"NEWS_HEADLINE_CAP":         "news.headline_cap",
	"S3_ENDPOINT":               "storage.endpoint",
	"S3_REGION":                 "storage.region",
	"S3_BUCKET":                 "storage.bucket",
	"S3_ACCESS_KEY_ID":          "storage.access_key_id",
	"S3_SECRET_ACCESS_KEY":      "storage.secret_access_key",
	"RATE_LIMIT_REQUESTS":       "rate_limit.requests",
	"RATE_LIMIT_WINDOW":         "rate_limit.window",
	"RATE_LIMIT_BURST":          "rate_limit.burst",
	"OTEL_ENDPOINT":             "otel.endpoint",
	"OTEL_SERVICE_NAME":         "otel.service_name",
	"OTEL_ENABLED":              "otel.enabled",
	"OTEL_INSECURE":             "otel.insecure",
	"OTEL_SAMPLE_RATE":          "otel.sample_rate",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.JWT.PrivateKeyPath == "" {
		return fmt.Errorf("JWT_PRIVATE_KEY_PATH is required")
	}

	if c.JWT.PublicKeyPath == "" {
		return fmt.Errorf("JWT_PUBLIC_KEY_PATH is required")
	}

	if c.Billing.IntermediateBreakpoint <= 0 {
		return fmt.Errorf("billing.intermediate_breakpoint must be positive")
	}

	if c.Billing.PremiumBreakpoint <= c.Billing.IntermediateBreakpoint {
		return fmt.Errorf(
			"billing.premium_breakpoint must exceed billing.intermediate_breakpoint",
		)
	}

	if c.News.HeadlineCap <= 0 {
		return fmt.Errorf("news.headline_cap must be positive")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
