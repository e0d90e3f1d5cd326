package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Session   SessionConfig   `mapstructure:"session"`
	Callback  CallbackConfig  `mapstructure:"callback"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig configures API-key authentication. An empty key disables
// auth, which is only acceptable in development.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// EngineConfig holds extraction-engine policy knobs.
// MinBankAccountDigits is the minimum raw digit length for a bank account
// candidate to survive conflict resolution; Indian account numbers run
// 9 to 18 digits depending on the bank, so the floor is configurable.
type EngineConfig struct {
	MinBankAccountDigits int    `mapstructure:"min_bank_account_digits"`
	CountryCodePrefix    string `mapstructure:"country_code_prefix"`
	MaxInputLength       int    `mapstructure:"max_input_length"`
}

// ScoringConfig holds the additive risk-score weights and tier thresholds
type ScoringConfig struct {
	MultiplePhones    int `mapstructure:"multiple_phones"`
	PhishingLinks     int `mapstructure:"phishing_links"`
	UPIIDs            int `mapstructure:"upi_ids"`
	KeywordsLow       int `mapstructure:"keywords_low"`
	KeywordsModerate  int `mapstructure:"keywords_moderate"`
	KeywordsHigh      int `mapstructure:"keywords_high"`
	CredentialRequest int `mapstructure:"credential_request"`
	URLShortener      int `mapstructure:"url_shortener"`
	SuspiciousTLD     int `mapstructure:"suspicious_tld"`

	HighThreshold   int `mapstructure:"high_threshold"`
	MediumThreshold int `mapstructure:"medium_threshold"`

	// Accumulated score at which a session is flagged as a confirmed scam
	ScamScoreThreshold int `mapstructure:"scam_score_threshold"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// CallbackConfig configures outbound delivery of finalized reports
type CallbackConfig struct {
	Enabled              bool          `mapstructure:"enabled"`
	URL                  string        `mapstructure:"url"`
	Timeout              time.Duration `mapstructure:"timeout"`
	MessageThreshold     int           `mapstructure:"message_threshold"`
	MinMessagesWithIntel int           `mapstructure:"min_messages_with_intel"`
}

// Load reads configuration from file and environment variables.
// A missing config file is not an error; defaults and env vars apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/honeypot-lab")
	}

	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("HONEYPOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("redis.host", "HONEYPOT_REDIS_HOST")
	v.BindEnv("redis.port", "HONEYPOT_REDIS_PORT")
	v.BindEnv("redis.password", "HONEYPOT_REDIS_PASSWORD")
	v.BindEnv("database.enabled", "HONEYPOT_DATABASE_ENABLED")
	v.BindEnv("database.host", "HONEYPOT_DATABASE_HOST")
	v.BindEnv("database.port", "HONEYPOT_DATABASE_PORT")
	v.BindEnv("database.user", "HONEYPOT_DATABASE_USER")
	v.BindEnv("database.password", "HONEYPOT_DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "HONEYPOT_DATABASE_DBNAME")
	v.BindEnv("auth.api_key", "HONEYPOT_AUTH_API_KEY")
	v.BindEnv("callback.url", "HONEYPOT_CALLBACK_URL")
	v.BindEnv("app.environment", "HONEYPOT_APP_ENVIRONMENT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "honeypot-lab")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "honeypot:")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type", "X-API-Key"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests_per_minute", 120)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.time_format", time.RFC3339)

	v.SetDefault("engine.min_bank_account_digits", 9)
	v.SetDefault("engine.country_code_prefix", "91")
	v.SetDefault("engine.max_input_length", 4096)

	v.SetDefault("scoring.multiple_phones", 30)
	v.SetDefault("scoring.phishing_links", 40)
	v.SetDefault("scoring.upi_ids", 20)
	v.SetDefault("scoring.keywords_low", 15)
	v.SetDefault("scoring.keywords_moderate", 30)
	v.SetDefault("scoring.keywords_high", 50)
	v.SetDefault("scoring.credential_request", 40)
	v.SetDefault("scoring.url_shortener", 25)
	v.SetDefault("scoring.suspicious_tld", 35)
	v.SetDefault("scoring.high_threshold", 70)
	v.SetDefault("scoring.medium_threshold", 40)
	v.SetDefault("scoring.scam_score_threshold", 40)

	v.SetDefault("session.ttl", 24*time.Hour)

	v.SetDefault("callback.enabled", false)
	v.SetDefault("callback.timeout", 10*time.Second)
	v.SetDefault("callback.message_threshold", 6)
	v.SetDefault("callback.min_messages_with_intel", 2)
}
