package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Gateway GatewayConfig
	Redis   RedisConfig
	JWT     JWTConfig
	CORS    CORSConfig
	Log     LogConfig
	Session SessionConfig
	Exports ExportsConfig
	Chatbot ChatbotConfig
	Lists   ListConfig
}

// GatewayConfig locates the remote content gateway that owns all true state.
type GatewayConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SessionConfig governs the redis-backed session store that replaces the
// dashboard's old ambient token storage.
type SessionConfig struct {
	TTL       time.Duration
	KeyPrefix string
}

// ExportsConfig toggles CSV/PDF list exports.
type ExportsConfig struct {
	Enabled bool
}

// ChatbotConfig toggles the rule-based chatbot fallback.
type ChatbotConfig struct {
	Enabled bool
}

// ListConfig tunes paginated list surfaces.
type ListConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Gateway = GatewayConfig{
		BaseURL: strings.TrimRight(v.GetString("GATEWAY_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("GATEWAY_TIMEOUT"), 15*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Session = SessionConfig{
		TTL:       parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		KeyPrefix: v.GetString("SESSION_KEY_PREFIX"),
	}

	cfg.Exports = ExportsConfig{Enabled: v.GetBool("ENABLE_EXPORTS")}
	cfg.Chatbot = ChatbotConfig{Enabled: v.GetBool("ENABLE_CHATBOT")}

	cfg.Lists = ListConfig{
		DefaultPageSize: v.GetInt("LIST_DEFAULT_PAGE_SIZE"),
		MaxPageSize:     v.GetInt("LIST_MAX_PAGE_SIZE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("GATEWAY_BASE_URL", "http://localhost:5000/api")
	v.SetDefault("GATEWAY_TIMEOUT", "15s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "nextuni-portal")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_KEY_PREFIX", "portal:session:")

	v.SetDefault("ENABLE_EXPORTS", true)
	v.SetDefault("ENABLE_CHATBOT", true)

	v.SetDefault("LIST_DEFAULT_PAGE_SIZE", 10)
	v.SetDefault("LIST_MAX_PAGE_SIZE", 100)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
