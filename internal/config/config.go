package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/onlyfin/service-social/pkg/database"
)

const (
	envDevelopment = "development"
	envTest        = "test"
)

// JWTConfig holds token verification settings.
type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

// KafkaConfig holds broker settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// GroupID returns the consumer group id for name.
func (k KafkaConfig) GroupID(name string) string {
	return k.GroupPrefix + "-" + name
}

// RedisConfig holds the rate limiter's Redis connection. An empty Addr
// disables rate limiting.
type RedisConfig struct {
	Addr     string
	Password string
}

// ServiceConfig holds all configuration for the social service.
type ServiceConfig struct {
	Port               string
	AppEnv             string
	DBConfig           database.PostgresConfig
	JWTConfig          JWTConfig
	KafkaConfig        KafkaConfig
	RedisConfig        RedisConfig
	RateLimitPerMinute int
	CORSAllowedOrigin  string
}

// IsDevelopment reports whether the service runs locally.
func (c *ServiceConfig) IsDevelopment() bool {
	return c.AppEnv == envDevelopment || c.AppEnv == envTest
}

// Load reads configuration from the environment, falling back to a .env
// file in the working directory when present.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load()
	return loadFrom(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", envDevelopment)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "social")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "social")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	return v
}

func loadFrom(v *viper.Viper) (*ServiceConfig, error) {
	cfg := &ServiceConfig{
		Port:   ":" + strings.TrimPrefix(v.GetString("SERVICE_PORT"), ":"),
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWTConfig: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			AccessTokenTTL: v.GetDuration("JWT_ACCESS_TTL"),
		},
		KafkaConfig: KafkaConfig{
			Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
		},
		RedisConfig: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		CORSAllowedOrigin:  v.GetString("CORS_ALLOWED_ORIGIN"),
	}

	if cfg.JWTConfig.Secret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("JWT_SECRET is required outside development")
		}
		cfg.JWTConfig.Secret = "dev-secret-change-me"
	}
	if len(cfg.KafkaConfig.Brokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS must list at least one broker")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
