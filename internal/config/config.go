package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// RateLimitConfig selects the limiter backend ("memory" or "redis") and its budgets.
type RateLimitConfig struct {
	Backend     string
	Window      time.Duration
	ReadLimit   int
	WriteLimit  int
	UploadRate  float64
	UploadBurst int
}

type StorageConfig struct {
	CloudinaryURL string
	MaxUploadSize int64
}

type LogConfig struct {
	Level string
}

// Load reads the configuration from the environment, falling back to an optional
// config file at path and then to the defaults below.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ACCESS_TOKEN_TTL", "15m")
	v.SetDefault("REFRESH_TOKEN_TTL", "720h")
	v.SetDefault("RATE_LIMIT_BACKEND", "memory")
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("RATE_LIMIT_READ", 200)
	v.SetDefault("RATE_LIMIT_WRITE", 30)
	v.SetDefault("RATE_LIMIT_UPLOAD_RATE", 0.5)
	v.SetDefault("RATE_LIMIT_UPLOAD_BURST", 5)
	v.SetDefault("CLOUDINARY_URL", "")
	v.SetDefault("UPLOAD_MAX_BYTES", 5<<20)
	v.SetDefault("LOG_LEVEL", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	durations := map[string]time.Duration{}
	for _, key := range []string{
		"SERVER_SHUTDOWN_TIMEOUT", "DB_CONN_MAX_LIFETIME", "ACCESS_TOKEN_TTL",
		"REFRESH_TOKEN_TTL", "RATE_LIMIT_WINDOW",
	} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		durations[key] = d
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: durations["SERVER_SHUTDOWN_TIMEOUT"],
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			AccessTokenTTL:  durations["ACCESS_TOKEN_TTL"],
			RefreshTokenTTL: durations["REFRESH_TOKEN_TTL"],
		},
		RateLimit: RateLimitConfig{
			Backend:     strings.ToLower(v.GetString("RATE_LIMIT_BACKEND")),
			Window:      durations["RATE_LIMIT_WINDOW"],
			ReadLimit:   v.GetInt("RATE_LIMIT_READ"),
			WriteLimit:  v.GetInt("RATE_LIMIT_WRITE"),
			UploadRate:  v.GetFloat64("RATE_LIMIT_UPLOAD_RATE"),
			UploadBurst: v.GetInt("RATE_LIMIT_UPLOAD_BURST"),
		},
		Storage: StorageConfig{
			CloudinaryURL: v.GetString("CLOUDINARY_URL"),
			MaxUploadSize: v.GetInt64("UPLOAD_MAX_BYTES"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.RateLimit.Backend {
	case "memory":
	case "redis":
		if c.Redis.URL == "" {
			return fmt.Errorf("RATE_LIMIT_BACKEND=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown RATE_LIMIT_BACKEND %q", c.RateLimit.Backend)
	}
	if c.RateLimit.ReadLimit < 1 || c.RateLimit.WriteLimit < 1 {
		return fmt.Errorf("rate limits must be positive")
	}
	return nil
}
