package config

import (
	"strings"

	"github.com/spf13/viper"
)

// DevTokenSecret is the fallback signing secret used when TOKEN_SECRET is
// not set. It is a known weakness kept for development convenience; the
// server logs a warning when it is active in production.
const DevTokenSecret = "change-this-secret-in-production"

type Config struct {
	Env      string `mapstructure:"ENV"` // development, production
	Port     int    `mapstructure:"PORT"`
	BaseURL  string `mapstructure:"BASE_URL"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	AdminEmail  string `mapstructure:"ADMIN_EMAIL"`
	TokenSecret string `mapstructure:"TOKEN_SECRET"`

	MongoURI  string `mapstructure:"MONGO_URI"`
	MongoDB   string `mapstructure:"MONGO_DB"`
	RedisAddr string `mapstructure:"REDIS_ADDR"`

	GitHubUsername string `mapstructure:"GITHUB_USERNAME"`

	EmailHost     string `mapstructure:"EMAIL_SERVER_HOST"`
	EmailPort     int    `mapstructure:"EMAIL_SERVER_PORT"`
	EmailUser     string `mapstructure:"EMAIL_SERVER_USER"`
	EmailPassword string `mapstructure:"EMAIL_SERVER_PASSWORD"`
	EmailFrom     string `mapstructure:"EMAIL_FROM"`
}

func Load() (*Config, error) {
	viper.SetDefault("ENV", "development")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("TOKEN_SECRET", DevTokenSecret)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "portfolio")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("GITHUB_USERNAME", "")
	viper.SetDefault("EMAIL_SERVER_HOST", "smtp.gmail.com")
	viper.SetDefault("EMAIL_SERVER_PORT", 587)
	viper.SetDefault("EMAIL_SERVER_USER", "")
	viper.SetDefault("EMAIL_SERVER_PASSWORD", "")
	viper.SetDefault("EMAIL_FROM", "")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.EmailUser
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// EmailConfigured reports whether an SMTP account is set up. Without one the
// login endpoint returns the magic link directly in its response, which is a
// development fallback only.
func (c *Config) EmailConfigured() bool {
	return c.EmailUser != ""
}
