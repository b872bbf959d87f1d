package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "sezzlegate/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server" yaml:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis" yaml:"redis"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email" yaml:"email"`
	Sezzle    sharedConfig.SezzleConfig    `mapstructure:"sezzle" yaml:"sezzle"`
	Breaker   sharedConfig.BreakerConfig   `mapstructure:"breaker" yaml:"breaker"`
	Lock      sharedConfig.LockConfig      `mapstructure:"lock" yaml:"lock"`
	Metrics   sharedConfig.MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// A missing config file is tolerated so the service can run from env vars alone.
func Load(env string, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("SEZZLEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Masked returns a copy with credentials blanked out, suitable for printing.
func (c *Config) Masked() Config {
	masked := *c
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "******"
	}
	masked.Database.Password = mask(c.Database.Password)
	masked.Redis.Password = mask(c.Redis.Password)
	masked.Auth.JWT.Secret = mask(c.Auth.JWT.Secret)
	masked.Email.SMTPPassword = mask(c.Email.SMTPPassword)
	masked.Sezzle.PrivateKey = mask(c.Sezzle.PrivateKey)
	return masked
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "sezzlegate_dev")
	v.SetDefault("database.sqlite_path", "sezzlegate.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.migration_strategy", "goose")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Auth defaults
	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.issuer", "sezzlegate")
	v.SetDefault("auth.jwt.access_exp_minutes", 60)
	v.SetDefault("auth.policy_model_path", "")

	// Email defaults
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.from_address", "noreply@sezzlegate.local")
	v.SetDefault("email.from_name", "Sezzle Gateway")

	// Sezzle defaults
	v.SetDefault("sezzle.sandbox", true)
	v.SetDefault("sezzle.timeout", "15s")
	v.SetDefault("sezzle.complete_url", "http://localhost:8080/checkout/complete")
	v.SetDefault("sezzle.cancel_url", "http://localhost:8080/checkout/cancel")
	v.SetDefault("sezzle.merchant_locale", "en-US")

	// Breaker defaults
	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", "60s")
	v.SetDefault("breaker.timeout", "30s")
	v.SetDefault("breaker.consecutive_failures", 5)

	// Lock defaults
	v.SetDefault("lock.ttl", "30s")

	// Rate limit defaults
	v.SetDefault("rate_limit.checkout_per_minute", 20)
	v.SetDefault("rate_limit.checkout_per_hour", 300)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "sezzlegate")
}
