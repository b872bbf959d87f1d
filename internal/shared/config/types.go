package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host" yaml:"host"`
	Port           int      `mapstructure:"port" yaml:"port"`
	Mode           string   `mapstructure:"mode" yaml:"mode"`
	BaseURL        string   `mapstructure:"base_url" yaml:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Driver is either "mysql" or "sqlite".
	Driver            string `mapstructure:"driver" yaml:"driver"`
	Host              string `mapstructure:"host" yaml:"host"`
	Port              int    `mapstructure:"port" yaml:"port"`
	Username          string `mapstructure:"username" yaml:"username"`
	Password          string `mapstructure:"password" yaml:"password"`
	Database          string `mapstructure:"database" yaml:"database"`
	SQLitePath        string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	MaxIdleConns      int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	MaxOpenConns      int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	ConnMaxLifetime   int    `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	MigrationStrategy string `mapstructure:"migration_strategy" yaml:"migration_strategy"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret" yaml:"secret"`
	Issuer           string `mapstructure:"issuer" yaml:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes" yaml:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt" yaml:"jwt"`
	// PolicyModelPath points at the casbin model file. Empty uses the built-in RBAC model.
	PolicyModelPath string `mapstructure:"policy_model_path" yaml:"policy_model_path"`
}

type EmailConfig struct {
	Enabled      bool     `mapstructure:"enabled" yaml:"enabled"`
	SMTPHost     string   `mapstructure:"smtp_host" yaml:"smtp_host"`
	SMTPPort     int      `mapstructure:"smtp_port" yaml:"smtp_port"`
	SMTPUser     string   `mapstructure:"smtp_user" yaml:"smtp_user"`
	SMTPPassword string   `mapstructure:"smtp_password" yaml:"smtp_password"`
	FromAddress  string   `mapstructure:"from_address" yaml:"from_address"`
	FromName     string   `mapstructure:"from_name" yaml:"from_name"`
	OpsAddresses []string `mapstructure:"ops_addresses" yaml:"ops_addresses"`
}

type SezzleConfig struct {
	Sandbox        bool          `mapstructure:"sandbox" yaml:"sandbox"`
	BaseURL        string        `mapstructure:"base_url" yaml:"base_url"`
	PublicKey      string        `mapstructure:"public_key" yaml:"public_key"`
	PrivateKey     string        `mapstructure:"private_key" yaml:"private_key"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	CompleteURL    string        `mapstructure:"complete_url" yaml:"complete_url"`
	CancelURL      string        `mapstructure:"cancel_url" yaml:"cancel_url"`
	MerchantLocale string        `mapstructure:"merchant_locale" yaml:"merchant_locale"`
}

const (
	SezzleProductionURL = "https://gateway.sezzle.com"
	SezzleSandboxURL    = "https://sandbox.gateway.sezzle.com"
)

// GetBaseURL returns the explicit base URL or the environment default.
func (s *SezzleConfig) GetBaseURL() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	if s.Sandbox {
		return SezzleSandboxURL
	}
	return SezzleProductionURL
}

type BreakerConfig struct {
	MaxRequests         uint32        `mapstructure:"max_requests" yaml:"max_requests"`
	Interval            time.Duration `mapstructure:"interval" yaml:"interval"`
	Timeout             time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ConsecutiveFailures uint32        `mapstructure:"consecutive_failures" yaml:"consecutive_failures"`
}

type LockConfig struct {
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// RateLimitConfig throttles the public checkout routes per client IP. Requires redis.
type RateLimitConfig struct {
	CheckoutPerMinute int `mapstructure:"checkout_per_minute" yaml:"checkout_per_minute"`
	CheckoutPerHour   int `mapstructure:"checkout_per_hour" yaml:"checkout_per_hour"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}
