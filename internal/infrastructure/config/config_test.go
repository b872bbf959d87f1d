package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
sezzle:
  sandbox: false
  public_key: pk
  private_key: sk
lock:
  ttl: 45s
`)

	cfg, err := Load("", path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "goose", cfg.Database.MigrationStrategy)
	assert.Equal(t, 45*time.Second, cfg.Lock.TTL)
	assert.Equal(t, 15*time.Second, cfg.Sezzle.Timeout)
	assert.Equal(t, uint32(5), cfg.Breaker.ConsecutiveFailures)
	assert.Equal(t, "https://gateway.sezzle.com", cfg.Sezzle.GetBaseURL())
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SEZZLEGATE_SERVER_PORT", "9090")
	t.Setenv("SEZZLEGATE_SEZZLE_SANDBOX", "true")

	cfg, err := Load("production", writeConfig(t, "server:\n  host: 127.0.0.1\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "https://sandbox.gateway.sezzle.com", cfg.Sezzle.GetBaseURL())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestMasked(t *testing.T) {
	cfg, err := Load("", writeConfig(t, `
sezzle:
  private_key: sk_secret
auth:
  jwt:
    secret: jwt_secret
`))
	require.NoError(t, err)

	masked := cfg.Masked()
	assert.Equal(t, "******", masked.Sezzle.PrivateKey)
	assert.Equal(t, "******", masked.Auth.JWT.Secret)
	assert.Equal(t, "******", masked.Database.Password)
	assert.Empty(t, masked.Redis.Password)
	assert.Equal(t, "sk_secret", cfg.Sezzle.PrivateKey)
}
