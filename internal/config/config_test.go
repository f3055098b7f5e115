package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesYAMLThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storeadmin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rest:
  baseURL: http://yaml-backend
  timeout: 3s
views:
  currency: "€"
  idleTTL: 45m
  pageSizes:
    products: 12
`), 0o600))

	t.Setenv("STOREADMIN_CONFIG", path)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REST_BASE_URL", "http://env-backend")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("KAFKA_TOPICS", "products=products.events|products.audit,messages=messages.events")
	t.Setenv("REST_TIMEOUT", "15")
	t.Setenv("SESSION_IDLE_TTL", "20m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://env-backend", cfg.REST.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.REST.Timeout)
	assert.Equal(t, "€", cfg.Views.Currency)
	assert.Equal(t, 12, cfg.Views.PageSize("Products"))
	assert.Equal(t, 10, cfg.Views.PageSize("orders"))
	assert.Equal(t, 8, cfg.Views.PageSize("unknown"))
	assert.Equal(t, 20*time.Minute, cfg.Views.IdleTTL)
	assert.Equal(t, 5*time.Minute, cfg.Views.SweepInterval())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"products.events", "products.audit"}, cfg.Kafka.Topics["products"])
	assert.Equal(t, []string{"messages.events"}, cfg.Kafka.Topics["messages"])
}

func TestLoadRequiresJWTKey(t *testing.T) {
	t.Setenv("STOREADMIN_CONFIG", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_PUBLIC_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "jwt secret or public key is required")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("STOREADMIN_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "read config file")
}
