package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeAdmin/internal/config"
	"storeAdmin/internal/modules/dashboard/infrastructure"
	transport "storeAdmin/internal/modules/dashboard/interface"
)

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Security.JWTSecret = "wire-secret"
	cfg.Kafka.Topics = map[string][]string{
		"Products":   {"products.events", "products.audit"},
		"newsletter": {"subscribers.events"},
		"inventory":  {"inventory.events"},
		"coupon":     {"coupons.events"},
	}
	return &cfg
}

func TestChangeHandlersRegisterTopicsOfLiveViews(t *testing.T) {
	a, err := buildApp(testConfig())
	require.NoError(t, err)

	registry := infrastructure.NewHandlerRegistry()
	topics := a.changeHandlers(registry)

	assert.ElementsMatch(t, []string{"products.events", "products.audit", "subscribers.events", "coupons.events"}, topics)
	assert.ElementsMatch(t, topics, registry.Topics())
}

func TestServeRoutesAnswerHealthAndGuardAPI(t *testing.T) {
	a, err := buildApp(testConfig())
	require.NoError(t, err)

	e := newEcho(nil)
	transport.Register(e, a.routes())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExportSubscribersRequiresCredentials(t *testing.T) {
	t.Setenv("STOREADMIN_PASSWORD", "")
	cmd := newExportSubscribersCmd(&rootOptions{cfg: testConfig()})
	cmd.SetArgs([]string{"--email", ""})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email and password are required")
}

func TestIdleSweeperWiredWithConfiguredTTL(t *testing.T) {
	cfg := testConfig()
	cfg.Views.IdleTTL = time.Minute
	a, err := buildApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, a.sweeper)

	assert.Empty(t, a.sweeper.Sweep(time.Now().Add(time.Hour)), "nothing mounted yet")
}
