package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecommerce/internal/config"
	"ecommerce/internal/database"
	"ecommerce/pkg/logger"
	"ecommerce/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Env: "test", Port: ":0", LogLevel: "error"},
		DB:  config.DBConfig{Driver: database.DriverSQLite, DSN: database.MemoryDSN(t.Name())},
		JWT: config.JWTConfig{
			Secret:     base64.StdEncoding.EncodeToString([]byte(strings.Repeat("m", 32))),
			Expiration: 5,
			Issuer:     "ecommerce-test",
			BcryptCost: 4,
		},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestSetup(t *testing.T) {
	app, cleanup, err := setup(context.Background(), testConfig(t), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["events"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSetup_BadSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWT.Secret = "short"
	_, _, err := setup(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

func TestAuditCatalogEvent(t *testing.T) {
	var buf bytes.Buffer
	handle := auditCatalogEvent(logger.New(logger.Config{Env: "production", Level: "info", Out: &buf}))

	err := handle(rabbitmq.Event{
		ID:         "evt-1",
		Type:       "product.purchased",
		OccurredAt: time.Now(),
		Payload:    json.RawMessage(`{"name":"Runner","quantity":3}`),
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"type":"product.purchased"`)
	assert.Contains(t, buf.String(), `"payload":{"name":"Runner","quantity":3}`)
}
