package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
app:
  name: stock-impact-scanner
  env: test
logger:
  level: debug
  encoding: console
database:
  host: localhost
  port: 5432
  user: postgres
  name: stock_impact_scanner
api:
  host: 0.0.0.0
  port: 8001
auth:
  secret_key: test-secret
  token_ttl: 168h
  bcrypt_cost: 4
newsapi:
  base_url: https://newsapi.org/v2
  max_request_per_minute: 30
ingest:
  enabled: true
  schedule: "@every 30m"
  feeds:
    - https://example.com/feed.xml
  max_items: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "stock-impact-scanner", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "stock_impact_scanner", cfg.Database.DBName)
	assert.Equal(t, 8001, cfg.API.Port)
	assert.Equal(t, "test-secret", cfg.Auth.SecretKey)
	assert.Equal(t, "168h", cfg.Auth.TokenTTL)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, "https://newsapi.org/v2", cfg.NewsAPI.BaseURL)
	assert.True(t, cfg.Ingest.Enabled)
	assert.Equal(t, []string{"https://example.com/feed.xml"}, cfg.Ingest.Feeds)
}
