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

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: app
  password: secret
  name: personacolor
  sslMode: require
ai:
  provider: openai
  apiKey: sk-test
  model: gpt-4o-mini
  timeoutMs: 15000
auth:
  keys:
    key-abc: user-1
rateLimit:
  capacity: 10
  refillRate: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 15*time.Second, cfg.AITimeout())
	assert.Equal(t, "user-1", cfg.Auth.Keys["key-abc"])
	assert.Equal(t, 10, cfg.RateLimit.Capacity)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 30*time.Second, cfg.AITimeout())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDSNHelpers(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 3306
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "personacolor"

	assert.Equal(t,
		"app:pw@tcp(localhost:3306)/personacolor?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.MySQLDSN())

	cfg.Database.Port = 5432
	assert.Equal(t,
		"host=localhost port=5432 user=app password=pw dbname=personacolor sslmode=disable",
		cfg.PostgresDSN())
}
