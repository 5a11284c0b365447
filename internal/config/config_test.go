package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
api:
  environment: development
  port: "9090"
  allowed_cors_domains:
    - http://localhost:5173
gin:
  mode: test
postgres:
  host: db
  port: "5432"
  user: rally
  password: secret
  db: rally
redis:
  addr: localhost:6379
rally:
  code_attempts: 3
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "test", conf.Gin.Mode)
	assert.Equal(t, 3, conf.Rally.CodeAttempts)
	assert.Equal(t, 30*time.Minute, conf.Redis.DraftTTL)
	assert.Equal(t, "@every 1m", conf.Rally.GaugeSchedule)
	assert.True(t, conf.Redis.Enabled())
	assert.Equal(t, "host=db port=5432 user=rally password=secret dbname=rally sslmode=disable", conf.Postgres.DSN())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STAMPRALLY_API_PORT", "7070")

	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "7070", conf.API.Port)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("STAMPRALLY_API_ENVIRONMENT", "production")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
