package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL", "STORAGE_DRIVER",
		"MONGODB_URI", "MONGODB_DB_NAME", "MONGODB_UNITS_COLLECTION", "MONGODB_STOCK_COLLECTION",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_LOCK_TTL",
		"REPORT_CRON_SCHEDULE", "TIMEZONE", "REPORT_WEBHOOK_URL",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_REPORT_ID", "GOOGLE_SHEET_REPORT_RANGE",
	} {
		// Setenv registers the restore; Unsetenv lets env files fill the key.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "inventory", cfg.MongoDB.DBName)
	assert.Equal(t, "products", cfg.MongoDB.StockCollection)
	assert.Equal(t, 5*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, "0 20 * * 5", cfg.Reporting.CronSchedule)
	assert.Equal(t, 20.0, cfg.Server.RateLimitRPS)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	content := "APP_PORT=9090\nSTORAGE_DRIVER=memory\nREDIS_ADDR=localhost:6379\nREDIS_LOCK_TTL=2s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2*time.Second, cfg.Redis.LockTTL)
}

func TestLoadMissingEnvFileIsTolerated(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_BURST", "lots")

	_, err := Load("")
	assert.ErrorContains(t, err, "RATE_LIMIT_BURST")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Storage:   StorageConfig{Driver: DriverMongo},
			MongoDB:   MongoDBConfig{URI: "mongodb://localhost", DBName: "inventory"},
			Reporting: ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "UTC"},
		}
	}

	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "APP_PORT"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }, "STORAGE_DRIVER"},
		{"memory skips mongo", func(c *Config) { c.Storage.Driver = DriverMemory; c.MongoDB = MongoDBConfig{} }, ""},
		{"mongo needs uri", func(c *Config) { c.MongoDB.URI = "" }, "MONGODB_URI"},
		{"bad cron", func(c *Config) { c.Reporting.CronSchedule = "every friday" }, "REPORT_CRON_SCHEDULE"},
		{"bad timezone", func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }, "TIMEZONE"},
		{"redis ttl", func(c *Config) { c.Redis.Addr = "localhost:6379" }, "REDIS_LOCK_TTL"},
		{"sheet id", func(c *Config) { c.Sheets.CredentialsPath = "/creds.json" }, "GOOGLE_SHEET_REPORT_ID"},
		{"negative rps", func(c *Config) { c.Server.RateLimitRPS = -1 }, "RATE_LIMIT_RPS"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
