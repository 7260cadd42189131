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
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configPath := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
redis:
  url: redis://redis:6379/2
queues:
  digest_delivery:
    concurrency: 2
    attempts: 7
    backoff: 10s
enrichment:
  base_url: http://brain:3000
digest:
  time_zone: Europe/London
  generation_times: ["05:30", "11:00", "17:45"]
notification:
  whatsapp:
    phone_number_id: "12345"
    token: secret
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "redis://redis:6379/2", cfg.Redis.URL)
		assert.Equal(t, 2, cfg.Queues.DigestDelivery.Concurrency)
		assert.Equal(t, 7, cfg.Queues.DigestDelivery.Attempts)
		assert.Equal(t, 10*time.Second, cfg.Queues.DigestDelivery.Backoff)
		assert.Equal(t, "http://brain:3000", cfg.Enrichment.BaseURL)
		assert.Equal(t, []string{"05:30", "11:00", "17:45"}, cfg.Digest.GenerationTimes)
		assert.Equal(t, "Europe/London", cfg.Location().String())
		assert.Equal(t, "12345", cfg.Notification.WhatsApp.PhoneNumberID)
	})

	t.Run("defaults", func(t *testing.T) {
		configPath := writeConfig(t, `
enrichment:
  base_url: http://localhost:3000
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "newsdigest", cfg.Redis.Prefix)
		assert.Equal(t, 3, cfg.Queues.FeedScraping.Attempts)
		assert.Equal(t, 3, cfg.Queues.ArticleScraping.Attempts)
		assert.Equal(t, 5, cfg.Queues.DigestDelivery.Attempts)
		assert.Equal(t, 1, cfg.Notification.Attempts, "delivery retries belong to the queue")
		assert.Equal(t, 24*time.Hour, cfg.Queues.FailedRetention)
		assert.Equal(t, 30, cfg.Feeds.DefaultCadence)
		assert.Equal(t, "Asia/Jerusalem", cfg.Digest.TimeZone)
		assert.Equal(t, []string{"06:00", "12:00", "18:00"}, cfg.Digest.GenerationTimes)
		assert.Equal(t, "daily_digest", cfg.Notification.WhatsApp.Template)
		assert.InDelta(t, 2.0, cfg.Extraction.HostRate, 0.001)
		assert.Equal(t, 4, cfg.Extraction.HostBurst)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("TEST_WA_TOKEN", "from-env")
		configPath := writeConfig(t, `
enrichment:
  base_url: http://localhost:3000
notification:
  whatsapp:
    token: ${TEST_WA_TOKEN}
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Notification.WhatsApp.Token)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "invalid: yaml: content: ["))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "missing enrichment url", content: "server:\n  listen: :8080\n", wantErr: "enrichment.base_url is required"},
		{name: "bad time zone", content: "enrichment:\n  base_url: http://x\ndigest:\n  time_zone: Mars/Olympus\n", wantErr: "digest.time_zone"},
		{name: "bad generation time", content: "enrichment:\n  base_url: http://x\ndigest:\n  generation_times: [\"25:00\"]\n", wantErr: "invalid time"},
		{name: "negative attempts", content: "enrichment:\n  base_url: http://x\nqueues:\n  feed_scraping:\n    attempts: -1\n", wantErr: "queues.feed_scraping.attempts"},
		{name: "negative notification attempts", content: "enrichment:\n  base_url: http://x\nnotification:\n  attempts: -2\n", wantErr: "notification.attempts"},
		{name: "short server timeout", content: "enrichment:\n  base_url: http://x\nserver:\n  timeout: 10ms\n", wantErr: "server timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	require.NotNil(t, schema)
	data, err := schema.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "generation_times")
}
