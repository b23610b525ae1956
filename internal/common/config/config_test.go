package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_DefaultsAndExpansion(t *testing.T) {
	t.Setenv("SCORECARD_API_KEY", "")
	t.Setenv("TEST_SCORECARD_KEY", "from-env")
	path := writeConfig(t, `
scorecard:
  api_key: ${TEST_SCORECARD_KEY}
cache:
  page_ttl: 15m
workers:
  search-institutions:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Scorecard.APIKey)
	assert.Equal(t, BackendAPI, cfg.Scorecard.Backend)
	assert.Equal(t, 30000, cfg.Scorecard.Timeout)
	assert.Equal(t, 3, cfg.Search.InitialPages)
	assert.Equal(t, 3, cfg.Search.MaxPagesPerCandidate)
	assert.Equal(t, 15*time.Minute, cfg.Cache.PageTTL)
	assert.Equal(t, 24*time.Hour, cfg.Cache.DocumentTTL)
	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "scorecard-schools", cfg.Database.Elasticsearch.Index)

	w := cfg.Workers["search-institutions"]
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
}

func TestLoadFromFile_EnvOverridesAPIKey(t *testing.T) {
	t.Setenv("SCORECARD_API_KEY", "env-key")
	path := writeConfig(t, "search:\n  initial_pages: 2\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Scorecard.APIKey)
	assert.Equal(t, 2, cfg.Search.InitialPages)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing api key",
			body: "scorecard:\n  backend: api\n",
		},
		{
			name: "unknown backend",
			body: "scorecard:\n  backend: sql\n  api_key: k\n",
		},
		{
			name: "index backend without addresses",
			body: "scorecard:\n  backend: index\n",
		},
		{
			name: "cache without redis",
			body: "scorecard:\n  api_key: k\ncache:\n  enabled: true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SCORECARD_API_KEY", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_IndexBackend(t *testing.T) {
	t.Setenv("SCORECARD_API_KEY", "")
	path := writeConfig(t, `
scorecard:
  backend: INDEX
database:
  elasticsearch:
    url: http://es:9200
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, BackendIndex, cfg.Scorecard.Backend)
	assert.Equal(t, []string{"http://es:9200"}, cfg.Database.Elasticsearch.Addresses)
	assert.Equal(t, "http://es:9200", cfg.Database.Elasticsearch.GetURL())
}

func TestWorkerHelpers(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"score-document": {Enabled: false, Timeout: 1500},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "score-document"))
	assert.True(t, IsWorkerEnabled(cfg, "unknown"))
	assert.Equal(t, 1500, GetWorkerConfig(cfg, "score-document").Timeout)
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "unknown").Timeout)
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
