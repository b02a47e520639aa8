package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/lattice/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lattice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullTree(t *testing.T) {
	path := writeConfig(t, `
driver: goredis
options:
  prefix: "app:"
  dial_timeout: 5s
default:
  host: redis-1.internal
  port: 6380
  database: 2
cache:
  options:
    pool_size: 32
  clusters:
    - host: c1.internal
    - host: c2.internal
sessions:
  replicas:
    - host: primary.internal
    - host: replica.internal
clusters:
  options:
    pool_size: 8
  shards:
    - host: s1.internal
    - host: s2.internal
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "goredis", cfg.Driver)
	assert.Equal(t, "app:", cfg.Options.Prefix)
	assert.Equal(t, 5*time.Second, cfg.Options.DialTimeout)

	// Non-reserved top-level keys become connection entries.
	require.Contains(t, cfg.Connections, "default")
	require.Contains(t, cfg.Connections, "cache")
	require.Contains(t, cfg.Connections, "sessions")
	assert.NotContains(t, cfg.Connections, "driver")
	assert.NotContains(t, cfg.Connections, "options")
	assert.NotContains(t, cfg.Connections, "clusters")

	def := cfg.Connections["default"]
	assert.Equal(t, "redis-1.internal", def.Params.Host)
	assert.Equal(t, 6380, def.Params.Port)
	assert.Equal(t, 2, def.Params.Database)

	cache := cfg.Connections["cache"]
	assert.Equal(t, 32, cache.Options.PoolSize)
	require.Len(t, cache.Clusters, 2)
	assert.Equal(t, "c2.internal", cache.Clusters[1].Host)

	sessions := cfg.Connections["sessions"]
	require.Len(t, sessions.Replicas, 2)

	assert.Equal(t, 8, cfg.Clusters.Options.PoolSize)
	require.Contains(t, cfg.Clusters.Named, "shards")
	assert.Len(t, cfg.Clusters.Named["shards"], 2)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("LATTICE_TEST_PASSWORD", "hunter2")
	t.Setenv("LATTICE_TEST_HOST", "redis.internal")

	path := writeConfig(t, `
driver: goredis
default:
  host: ${LATTICE_TEST_HOST}
  password: ${LATTICE_TEST_PASSWORD}
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	def := cfg.Connections["default"]
	assert.Equal(t, "redis.internal", def.Params.Host)
	assert.Equal(t, "hunter2", def.Params.Password)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "driver: [goredis\n")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParams_Addr(t *testing.T) {
	tests := []struct {
		name   string
		params config.Params
		want   string
	}{
		{"full", config.Params{Host: "h1", Port: 7000}, "h1:7000"},
		{"default port", config.Params{Host: "h1"}, "h1:6379"},
		{"all defaults", config.Params{}, "127.0.0.1:6379"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Addr())
		})
	}
}

func TestOptions_MergedUnder(t *testing.T) {
	global := config.Options{
		Prefix:      "app:",
		PoolSize:    16,
		DialTimeout: 5 * time.Second,
		MaxRetries:  3,
	}
	local := config.Options{PoolSize: 32}

	merged := local.MergedUnder(global)
	assert.Equal(t, 32, merged.PoolSize, "local values win")
	assert.Equal(t, "app:", merged.Prefix, "zero fields fill from global")
	assert.Equal(t, 5*time.Second, merged.DialTimeout)
	assert.Equal(t, 3, merged.MaxRetries)

	// Merging the zero value is the identity on global.
	assert.Equal(t, global, config.Options{}.MergedUnder(global))
}

func TestValidate(t *testing.T) {
	t.Run("driver required", func(t *testing.T) {
		cfg := &config.Config{}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "driver is required")
	})

	t.Run("cluster node needs host or url", func(t *testing.T) {
		cfg := &config.Config{
			Driver: "goredis",
			Connections: map[string]config.Connection{
				"cache": {Clusters: []config.Params{{Port: 7000}}},
			},
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "clusters[0] needs a host or url")
	})

	t.Run("valid", func(t *testing.T) {
		cfg := &config.Config{
			Driver: "goredis",
			Connections: map[string]config.Connection{
				"cache": {Clusters: []config.Params{{URL: "redis://c1:7000"}}},
				"main":  {Params: config.Params{Host: "h1"}},
			},
		}
		assert.NoError(t, cfg.Validate())
	})
}
