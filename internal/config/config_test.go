package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "sqlite", cfg.Corpus.Driver)
	assert.Equal(t, 3306, cfg.Corpus.Port)
	assert.Equal(t, 512, cfg.Tool.ResultMaxTokens)
	assert.Equal(t, 500, cfg.Schema.DistinctLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()

	cfg.ApplyOverrides("debug", "text", 256)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 256, cfg.Tool.ResultMaxTokens)

	// Zero values leave settings untouched
	cfg.ApplyOverrides("", "", 0)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 256, cfg.Tool.ResultMaxTokens)
}

func TestIsCategorical(t *testing.T) {
	cfg := SchemaConfig{Categorical: []string{"color", "brand"}}

	assert.True(t, cfg.IsCategorical("color"))
	assert.False(t, cfg.IsCategorical("title"))
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpusquery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
corpus:
  driver: mysql
  host: localhost
  user: reader
  password: secret
  database: catalog
schema:
  table: items
  columns:
    title: "item title"
    color: "item color"
  categorical:
    - color
tool:
  name: ItemSearch
  result_max_tokens: 256
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Corpus.Driver)
	assert.Equal(t, "catalog", cfg.Corpus.Database)
	assert.Equal(t, "items", cfg.Schema.Table)
	assert.Equal(t, "item color", cfg.Schema.Columns["color"])
	assert.Equal(t, []string{"color"}, cfg.Schema.Categorical)
	assert.Equal(t, "ItemSearch", cfg.Tool.Name)
	assert.Equal(t, 256, cfg.Tool.ResultMaxTokens)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Defaults fill in unset values
	assert.Equal(t, 500, cfg.Schema.DistinctLimit)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("CORPUS_PASSWORD", "s3cret")
	t.Setenv("CORPUS_DB_PATH", "/data/items.db")

	path := writeConfigFile(t, `
corpus:
  driver: sqlite
  password: ${CORPUS_PASSWORD}
  path: ${CORPUS_DB_PATH}
schema:
  table: items
  columns:
    title: "item title"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Corpus.Password)
	assert.Equal(t, "/data/items.db", cfg.Corpus.Path)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Corpus.Path = "items.db"
		cfg.Schema.Table = "items"
		cfg.Schema.Columns = map[string]string{"title": "item title", "color": "item color"}
		cfg.Schema.Categorical = []string{"color"}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid sqlite config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid mysql config",
			mutate: func(c *Config) {
				c.Corpus.Driver = "mysql"
				c.Corpus.Host = "localhost"
				c.Corpus.User = "reader"
				c.Corpus.Database = "catalog"
			},
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Corpus.Driver = "oracle" },
			wantErr: "corpus.driver",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.Corpus.Path = "" },
			wantErr: "corpus.path",
		},
		{
			name: "mysql without host",
			mutate: func(c *Config) {
				c.Corpus.Driver = "mysql"
				c.Corpus.User = "reader"
				c.Corpus.Database = "catalog"
			},
			wantErr: "corpus.host",
		},
		{
			name:    "missing table",
			mutate:  func(c *Config) { c.Schema.Table = "" },
			wantErr: "schema.table",
		},
		{
			name:    "invalid table identifier",
			mutate:  func(c *Config) { c.Schema.Table = "bad table" },
			wantErr: "schema.table",
		},
		{
			name:    "no columns",
			mutate:  func(c *Config) { c.Schema.Columns = nil },
			wantErr: "schema.columns",
		},
		{
			name:    "categorical not in columns",
			mutate:  func(c *Config) { c.Schema.Categorical = []string{"ghost"} },
			wantErr: "schema.categorical",
		},
		{
			name:    "budget too small",
			mutate:  func(c *Config) { c.Tool.ResultMaxTokens = 4 },
			wantErr: "tool.result_max_tokens",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
