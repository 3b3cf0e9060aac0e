package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbsmedya/corpusquery/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.CorpusConfig
		expected string
	}{
		{
			name: "mysql basic",
			cfg: &config.CorpusConfig{
				Driver:   "mysql",
				Host:     "localhost",
				Port:     3306,
				User:     "reader",
				Password: "secret",
				Database: "catalog",
				TLS:      "preferred",
			},
			expected: "reader:secret@tcp(localhost:3306)/catalog?parseTime=true&tls=preferred",
		},
		{
			name: "mysql tls disabled",
			cfg: &config.CorpusConfig{
				Driver:   "mysql",
				Host:     "localhost",
				Port:     3306,
				User:     "reader",
				Password: "secret",
				Database: "catalog",
				TLS:      "disable",
			},
			expected: "reader:secret@tcp(localhost:3306)/catalog?parseTime=true&tls=false",
		},
		{
			name: "mysql tls required",
			cfg: &config.CorpusConfig{
				Driver:   "mysql",
				Host:     "db.internal",
				Port:     3307,
				User:     "reader",
				Password: "secret",
				Database: "catalog",
				TLS:      "required",
			},
			expected: "reader:secret@tcp(db.internal:3307)/catalog?parseTime=true&tls=true",
		},
		{
			name: "sqlite path",
			cfg: &config.CorpusConfig{
				Driver: "sqlite",
				Path:   "/data/items.db",
			},
			expected: "/data/items.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildDSN(tt.cfg))
		})
	}
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "sqlite", DriverName(&config.CorpusConfig{Driver: "sqlite"}))
	assert.Equal(t, "mysql", DriverName(&config.CorpusConfig{Driver: "mysql"}))
}

func TestManager_CloseWithoutConnect(t *testing.T) {
	m := NewManager(&config.CorpusConfig{Driver: "sqlite", Path: "items.db"})
	assert.NoError(t, m.Close())
}
