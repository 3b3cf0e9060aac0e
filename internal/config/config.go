// Package config provides configuration structures and loading for corpusquery.
package config

// Config represents the complete application configuration.
type Config struct {
	Corpus  CorpusConfig  `yaml:"corpus" mapstructure:"corpus"`
	Schema  SchemaConfig  `yaml:"schema" mapstructure:"schema"`
	Tool    ToolConfig    `yaml:"tool" mapstructure:"tool"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// CorpusConfig represents the database connection holding the item corpus.
type CorpusConfig struct {
	Driver             string `yaml:"driver" mapstructure:"driver"` // mysql or sqlite
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	Path               string `yaml:"path" mapstructure:"path"` // sqlite file path
	TLS                string `yaml:"tls" mapstructure:"tls"`   // disable, preferred, required (mysql only)
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// SchemaConfig describes the corpus table as the query tool should see it.
type SchemaConfig struct {
	Table         string            `yaml:"table" mapstructure:"table"`                   // canonical table name
	Columns       map[string]string `yaml:"columns" mapstructure:"columns"`               // column name -> human-readable meaning
	Categorical   []string          `yaml:"categorical" mapstructure:"categorical"`       // columns with a closed value domain
	DistinctLimit int               `yaml:"distinct_limit" mapstructure:"distinct_limit"` // cap on loaded categorical values per column
}

// ToolConfig represents the query tool settings exposed to the agent.
type ToolConfig struct {
	Name            string `yaml:"name" mapstructure:"name"`
	Description     string `yaml:"description" mapstructure:"description"`
	ResultMaxTokens int    `yaml:"result_max_tokens" mapstructure:"result_max_tokens"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Driver:             "sqlite",
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     5,
			MaxIdleConnections: 2,
		},
		Schema: SchemaConfig{
			DistinctLimit: 500,
		},
		Tool: ToolConfig{
			Name:            "ItemQueryTool",
			Description:     "Searches information from the item corpus. Receives a SQL command as input and returns matching items.",
			ResultMaxTokens: 512,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// IsCategorical reports whether the column carries a closed value domain.
func (s *SchemaConfig) IsCategorical(column string) bool {
	for _, c := range s.Categorical {
		if c == column {
			return true
		}
	}
	return false
}

// ApplyOverrides applies CLI flag values that override config file settings.
// Zero values mean "not set" and leave the config untouched.
func (c *Config) ApplyOverrides(logLevel, logFormat string, maxTokens int) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if maxTokens > 0 {
		c.Tool.ResultMaxTokens = maxTokens
	}
}
