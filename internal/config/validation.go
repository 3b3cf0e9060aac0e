package config

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/corpusquery/internal/sqlutil"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateCorpus()...)
	errors = append(errors, c.validateSchema()...)
	errors = append(errors, c.validateTool()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateCorpus() ValidationErrors {
	var errors ValidationErrors

	switch c.Corpus.Driver {
	case "mysql":
		if c.Corpus.Host == "" {
			errors = append(errors, ValidationError{Field: "corpus.host", Message: "host is required for mysql"})
		}
		if c.Corpus.User == "" {
			errors = append(errors, ValidationError{Field: "corpus.user", Message: "user is required for mysql"})
		}
		if c.Corpus.Database == "" {
			errors = append(errors, ValidationError{Field: "corpus.database", Message: "database is required for mysql"})
		}
		if c.Corpus.Port <= 0 || c.Corpus.Port > 65535 {
			errors = append(errors, ValidationError{Field: "corpus.port", Message: "port must be between 1 and 65535"})
		}
		switch c.Corpus.TLS {
		case "", "disable", "preferred", "required":
		default:
			errors = append(errors, ValidationError{Field: "corpus.tls", Message: "tls must be one of: disable, preferred, required"})
		}
	case "sqlite":
		if c.Corpus.Path == "" {
			errors = append(errors, ValidationError{Field: "corpus.path", Message: "path is required for sqlite"})
		}
	default:
		errors = append(errors, ValidationError{Field: "corpus.driver", Message: "driver must be mysql or sqlite"})
	}

	return errors
}

func (c *Config) validateSchema() ValidationErrors {
	var errors ValidationErrors

	if c.Schema.Table == "" {
		errors = append(errors, ValidationError{Field: "schema.table", Message: "canonical table name is required"})
	} else if !sqlutil.IsValidIdentifier(c.Schema.Table) {
		errors = append(errors, ValidationError{Field: "schema.table", Message: "table name must be a valid identifier"})
	}

	if len(c.Schema.Columns) == 0 {
		errors = append(errors, ValidationError{Field: "schema.columns", Message: "at least one column must be described"})
	}
	for col := range c.Schema.Columns {
		if !sqlutil.IsValidIdentifier(col) {
			errors = append(errors, ValidationError{Field: "schema.columns", Message: fmt.Sprintf("column %q must be a valid identifier", col)})
		}
	}

	for _, col := range c.Schema.Categorical {
		if _, ok := c.Schema.Columns[col]; !ok {
			errors = append(errors, ValidationError{Field: "schema.categorical", Message: fmt.Sprintf("categorical column %q is not listed in schema.columns", col)})
		}
	}

	if c.Schema.DistinctLimit <= 0 {
		errors = append(errors, ValidationError{Field: "schema.distinct_limit", Message: "distinct_limit must be positive"})
	}

	return errors
}

func (c *Config) validateTool() ValidationErrors {
	var errors ValidationErrors

	if c.Tool.Name == "" {
		errors = append(errors, ValidationError{Field: "tool.name", Message: "tool name is required"})
	}

	// Anything below 5 tokens cannot hold even a single minimal record.
	if c.Tool.ResultMaxTokens < 5 {
		errors = append(errors, ValidationError{Field: "tool.result_max_tokens", Message: "result_max_tokens must be at least 5"})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errors = append(errors, ValidationError{Field: "logging.level", Message: "level must be one of: debug, info, warn, error"})
	}

	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errors = append(errors, ValidationError{Field: "logging.format", Message: "format must be json or text"})
	}

	return errors
}
