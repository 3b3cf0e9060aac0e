package corpus

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dbsmedya/corpusquery/internal/config"
	"github.com/dbsmedya/corpusquery/internal/logger"
	"github.com/dbsmedya/corpusquery/internal/sqlutil"
	"github.com/dbsmedya/corpusquery/internal/types"
)

// SQLCorpus is a Corpus backed by a SQL database. Column meanings come from
// configuration; categorical value domains are loaded from the database with
// LoadDomains before first use.
type SQLCorpus struct {
	db      *sql.DB
	schema  *config.SchemaConfig
	domains map[string][]string
	logger  *logger.Logger
}

// NewSQL creates a SQL-backed corpus over an open database handle.
func NewSQL(db *sql.DB, schema *config.SchemaConfig, log *logger.Logger) *SQLCorpus {
	if log == nil {
		log = logger.NewDefault()
	}
	return &SQLCorpus{
		db:      db,
		schema:  schema,
		domains: make(map[string][]string),
		logger:  log,
	}
}

// Name returns the canonical table name of the corpus.
func (c *SQLCorpus) Name() string {
	return c.schema.Table
}

// ColumnMeanings maps each known column to its configured meaning.
func (c *SQLCorpus) ColumnMeanings() map[string]string {
	return c.schema.Columns
}

// CategoricalValues returns the loaded value domain of a column.
func (c *SQLCorpus) CategoricalValues(column string) ([]string, bool) {
	domain, ok := c.domains[column]
	return domain, ok && len(domain) > 0
}

// FuzzyMatch returns the domain candidate nearest to token.
func (c *SQLCorpus) FuzzyMatch(token string, domain []string) string {
	return Nearest(token, domain)
}

// LoadDomains loads the distinct values of every categorical column, capped
// at the configured limit per column.
func (c *SQLCorpus) LoadDomains(ctx context.Context) error {
	for _, column := range c.schema.Categorical {
		quotedCol, err := sqlutil.QuoteIdentifierSafe(column)
		if err != nil {
			return fmt.Errorf("categorical column: %w", err)
		}
		quotedTable, err := sqlutil.QuoteIdentifierSafe(c.schema.Table)
		if err != nil {
			return fmt.Errorf("corpus table: %w", err)
		}

		query := fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL LIMIT %d",
			quotedCol, quotedTable, quotedCol, c.schema.DistinctLimit)

		values, err := c.loadDomain(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to load domain for column %q: %w", column, err)
		}

		c.domains[column] = values
		c.logger.Debugw("Loaded categorical domain", "column", column, "values", len(values))
	}

	return nil
}

func (c *SQLCorpus) loadDomain(ctx context.Context, query string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v interface{}
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, types.ToString(v))
	}
	return values, rows.Err()
}

// Execute runs a query and normalizes the rows into ordered records.
func (c *SQLCorpus) Execute(ctx context.Context, query string) (types.ResultSet, error) {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &ExecutionError{Query: query, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &ExecutionError{Query: query, Err: err}
	}

	var records types.ResultSet
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, &ExecutionError{Query: query, Err: err}
		}

		rec := types.NewRecord()
		for i, col := range columns {
			rec.Set(col, normalizeValue(values[i]))
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecutionError{Query: query, Err: err}
	}

	return records, nil
}

// normalizeValue keeps scalars as-is but converts driver byte slices to
// strings so records serialize to readable JSON.
func normalizeValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
