// Package corpus defines the item corpus the query tool searches, and a
// SQL-backed implementation of it.
package corpus

import (
	"context"
	"fmt"

	"github.com/dbsmedya/corpusquery/internal/types"
)

// Corpus is the structured item store behind the query tool. The query
// rewriter grounds identifiers against its schema; the orchestrator executes
// rewritten queries through it.
type Corpus interface {
	// Name returns the canonical table name of the corpus.
	Name() string

	// ColumnMeanings maps each known column to a human-readable meaning.
	ColumnMeanings() map[string]string

	// CategoricalValues returns the closed value domain of a column, and
	// whether the column has one.
	CategoricalValues(column string) ([]string, bool)

	// FuzzyMatch returns the domain candidate nearest to token.
	FuzzyMatch(token string, domain []string) string

	// Execute runs a query and returns the matching records in corpus order.
	Execute(ctx context.Context, query string) (types.ResultSet, error)
}

// ExecutionError wraps a corpus failure for a specific query.
type ExecutionError struct {
	Query string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("corpus execution failed for %q: %v", e.Query, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
