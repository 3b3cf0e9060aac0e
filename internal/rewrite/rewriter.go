// Package rewrite repairs agent-produced queries so every table, column, and
// categorical value they reference resolves against the corpus schema.
package rewrite

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dbsmedya/corpusquery/internal/logger"
	"github.com/dbsmedya/corpusquery/internal/sqlutil"
)

// Schema is the slice of the corpus the rewriter needs: the canonical name,
// the column set, per-column value domains, and the fuzzy-match primitive.
type Schema interface {
	Name() string
	ColumnMeanings() map[string]string
	CategoricalValues(column string) ([]string, bool)
	FuzzyMatch(token string, domain []string) string
}

// Result is a completed rewrite. ColumnSubs and ValueSubs record which
// groundings happened so the caller can compose a rewrite notice.
type Result struct {
	Query      string
	ColumnSubs map[string]string
	ValueSubs  map[string]string
}

// Grounded reports whether any column or value was replaced.
func (r *Result) Grounded() bool {
	return len(r.ColumnSubs)+len(r.ValueSubs) > 0
}

// Error reports a query that could not be grounded against the corpus schema.
type Error struct {
	Query  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot rewrite %q: %s", e.Query, e.Reason)
}

// Rewriter grounds queries against a corpus schema.
type Rewriter struct {
	schema Schema
	logger *logger.Logger
}

// New creates a Rewriter over the given schema.
func New(schema Schema, log *logger.Logger) *Rewriter {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Rewriter{schema: schema, logger: log}
}

var (
	// fromPattern captures the table name between FROM and WHERE.
	fromPattern = regexp.MustCompile(`(?i)\bFROM\s+([A-Za-z0-9_]+)\s+WHERE\b`)

	// wherePattern locates the start of the predicate section.
	wherePattern = regexp.MustCompile(`(?i)\bWHERE\b`)

	// columnPattern captures an identifier in predicate position: directly
	// followed by a comparison operator or a LIKE/IN keyword.
	columnPattern = regexp.MustCompile(`(?i)\b([a-z_][a-z0-9_]*)(?:\s*(?:!=|<>|>=|<=|=|<|>)|\s+(?:NOT\s+)?(?:LIKE|IN)\b)`)

	// likePattern captures (column, value) from wildcard pattern predicates.
	likePattern = regexp.MustCompile(`(?i)\b([a-z_][a-z0-9_]*)\s+(?:NOT\s+)?LIKE\s+'%([^%']+)%'`)
)

// sqlKeywords are tokens columnPattern can capture that are never column names.
var sqlKeywords = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "LIKE": true, "IN": true,
	"WHERE": true, "SELECT": true, "FROM": true, "IS": true, "NULL": true,
	"BETWEEN": true, "ORDER": true, "BY": true, "LIMIT": true,
}

// span is a replacement applied by character range, so substituting one token
// can never touch another token that happens to contain the same text.
type span struct {
	start, end  int
	replacement string
}

// applySpans rewrites s with all replacements, back to front.
func applySpans(s string, spans []span) string {
	sort.Slice(spans, func(i, j int) bool { return spans[i].start > spans[j].start })
	for _, sp := range spans {
		s = s[:sp.start] + sp.replacement + s[sp.end:]
	}
	return s
}

// Rewrite repairs a candidate query: the FROM target becomes the canonical
// corpus name, unknown predicate columns are grounded to their nearest known
// column, and unknown values in wildcard predicates on categorical columns
// are grounded to their nearest domain value. Failure is all-or-nothing; no
// partially rewritten query is returned.
func (r *Rewriter) Rewrite(query string) (*Result, error) {
	result := &Result{
		ColumnSubs: make(map[string]string),
		ValueSubs:  make(map[string]string),
	}

	query = r.normalizeFrom(query)

	query, err := r.groundColumns(query, result)
	if err != nil {
		return nil, err
	}

	query = r.groundValues(query, result)

	result.Query = query
	return result, nil
}

// normalizeFrom replaces whatever table name sits between FROM and WHERE with
// the canonical corpus name.
func (r *Rewriter) normalizeFrom(query string) string {
	m := fromPattern.FindStringSubmatchIndex(query)
	if m == nil {
		return query
	}
	return applySpans(query, []span{{start: m[2], end: m[3], replacement: r.schema.Name()}})
}

// groundColumns replaces every predicate column that is not in the schema's
// column set with its nearest known column.
func (r *Rewriter) groundColumns(query string, result *Result) (string, error) {
	w := wherePattern.FindStringIndex(query)
	if w == nil {
		return query, nil
	}

	columns := r.columnNames()

	var spans []span
	offset := w[1]
	for _, m := range columnPattern.FindAllStringSubmatchIndex(query[offset:], -1) {
		start, end := offset+m[2], offset+m[3]
		name := query[start:end]

		if sqlKeywords[strings.ToUpper(name)] {
			continue
		}
		if _, known := r.schema.ColumnMeanings()[name]; known {
			continue
		}

		mapped, seen := result.ColumnSubs[name]
		if !seen {
			mapped = r.schema.FuzzyMatch(name, columns)
			if mapped == "" {
				return "", &Error{Query: query, Reason: fmt.Sprintf("column %q cannot be mapped to any corpus column", name)}
			}
			result.ColumnSubs[name] = mapped
			r.logger.Debugw("Grounded column", "from", name, "to", mapped)
		}
		spans = append(spans, span{start: start, end: end, replacement: mapped})
	}

	return applySpans(query, spans), nil
}

// groundValues replaces the value of each wildcard predicate on a categorical
// column with its nearest domain value, quote-escaped for re-embedding.
// Columns without a value domain are left untouched even if inexact.
func (r *Rewriter) groundValues(query string, result *Result) string {
	var spans []span
	for _, m := range likePattern.FindAllStringSubmatchIndex(query, -1) {
		column := query[m[2]:m[3]]
		start, end := m[4], m[5]
		value := query[start:end]

		domain, ok := r.schema.CategoricalValues(column)
		if !ok {
			continue
		}

		mapped := r.schema.FuzzyMatch(value, domain)
		if mapped == "" {
			continue
		}
		escaped := sqlutil.EscapeLiteral(mapped)
		if escaped == value {
			continue
		}

		result.ValueSubs[value] = escaped
		r.logger.Debugw("Grounded value", "column", column, "from", value, "to", escaped)
		spans = append(spans, span{start: start, end: end, replacement: escaped})
	}

	return applySpans(query, spans)
}

// columnNames returns the schema's column set in sorted order so fuzzy-match
// tie-breaking is deterministic.
func (r *Rewriter) columnNames() []string {
	meanings := r.schema.ColumnMeanings()
	columns := make([]string, 0, len(meanings))
	for col := range meanings {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}
