// Package sqlutil provides SQL helpers shared by the corpus backends and the
// query rewriter.
package sqlutil

import (
	"regexp"
	"strings"
)

// validIdentifierRegex restricts identifiers to alphanumeric and underscore.
// Both MySQL and SQLite accept more, but agent-produced queries never need it.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z_][a-zA-Z0-9_]*$")

// IsValidIdentifier reports whether a name is safe to embed as a table or
// column identifier. This is a defense-in-depth measure against injection
// through configuration.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteIdentifier quotes an identifier with backticks, doubling any embedded
// backtick. Understood by MySQL and SQLite alike.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// QuoteIdentifierSafe quotes an identifier after validating it. Use this when
// the name comes from an untrusted source.
func QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// EscapeLiteral escapes a string for embedding inside a single-quoted SQL
// literal by doubling single quotes.
// Example: "rock 'n' roll" -> "rock ''n'' roll"
func EscapeLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}
