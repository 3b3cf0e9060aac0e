// Package token abstracts the token-counting function the host LLM context
// uses to measure payload size.
package token

import (
	"strings"
	"unicode/utf8"
)

// Counter counts the tokens of a piece of text. The truncation budget is
// expressed in the units this counter produces, so callers embedding the tool
// should supply a counter matching their model's tokenizer.
type Counter interface {
	Count(text string) int
}

// CounterFunc adapts a plain function to the Counter interface.
type CounterFunc func(text string) int

// Count implements Counter.
func (f CounterFunc) Count(text string) int {
	return f(text)
}

// estimatorCharsPerToken is the usual rule of thumb for English text under
// BPE-style tokenizers.
const estimatorCharsPerToken = 4

// Estimator is a tokenizer-free counter that approximates token counts from
// character and word counts. Good enough for budgeting; not an exact model.
type Estimator struct{}

// NewEstimator returns the default heuristic counter.
func NewEstimator() Estimator {
	return Estimator{}
}

// Count estimates the token count of text as one token per four characters,
// floored at the word count so short-word text is not underestimated.
func (Estimator) Count(text string) int {
	if text == "" {
		return 0
	}
	n := (utf8.RuneCountInString(text) + estimatorCharsPerToken - 1) / estimatorCharsPerToken
	if words := len(strings.Fields(text)); words > n {
		n = words
	}
	return n
}
