// Package truncate shrinks arbitrarily large result sets into a bounded
// token budget without losing the overall shape of the data.
package truncate

import (
	"encoding/json"
	"math/rand"
	"sort"
	"strings"

	"github.com/dbsmedya/corpusquery/internal/logger"
	"github.com/dbsmedya/corpusquery/internal/token"
	"github.com/dbsmedya/corpusquery/internal/types"
)

// minRecordTokens is the assumed floor on a serialized record's size; the
// record-count cap is budget divided by this.
const minRecordTokens = 5

// Word-count policy for per-field cutting: fields at or below minCutWords
// words are never cut, and every cut leaves at least minKeepWords words.
const (
	minCutWords  = 5
	minKeepWords = 3
)

// ellipsis marks a field whose tail was dropped.
const ellipsis = "..."

// Truncator bounds result sets to a token budget. The random source is
// injected so sampling is reproducible under a fixed seed.
type Truncator struct {
	counter token.Counter
	rng     *rand.Rand
	logger  *logger.Logger
}

// New creates a Truncator.
func New(counter token.Counter, rng *rand.Rand, log *logger.Logger) *Truncator {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Truncator{counter: counter, rng: rng, logger: log}
}

// Truncate returns a result set whose serialized size fits the budget, and
// whether random sampling occurred. The input set is never modified.
//
// Three stages: cap the record count at budget/5 by uniform sampling, return
// early if the whole set already fits, otherwise shrink each record toward an
// equal per-record allowance by cutting whole words off its longest fields.
func (t *Truncator) Truncate(records types.ResultSet, budget int) (types.ResultSet, bool) {
	sampled := false

	if maxRecords := budget / minRecordTokens; len(records) > maxRecords {
		records = t.sample(records, maxRecords)
		sampled = true
	}

	if t.count(records) <= budget {
		return records, sampled
	}

	// The +1 reserves headroom for the list brackets and separators.
	allowance := budget / (len(records) + 1)

	out := make(types.ResultSet, len(records))
	for i, rec := range records {
		out[i] = t.shrinkRecord(rec, allowance)
	}
	return out, sampled
}

// sample draws k records uniformly without replacement, preserving the
// original record order.
func (t *Truncator) sample(records types.ResultSet, k int) types.ResultSet {
	if k <= 0 {
		return nil
	}
	picked := t.rng.Perm(len(records))[:k]
	sort.Ints(picked)

	out := make(types.ResultSet, k)
	for i, idx := range picked {
		out[i] = records[idx]
	}
	return out
}

// shrinkRecord runs the fixed-point loop of §adaptive shrinking: while the
// record overflows its allowance, distribute the overflow across fields in
// proportion to their token cost and drop whole words from the end of each
// eligible field. Every pass that cuts removes at least one word, so the loop
// is bounded by the record's total word count.
func (t *Truncator) shrinkRecord(rec *types.Record, allowance int) *types.Record {
	out := types.NewRecord()
	for _, field := range rec.Fields() {
		v, _ := rec.Get(field)
		out.Set(field, types.ToString(v))
	}

	overflow := t.recordTokens(out) - allowance
	cutLast := true

	for overflow > 0 && cutLast {
		cutLast = false

		fieldTokens := make(map[string]int, out.Len())
		total := 0
		for _, field := range out.Fields() {
			n := t.counter.Count(fieldString(out, field))
			fieldTokens[field] = n
			total += n
		}
		if total == 0 {
			break
		}

		for _, field := range out.Fields() {
			cost := fieldTokens[field]
			if cost == 0 {
				continue
			}

			text := fieldString(out, field)
			words := strings.Split(text, " ")

			cutWords := len(words) * (overflow * cost / total) / cost
			if max := len(words) - minKeepWords; cutWords > max {
				cutWords = max
			}

			if cutWords >= 1 && len(words) > minCutWords {
				words = words[:len(words)-cutWords]
				out.Set(field, strings.Join(words, " ")+ellipsis)
				cutLast = true
			}
		}

		overflow = t.recordTokens(out) - allowance
	}

	return out
}

// count measures the serialized size of a whole set.
func (t *Truncator) count(records types.ResultSet) int {
	data, err := json.Marshal(records)
	if err != nil {
		return 0
	}
	return t.counter.Count(string(data))
}

// recordTokens measures the serialized size of one record.
func (t *Truncator) recordTokens(rec *types.Record) int {
	data, err := json.Marshal(rec)
	if err != nil {
		return 0
	}
	return t.counter.Count(string(data))
}

func fieldString(rec *types.Record, field string) string {
	v, _ := rec.Get(field)
	s, _ := v.(string)
	return s
}

// ClampPayload applies the emergency fallback: when per-record shrinking
// still leaves the serialized payload over budget, cut it once to the
// character length the budget implies. Lossy but hard-bounded; the caller
// logs it, it is never surfaced as an error.
func (t *Truncator) ClampPayload(payload string, budget int) (string, bool) {
	tokens := t.counter.Count(payload)
	if tokens <= budget {
		return payload, false
	}

	runes := []rune(payload)
	limit := len(runes) * budget / tokens
	clamped := string(runes[:limit])

	t.logger.Debugw("Emergency truncation applied",
		"tokens", tokens,
		"budget", budget,
		"chars", limit,
	)
	return clamped, true
}
