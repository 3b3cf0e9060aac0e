// Package querytool wires the query rewriter, the corpus, and the result
// truncator into the single tool surface exposed to the agent.
package querytool

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/dbsmedya/corpusquery/internal/config"
	"github.com/dbsmedya/corpusquery/internal/corpus"
	"github.com/dbsmedya/corpusquery/internal/logger"
	"github.com/dbsmedya/corpusquery/internal/rewrite"
	"github.com/dbsmedya/corpusquery/internal/token"
	"github.com/dbsmedya/corpusquery/internal/tracking"
	"github.com/dbsmedya/corpusquery/internal/truncate"
)

// usageSummary is the fixed label reported to the usage sink per invocation.
const usageSummary = "Some item information."

// Tool searches information from the item corpus. It receives a SQL command
// as input and returns the search result as text, rewriting the command to
// match the corpus and truncating the result to the token budget when needed.
type Tool struct {
	name      string
	desc      string
	corpus    corpus.Corpus
	rewriter  *rewrite.Rewriter
	truncator *truncate.Truncator
	sink      tracking.Sink
	budget    int
	logger    *logger.Logger
}

// New creates a Tool. The random source seeds result sampling; pass a fixed
// seed in tests for reproducible output.
func New(cfg *config.ToolConfig, c corpus.Corpus, sink tracking.Sink, counter token.Counter, rng *rand.Rand, log *logger.Logger) *Tool {
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithTool(cfg.Name)

	return &Tool{
		name:      cfg.Name,
		desc:      cfg.Description,
		corpus:    c,
		rewriter:  rewrite.New(c, log),
		truncator: truncate.New(counter, rng, log),
		sink:      sink,
		budget:    cfg.ResultMaxTokens,
		logger:    log,
	}
}

// Name returns the tool name exposed to the agent.
func (t *Tool) Name() string { return t.name }

// Description returns the tool description exposed to the agent.
func (t *Tool) Description() string { return t.desc }

// brokenMessage is the uniform user-facing failure text. Internal detail is
// logged, never surfaced.
func (t *Tool) brokenMessage() string {
	return fmt.Sprintf("%s: something went wrong in execution, the tool is broken for current input.", t.name)
}

// Run executes one query end to end: rewrite, execute, truncate, format.
// Failures in any stage collapse into the same fixed diagnostic text; the
// caller never sees a partial rewrite or a partial result.
func (t *Tool) Run(ctx context.Context, rawQuery string) string {
	log := t.logger.WithQuery(rawQuery)
	log.Debugw("Received query from agent")

	res, err := t.rewriter.Rewrite(rawQuery)
	if err != nil {
		log.Warnw("Query rewrite failed", "error", err)
		return t.brokenMessage()
	}
	query := res.Query
	log.Debugw("Rewrote query", "rewritten", query)

	defer t.sink.Track(t.name, query, usageSummary)

	records, err := t.corpus.Execute(ctx, query)
	if err != nil {
		log.Warnw("Corpus execution failed", "error", err)
		return t.brokenMessage()
	}

	bounded, sampled := t.truncator.Truncate(records, t.budget)

	data, err := json.Marshal(bounded)
	if err != nil {
		log.Warnw("Result serialization failed", "error", err)
		return t.brokenMessage()
	}

	payload, clamped := t.truncator.ClampPayload(string(data), t.budget)
	if clamped {
		log.Debugw("Emergency truncation applied to result payload")
	}

	var out strings.Builder
	if res.Grounded() {
		fmt.Fprintf(&out, "%s: the input query was rewritten as %q because some column names or values did not match the item corpus.\n", t.name, query)
	}
	if sampled {
		fmt.Fprintf(&out, "%s: the result is too long, only a random sample is shown.\n", t.name)
	}
	fmt.Fprintf(&out, "%s search result: %s", t.name, payload)

	log.Debugw("Query completed", "records", len(bounded), "sampled", sampled)
	return out.String()
}
