package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/corpusquery/internal/config"
	"github.com/dbsmedya/corpusquery/internal/corpus"
	"github.com/dbsmedya/corpusquery/internal/database"
	"github.com/dbsmedya/corpusquery/internal/logger"
	"github.com/dbsmedya/corpusquery/internal/querytool"
	"github.com/dbsmedya/corpusquery/internal/token"
	"github.com/dbsmedya/corpusquery/internal/tracking"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

var queryShowUsage bool

var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Run one query through the grounding tool",
	Long: `Query runs a single SQL command through the full tool pipeline:
rewrite against the corpus schema, execute, truncate to the token budget,
and print the composed result.

Example:
  corpusquery query --config corpusquery.yaml "SELECT * FROM items WHERE colr LIKE '%cofee%'"`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryShowUsage, "show-usage", false,
		"Print the tracked usage entry after the result")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	ctx := database.SetupSignalHandler()

	mgr := database.NewManager(&cfg.Corpus)
	if err := mgr.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to corpus: %w", err)
	}
	defer mgr.Close()

	corp := corpus.NewSQL(mgr.DB, &cfg.Schema, log)
	if err := corp.LoadDomains(ctx); err != nil {
		return fmt.Errorf("failed to load categorical domains: %w", err)
	}

	buffer := tracking.NewBuffer()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	tool := querytool.New(&cfg.Tool, corp, buffer, token.NewEstimator(), rng, log)

	printToolOutput(tool.Run(ctx, args[0]))

	if queryShowUsage {
		for _, entry := range buffer.Entries() {
			fmt.Fprintf(outputWriter, "usage: tool=%s query=%q summary=%q\n",
				entry.ToolName, entry.Query, entry.Summary)
		}
	}

	return nil
}

// printToolOutput highlights the diagnostic sentences and leaves the payload
// line plain.
func printToolOutput(out string) {
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if i < len(lines)-1 {
			fmt.Fprintln(outputWriter, color.Yellow.Sprint(line))
		} else {
			fmt.Fprintln(outputWriter, line)
		}
	}
}

// loadConfig loads, overrides, and validates the configuration file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.MaxTokens)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
