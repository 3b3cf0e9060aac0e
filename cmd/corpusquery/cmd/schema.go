package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the corpus schema the tool grounds against",
	Long: `Schema displays the canonical table name, the known columns with their
meanings, and which columns carry a categorical value domain.

Example:
  corpusquery schema --config corpusquery.yaml`,
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(outputWriter, "Corpus table: %s\n\n", cfg.Schema.Table)

	columns := make([]string, 0, len(cfg.Schema.Columns))
	width := 0
	for col := range cfg.Schema.Columns {
		columns = append(columns, col)
		if w := runewidth.StringWidth(col); w > width {
			width = w
		}
	}
	sort.Strings(columns)

	for _, col := range columns {
		padding := strings.Repeat(" ", width-runewidth.StringWidth(col))
		line := fmt.Sprintf("  %s%s  %s", col, padding, cfg.Schema.Columns[col])
		if cfg.Schema.IsCategorical(col) {
			line += " " + color.Green.Sprint("(categorical)")
		}
		fmt.Fprintln(outputWriter, line)
	}

	return nil
}
