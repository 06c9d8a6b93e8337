package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzdb/internal/config"
	"github.com/ngrash/go-tzdb/internal/render"
)

var parseOutput string

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse source files and print the database",
	Long: `Parses the given source files, or the files listed in the
configuration, into one database and prints it.

Examples:
  tzdb parse                          # configured files of source_dir
  tzdb parse europe backward          # single files
  tzdb parse --output summary         # counts and one line per zone`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "", "yaml, json or summary (overrides output)")
}

func runParse(cmd *cobra.Command, args []string) error {
	output := cfg.Output
	if cmd.Flags().Changed("output") {
		output = parseOutput
	}

	db, err := loadDatabase(cfg.SourceDir, args)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch output {
	case config.OutputYAML:
		return render.YAML(w, db)
	case config.OutputJSON:
		return render.JSON(w, db)
	case config.OutputSummary:
		return render.Summary(w, db)
	}
	return fmt.Errorf("unsupported output %q", output)
}
