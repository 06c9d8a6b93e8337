package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzdb/internal/dbdiff"
)

var diffCmd = &cobra.Command{
	Use:   "diff DIR_A DIR_B",
	Short: "Compare two source directories",
	Long: `Parses the configured files of both directories and prints the
rule sets, zones and links that differ (-A +B).`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	a, err := loadDatabase(args[0], nil)
	if err != nil {
		return err
	}
	b, err := loadDatabase(args[1], nil)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if d := dbdiff.Diff(a, b); d != "" {
		fmt.Fprintln(w, "databases are different: -A +B")
		fmt.Fprint(w, d)
	} else {
		fmt.Fprintln(w, "databases are identical")
	}
	return nil
}
