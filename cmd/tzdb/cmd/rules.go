package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzdb/internal/calendar"
	"github.com/ngrash/go-tzdb/internal/render"
	"github.com/ngrash/go-tzdb/tzdata"
)

var rulesYear int

var rulesCmd = &cobra.Command{
	Use:   "rules NAME",
	Short: "Show the transitions of a rule set in a year",
	Long: `Resolves the rules of the named rule set that apply in the given
year to calendar dates.

Examples:
  tzdb rules US --year 2024
  tzdb rules EU`,
	Args: cobra.ExactArgs(1),
	RunE: runRules,
}

var zoneCmd = &cobra.Command{
	Use:   "zone NAME",
	Short: "Show the segments of a zone",
	Long: `Prints the segments of the named zone with their UNTIL columns
resolved to calendar dates. Links are followed.`,
	Args: cobra.ExactArgs(1),
	RunE: runZone,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(zoneCmd)

	rulesCmd.Flags().IntVar(&rulesYear, "year", time.Now().Year(), "year to resolve")
}

func runRules(cmd *cobra.Command, args []string) error {
	db, err := loadDatabase(cfg.SourceDir, nil)
	if err != nil {
		return err
	}
	rules, ok := db.RuleSet(args[0])
	if !ok {
		return fmt.Errorf("rule set %q not found", args[0])
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAT\tSAVE\tLETTER\tFROM\tTO")
	for _, tr := range calendar.Transitions(rules, rulesYear) {
		at := tr.At
		fmt.Fprintf(tw, "%04d-%02d-%02d\t%s\t%s\t%s\t%s\t%s\n",
			at.Year, int(at.Month), at.Day,
			render.FormatAt(tr.Rule.YearOffset),
			tzdata.FormatClock(tr.Rule.Save),
			tr.Rule.Letter,
			render.FormatYear(tr.Rule.From),
			render.FormatYear(tr.Rule.To))
	}
	return tw.Flush()
}

func runZone(cmd *cobra.Command, args []string) error {
	db, err := loadDatabase(cfg.SourceDir, nil)
	if err != nil {
		return err
	}
	name, ok := resolveZone(db, args[0])
	if !ok {
		return fmt.Errorf("zone %q not found", args[0])
	}
	z, _ := db.Zone(name)

	w := cmd.OutOrStdout()
	if name != args[0] {
		fmt.Fprintf(w, "%s -> %s\n", args[0], name)
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "STDOFF\tRULES\tFORMAT\tUNTIL")
	for _, s := range z.Segments {
		until := "-"
		if m, ok := calendar.UntilDate(s); ok {
			until = m.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", tzdata.FormatClock(s.Offset), s.Rules, s.Format, until)
	}
	return tw.Flush()
}

// resolveZone follows links from name until it reaches a zone.
func resolveZone(db *tzdata.Database, name string) (string, bool) {
	targets := make(map[string]string)
	for _, a := range db.Aliases() {
		targets[a.Name] = a.Target
	}
	for seen := make(map[string]bool); !seen[name]; {
		seen[name] = true
		if _, ok := db.Zone(name); ok {
			return name, true
		}
		target, ok := targets[name]
		if !ok {
			return "", false
		}
		name = target
	}
	return "", false
}
