package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/cmr/internal/core"
	"github.com/kilupskalvis/cmr/internal/models"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>...",
	Short: "Analyze conflict-marked files and suggest resolutions",
	Long: `Analyze one or more files containing merge conflict markers.

Each file is parsed into conflict regions, every region is classified and
resolved, and the per-file verdict (confidence, risk, auto-resolvability)
is printed as a report and recorded in the audit log. Files are processed
concurrently; a malformed file never aborts the others.

Examples:
  cmr resolve src/app.ts                   # Analyze one file
  cmr resolve --change-set 42 src/*.ts     # Analyze with pull-request context
  cmr resolve --quiet src/app.ts           # Summary lines only`,
	Args: cobra.MinimumNArgs(1),
	Run:  runResolve,
}

var (
	resolveChangeSet string
	resolveQuiet     bool
)

func init() {
	resolveCmd.Flags().StringVar(&resolveChangeSet, "change-set", "", "Change-set (pull request) ID for merge context")
	resolveCmd.Flags().BoolVarP(&resolveQuiet, "quiet", "q", false, "Print only the per-file summary lines")
}

func runResolve(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initFullContext()
	defer c.Close()

	cache := core.NewContextCache()
	result, err := core.ResolveBatch(ctx, c.Config, cache, c.Client, resolveChangeSet, args)
	if err != nil {
		exitError("%v", err)
	}

	for _, analysis := range result.Analyses {
		if err := c.Store.SaveAnalysis(analysis, resolveChangeSet); err != nil {
			exitError("failed to record analysis for %s: %v", analysis.FilePath, err)
		}
		printAnalysis(analysis, resolveQuiet)
	}

	if len(result.Failed) > 0 {
		red := color.New(color.FgRed, color.Bold)
		red.Printf("\n%d file(s) failed:\n", len(result.Failed))
		for _, failure := range result.Failed {
			fmt.Printf("  %s: %s\n", failure.FilePath, failure.Reason)
		}
		exitError("some files could not be analyzed")
	}
}

// printAnalysis renders one analysis report with risk-colored output
func printAnalysis(analysis *models.ConflictAnalysis, quiet bool) {
	report := core.Report(analysis)

	riskColor := color.New(color.FgGreen)
	switch analysis.Risk {
	case models.RiskMedium:
		riskColor = color.New(color.FgYellow)
	case models.RiskHigh:
		riskColor = color.New(color.FgRed, color.Bold)
	}

	fmt.Printf("%s  ", report.Summary)
	riskColor.Printf("[risk: %s]", analysis.Risk)
	if analysis.AutoResolvable {
		color.New(color.FgGreen).Printf(" [auto-resolvable]")
	}
	fmt.Printf("  (analysis %s)\n", analysis.ShortID())

	if quiet {
		return
	}

	for _, detail := range report.Details {
		fmt.Printf("  %s\n", detail)
	}
	for _, rec := range report.Recommendations {
		color.New(color.FgCyan).Printf("  > %s\n", rec)
	}
	fmt.Println()
}
