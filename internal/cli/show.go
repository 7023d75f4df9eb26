package cli

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Show the full report for a recorded analysis",
	Long: `Render the report for an analysis from the audit log.
The ID may be abbreviated to a unique prefix, as printed by 'cmr log'.`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func runShow(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	analysis, err := c.Store.GetAnalysisByShortID(args[0])
	if errors.Is(err, sql.ErrNoRows) {
		exitError("no analysis found for %q", args[0])
	}
	if err != nil {
		exitError("failed to load analysis: %v", err)
	}

	fmt.Printf("analysis %s\n", analysis.ID)
	fmt.Printf("Date:   %s\n", analysis.CreatedAt.Format("Mon Jan 2 15:04:05 2006"))
	fmt.Printf("Strategy: %s (fallback %s)\n\n", analysis.Strategy.Primary, analysis.Strategy.Fallback)

	printAnalysis(analysis, false)
}
