package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/cmr/internal/models"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the analysis audit log",
	Long:  `Display recorded conflict analyses, newest first.`,
	Run:   runLog,
}

var logLimit int

func init() {
	logCmd.Flags().IntVarP(&logLimit, "n", "n", 0, "Limit the number of analyses to show")
}

func runLog(cmd *cobra.Command, args []string) {
	c := initContext()
	defer c.Close()

	summaries, err := c.Store.ListAnalyses(logLimit)
	if err != nil {
		exitError("failed to list analyses: %v", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No analyses recorded yet")
		return
	}

	yellow := color.New(color.FgYellow)
	for _, summary := range summaries {
		yellow.Printf("%s ", summary.ShortID())
		fmt.Printf("%s  %d region(s)  %.0f%% ", summary.FilePath, summary.RegionCount, summary.OverallConfidence*100)

		switch summary.Risk {
		case models.RiskHigh:
			color.New(color.FgRed, color.Bold).Printf("[%s]", summary.Risk)
		case models.RiskMedium:
			color.New(color.FgYellow).Printf("[%s]", summary.Risk)
		default:
			color.New(color.FgGreen).Printf("[%s]", summary.Risk)
		}

		if summary.AutoResolvable {
			color.New(color.FgGreen).Print(" auto")
		}
		if summary.ChangeSet != "" {
			fmt.Printf("  cs:%s", summary.ChangeSet)
		}
		fmt.Printf("  %s\n", summary.CreatedAt)
	}
}
