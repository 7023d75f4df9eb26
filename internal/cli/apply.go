package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/kilupskalvis/cmr/internal/core"
	"github.com/kilupskalvis/cmr/internal/models"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Resolve a conflict-marked file and write the result",
	Long: `Analyze a conflict-marked file and, if the analysis passes the
auto-resolvability gate, write the resolved content back in place.

Files that require manual review are refused unless every region is
overridden with an explicit side:

  cmr apply src/app.ts                         # Auto-resolve and write
  cmr apply --dry-run src/app.ts               # Print resolution, don't write
  cmr apply --override 12=theirs src/app.ts    # Force the region at line 12
  cmr apply --override 12=ours --override 40=theirs src/app.ts`,
	Args: cobra.ExactArgs(1),
	Run:  runApply,
}

var (
	applyChangeSet string
	applyOverrides []string
	applyDryRun    bool
)

func init() {
	applyCmd.Flags().StringVar(&applyChangeSet, "change-set", "", "Change-set (pull request) ID for merge context")
	applyCmd.Flags().StringArrayVar(&applyOverrides, "override", nil, "Per-region manual resolution as startLine=ours|theirs")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Print the resolved content instead of writing the file")
}

func runApply(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initFullContext()
	defer c.Close()

	filePath := args[0]
	data, err := os.ReadFile(filePath)
	if err != nil {
		exitError("%v", err)
	}
	original := string(data)

	cache := core.NewContextCache()
	analysis, err := core.Resolve(ctx, c.Config, cache, c.Client, applyChangeSet, filePath, original)
	if err != nil {
		exitError("%v", err)
	}

	for _, override := range applyOverrides {
		startLine, side, err := parseOverride(override)
		if err != nil {
			exitError("%v", err)
		}
		if err := applyOverride(analysis, startLine, side); err != nil {
			exitError("%v", err)
		}
	}

	if err := c.Store.SaveAnalysis(analysis, applyChangeSet); err != nil {
		exitError("failed to record analysis: %v", err)
	}

	resolved, err := core.Apply(original, analysis)
	if err != nil {
		printAnalysis(analysis, false)
		exitError("%v", err)
	}

	if applyDryRun {
		fmt.Print(resolved)
		return
	}

	info, err := os.Stat(filePath)
	if err != nil {
		exitError("%v", err)
	}
	if err := os.WriteFile(filePath, []byte(resolved), info.Mode().Perm()); err != nil {
		exitError("failed to write %s: %v", filePath, err)
	}

	green := color.New(color.FgGreen)
	green.Printf("Resolved %d region(s) in %s", len(analysis.Regions), filePath)
	fmt.Printf("  (analysis %s)\n", analysis.ShortID())
}

// parseOverride parses a startLine=ours|theirs flag value
func parseOverride(s string) (int, string, error) {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid override %q: expected startLine=ours|theirs", s)
	}
	startLine, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("invalid override %q: %w", s, err)
	}
	side := strings.ToLower(parts[1])
	if side != "ours" && side != "theirs" {
		return 0, "", fmt.Errorf("invalid override side %q: expected ours or theirs", parts[1])
	}
	return startLine, side, nil
}

// applyOverride installs a manual resolution using the chosen side's lines
func applyOverride(analysis *models.ConflictAnalysis, startLine int, side string) error {
	for _, region := range analysis.Regions {
		if region.StartLine != startLine {
			continue
		}
		lines := region.OursLines
		if side == "theirs" {
			lines = region.TheirsLines
		}
		return core.Override(analysis, startLine, lines, fmt.Sprintf("manual override: kept %s side", side))
	}
	return fmt.Errorf("no conflict region starts at line %d", startLine)
}
