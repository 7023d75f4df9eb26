// Package cli implements the command-line interface for CMR.
package cli

import (
	"fmt"
	"os"

	"github.com/kilupskalvis/cmr/internal/config"
	"github.com/kilupskalvis/cmr/internal/forge"
	"github.com/kilupskalvis/cmr/internal/store"
	"github.com/spf13/cobra"
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config *config.Config
	Store  *store.Store
	Client forge.ClientInterface
}

// Close releases resources held by cmdContext
func (c *cmdContext) Close() {
	if c.Store != nil {
		c.Store.Close()
	}
}

// initContext initializes config and store (no forge client)
func initContext() *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError("%v", err)
	}

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		exitError("failed to open store: %v", err)
	}

	if err := st.Initialize(); err != nil {
		st.Close()
		exitError("failed to initialize store: %v", err)
	}

	return &cmdContext{Config: cfg, Store: st}
}

// initFullContext initializes config, store, and the forge client with retries
func initFullContext() *cmdContext {
	ctx := initContext()

	client := forge.NewHTTPClient(ctx.Config.ForgeURL, ctx.Config.Repository, ctx.Config.Token)
	ctx.Client = forge.NewRetryClient(client, nil)

	return ctx
}

var rootCmd = &cobra.Command{
	Use:   "cmr",
	Short: "Conflict Merge Resolver",
	Long: `CMR (Conflict Merge Resolver) analyzes files with merge conflict markers,
classifies each conflict region, and resolves it using context gathered from
your hosting platform: author expertise, file criticality, test coverage,
and change frequency. Low-confidence files are surfaced for manual review
instead of being applied silently.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(logCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
