package cli

import (
	"fmt"

	"github.com/kilupskalvis/cmr/internal/config"
	"github.com/kilupskalvis/cmr/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new CMR repository",
	Long: `Initialize a new CMR repository in the current directory.
This creates a .cmr directory holding the configuration and the audit database.`,
	Run: runInit,
}

var (
	initForgeURL string
	initRepo     string
	initToken    string
)

func init() {
	initCmd.Flags().StringVar(&initForgeURL, "forge-url", "http://localhost:8730", "Hosting platform API base URL")
	initCmd.Flags().StringVar(&initRepo, "repo", "", "Repository slug (owner/name)")
	initCmd.Flags().StringVar(&initToken, "token", "", "Forge API token")
}

func runInit(cmd *cobra.Command, args []string) {
	// Check if already initialized
	if _, err := config.FindCMRRoot(); err == nil {
		exitError("cmr repository already exists")
	}

	if initRepo == "" {
		exitError("--repo is required (owner/name)")
	}

	fmt.Printf("Initializing CMR repository...\n")
	fmt.Printf("Forge URL:  %s\n", initForgeURL)
	fmt.Printf("Repository: %s\n", initRepo)

	cfg, err := config.Initialize(initForgeURL, initRepo)
	if err != nil {
		exitError("failed to initialize config: %v", err)
	}

	if initToken != "" {
		cfg.Token = initToken
		if err := cfg.Save(); err != nil {
			fmt.Printf("Warning: could not save token to config: %v\n", err)
		}
	}

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		exitError("failed to create store: %v", err)
	}
	defer st.Close()

	if err := st.Initialize(); err != nil {
		exitError("failed to initialize store: %v", err)
	}

	fmt.Printf("\nInitialized empty CMR repository in .cmr/\n")
	fmt.Printf("Run 'cmr resolve <file>' on a conflict-marked file to analyze it.\n")
}
