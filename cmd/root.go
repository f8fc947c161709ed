package cmd

import (
	"fmt"
	"os"

	"github.com/lx-annotate/annotate-api/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "annotate-api",
	Short: "Annotation gateway for medical video dashboards",
	Long: `Annotate Gateway API - state and persistence layer for medical video
annotation dashboards.

The gateway fronts a clinical backend and keeps the annotation workflow
state the dashboard needs:

  • Local draft persistence that survives restarts
  • Video segment CRUD with label grouping and frame conversion
  • General annotation CRUD with filtering and multi-select
  • Aggregated completion statistics across annotation domains
  • Sensitive patient metadata verification`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Set up configuration loading with lazy initialization
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it
// This is called lazily only when a command that needs config runs
func loadConfig() {
	// Skip config loading for commands that don't need it
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && cmd.Name() == "version" {
		return
	}

	// Initialize the configuration
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
