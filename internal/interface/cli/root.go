// Package cli wires the estimate wizard into a cobra command tree
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aviniti/blueprint/internal/app/config"
	infraConfig "github.com/aviniti/blueprint/internal/infra/config"
)

// globalConfig holds the loaded configuration for all commands
var globalConfig *config.AppConfig

// NewRoot builds the root command
func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blueprint",
		Short: "App development cost and time estimation wizard",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			baseDir := "."
			if home := os.Getenv("BLUEPRINT_BASE"); home != "" {
				baseDir = home
			}
			cfg, err := infraConfig.LoadSettings(baseDir)
			if err != nil {
				return err
			}
			globalConfig = cfg
			InitGlobalLogger(cfg.StderrLevel)
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.AddCommand(newEstimateCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newClearCmd())
	return cmd
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	if err := NewRoot().Execute(); err != nil {
		GetLogger().Error("%v", err)
		return 1
	}
	return 0
}
