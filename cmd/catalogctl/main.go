// Command catalogctl administers the catalog database: schema migration and
// administrator bootstrap.
package main

import (
	"os"

	"tokoadmin/internal/config"
	"tokoadmin/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Catalog administration tool",
		Long:          "Manage the product catalog database and its administrator accounts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCreateAdminCmd())
	return rootCmd
}

// loadConfig reads the same environment as the API server. Logs go to
// stderr so command output stays clean.
func loadConfig(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.AppName, cfg.Env)
	log.SetOutput(cmd.ErrOrStderr())
	return cfg, log, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
