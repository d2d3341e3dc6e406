package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yukihiko-shinoda/staticpress-e2e/internal/config"
)

func NewRootCommand(cfg *config.Configuration) *cobra.Command {
	root := &cobra.Command{
		Use:           "wp-provision",
		Short:         "Provision a basic-auth protected WordPress container",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewProvisionCommand(cfg))
	return root
}

func Execute() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer func() {
		_ = logger.Sync()
	}()

	cfg := config.NewConfigurationWithDefaults()
	if err := NewRootCommand(cfg).Execute(); err != nil {
		zap.S().Errorw("startup aborted", "error", err)
		os.Exit(1)
	}
}
