// Package main implements folioctl, the operational CLI of the folio site:
// database backups, backend QA, bundle size reports and post authoring.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/sp3dr4/folio/config"
	folioFX "github.com/sp3dr4/folio/internal/fx"
)

const startTimeout = 30 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "folioctl",
		Short:        "Operational tools for the folio site",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("database", "", "database type (memory, sqlite, postgres)")
	root.PersistentFlags().String("database-url", "", "postgres connection URL")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("database.type", root.PersistentFlags().Lookup("database"))
	_ = v.BindPFlag("database.postgres.url", root.PersistentFlags().Lookup("database-url"))
	_ = v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))

	load := func() (*config.Config, error) {
		return config.LoadWith(v)
	}

	root.AddCommand(
		newBackupCommand(load),
		newQACommand(load),
		newBundleSizeCommand(load),
		newNewPostCommand(load),
		newInsertPostCommand(load),
	)
	return root
}

type configLoader func() (*config.Config, error)

// withApp starts the core modules, populates targets and stops the app once run returns.
func withApp(ctx context.Context, cfg *config.Config, run func() error, targets ...any) error {
	app := fx.New(
		fx.Supply(cfg),
		folioFX.CLIModules,
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	runErr := run()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), startTimeout)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
