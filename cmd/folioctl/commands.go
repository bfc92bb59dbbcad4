package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/sp3dr4/folio/internal/application"
	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/ops"
)

func newBackupCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "backup [output-dir]",
		Short: "Dump posts, projects and researches to JSON files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			outputDir := cfg.Ops.BackupDir
			if len(args) == 1 {
				outputDir = args[0]
			}

			var (
				store  domain.Store
				logger *slog.Logger
			)
			return withApp(cmd.Context(), cfg, func() error {
				dir, meta, err := ops.NewBackup(store, logger).Run(cmd.Context(), outputDir)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Backup location: %s\nTotal records: %d\n", dir, meta.Total())
				return nil
			}, &store, &logger)
		},
	}
}

func newQACommand(load configLoader) *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "qa",
		Short: "Probe the data store and write a JSON report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if reportPath == "" {
				reportPath = cfg.Ops.QAReportPath
			}

			var (
				store  domain.Store
				logger *slog.Logger
			)
			return withApp(cmd.Context(), cfg, func() error {
				report := ops.NewQA(store, logger).Run(cmd.Context())
				if err := ops.WriteReport(reportPath, report); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Passed: %d\nFailed: %d\nWarnings: %d\nResults saved to: %s\n",
					report.Passed, report.Failed, report.Warnings, reportPath)
				if !report.OK() {
					return fmt.Errorf("%d QA checks failed", report.Failed)
				}
				return nil
			}, &store, &logger)
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "path of the JSON report")
	return cmd
}

func newBundleSizeCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "bundle-size [chunks-dir]",
		Short: "Report the largest JavaScript chunks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			dir := cfg.Ops.ChunksDir
			if len(args) == 1 {
				dir = args[0]
			}

			report, err := ops.AnalyzeBundles(dir, cfg.Ops.BundleLimitKB)
			if err != nil {
				return err
			}
			report.Print(cmd.OutOrStdout())
			return nil
		},
	}
}

func newNewPostCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:       "new-post <template> <slug> <title>",
		Short:     "Create a markdown post from a template",
		Args:      cobra.ExactArgs(3),
		ValidArgs: ops.TemplateNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			path, err := ops.NewPostFile(cfg.Ops.TemplatesDir, cfg.Ops.PostsOutputDir, args[0], args[1], args[2], time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Post created: %s\nNext: folioctl insert-post %s\n", path, path)
			return nil
		},
	}
}

func newInsertPostCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "insert-post <post-file.md>",
		Short: "Insert a markdown post into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			var admin *application.AdminService
			return withApp(cmd.Context(), cfg, func() error {
				post, err := ops.InsertPostFile(cmd.Context(), admin, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Post inserted: %s\nID: %s\nURL: %s/blog/%s\n", post.Slug, post.ID, cfg.App.BaseURL, post.Slug)
				return nil
			}, &admin)
		},
	}
}
