package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fieldlens/internal/report"
	"fieldlens/internal/review"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the approved-findings HTML report to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store := review.NewStore(cfg.Review.DataFile, cfg.Review.BackupDir)
			approved, err := store.Approved()
			if err != nil {
				return err
			}

			items := make([]report.Item, 0, len(approved))
			for _, entry := range approved {
				items = append(items, report.Item{
					Folder:      entry.Folder,
					Filename:    entry.Filename,
					ImagePath:   entry.ImagePath,
					Task:        entry.Task,
					Description: entry.Description,
					Importance:  entry.Importance,
				})
			}
			page, err := report.Render(items, report.Options{Title: cfg.Report.Title})
			if err != nil {
				return err
			}

			target := cfg.Report.OutputFile
			if outputFile != "" {
				target = outputFile
			}
			if err := os.WriteFile(target, page, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote report with %d approved findings to %s\n", len(items), target)
			if len(items) == 0 {
				fmt.Fprintln(out, "No findings are approved yet; approve entries in the review dashboard first.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Report destination path")
	return cmd
}
