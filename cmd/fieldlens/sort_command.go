package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fieldlens/internal/batch"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	var sourceDirs []string
	var damagedDir string
	var cleanDir string

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Classify photos as damaged or clean and copy them into sorted folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			orch, err := ctx.orchestrator()
			if err != nil {
				return err
			}

			spec := batch.SortSpec{
				SourceDirs: cfg.Sort.SourceDirs,
				DamagedDir: cfg.Sort.DamagedDir,
				CleanDir:   cfg.Sort.CleanDir,
			}
			if len(sourceDirs) > 0 {
				spec.SourceDirs = sourceDirs
			}
			if damagedDir != "" {
				spec.DamagedDir = damagedDir
			}
			if cleanDir != "" {
				spec.CleanDir = cleanDir
			}
			if len(spec.SourceDirs) == 0 {
				return fmt.Errorf("no source folders configured; set sort.source_dirs or pass --source")
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := orch.RunSort(runCtx, spec)
			if err != nil {
				return err
			}
			printRunSummary(cmd.OutOrStdout(), "sort", summary)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sourceDirs, "source", nil, "Photo folder to scan (repeatable)")
	cmd.Flags().StringVar(&damagedDir, "damaged-dir", "", "Destination for damaged photos")
	cmd.Flags().StringVar(&cleanDir, "clean-dir", "", "Destination for clean photos")
	return cmd
}
