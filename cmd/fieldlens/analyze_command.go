package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fieldlens/internal/batch"
	"fieldlens/internal/results"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var sourceDirs []string
	var resultsFile string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze grouped photos for maintenance issues and record findings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			orch, err := ctx.orchestrator()
			if err != nil {
				return err
			}

			dirs := cfg.Analyze.SourceDirs
			if len(sourceDirs) > 0 {
				dirs = sourceDirs
			}
			if len(dirs) == 0 {
				return fmt.Errorf("no source folders configured; set analyze.source_dirs or pass --source")
			}
			storePath := cfg.Analyze.ResultsFile
			if resultsFile != "" {
				storePath = resultsFile
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := orch.RunAnalyze(runCtx, batch.AnalyzeSpec{
				SourceDirs: dirs,
				Store:      results.NewStore(storePath),
			})
			if err != nil {
				return err
			}
			printRunSummary(cmd.OutOrStdout(), "analyze", summary)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sourceDirs, "source", nil, "Photo folder to scan (repeatable)")
	cmd.Flags().StringVar(&resultsFile, "results", "", "Path to the analysis results file")
	return cmd
}
