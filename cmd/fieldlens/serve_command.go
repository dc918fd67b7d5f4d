package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fieldlens/internal/results"
	"fieldlens/internal/review"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the review dashboard API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			address := cfg.Review.Bind
			if bind != "" {
				address = bind
			}

			srv, err := review.NewServer(review.ServerOptions{
				Bind:        address,
				Store:       review.NewStore(cfg.Review.DataFile, cfg.Review.BackupDir),
				Results:     results.NewStore(cfg.Analyze.ResultsFile),
				FilesRoot:   cfg.Review.FilesRoot,
				ReportTitle: cfg.Report.Title,
				Logger:      logger,
			})
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.Start(runCtx); err != nil {
				return err
			}
			defer srv.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Review server listening on %s (Ctrl+C to stop)\n", srv.Addr())
			<-runCtx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address, host:port")
	return cmd
}
