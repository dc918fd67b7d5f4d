package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Verify the vision API credential and model respond",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.visionClient()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if err := client.HealthCheck(cmd.Context()); err != nil {
				if colorize {
					fmt.Fprintf(out, "%sFAIL%s model %s: %v\n", ansiRed, ansiReset, cfg.Vision.Model, err)
				} else {
					fmt.Fprintf(out, "FAIL model %s: %v\n", cfg.Vision.Model, err)
				}
				return fmt.Errorf("vision API health check failed")
			}
			fmt.Fprintf(out, "OK model %s responded\n", cfg.Vision.Model)
			return nil
		},
	}
}
