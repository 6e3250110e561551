package main

import (
	"github.com/spf13/cobra"

	"shorts/internal/logging"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var manifestFlag string

	cmd := &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Check a manifest and list every problem found",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := manifestPathArg(manifestFlag, args)
			if err != nil {
				return err
			}
			_, logger, _ := ctx.beginRun(cmd, path, "validate")
			_, report, err := loadValidManifest(cmd, path)
			if err != nil {
				logger.Info("manifest rejected", logging.Args(logging.Int("errors", len(report.Errors)))...)
				return err
			}
			writeValidationSuccess(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Manifest file (.json, .yaml, .yml)")
	return cmd
}
