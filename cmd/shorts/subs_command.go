package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shorts/internal/history"
	"shorts/internal/logging"
	"shorts/internal/services"
	"shorts/internal/subtitles"
)

func newSubsCommand(ctx *commandContext) *cobra.Command {
	var manifestFlag string
	var cutFlag string
	var langFlag string
	var outDirFlag string
	var formatFlag string
	var check bool

	cmd := &cobra.Command{
		Use:   "subs [manifest]",
		Short: "Export SRT/WebVTT subtitles for one cut and language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := manifestPathArg(manifestFlag, args)
			if err != nil {
				return err
			}
			cfg := ctx.configValue()
			formatValue := formatFlag
			if strings.TrimSpace(formatValue) == "" {
				formatValue = cfg.Defaults.Format
			}
			format, err := subtitles.ParseFormat(formatValue)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Invalid --format value. Use: srt, vtt, or both")
				return reported(err)
			}

			runCtx, logger, runID := ctx.beginRun(cmd, path, "subs")
			m, _, err := loadValidManifest(cmd, path)
			if err != nil {
				return err
			}
			lang := ctx.resolveLang(langFlag)
			plan, err := buildPlan(logger, m, cutFlag, lang)
			if err != nil {
				return err
			}

			run := planRun(runID, path, plan, nil)
			run.Kind = history.KindSubtitles
			run.Format = string(format)

			files, err := subtitles.Render(plan, format)
			if err != nil {
				if errors.Is(err, subtitles.ErrNoSegments) {
					fmt.Fprintf(cmd.ErrOrStderr(), "No caption-linked audio segments found for lang=%s\n", plan.Lang)
					err = reported(err)
				}
				run.Status = history.StatusFailed
				run.ErrorMessage = errorMessage(err)
				ctx.recordRun(runCtx, logger, run)
				return err
			}

			outDir := strings.TrimSpace(outDirFlag)
			if outDir == "" {
				outDir = filepath.Join(filepath.Dir(path), cfg.Defaults.SubsDirName)
			}
			outDir, err = filepath.Abs(outDir)
			if err != nil {
				return services.Wrap(services.ErrUsage, "subs", "resolve output", "resolve --out-dir path", err)
			}

			written, err := subtitles.WriteFiles(runCtx, outDir, files)
			for _, entry := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "Subtitle written: %s\n", entry)
			}
			run.Outputs = written
			if err != nil {
				logging.ErrorWithContext(logger, "subtitle export failed", "subs_write_failed",
					logging.String("out_dir", outDir),
					logging.Int("written", len(written)),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check --out-dir permissions and that no other export holds the lock"),
				)
				run.Status = history.StatusFailed
				run.ErrorMessage = err.Error()
				ctx.recordRun(runCtx, logger, run)
				return err
			}
			logger.Info("subtitles exported", logging.Args(
				logging.String(logging.FieldCut, plan.Cut.Name),
				logging.String(logging.FieldLang, plan.Lang),
				logging.Int("files", len(written)),
				logging.Int("segments", run.SegmentCount),
			)...)

			if check {
				if err := lintFiles(cmd, files, written); err != nil {
					run.Status = history.StatusFailed
					run.ErrorMessage = errorMessage(err)
					ctx.recordRun(runCtx, logger, run)
					return err
				}
			}

			ctx.recordRun(runCtx, logger, run)
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Manifest file (.json, .yaml, .yml)")
	cmd.Flags().StringVar(&cutFlag, "cut", "", "Cut name (default: first declared cut, or the full timeline)")
	cmd.Flags().StringVar(&langFlag, "lang", "", "Caption language (default from config, then \"en\")")
	cmd.Flags().StringVar(&outDirFlag, "out-dir", "", "Output directory (default: <manifest dir>/subs)")
	cmd.Flags().StringVar(&formatFlag, "format", "", "Subtitle format: srt, vtt, or both (default from config)")
	cmd.Flags().BoolVar(&check, "check", false, "Lint the written files and fail on format issues")
	return cmd
}

func lintFiles(cmd *cobra.Command, files []subtitles.File, paths []string) error {
	failed := 0
	for i, file := range files {
		issues := subtitles.Lint(file.Content)
		if len(issues) == 0 {
			continue
		}
		failed++
		fmt.Fprintf(cmd.ErrOrStderr(), "Subtitle check failed: %s\n", paths[i])
		for j, issue := range issues {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d. %s\n", j+1, issue)
		}
	}
	if failed > 0 {
		return reported(services.Wrap(services.ErrValidation, "subs", "check",
			fmt.Sprintf("%d subtitle file(s) failed lint", failed), nil))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitle check passed: %d file(s)\n", len(files))
	return nil
}
