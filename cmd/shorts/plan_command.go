package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shorts/internal/fileutil"
	"shorts/internal/history"
	"shorts/internal/language"
	"shorts/internal/logging"
	"shorts/internal/manifest"
	"shorts/internal/renderplan"
	"shorts/internal/services"
	"shorts/internal/timecode"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var manifestFlag string
	var cutFlag string
	var langFlag string
	var outFlag string
	var summary bool

	cmd := &cobra.Command{
		Use:   "plan [manifest]",
		Short: "Build the render plan for one cut and language",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := manifestPathArg(manifestFlag, args)
			if err != nil {
				return err
			}
			runCtx, logger, runID := ctx.beginRun(cmd, path, "plan")

			m, _, err := loadValidManifest(cmd, path)
			if err != nil {
				return err
			}
			lang := ctx.resolveLang(langFlag)
			plan, err := buildPlan(logger, m, cutFlag, lang)
			if err != nil {
				return err
			}

			if summary {
				fmt.Fprint(cmd.OutOrStdout(), renderPlanSummary(plan))
				return nil
			}

			data, err := marshalIndented(plan)
			if err != nil {
				return services.Wrap(services.ErrIO, "plan", "encode", "Failed to encode render plan", err)
			}
			if strings.TrimSpace(outFlag) == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			outPath, err := filepath.Abs(outFlag)
			if err != nil {
				return services.Wrap(services.ErrUsage, "plan", "resolve output", "resolve --out path", err)
			}
			if err := fileutil.WriteFileVerified(outPath, data, 0o644); err != nil {
				logging.ErrorWithContext(logger, "render plan write failed", "plan_write_failed",
					logging.String("path", outPath),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check that the --out directory exists and is writable"),
				)
				return services.Wrap(services.ErrIO, "plan", "write", fmt.Sprintf("write %s", outPath), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Render plan written: %s\n", outPath)

			ctx.recordRun(runCtx, logger, planRun(runID, path, plan, []string{outPath}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Manifest file (.json, .yaml, .yml)")
	cmd.Flags().StringVar(&cutFlag, "cut", "", "Cut name (default: first declared cut, or the full timeline)")
	cmd.Flags().StringVar(&langFlag, "lang", "", "Caption language (default from config, then \"en\")")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Write the plan to this file instead of stdout")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a human-readable summary table instead of JSON")
	return cmd
}

// buildPlan wraps renderplan.Build with language diagnostics shared by the
// plan and subs commands.
func buildPlan(logger *slog.Logger, m *manifest.Manifest, cut, lang string) (*renderplan.Plan, error) {
	if err := language.Check(lang); err != nil {
		logging.WarnWithContext(logger, "language code is not a BCP 47 tag", "lang_malformed",
			logging.String(logging.FieldLang, lang),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "captions are matched by exact string; check the spelling"),
		)
	}
	plan, err := renderplan.NewBuilder(logger).Build(m, renderplan.Options{CutName: cut, Lang: lang})
	if err != nil {
		return nil, err
	}
	if len(plan.Captions) == 0 {
		attrs := []logging.Attr{
			logging.String(logging.FieldLang, plan.Lang),
			logging.String(logging.FieldImpact, "segments will carry empty caption text"),
		}
		if suggestion := language.Suggest(plan.Lang, captionLangs(m)); suggestion != "" {
			attrs = append(attrs, logging.String(logging.FieldErrorHint,
				fmt.Sprintf("did you mean --lang %s (%s)?", suggestion, language.DisplayName(suggestion))))
		}
		logging.WarnWithContext(logger, "no captions declared for language", "captions_missing", attrs...)
	}
	return plan, nil
}

func planRun(runID, manifestPath string, plan *renderplan.Plan, outputs []string) *history.Run {
	run := &history.Run{
		ID:            runID,
		Kind:          history.KindPlan,
		ManifestPath:  manifestPath,
		ProjectID:     plan.Project.ID,
		CutName:       plan.Cut.Name,
		Lang:          plan.Lang,
		AudioSelector: plan.AudioSelector,
		SegmentCount:  len(plan.Segments()),
		Outputs:       outputs,
	}
	if plan.Audio != nil {
		run.AudioID = plan.Audio.ID
	}
	return run
}

func renderPlanSummary(plan *renderplan.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s (%s)\n", plan.Project.Title, plan.Project.ID)
	window := timecode.Range{Start: plan.Cut.Start(), End: plan.Cut.End()}
	fmt.Fprintf(&b, "Cut:     %s [%s - %s] %s, %ss\n", plan.Cut.Name,
		timecode.VTT(window.Start), timecode.VTT(window.End), plan.Cut.Size,
		strconv.FormatFloat(window.Duration(), 'f', -1, 64))
	fmt.Fprintf(&b, "Lang:    %s (%s)\n", plan.Lang, language.DisplayName(plan.Lang))
	if plan.Audio == nil {
		b.WriteString("Audio:   none\n")
	} else {
		fmt.Fprintf(&b, "Audio:   %s %s (%s)\n", plan.Audio.ID, plan.Audio.Source, plan.AudioSelector)
	}
	fmt.Fprintf(&b, "Video:   %d source(s)\n", len(plan.VideoSources))

	segments := plan.Segments()
	if len(segments) == 0 {
		b.WriteString("No segments in cut\n")
		return b.String()
	}
	rows := make([][]string, 0, len(segments))
	for i, segment := range segments {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			timecode.VTT(segment.T0),
			timecode.VTT(segment.T1),
			segment.CapRef,
			segment.Text,
		})
	}
	b.WriteString(renderTable(
		[]string{"#", "Start", "End", "Caption", "Text"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft},
	))
	b.WriteString("\n")
	return b.String()
}
