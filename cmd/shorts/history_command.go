package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shorts/internal/history"
	"shorts/internal/services"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded plan and subtitle exports",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	return historyCmd
}

type historyRunView struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Manifest      string    `json:"manifest"`
	Project       string    `json:"project,omitempty"`
	Cut           string    `json:"cut,omitempty"`
	Lang          string    `json:"lang,omitempty"`
	Format        string    `json:"format,omitempty"`
	Audio         string    `json:"audio,omitempty"`
	AudioSelector string    `json:"audioSelector,omitempty"`
	Segments      int       `json:"segments"`
	Outputs       []string  `json:"outputs,omitempty"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var manifestFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent exports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			filter := history.ListFilter{Limit: limit}
			if strings.TrimSpace(manifestFlag) != "" {
				abs, err := filepath.Abs(manifestFlag)
				if err != nil {
					return services.Wrap(services.ErrUsage, "history", "list", "resolve --manifest path", err)
				}
				filter.ManifestPath = abs
			}
			runs, err := store.List(cmd.Context(), filter)
			if err != nil {
				return services.Wrap(services.ErrIO, "history", "list", "Failed to read history", err)
			}

			if asJSON {
				views := make([]historyRunView, 0, len(runs))
				for _, run := range runs {
					views = append(views, toHistoryView(run))
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				audio := run.AudioID
				if run.AudioSelector != "" {
					audio = fmt.Sprintf("%s (%s)", run.AudioID, run.AudioSelector)
				}
				rows = append(rows, []string{
					shortID(run.ID),
					run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					string(run.Kind),
					run.ProjectID,
					run.CutName,
					run.Lang,
					audio,
					strconv.Itoa(run.SegmentCount),
					string(run.Status),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "When", "Kind", "Project", "Cut", "Lang", "Audio", "Segments", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "Only show runs for this manifest")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Get(cmd.Context(), id)
			if err != nil {
				return services.Wrap(services.ErrIO, "history", "show", "Failed to read history", err)
			}
			if run == nil {
				return services.Wrap(services.ErrNotFound, "history", "show", fmt.Sprintf("run %s not found", id), nil)
			}
			if asJSON {
				return writeJSON(cmd, toHistoryView(run))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:      %s\n", run.ID)
			fmt.Fprintf(out, "When:     %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Kind:     %s\n", run.Kind)
			fmt.Fprintf(out, "Status:   %s\n", run.Status)
			fmt.Fprintf(out, "Manifest: %s\n", run.ManifestPath)
			fmt.Fprintf(out, "Cut:      %s\n", run.CutName)
			fmt.Fprintf(out, "Lang:     %s\n", run.Lang)
			if run.AudioID != "" {
				fmt.Fprintf(out, "Audio:    %s (%s)\n", run.AudioID, run.AudioSelector)
			}
			fmt.Fprintf(out, "Segments: %d\n", run.SegmentCount)
			for _, output := range run.Outputs {
				fmt.Fprintf(out, "Output:   %s\n", output)
			}
			if run.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:    %s\n", run.ErrorMessage)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than a duration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return services.Wrap(services.ErrUsage, "history", "prune", "--older-than must be positive", nil)
			}
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return services.Wrap(services.ErrIO, "history", "prune", "Failed to prune history", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s)\n", removed)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age threshold, e.g. 720h")
	return cmd
}

func openHistory(ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, services.Wrap(services.ErrConfiguration, "history", "open", "history is disabled in configuration ([history] enabled = false)", nil)
	}
	store, err := history.Open(cfg)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "history", "open", "Failed to open history", err)
	}
	return store, nil
}

func toHistoryView(run *history.Run) historyRunView {
	return historyRunView{
		ID:            run.ID,
		Kind:          string(run.Kind),
		Manifest:      run.ManifestPath,
		Project:       run.ProjectID,
		Cut:           run.CutName,
		Lang:          run.Lang,
		Format:        run.Format,
		Audio:         run.AudioID,
		AudioSelector: run.AudioSelector,
		Segments:      run.SegmentCount,
		Outputs:       run.Outputs,
		Status:        string(run.Status),
		Error:         run.ErrorMessage,
		CreatedAt:     run.CreatedAt,
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
