package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shorts/internal/manifest"
	"shorts/internal/services"
)

// manifestPathArg resolves the manifest from --manifest or the first
// positional argument, returning an absolute path.
func manifestPathArg(flagValue string, args []string) (string, error) {
	path := strings.TrimSpace(flagValue)
	if path == "" && len(args) > 0 {
		path = strings.TrimSpace(args[0])
	}
	if path == "" {
		return "", services.Wrap(services.ErrUsage, "cli", "manifest", "--manifest <path> is required", nil)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", services.Wrap(services.ErrUsage, "cli", "manifest", "resolve manifest path", err)
	}
	return abs, nil
}

// loadValidManifest reads and validates the manifest, printing every error
// (and any warnings) to stderr in the numbered format.
func loadValidManifest(cmd *cobra.Command, path string) (*manifest.Manifest, manifest.Report, error) {
	doc, err := manifest.ReadTree(path)
	if err != nil {
		return nil, manifest.Report{}, err
	}
	m, report, err := manifest.FromTree(doc)
	if err != nil {
		return nil, report, err
	}
	stderr := cmd.ErrOrStderr()
	writeValidationWarnings(stderr, report.Warnings)
	if !report.OK {
		writeValidationFailure(stderr, path, report.Errors)
		return nil, report, reported(&manifest.ValidationError{Errors: report.Errors})
	}
	return m, report, nil
}

func captionLangs(m *manifest.Manifest) []string {
	langs := make([]string, 0, len(m.Tracks.Captions))
	for _, caption := range m.Tracks.Captions {
		langs = append(langs, caption.Lang)
	}
	return langs
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	var reportedErr *reportedError
	if errors.As(err, &reportedErr) {
		return reportedErr.err.Error()
	}
	return err.Error()
}
