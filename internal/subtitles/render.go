package subtitles

import (
	"errors"
	"fmt"

	"shorts/internal/renderplan"
	"shorts/internal/services"
	"shorts/internal/textutil"
)

// ErrNoSegments is returned by Render when the plan has no audio track or
// its audio has no segments inside the cut.
var ErrNoSegments = errors.New("no caption-linked audio segments")

// File is one rendered subtitle document.
type File struct {
	Name    string
	Format  Format
	Content string
}

// Render builds the requested documents for plan. Files are named
// <lang>.srt and <lang>.vtt and returned SRT first.
func Render(plan *renderplan.Plan, format Format) ([]File, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	segments := plan.Segments()
	if len(segments) == 0 {
		lang := ""
		if plan != nil {
			lang = plan.Lang
		}
		return nil, services.Wrap(services.ErrValidation, "subtitles", "render",
			fmt.Sprintf("lang=%s", lang), ErrNoSegments)
	}

	base := fileStem(plan.Lang)
	var files []File
	if format.wants(FormatSRT) {
		files = append(files, File{Name: base + ".srt", Format: FormatSRT, Content: BuildSRT(segments)})
	}
	if format.wants(FormatVTT) {
		files = append(files, File{Name: base + ".vtt", Format: FormatVTT, Content: BuildVTT(segments)})
	}
	return files, nil
}

// fileStem keeps the language code usable as a file name.
func fileStem(lang string) string {
	stem := textutil.SanitizeFileName(lang)
	if stem == "" {
		return "subtitles"
	}
	return stem
}
