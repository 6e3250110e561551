package subtitles

import (
	"fmt"
	"strings"

	"shorts/internal/services"
)

// Format selects which subtitle documents to produce.
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatBoth Format = "both"
)

// ParseFormat accepts srt, vtt, or both in any letter case.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case FormatSRT, FormatVTT, FormatBoth:
		return f, nil
	default:
		return "", services.Wrap(services.ErrUsage, "subtitles", "parse format",
			fmt.Sprintf("invalid format %q (use srt, vtt, or both)", value), nil)
	}
}

// wants reports whether f includes the single-document format single.
func (f Format) wants(single Format) bool {
	return f == single || f == FormatBoth
}
