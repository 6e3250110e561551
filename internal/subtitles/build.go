package subtitles

import (
	"strconv"
	"strings"

	"shorts/internal/renderplan"
	"shorts/internal/timecode"
)

const vttHeader = "WEBVTT"

// BuildSRT renders segments in input order as numbered SRT cues. Text is
// trimmed; the document ends with a single newline.
func BuildSRT(segments []renderplan.Segment) string {
	blocks := make([]string, len(segments))
	for i, segment := range segments {
		blocks[i] = strconv.Itoa(i+1) + "\n" + cueTiming(timecode.SRT, segment) + "\n" + strings.TrimSpace(segment.Text)
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// BuildVTT renders segments as a WebVTT document without cue identifiers.
func BuildVTT(segments []renderplan.Segment) string {
	blocks := make([]string, len(segments))
	for i, segment := range segments {
		blocks[i] = cueTiming(timecode.VTT, segment) + "\n" + strings.TrimSpace(segment.Text)
	}
	return vttHeader + "\n\n" + strings.Join(blocks, "\n\n") + "\n"
}

func cueTiming(format func(float64) string, segment renderplan.Segment) string {
	return format(segment.T0) + " --> " + format(segment.T1)
}
