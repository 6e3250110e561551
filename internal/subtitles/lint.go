package subtitles

import (
	"fmt"
	"strconv"
	"strings"

	"shorts/internal/timecode"
)

// Lint checks an SRT or WebVTT document for format issues. An empty result
// means the document passed. Issue strings start with a stable code.
func Lint(content string) []string {
	var issues []string

	body := strings.ReplaceAll(content, "\r\n", "\n")
	vtt := strings.HasPrefix(body, vttHeader)
	if vtt {
		body = strings.TrimPrefix(body, vttHeader)
	}

	blocks := cueBlocks(body, vtt)
	if len(blocks) == 0 {
		return append(issues, "empty_subtitle_file")
	}
	if !strings.HasSuffix(content, "\n") {
		issues = append(issues, "missing_trailing_newline")
	}

	var previousStart float64
	for i, block := range blocks {
		cue := i + 1
		lines := strings.Split(block, "\n")
		if !vtt {
			if n, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil || n != cue {
				issues = append(issues, fmt.Sprintf("bad_cue_number: cue %d has %q", cue, lines[0]))
			}
			lines = lines[1:]
		}
		if len(lines) == 0 || !strings.Contains(lines[0], "-->") {
			issues = append(issues, fmt.Sprintf("missing_timing: cue %d", cue))
			continue
		}
		start, end, err := parseTiming(lines[0], vtt)
		if err != nil {
			issues = append(issues, fmt.Sprintf("timestamp_parse_error: cue %d: %v", cue, err))
			continue
		}
		if end <= start {
			issues = append(issues, fmt.Sprintf("non_positive_duration: cue %d", cue))
		}
		if start < previousStart {
			issues = append(issues, fmt.Sprintf("out_of_order: cue %d starts before cue %d", cue, cue-1))
		}
		previousStart = start
	}
	return issues
}

// ParseTimestamp reads an SRT or WebVTT timestamp into seconds.
func ParseTimestamp(value string) (float64, error) {
	return timecode.Parse(value)
}

// cueBlocks groups blank-line separated chunks into cues. A chunk that does
// not open a cue is a further paragraph of the previous cue's text.
func cueBlocks(body string, vtt bool) []string {
	var blocks []string
	for _, chunk := range strings.Split(strings.TrimSpace(body), "\n\n") {
		chunk = strings.Trim(chunk, "\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		if len(blocks) > 0 && !opensCue(chunk, vtt, len(blocks)+1) {
			blocks[len(blocks)-1] += "\n\n" + chunk
			continue
		}
		blocks = append(blocks, chunk)
	}
	return blocks
}

func opensCue(chunk string, vtt bool, next int) bool {
	lines := strings.SplitN(chunk, "\n", 3)
	if strings.Contains(lines[0], "-->") {
		return true
	}
	if len(lines) > 1 && strings.Contains(lines[1], "-->") {
		return true
	}
	if vtt {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	return err == nil && n == next
}

func parseTiming(line string, vtt bool) (float64, float64, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed timing line %q", line)
	}
	startText := strings.TrimSpace(parts[0])
	// WebVTT allows cue settings after the end timestamp.
	endText := strings.TrimSpace(parts[1])
	if fields := strings.Fields(endText); len(fields) > 0 {
		endText = fields[0]
	}
	sep := ","
	if vtt {
		sep = "."
	}
	if !strings.Contains(startText, sep) || !strings.Contains(endText, sep) {
		return 0, 0, fmt.Errorf("expected %q millisecond separator in %q", sep, line)
	}
	start, err := timecode.Parse(startText)
	if err != nil {
		return 0, 0, err
	}
	end, err := timecode.Parse(endText)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
