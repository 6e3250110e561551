package language

import (
	"fmt"
	"sort"
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Check reports whether code parses as a BCP 47 tag.
func Check(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("language code is empty")
	}
	if _, err := xlang.Parse(code); err != nil {
		return fmt.Errorf("language code %q is not a valid BCP 47 tag: %w", code, err)
	}
	return nil
}

// DisplayName returns an English name for code. Returns "Unknown" for empty
// input, or the uppercased code when it cannot be parsed or named.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Unknown"
	}
	tag, err := xlang.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(code)
}

// Distinct returns the unique non-empty codes in sorted order.
func Distinct(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Suggest picks the declared code closest to requested, or "" when requested
// is itself declared or nothing is a plausible match.
func Suggest(requested string, declared []string) string {
	requested = strings.TrimSpace(requested)
	want, err := xlang.Parse(requested)
	if err != nil {
		return ""
	}
	var tags []xlang.Tag
	var codes []string
	for _, code := range Distinct(declared) {
		if code == requested {
			return ""
		}
		tag, err := xlang.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, code)
	}
	if len(tags) == 0 {
		return ""
	}
	_, index, confidence := xlang.NewMatcher(tags).Match(want)
	if confidence < xlang.High {
		return ""
	}
	return codes[index]
}
