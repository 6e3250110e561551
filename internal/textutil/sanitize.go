package textutil

import (
	"strings"
	"unicode"
)

// unsafeFileChars are replaced with a dash; everything else that is not
// printable is dropped.
var unsafeFileChars = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "-",
	"\"", "-",
	"<", "-",
	">", "-",
	"|", "-",
)

// SanitizeFileName makes name safe to use as a single path element. Unsafe
// separators become dashes, control characters and whitespace runs are
// removed, and leading dots are stripped so the result can never be "." or
// ".." or a hidden file. Returns "" when nothing usable remains.
func SanitizeFileName(name string) string {
	name = unsafeFileChars.Replace(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimLeft(b.String(), ".")
}
