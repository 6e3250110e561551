// Package subtitles renders the caption-linked audio segments of a render
// plan as SRT and WebVTT documents.
//
// BuildSRT and BuildVTT are pure string builders. Render applies the
// "nothing to export" rule and names the output files after the plan
// language; WriteFiles persists them under an exclusive directory lock.
// Lint re-reads produced documents and reports structural problems.
package subtitles
