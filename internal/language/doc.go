// Package language checks and describes the caption language codes used by
// manifests and the --lang flag.
//
// Manifests compare languages by exact string equality. This package never
// rewrites a code; it only reports whether a code is a well-formed BCP 47
// tag, names it for humans, and suggests the closest declared language when
// a requested one has no captions.
package language
