// Package manifest defines the shorts manifest document and validates it.
//
// A manifest describes one short-form video edit: a project record, parallel
// video/audio/caption tracks, optional named export cuts, and an opaque mix
// block. Raw input is decoded into an untyped tree first; Validate is the only
// function that inspects that tree, and it reports every structural problem
// in a single pass with dotted field paths such as
// tracks.audio[2].segments[0].cap_ref. Only a tree that passes validation is
// converted into the typed Manifest, so callers never see a partially typed
// document.
//
// # Entry Points
//
// Validate: collect every structural error in an untyped document.
// FromTree: validate and convert in one step, returning the typed manifest or the report.
// AssertValid: same as FromTree but returns a *ValidationError on failure.
// Load: read a .json/.yaml manifest from disk and assert it is valid.
package manifest
