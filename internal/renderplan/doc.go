// Package renderplan turns a validated manifest into a render plan for one
// cut and one caption language.
//
// Build is a pure function of its inputs: it reads the manifest, never
// mutates it, and returns identical plans for identical arguments. Audio
// selection runs through an ordered list of named selectors so the reason a
// track was chosen can be logged and surfaced on the plan.
package renderplan
