// Package main hosts the shorts CLI entrypoint and command graph.
//
// The Cobra command tree validates manifests, writes render plans, exports
// SRT/WebVTT subtitles, and lists previous exports from the history ledger.
// It centralizes configuration resolution and logging setup so commands can
// stay thin; the behavior lives in the internal packages.
package main
