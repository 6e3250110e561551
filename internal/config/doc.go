// Package config loads, normalizes, and validates shorts configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SHORTS_LANG. The Config type centralizes the defaults the CLI applies when a
// flag is omitted (language, subtitle format, output directory name) along
// with logging and export-history settings.
//
// Always obtain settings through this package so commands receive sanitized
// paths, canonical log formats, and clear validation errors.
package config
