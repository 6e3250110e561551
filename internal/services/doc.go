// Package services defines shared utilities consumed by the manifest engine
// and the command-line adapters around it.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure detail
//     uniform (component, operation, message, cause) across packages.
//   - ExitCode, which maps those markers onto process exit statuses so the CLI
//     can distinguish a rejected manifest from a bad request.
//   - Context helpers that stamp run identifiers and manifest paths for logging.
//
// Use these helpers when adding new commands so operational behaviour stays
// consistent with the rest of the tool.
package services
