// Package diagnostic provides structured findings and error codes for
// schema loading, resolution and plugin execution.
//
// Key capabilities:
//   - Non-fatal findings (inheritance cycles, shadowed parent columns)
//     collected per entry instead of aborting resolution
//   - Stable codes for every fatal condition, shared by the typed errors of
//     the loader, resolver and plugin runner
package diagnostic
