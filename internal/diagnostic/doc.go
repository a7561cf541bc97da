// Package diagnostic turns match results into structured findings.
//
// Key capabilities:
//   - Missing property errors with the closest target paths as suggestions
//   - Not assignable property warnings
//   - Notes on assignments that convert or dereference
//   - Intermediate objects that cannot be built from the origin
package diagnostic
