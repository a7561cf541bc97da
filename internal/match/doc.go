// Package match provides identifier tokenization and name similarity for
// property matching.
//
// Key functions:
//   - SplitPascalCase: splits an identifier into its capitalized words
//   - NormalizeIdent: normalizes identifiers for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks candidate names for "did you mean" diagnostics
package match
