// Package report renders match results as YAML or as text tables.
package report
