// Package ui provides the styled building blocks for rtop's non-dashboard
// output: status symbols, tables, the preview header, and color swatches.
//
// Everything here renders with Lip Gloss. CLI colors are ANSI codes so
// reports follow the terminal palette; swatches render theme colors
// directly and are blank when color is disabled.
//
// # Color Scheme
//
//	ColorSuccess   (green)  - Passing checks, confirmations
//	ColorError     (red)    - Failures
//	ColorWarning   (yellow) - Warnings
//	ColorInfo      (cyan)   - Header title
//	ColorMuted     (gray)   - Suggestions, dividers
//	ColorSecondary (blue)   - Version strings
//
// # Symbols
//
//	SymbolSuccess  (checkmark) - Command succeeded
//	SymbolFail     (X)         - Check or file failed
//	SymbolComplete (filled)    - Check ran, active theme marker
//	SymbolSkipped  (slashed)   - Loaded with warnings
//
// # Tables
//
// RenderSimpleTable renders a Bubbles table once for printing:
//
//	out := ui.RenderSimpleTable([]ui.TableColumn{
//		{Title: "NAME", Width: 12},
//		{Title: "SOURCE", Width: 30},
//	}, rows)
package ui
