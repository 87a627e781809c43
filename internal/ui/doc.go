// Package ui renders terminal output for the export CLI with lipgloss styles.
//
// A [Palette] holds the named styles. [Summary] collects the figures of a finished
// export and [Palette.RenderSummary] turns them into the report printed after a run.
package ui
