// Package ui renders grb's console output.
//
// StepRenderer styles operation headings and git command lines with lipgloss,
// honoring the configured color mode. ConsoleCommandEventLogger narrates git
// command lifecycle events through a zap logger.
package ui
