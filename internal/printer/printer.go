// Package printer renders styled console output for the CLI.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Width(14)
)

// Diagnostics go to stderr, which may be a terminal while stdout is piped,
// so they render through their own renderer.
var (
	stderrRenderer = lipgloss.NewRenderer(os.Stderr)

	diagErrorStyle   = stderrRenderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	diagWarningStyle = stderrRenderer.NewStyle().Foreground(lipgloss.Color("3"))
	diagInfoStyle    = stderrRenderer.NewStyle().Foreground(lipgloss.Color("6"))
	diagFaintStyle   = stderrRenderer.NewStyle().Faint(true)
)

// Faint returns text with faint styling.
func Faint(text string) string { return faintStyle.Render(text) }

// Bold returns text with bold styling.
func Bold(text string) string { return boldStyle.Render(text) }

// Success returns text with success (green) styling.
func Success(text string) string { return successStyle.Render(text) }

// Error returns text with error (red, bold) styling.
func Error(text string) string { return errorStyle.Render(text) }

// Warning returns text with warning (yellow) styling.
func Warning(text string) string { return warningStyle.Render(text) }

// Info returns text with info (cyan) styling.
func Info(text string) string { return infoStyle.Render(text) }

// Field renders a "key value" line with the key padded into a column.
func Field(key, value string) string {
	return keyStyle.Render(key) + " " + value
}

// PrintError writes "error: msg" to stderr.
func PrintError(msg string) { FprintError(os.Stderr, msg) }

// FprintError writes "error: msg" to w, styled for stderr.
func FprintError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", diagErrorStyle.Render("error:"), msg)
}

// FprintHint writes an indented hint line to w, styled for stderr.
func FprintHint(w io.Writer, msg string) {
	fmt.Fprintf(w, "  %s %s\n", diagInfoStyle.Render("hint:"), diagFaintStyle.Render(msg))
}

// FprintWarning writes "warning: msg" to w, styled for stderr.
func FprintWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", diagWarningStyle.Render("warning:"), msg)
}
