package printer

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/indaco/readmanifest/internal/config"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// EnvNoColor disables styling in auto mode when set to any value.
const EnvNoColor = "NO_COLOR"

// SetNoColor disables or restores styling on both stdout and stderr.
func SetNoColor(disabled bool) {
	profile := termenv.ANSI256
	if disabled {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)
	stderrRenderer.SetColorProfile(profile)
}

// ApplyColorChoice configures styling according to choice. In auto mode
// stdout and stderr are checked for a terminal independently.
func ApplyColorChoice(choice config.ColorChoice) {
	applyColorChoice(choice, IsTTY(os.Stdout), IsTTY(os.Stderr), os.Getenv(EnvNoColor) != "")
}

func applyColorChoice(choice config.ColorChoice, stdoutTTY, stderrTTY, noColor bool) {
	lipgloss.SetColorProfile(ProfileFor(choice, stdoutTTY, noColor))
	stderrRenderer.SetColorProfile(ProfileFor(choice, stderrTTY, noColor))
}

// ProfileFor resolves the color profile for a preference. In auto mode
// styling is used only on a terminal and only when NO_COLOR is unset.
func ProfileFor(choice config.ColorChoice, tty, noColor bool) termenv.Profile {
	switch choice {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		return colorProfile()
	default:
		if !tty || noColor || os.Getenv("TERM") == "dumb" {
			return termenv.Ascii
		}
		return colorProfile()
	}
}

// colorProfile is the richest profile the environment advertises, with
// ANSI256 as the floor once color has been decided on.
func colorProfile() termenv.Profile {
	if p := termenv.EnvColorProfile(); p != termenv.Ascii {
		return p
	}
	return termenv.ANSI256
}

// ColorEnabled reports whether stdout render functions emit ANSI styling.
func ColorEnabled() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}

// StderrColorEnabled reports whether diagnostics on stderr are styled.
func StderrColorEnabled() bool {
	return stderrRenderer.ColorProfile() != termenv.Ascii
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}
