package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/indaco/readmanifest/internal/config"
	"github.com/muesli/termenv"
)

// TestRenderFunctions verifies that all render functions keep the input text.
func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string) string
		input    string
	}{
		{"Faint", Faint, "test text"},
		{"Bold", Bold, "test text"},
		{"Success", Success, "test text"},
		{"Error", Error, "test text"},
		{"Warning", Warning, "test text"},
		{"Info", Info, "test text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.function(tt.input)
			if !strings.Contains(result, tt.input) {
				t.Errorf("%s() = %q, want to contain %q", tt.name, result, tt.input)
			}
		})
	}
}

func TestSetNoColor(t *testing.T) {
	t.Cleanup(func() { SetNoColor(true) })

	SetNoColor(true)
	if ColorEnabled() {
		t.Error("ColorEnabled() = true after SetNoColor(true)")
	}
	if got := Bold("plain"); got != "plain" {
		t.Errorf("Bold() = %q, want unstyled text", got)
	}

	SetNoColor(false)
	if !ColorEnabled() {
		t.Error("ColorEnabled() = false after SetNoColor(false)")
	}
	if got := Bold("styled"); !strings.Contains(got, "\x1b[") {
		t.Errorf("Bold() = %q, want ANSI styling", got)
	}
}

func TestProfileFor(t *testing.T) {
	tests := []struct {
		name      string
		choice    config.ColorChoice
		tty       bool
		noColor   bool
		wantASCII bool
	}{
		{"never on tty", config.ColorNever, true, false, true},
		{"always off tty", config.ColorAlways, false, false, false},
		{"always ignores NO_COLOR", config.ColorAlways, false, true, false},
		{"auto off tty", config.ColorAuto, false, false, true},
		{"auto with NO_COLOR", config.ColorAuto, true, true, true},
		{"auto on tty", config.ColorAuto, true, false, false},
	}
	t.Setenv("TERM", "xterm-256color")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProfileFor(tt.choice, tt.tty, tt.noColor)
			if (got == termenv.Ascii) != tt.wantASCII {
				t.Errorf("ProfileFor(%q, tty=%v, noColor=%v) = %v, wantASCII %v", tt.choice, tt.tty, tt.noColor, got, tt.wantASCII)
			}
		})
	}
}

func TestFprintFunctions(t *testing.T) {
	SetNoColor(true)

	tests := []struct {
		name   string
		print  func(*bytes.Buffer)
		expect string
	}{
		{"error", func(b *bytes.Buffer) { FprintError(b, "boom") }, "error: boom\n"},
		{"warning", func(b *bytes.Buffer) { FprintWarning(b, "careful") }, "warning: careful\n"},
		{"hint", func(b *bytes.Buffer) { FprintHint(b, "try this") }, "  hint: try this\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(&buf)
			if buf.String() != tt.expect {
				t.Errorf("output = %q, want %q", buf.String(), tt.expect)
			}
		})
	}
}

func TestField(t *testing.T) {
	SetNoColor(true)

	got := Field("name", "demo")
	if !strings.HasPrefix(got, "name") || !strings.HasSuffix(got, " demo") {
		t.Errorf("Field() = %q", got)
	}
	if len(got) != len("name")+10+len(" demo") {
		t.Errorf("Field() key not padded to column: %q", got)
	}
}

func TestApplyColorChoice_StreamsIndependent(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Cleanup(func() { SetNoColor(true) })

	tests := []struct {
		name       string
		stdoutTTY  bool
		stderrTTY  bool
		wantStdout bool
		wantStderr bool
	}{
		{"stdout piped, stderr on terminal", false, true, false, true},
		{"stdout on terminal, stderr redirected", true, false, true, false},
		{"both piped", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applyColorChoice(config.ColorAuto, tt.stdoutTTY, tt.stderrTTY, false)
			if ColorEnabled() != tt.wantStdout {
				t.Errorf("ColorEnabled() = %v, want %v", ColorEnabled(), tt.wantStdout)
			}
			if StderrColorEnabled() != tt.wantStderr {
				t.Errorf("StderrColorEnabled() = %v, want %v", StderrColorEnabled(), tt.wantStderr)
			}

			var buf bytes.Buffer
			FprintError(&buf, "boom")
			if styled := strings.Contains(buf.String(), "\x1b["); styled != tt.wantStderr {
				t.Errorf("FprintError() styled = %v, want %v: %q", styled, tt.wantStderr, buf.String())
			}
		})
	}
}
