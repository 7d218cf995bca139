package manifest

import (
	"errors"
	"fmt"
)

// ErrVirtualManifest is reported for manifests that declare a [workspace]
// but no [package].
var ErrVirtualManifest = errors.New("manifest is a virtual manifest with no [package] section")

// ParseError describes a manifest that could not be parsed or failed
// validation.
type ParseError struct {
	// Path is the manifest file path, if known.
	Path string

	// Line and Column locate syntax errors; zero when unknown.
	Line   int
	Column int

	// Msg is a short description of the problem.
	Msg string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ParseError) Error() string {
	where := "manifest"
	if e.Path != "" {
		where = fmt.Sprintf("manifest at `%s`", e.Path)
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s (line %d, column %d)", where, e.Line, e.Column)
	}

	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %s", where, msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExitCode returns the process exit status for this error.
func (e *ParseError) ExitCode() int { return 1 }

func invalidf(path, format string, args ...any) *ParseError {
	return &ParseError{Path: path, Msg: fmt.Sprintf(format, args...)}
}
