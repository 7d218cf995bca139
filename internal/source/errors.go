package source

import (
	"errors"
	"fmt"
)

// ErrNotUpdated is returned by query methods called before Update.
var ErrNotUpdated = errors.New("source has not been updated; call Update before querying packages")

// ConstructionError reports a root directory that cannot back a source.
type ConstructionError struct {
	Path string
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to open source at `%s`: %v", e.Path, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// ExitCode returns the process exit status for this error.
func (e *ConstructionError) ExitCode() int { return 1 }

// SourceError reports an I/O failure while a source scans its storage.
type SourceError struct {
	// Op is the failing filesystem operation (stat, read, readdir).
	Op   string
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to %s `%s`: %v", e.Op, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// ExitCode returns the process exit status for this error.
func (e *SourceError) ExitCode() int { return 1 }

// PackageErrorKind tells a missing root manifest from a malformed one.
type PackageErrorKind int

const (
	// PackageNotFound means no manifest exists exactly at the source root.
	PackageNotFound PackageErrorKind = iota

	// PackageInvalid means the root manifest exists but failed to parse or
	// validate.
	PackageInvalid
)

// String returns a human-readable representation of the kind.
func (k PackageErrorKind) String() string {
	switch k {
	case PackageNotFound:
		return "NotFound"
	case PackageInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// PackageError is returned by RootPackage when the root package cannot be
// produced.
type PackageError struct {
	Kind PackageErrorKind

	// Path is the manifest path that was expected or rejected.
	Path string

	// Err is the parse error for PackageInvalid.
	Err error
}

func (e *PackageError) Error() string {
	if e.Kind == PackageInvalid && e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("no package manifest found at `%s`", e.Path)
}

func (e *PackageError) Unwrap() error { return e.Err }

// ExitCode returns the process exit status for this error.
func (e *PackageError) ExitCode() int { return 1 }

// IsNotFound reports whether err is a PackageError of kind PackageNotFound.
func IsNotFound(err error) bool {
	var perr *PackageError
	return errors.As(err, &perr) && perr.Kind == PackageNotFound
}

// IsInvalid reports whether err is a PackageError of kind PackageInvalid.
func IsInvalid(err error) bool {
	var perr *PackageError
	return errors.As(err, &perr) && perr.Kind == PackageInvalid
}
