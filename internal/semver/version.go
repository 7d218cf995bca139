package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SemVersion represents a semantic version (major.minor.patch-preRelease+build).
type SemVersion struct {
	Major      int
	Minor      int
	Patch      int
	PreRelease string
	Build      string
}

var (
	// versionRegex matches strict semantic version strings: no "v" prefix,
	// numeric core components, optional pre-release and build metadata.
	// It captures:
	//   1. Major version
	//   2. Minor version
	//   3. Patch version
	//   4. (optional) Pre-release identifier
	//   5. (optional) Build metadata
	versionRegex = regexp.MustCompile(
		`^([0-9]+)\.([0-9]+)\.([0-9]+)` + // major.minor.patch
			`(?:-([0-9A-Za-z\-]+(?:\.[0-9A-Za-z\-]+)*))?` + // optional pre-release
			`(?:\+([0-9A-Za-z\-]+(?:\.[0-9A-Za-z\-]+)*))?$`, // optional build metadata
	)

	// ErrInvalidVersion is returned when a version string does not conform
	// to the semantic version format.
	ErrInvalidVersion = errors.New("invalid version format")
)

// maxVersionLength is the maximum allowed length for a version string.
// This prevents potential ReDoS attacks on the regex parser.
const maxVersionLength = 128

// String returns the string representation of the semantic version.
func (v SemVersion) String() string {
	var sb strings.Builder
	sb.Grow(20)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	if v.PreRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.PreRelease)
	}
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// ParseVersion parses a package version string.
//
// Supported formats:
//   - "1.2.3" (basic version)
//   - "1.2.3-alpha.1" (with pre-release identifier)
//   - "1.2.3+build.123" (with build metadata)
//   - "1.2.3-rc.1+build.456" (with both)
//
// Returns ErrInvalidVersion (wrapped) when:
//   - Input is empty or exceeds maxVersionLength (128 characters)
//   - Format doesn't match the major.minor.patch pattern
//   - A core component has a leading zero
//   - A numeric pre-release identifier has a leading zero
func ParseVersion(s string) (SemVersion, error) {
	if s == "" {
		return SemVersion{}, fmt.Errorf("%w: empty string", ErrInvalidVersion)
	}
	if len(s) > maxVersionLength {
		return SemVersion{}, fmt.Errorf("%w: version string exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}

	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return SemVersion{}, fmt.Errorf("%w: %q is not of the form major.minor.patch", ErrInvalidVersion, s)
	}

	var parts [3]int
	for i, name := range []string{"major", "minor", "patch"} {
		raw := matches[i+1]
		if len(raw) > 1 && raw[0] == '0' {
			return SemVersion{}, fmt.Errorf("%w: %s version %q has a leading zero", ErrInvalidVersion, name, raw)
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return SemVersion{}, fmt.Errorf("%w: invalid %s version: %s", ErrInvalidVersion, name, err.Error())
		}
		parts[i] = n
	}

	pre := matches[4]
	for id := range strings.SplitSeq(pre, ".") {
		if len(id) > 1 && id[0] == '0' && isAllDigits(id) {
			return SemVersion{}, fmt.Errorf("%w: pre-release identifier %q has a leading zero", ErrInvalidVersion, id)
		}
	}

	return SemVersion{Major: parts[0], Minor: parts[1], Patch: parts[2], PreRelease: pre, Build: matches[5]}, nil
}

// IsValid reports whether s parses as a semantic version.
func IsValid(s string) bool {
	_, err := ParseVersion(s)
	return err == nil
}

// isAllDigits returns true if s consists entirely of ASCII digits.
func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
