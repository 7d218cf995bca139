package report

import "fmt"

// Format is an output encoding for command results.
type Format string

const (
	// FormatJSON is indented JSON, the default.
	FormatJSON Format = "json"

	// FormatYAML is a YAML document.
	FormatYAML Format = "yaml"

	// FormatText is an aligned human-readable summary.
	FormatText Format = "text"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatText:
		return true
	default:
		return false
	}
}

// ParseFormat converts a string to a Format. The empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatJSON, nil
	}
	f := Format(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid format %q: expected json, yaml or text", s)
	}
	return f, nil
}
