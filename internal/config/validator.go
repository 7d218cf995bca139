package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ColorChoice is the output-coloring preference.
type ColorChoice string

const (
	ColorAuto   ColorChoice = "auto"
	ColorAlways ColorChoice = "always"
	ColorNever  ColorChoice = "never"
)

// ParseColorChoice converts a flag or config value into a ColorChoice.
// The empty string selects ColorAuto.
func ParseColorChoice(s string) (ColorChoice, error) {
	switch c := ColorChoice(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return c, nil
	default:
		return "", fmt.Errorf("argument for --color must be auto, always, or never, but found `%s`", s)
	}
}

// ValidationError lists every invalid setting found in a Config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// ExitCode returns the process exit status for this error.
func (e *ValidationError) ExitCode() int { return 1 }

// Validate checks the configuration values and normalizes the color choice.
func (c *Config) Validate() error {
	var problems []string

	color, err := ParseColorChoice(string(c.Color))
	if err != nil {
		problems = append(problems, err.Error())
	} else {
		c.Color = color
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
			problems = append(problems, fmt.Sprintf("log.level: unknown level %q", c.Log.Level))
		}
	}

	if c.Discovery.MaxDepth < 0 {
		problems = append(problems, fmt.Sprintf("discovery.max_depth must not be negative, got %d", c.Discovery.MaxDepth))
	}

	for _, pattern := range c.Discovery.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			problems = append(problems, fmt.Sprintf("discovery.exclude: bad pattern %q", pattern))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
