// Package semver parses and validates the semantic version declared in a
// package manifest.
package semver
