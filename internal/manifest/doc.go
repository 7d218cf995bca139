// Package manifest decodes Cargo.toml files into Package descriptors.
//
// Parse is pure: it works on the file contents plus an optional Layout of
// conventional target files, so callers decide how the bytes and the layout
// are obtained. Syntax and validation failures are both reported as
// *ParseError; manifests with only a [workspace] table wrap
// ErrVirtualManifest.
package manifest
