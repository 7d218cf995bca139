// Package report renders package descriptors and project locations for the
// CLI in JSON, YAML or plain text.
package report
