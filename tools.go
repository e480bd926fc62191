//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// Managed via the go.mod `tool` directive:
// - github.com/pressly/goose/v3/cmd/goose (schema migrations)
