// Package templates embeds the documents shipped with nbplot:
// the built-in templates and the config document generated in
// the user directory on first run.
package templates

import (
	"embed"
)

// BuiltinDir is the directory of FS holding the built-in
// template documents.
const BuiltinDir = "builtin"

// FS holds the built-in template documents.
//
//go:embed builtin/*.yaml
var FS embed.FS

// DefaultConfig is the initial user config document.
//
//go:embed user/config.yaml
var DefaultConfig []byte
