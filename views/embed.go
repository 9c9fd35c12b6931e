// Package views holds the server-rendered templates, embedded into the binary.
package views

import "embed"

//go:embed layouts public sections admin errors
var FS embed.FS
