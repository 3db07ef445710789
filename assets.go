//go:build !dev

package main

import (
	"embed"
	"io/fs"
)

// defaultMode is used when TODO_MODE is unset.
const defaultMode = "production"

//go:embed frontend/dist
var embeddedFrontend embed.FS

func getFrontendFS() (fs.FS, error) {
	return fs.Sub(embeddedFrontend, "frontend/dist")
}
