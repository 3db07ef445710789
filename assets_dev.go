//go:build dev

package main

import "io/fs"

const defaultMode = "development"

// getFrontendFS returns nil in dev builds so /assets is proxied to the dev server.
func getFrontendFS() (fs.FS, error) {
	return nil, nil
}
