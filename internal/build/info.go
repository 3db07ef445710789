// Package build exposes version metadata stamped into the binary.
package build

import "fmt"

// These variables are set at build time via -ldflags.
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

// Info is the JSON shape returned by the version endpoint.
type Info struct {
	Version   string `json:"version"`
	CommitSHA string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// Current returns the build info of the running binary.
func Current() Info {
	return Info{Version: Version, CommitSHA: CommitSHA, BuildDate: BuildDate}
}

// String returns a single human-readable build info string.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitSHA, BuildDate)
}
