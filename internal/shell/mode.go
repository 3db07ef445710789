package shell

// Mode is the deployment mode the process was started in. It is resolved
// once by the entry point and injected wherever the API base URL is needed.
type Mode int

const (
	// ModeOther covers every non-development deployment, including an
	// unset or unrecognised mode value.
	ModeOther Mode = iota
	// ModeDevelopment is a local run where the UI dev server and the API
	// listen on different ports.
	ModeDevelopment
)

const (
	// DevelopmentBaseURL is the API root when the UI is served by a local
	// dev server and the API runs on the loopback port 4000.
	DevelopmentBaseURL = "http://127.0.0.1:4000/api"
	// RelativeBaseURL is the API root resolved against the page's origin.
	RelativeBaseURL = "/api"
)

// ParseMode maps a raw mode value to a Mode. Only the exact value
// "development" selects ModeDevelopment.
func ParseMode(s string) Mode {
	if s == "development" {
		return ModeDevelopment
	}
	return ModeOther
}

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeDevelopment {
		return "development"
	}
	return "other"
}

// BaseURL returns the API base URL for the given mode.
func BaseURL(m Mode) string {
	if m == ModeDevelopment {
		return DevelopmentBaseURL
	}
	return RelativeBaseURL
}
