// Package settings provides build metadata, per-run configuration, and the
// context helpers shared by the dtable CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "dtable"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the settings of a single invocation.
type Run struct {
	MinLogLevel int8
	ConfigPath  string
	Interactive bool
	NoColor     bool
	Width       int
}

// NewCliParams returns the defaults used when dtable runs from the CLI.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
	}
}
