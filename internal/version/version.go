package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the cppedit CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders v with its major, minor and patch numbers colored.
// Anything after the patch number ("-dev", "+meta") is left plain, as is a
// v that is not dotted. Honors color.NoColor.
func Colored(v string) string {
	major, rest, ok := strings.Cut(v, ".")
	if !ok {
		return v
	}
	minor, rest, ok := strings.Cut(rest, ".")
	if !ok {
		return v
	}
	end := strings.IndexAny(rest, "-+")
	if end < 0 {
		end = len(rest)
	}
	patch, suffix := rest[:end], rest[end:]
	return majorColor.Sprint(major) + "." + minorColor.Sprint(minor) + "." + patchColor.Sprint(patch) + suffix
}
