// Package consts houses some constants needed across store.locator
package consts

import (
	"runtime"
	"strings"
)

// Version contains the current semantic version of store.locator.
const Version = "1.1.0"

// VersionDetails can be set at build time to add detailed information
// about the version, like the commit it was built from.
var VersionDetails = "" //nolint:gochecknoglobals

// FullVersion returns the maximally full version and build information for
// the currently running binary.
func FullVersion() string {
	goVersionArch := strings.TrimPrefix(runtime.Version(), "go") + "/" + runtime.GOOS + "/" + runtime.GOARCH
	if VersionDetails != "" {
		return Version + " (" + VersionDetails + ", " + goVersionArch + ")"
	}
	return Version + " (" + goVersionArch + ")"
}
