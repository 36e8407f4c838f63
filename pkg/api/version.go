package api

import (
	"fmt"
	"runtime"
)

// Version is the current version of the client library.
// The version follows semantic versioning (MAJOR.MINOR.PATCH).
const Version = "0.1.0"

// clientName identifies this library in the User-Agent header.
const clientName = "go-domrobot"

// userAgent returns the User-Agent string sent with every request,
// identifying the client name, version, and Go runtime.
func userAgent() string {
	return fmt.Sprintf("%s/%s (%s; %s/%s)", clientName, Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
