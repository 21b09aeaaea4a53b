// Package version reports the build version of an errkit service.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/errkit/version.Version=1.0.0"
package version
