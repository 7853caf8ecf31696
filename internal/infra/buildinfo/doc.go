// Package buildinfo reports the SnipBoard build version.
//
// Release builds inject values via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/snipboard/internal/infra/buildinfo.Version=v1.0.0"
//
// Values left unset are filled from the module build information embedded
// by the Go toolchain (VCS revision, commit time, Go version).
package buildinfo
