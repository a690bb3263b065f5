// Package version reports the build version of the dpsession binary.
//
//	go build -ldflags "-X github.com/BonEvil/DPSessionManager/version.Version=v1.2.0"
package version
