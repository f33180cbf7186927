// SPDX-License-Identifier: MIT
//
// Package build carries compile-time metadata injected via -ldflags:
// application name, build timestamp, Git commit and semantic version.
// Development builds without ldflags report "dev" values.
package build

import "fmt"

// Info holds the resolved build metadata.
type Info struct {
	Name    string
	Time    string
	Commit  string
	Version string
}

// Populated by -ldflags at compile time, for example:
//
//	go build -ldflags "-X github.com/worshipwaves/WDweb-sub000/pkg/build.name=wdcore"
var (
	name    string
	time    string
	commit  string
	version string
)

// Get resolves the build metadata, substituting development defaults
// for anything the linker did not set.
func Get() Info {
	info := Info{
		Name:    name,
		Time:    time,
		Commit:  commit,
		Version: version,
	}
	if info.Name == "" {
		info.Name = "wdcore"
	}
	if info.Time == "" {
		info.Time = "dev"
	}
	if info.Commit == "" {
		info.Commit = "dev"
	}
	if info.Version == "" {
		info.Version = "0.0.0-dev"
	}
	return info
}

// String formats the metadata for --version output.
func (i Info) String() string {
	return fmt.Sprintf("%s %s (%s, built %s)", i.Name, i.Version, i.Commit, i.Time)
}
