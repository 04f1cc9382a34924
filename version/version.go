// This file is part of Gophertas.
//
// Gophertas is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophertas is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophertas.  If not, see <https://www.gnu.org/licenses/>.

// Package version reports the version of the program as recorded by the Go
// toolchain when the binary was built.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Gophertas"

// number is set by the linker for release builds
var number string

// Info describes the build of the program.
type Info struct {
	// "unreleased" if built from a vcs checkout without a version number.
	// "local" if there is no vcs information either, as is the case with
	// "go run ."
	Version string

	// the vcs revision, suffixed with "+dirty" if the source had been
	// modified but not committed
	Revision string

	// the Go version used to build the program
	GoVersion string

	// true if this is a numbered release
	Release bool
}

func (inf Info) String() string {
	if inf.Release {
		return fmt.Sprintf("%s %s", ApplicationName, inf.Version)
	}
	return fmt.Sprintf("%s %s (%s) %s", ApplicationName, inf.Version, inf.Revision, inf.GoVersion)
}

// Get returns the version information of the program.
func Get() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fromSettings(number, "", nil)
	}
	return fromSettings(number, info.GoVersion, info.Settings)
}

func fromSettings(num string, goVersion string, settings []debug.BuildSetting) Info {
	var vcs bool
	var rev string
	var modified bool

	for _, s := range settings {
		switch s.Key {
		case "vcs":
			vcs = true
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	inf := Info{
		Version:   num,
		Revision:  rev,
		GoVersion: goVersion,
		Release:   num != "",
	}

	if inf.Revision == "" {
		inf.Revision = "no revision information"
	} else if modified {
		inf.Revision = fmt.Sprintf("%s+dirty", inf.Revision)
	}

	if !inf.Release {
		if vcs {
			inf.Version = "unreleased"
		} else {
			inf.Version = "local"
		}
	}

	return inf
}
