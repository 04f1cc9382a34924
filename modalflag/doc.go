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

// Package modalflag wraps the flag package of the standard library. It
// handles program modes, each with its own set of flags.
//
// Arguments are given with NewArgs() and then parsed with Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "SYNC", "JOURNAL")
//	p, err := md.Parse()
//
// If the first argument after the flags is one of the sub-modes, it is added
// to the mode path and removed from the remaining arguments. Otherwise, the
// first sub-mode is used as the default. Sub-mode comparisons are case
// insensitive.
//
// Once the mode is known, NewMode() begins a new set of flags for the
// remaining arguments:
//
//	switch md.Mode() {
//	case "SYNC":
//		md.NewMode()
//		db := md.AddString("db", "", "sync journal database")
//		p, err := md.Parse()
//		...
//	}
//
// A help message is printed to Output when the -help flag is found. In that
// case Parse() returns ParseHelp and the program should end without printing
// anything else.
package modalflag
