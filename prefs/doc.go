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

// Package prefs holds typed preference values and the means to persist them.
//
// The Bool, Int, Float and String types hold a single value, safe to read
// from any goroutine. Generic wraps a pair of set/get functions for values
// that are not stored in one place.
//
// Values are registered with a Disk under a key. A key with a dot is split
// into an INI section and key name, so "playback.fastforwardspeed" is stored
// as
//
//	[playback]
//	fastforwardspeed = 10
//
// Preferences given on the command line (with the -prefs flag) are pushed
// onto the command line stack and take priority over the values in the file
// when Disk.Load() is called. A command line value is consumed when it is
// used and is not written back to disk unless Save() is called afterwards.
package prefs
