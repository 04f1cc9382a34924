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

// Package script reads input scripts and feeds them, one frame at a time, to
// the playback engine.
//
// A script is a text file. Each line is one of the following:
//
//	  15,R,J          action line: hold right and jump for 15 frames
//	  20,F,45.5,0.8   analog stick at 45.5 degrees with magnitude 0.8
//	***S            fast-forward marker, with savestate
//	***!10          fast-forward marker, forced stop, at 10x speed
//	#lvl_1          room label
//	#start          label
//	# comment       comment
//	Repeat,3        command
//
// Action characters are:
//
//	L R U D     directions
//	J K         jump and the alternative jump
//	X C         dash and the alternative dash
//	Z V         demo dash and the alternative demo dash
//	G S Q N O   grab, start, restart, journal and confirm
//	A           dash only directions (eg. AL or AUR)
//	M           move only directions (eg. ML)
//	P           custom key bindings (eg. PAB)
//	F           analog stick, followed by an angle and an optional magnitude
//
// Supported commands are AnalogMode (or AnalogueMode), Unsafe, Safe, Repeat,
// EndRepeat and Read. Command names are not case-sensitive and arguments can
// be separated by commas or spaces.
//
// The Controller type owns the parsed script and the progress through it. It
// is not safe for concurrent use, with the exception of MarkDirty() and
// NeedsReload(), which may be called from any goroutine. The Watcher type uses
// MarkDirty() to flag the script for reparsing when a file changes on disk.
package script
