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

// Package savestate coordinates the single savestate slot used during
// playback.
//
// A savestate is a snapshot of the host taken at a frame of the script,
// together with a checksum of the script up to that frame. The savestate can
// only be loaded while the checksum matches the script. If the script has
// changed before the saved frame the savestate is discarded and playback must
// start again from the first frame.
//
// The lifecycle of the slot is:
//
//	Empty -> Saved -> Loaded -> ...
//	              \-> Invalidated -> Empty
//
// A savestate is taken automatically when playback reaches the last
// savestate marker (***S) in the script. It is loaded automatically when
// playback is enabled, or when the host reaches a compatible scene, if the
// saved frame is ahead of the current frame.
package savestate
