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

// Package playback is the playback engine. It decides, once per host tick, how
// many frames of the script to feed to the host and whether playback should
// stop.
//
// The engine runs entirely on the host's goroutine. The Tick() function should
// be called once per host tick and performs the following in order:
//
//  1. commit the buffered playback state
//  2. run functions pushed with PushFunction()
//  3. apply a pending disable
//  4. poll hotkeys
//  5. savestate housekeeping
//  6. compute FrameLoops
//  7. resolve state transitions
//  8. advance the required number of frames
//  9. publish the tick summary
//
// Other goroutines must not call the engine directly. Instead they should use
// PushFunction(), which never blocks. Pushed functions are run at the start of
// the next tick.
//
// The playback state is kept as two State values: the current state and the
// next state. Some transitions are applied immediately and some are buffered
// until the start of the next tick. For example, pressing frame advance while
// already frame stepping leaves frame step for the current tick only, which
// means that exactly one frame is played before frame step resumes.
package playback
