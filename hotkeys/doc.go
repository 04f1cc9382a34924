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

// Package hotkeys tracks the state of the playback hotkeys from one tick of
// the playback engine to the next.
//
// The state of a Hotkey is updated once per tick with Set.Poll(). Edge
// detection is therefore in terms of ticks: Pressed() is true only for the
// tick in which the hotkey went down.
//
// The Source interface abstracts the physical input. The Terminal type is a
// Source that reads from a terminal in raw mode and the Manual type is a
// Source that is driven by method calls, suitable for the studio bridge and
// for testing.
package hotkeys
