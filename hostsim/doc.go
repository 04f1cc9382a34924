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

// Package hostsim is a simple deterministic host for the playback engine. It
// simulates a single body moving through a row of rooms, each RoomWidth
// pixels wide, in response to the input of each frame.
//
// The body runs, jumps and dashes. The Start action opens and closes a menu.
// While the menu is open the body does not move and the host reports that the
// scene is unsafe.
//
// The host is used by the RUN and SYNC modes and by tests. It implements the
// optional host interfaces of the playback and savestate packages.
package hostsim
