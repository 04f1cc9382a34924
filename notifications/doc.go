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

// Package notifications allow the playback engine and the savestate
// coordinator to tell the outside world about events that the user should
// probably know about. For example, that a breakpoint has been reached or that
// a savestate has been invalidated by an edit to the script.
//
// The studio bridge presents notifications as short-lived messages. Other
// implementations may choose to log them or to ignore them altogether.
package notifications
