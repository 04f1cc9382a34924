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

// Package playmode runs an interactive playback session. The script is played
// on the simulated host, controlled by hotkeys from the terminal and by
// commands from any connected studio.
//
// The session ticks at the tick rate given in the environment's Config. It
// ends when the context is cancelled, when the process receives an interrupt
// signal or when Ctrl-C is pressed in the terminal.
package playmode
