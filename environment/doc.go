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

// Package environment bundles the configuration and preferences shared by
// the components of a playback session.
//
// Configuration is read from the process environment. Every variable is
// prefixed with GOPHERTAS_. For example:
//
//	GOPHERTAS_SCRIPT=level1.tas GOPHERTAS_TICK_RATE=30 gophertas
//
// Values given on the command line take priority over values from the
// environment.
package environment
