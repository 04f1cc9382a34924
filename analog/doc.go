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

// Package analog converts an angle and magnitude into an analog stick
// position. Game controllers only support the precision of a signed 16 bit
// value for each axis and the host applies a deadzone to the raw value. The
// Mode decides how the requested direction is mapped onto the values the
// controller can actually produce.
//
// Solve() returns both the float vector the host will see after the deadzone
// has been applied and the raw pair of 16 bit values.
//
// All modes solve for the octant where x and y are positive and x >= y. Other
// directions are mirrored or transposed into that octant and the result is
// mapped back.
package analog
