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

// Package performance contains helper functions relating to performance.
//
// Check() is a quick way of measuring the speed of the playback engine. The
// script is played repeatedly, as fast as possible, on a simulated host for a
// fixed duration. It will optionally generate profiling information.
//
// RunProfiler() can be used to generate the various profile types on its own.
//
// CalcFPS() calculates frames-per-second in aggregate along with an accuracy
// value as compared to the tick rate.
package performance
