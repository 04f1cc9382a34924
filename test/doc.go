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

// Package test contains helper functions to remove common boilerplate from
// the tests of the other packages.
//
// The Expect*() functions report a failure with t.Errorf() and allow the test
// to continue. The Demand*() functions report with t.Fatalf() and should be
// used when later parts of the test depend on the value being correct. For
// example, demanding that a savestate was taken before testing that it loads.
//
// ExpectSuccess() and ExpectFailure() test for success and failure in a way
// suitable for the type of the value. The nil value is considered a success.
// This may not be how we want to interpret nil in all situations but because
// of how errors work (nil to indicate no error) it is how we must interpret
// it.
//
// The CompareWriter and RingWriter types implement io.Writer and are useful
// for capturing output, from the logger for example.
package test
