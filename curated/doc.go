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

// Package curated is a helper package for the plain Go error type. Errors
// created with Errorf() are "curated" errors, meaning that they are errors
// the program expects to happen and knows how to deal with. A parse failure in
// a TAS script or a savestate that no longer matches the script are examples.
//
// Curated errors are identified by their pattern, the first argument to
// Errorf(). Packages declare their patterns as constants so that callers can
// test for them:
//
//	const ParseError = "script: %s line %d: %v"
//
//	err := curated.Errorf(ParseError, "run.tas", 10, "unknown action")
//	if curated.Is(err, ParseError) {
//		...
//	}
//
// Is() only checks the outermost error. Has() checks whether the pattern
// appears anywhere in the chain of curated errors:
//
//	f := curated.Errorf("playback: %v", err)
//	curated.Is(f, ParseError)  // false
//	curated.Has(f, ParseError) // true
//
// IsAny() answers whether an error is curated at all. An uncurated error
// reaching the top of the program is a sign of something unexpected.
//
// The Error() implementation normalises the message chain by removing
// duplicate adjacent parts. This means wrapping an error with the same prefix
// more than once will not result in a stuttering message:
//
//	e := curated.Errorf("savestate: %v", curated.Errorf("savestate: %v", "checksum"))
//	e.Error() // "savestate: checksum"
//
// Curated errors also implement Unwrap(), returning the first error among the
// values, so errors.Is() and errors.As() from the standard library work
// through a curated error.
package curated
