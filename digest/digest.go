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

// Package digest is used to create fingerprints of input scripts. A
// fingerprint is a chained SHA-1 value: each record written to the digest is
// hashed along with the previous digest value, so the final value depends on
// every record and on the order in which they were written.
//
// Fingerprints are used to decide whether a savestate is still valid for a
// script that has been edited, and to identify runs in the sync journal.
package digest

// Digest implementations compute a hash value that can be compared with
// previous runs.
type Digest interface {
	Hash() string
	ResetDigest()
}
