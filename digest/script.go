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

package digest

import (
	"crypto/sha1"
	"fmt"
)

// Script is a Digest of a sequence of text records. The zero value is ready
// to use.
type Script struct {
	digest  [sha1.Size]byte
	buffer  []byte
	records int
}

// Hash implements the Digest interface.
func (dig *Script) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Script) ResetDigest() {
	clear(dig.digest[:])
	dig.records = 0
}

// Records returns the number of records written since the last reset.
func (dig *Script) Records() int {
	return dig.records
}

// Write adds a record to the digest. The record is chained with the previous
// digest value.
func (dig *Script) Write(record string) {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the new data
	dig.buffer = append(dig.buffer[:0], dig.digest[:]...)
	dig.buffer = append(dig.buffer, record...)
	dig.digest = sha1.Sum(dig.buffer)
	dig.records++
}
