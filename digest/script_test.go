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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/gophertas/digest"
	"github.com/jetsetilly/gophertas/test"
)

func TestScript(t *testing.T) {
	var a, b digest.Script

	zero := a.Hash()
	test.ExpectEquality(t, len(zero), 40)

	a.Write("10,R,J")
	a.Write("5,L")
	b.Write("10,R,J")
	b.Write("5,L")
	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectInequality(t, a.Hash(), zero)
	test.ExpectEquality(t, a.Records(), 2)

	// order is significant
	b.ResetDigest()
	b.Write("5,L")
	b.Write("10,R,J")
	test.ExpectInequality(t, a.Hash(), b.Hash())

	// reset returns the digest to its zero value
	a.ResetDigest()
	test.ExpectEquality(t, a.Hash(), zero)
	test.ExpectEquality(t, a.Records(), 0)
}
