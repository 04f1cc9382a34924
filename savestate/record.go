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

package savestate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Handle is an opaque snapshot of the host's state.
type Handle any

// Aux is the auxiliary status of the host at the time of the snapshot. These
// are values that cannot be derived from the snapshot without running the
// host for another frame.
type Aux struct {
	Position string
	Velocity string
	Time     string
}

// Record is the content of the savestate slot.
type Record struct {
	ID     uuid.UUID
	Handle Handle

	// checksum of the script up to Frame
	Checksum string

	// progress through the script at the time of the snapshot
	Frame        int
	FrameInInput int

	// whether the record was created by reaching a savestate marker
	ByBreakpoint bool

	// identity of the script that the record belongs to
	Identity string

	Aux    Aux
	HasAux bool

	Created time.Time
}

func (r Record) String() string {
	b := ""
	if r.ByBreakpoint {
		b = " (breakpoint)"
	}
	return fmt.Sprintf("%s: frame %d%s", r.ID, r.Frame, b)
}
