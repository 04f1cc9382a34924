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

package analog

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophertas/curated"
)

// Mode is the policy used to map a direction onto a stick position.
type Mode int

// List of valid Mode values.
const (
	// maps the angle onto a circle and applies the magnitude
	Ignore Mode = iota

	// as Ignore but the float vector has the deadzone applied
	Circle

	// maps the angle onto a square and applies the deadzone
	Square

	// adjusts the magnitude to find the most exact angle. each axis is
	// limited by an upper bound derived from the magnitude
	Precise
)

func (m Mode) String() string {
	switch m {
	case Ignore:
		return "Ignore"
	case Circle:
		return "Circle"
	case Square:
		return "Square"
	case Precise:
		return "Precise"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// UnknownMode is returned by ParseMode().
const UnknownMode = "analog: unknown mode (%s)"

// ParseMode converts a string to a Mode. The string is not case-sensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore":
		return Ignore, nil
	case "circle":
		return Circle, nil
	case "square":
		return Square, nil
	case "precise":
		return Precise, nil
	}
	return Ignore, curated.Errorf(UnknownMode, s)
}

// Vector2 is a direction as seen by the host.
type Vector2 struct {
	X, Y float32
}

// Vector2Short is the raw value of each axis of the stick.
type Vector2Short struct {
	X, Y int16
}
