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

package script

import (
	"strings"
)

// Actions is a bitset of the buttons and directions pressed in a frame.
type Actions uint32

// List of valid actions.
const (
	ActionLeft Actions = 1 << iota
	ActionRight
	ActionUp
	ActionDown
	ActionJump
	ActionDash
	ActionGrab
	ActionStart
	ActionRestart
	ActionFeather
	ActionJournal
	ActionJump2
	ActionDash2
	ActionConfirm
	ActionDemoDash
	ActionDemoDash2
	ActionDashOnly
	ActionLeftDashOnly
	ActionRightDashOnly
	ActionUpDashOnly
	ActionDownDashOnly
	ActionMoveOnly
	ActionLeftMoveOnly
	ActionRightMoveOnly
	ActionUpMoveOnly
	ActionDownMoveOnly
	ActionPressedKey

	NoActions Actions = 0
)

// the order of the list is the order in which actions are written by
// InputFrame.String()
var actionChars = []struct {
	c byte
	a Actions
}{
	{'L', ActionLeft},
	{'R', ActionRight},
	{'U', ActionUp},
	{'D', ActionDown},
	{'J', ActionJump},
	{'K', ActionJump2},
	{'Z', ActionDemoDash},
	{'V', ActionDemoDash2},
	{'X', ActionDash},
	{'C', ActionDash2},
	{'G', ActionGrab},
	{'S', ActionStart},
	{'Q', ActionRestart},
	{'N', ActionJournal},
	{'O', ActionConfirm},
	{'A', ActionDashOnly},
	{'M', ActionMoveOnly},
	{'P', ActionPressedKey},
	{'F', ActionFeather},
}

// directions in the order they are written after A and M
var directions = []struct {
	c        byte
	a        Actions
	dashOnly Actions
	moveOnly Actions
}{
	{'L', ActionLeft, ActionLeftDashOnly, ActionLeftMoveOnly},
	{'R', ActionRight, ActionRightDashOnly, ActionRightMoveOnly},
	{'U', ActionUp, ActionUpDashOnly, ActionUpMoveOnly},
	{'D', ActionDown, ActionDownDashOnly, ActionDownMoveOnly},
}

// ActionForChar returns the action for the character. The character is not
// case-sensitive.
func ActionForChar(c byte) (Actions, bool) {
	c = upper(c)
	for _, a := range actionChars {
		if a.c == c {
			return a.a, true
		}
	}
	return NoActions, false
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Has returns true if any of the actions in b are in a.
func (a Actions) Has(b Actions) bool {
	return a&b != 0
}

// String returns the actions as they would appear in a script, not including
// the frame count, custom bindings or stick angle.
func (a Actions) String() string {
	var s []string
	for _, c := range actionChars {
		if !a.Has(c.a) {
			continue
		}
		switch c.a {
		case ActionDashOnly:
			s = append(s, "A"+a.directionString(true))
		case ActionMoveOnly:
			s = append(s, "M"+a.directionString(false))
		default:
			s = append(s, string(c.c))
		}
	}
	return strings.Join(s, ",")
}

func (a Actions) directionString(dashOnly bool) string {
	var s strings.Builder
	for _, d := range directions {
		if (dashOnly && a.Has(d.dashOnly)) || (!dashOnly && a.Has(d.moveOnly)) {
			s.WriteByte(d.c)
		}
	}
	return s.String()
}
