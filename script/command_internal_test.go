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
	"testing"

	"github.com/jetsetilly/gophertas/test"
)

func TestSplitCommand(t *testing.T) {
	name, args := splitCommand("Repeat 3")
	test.ExpectEquality(t, name, "Repeat")
	test.DemandEquality(t, len(args), 1)
	test.ExpectEquality(t, args[0], "3")

	// the first separator decides how the remaining arguments are separated
	name, args = splitCommand("Read,a b,c")
	test.ExpectEquality(t, name, "Read")
	test.DemandEquality(t, len(args), 2)
	test.ExpectEquality(t, args[0], "a b")
	test.ExpectEquality(t, args[1], "c")

	// quotes group arguments
	_, args = splitCommand(`Read "my file" start`)
	test.DemandEquality(t, len(args), 2)
	test.ExpectEquality(t, args[0], "my file")
	test.ExpectEquality(t, args[1], "start")

	name, args = splitCommand("EndRepeat")
	test.ExpectEquality(t, name, "EndRepeat")
	test.ExpectEquality(t, len(args), 0)
}

func TestLookupCommand(t *testing.T) {
	c, ok := lookupCommand("analoguemode")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, c.name, "AnalogMode")

	c, ok = lookupCommand("UNSAFE")
	test.ExpectSuccess(t, ok)
	test.ExpectSuccess(t, c.run != nil)

	_, ok = lookupCommand("Set")
	test.ExpectFailure(t, ok)
}

func TestLabels(t *testing.T) {
	test.ExpectSuccess(t, isLabel("#start"))
	test.ExpectSuccess(t, isLabel("#lvl_1"))
	test.ExpectFailure(t, isLabel("# comment"))
	test.ExpectFailure(t, isLabel("##"))
	test.ExpectFailure(t, isLabel("#"))

	r, ok := Comment{Text: "#lvl_3b (2)"}.RoomLabel()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, r.Room, "3b")
	test.ExpectEquality(t, r.Count, 2)
	test.ExpectEquality(t, r.Expected(), "lvl_3b")

	_, ok = Comment{Text: "#start"}.RoomLabel()
	test.ExpectFailure(t, ok)
}

func TestParseFastForward(t *testing.T) {
	ff, ok := parseFastForward("***", 5, 2)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, ff.Frame, 5)
	test.ExpectEquality(t, ff.Line, 2)
	test.ExpectEquality(t, ff.Speed, DefaultSpeed)
	test.ExpectFailure(t, ff.ForceStop)
	test.ExpectFailure(t, ff.SaveState)

	ff, ok = parseFastForward("  ***!s10", 0, 0)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, ff.ForceStop)
	test.ExpectSuccess(t, ff.SaveState)
	test.ExpectEquality(t, ff.Speed, 10.0)
	test.ExpectEquality(t, ff.String(), "***!S10")

	// bad speeds fall back to the default
	ff, _ = parseFastForward("***abc", 0, 0)
	test.ExpectEquality(t, ff.Speed, DefaultSpeed)

	_, ok = parseFastForward("**", 0, 0)
	test.ExpectFailure(t, ok)
}
