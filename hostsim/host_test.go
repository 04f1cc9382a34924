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

package hostsim_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophertas/analog"
	"github.com/jetsetilly/gophertas/hostsim"
	"github.com/jetsetilly/gophertas/playback"
	"github.com/jetsetilly/gophertas/savestate"
	"github.com/jetsetilly/gophertas/script"
	"github.com/jetsetilly/gophertas/test"
)

func input(t *testing.T, line string) script.InputFrame {
	t.Helper()
	inp, err := script.ParseInputFrame(line, analog.Ignore)
	test.DemandSuccess(t, err)
	return inp
}

func play(t *testing.T, h *hostsim.Host, line string) {
	t.Helper()
	inp := input(t, line)
	for range inp.Frames {
		test.DemandSuccess(t, h.AdvanceOneFrame(inp))
	}
}

func TestMovement(t *testing.T) {
	h := hostsim.NewHost(0)
	test.ExpectEquality(t, h.Room(), "lvl_1")

	play(t, h, "30,R")
	test.ExpectEquality(t, h.Frame(), 30)
	test.ExpectSuccess(t, h.Body().X > 0)
	test.ExpectSuccess(t, h.Body().OnGround)
	test.ExpectApproximate(t, h.Body().VX, 90.0, 0.0001)

	// jumping leaves the ground and returns to it
	play(t, h, "1,J")
	test.ExpectFailure(t, h.Body().OnGround)
	play(t, h, "60")
	test.ExpectSuccess(t, h.Body().OnGround)

	// dashing
	play(t, h, "1,L,X")
	test.ExpectApproximate(t, h.Body().VX, -240.0, 0.0001)
	test.ExpectFailure(t, h.Body().CanDash)

	// running far enough changes the room
	play(t, h, "300,R")
	test.ExpectEquality(t, h.Room(), "lvl_2")

	test.ExpectEquality(t, h.Timer(), "0:06.533")
}

func TestFeather(t *testing.T) {
	h := hostsim.NewHost(0)
	play(t, h, "20,F,0")
	test.ExpectApproximate(t, h.Body().X, 0.0, 0.0001)

	play(t, h, "20,F,90")
	test.ExpectSuccess(t, h.Body().X > 0)
}

func TestMenu(t *testing.T) {
	h := hostsim.NewHost(0)
	play(t, h, "1,S")
	test.ExpectEquality(t, h.Scene(), hostsim.SceneMenu)
	test.ExpectSuccess(t, h.SceneUnsafe())
	test.ExpectFailure(t, h.SceneCompatible())

	// the body does not move while the menu is open
	play(t, h, "10,R")
	test.ExpectApproximate(t, h.Body().X, 0.0, 0.0001)

	play(t, h, "1,S")
	test.ExpectEquality(t, h.Scene(), hostsim.SceneLevel)

	// holding start does not toggle the menu
	play(t, h, "1")
	play(t, h, "5,S")
	test.ExpectEquality(t, h.Scene(), hostsim.SceneMenu)
}

func TestLoading(t *testing.T) {
	h := hostsim.NewHost(2)
	test.ExpectSuccess(t, h.IsWorldLoading())
	test.ExpectFailure(t, h.AdvanceOneFrame(input(t, "1,R")))
	_, err := h.CaptureSnapshot()
	test.ExpectFailure(t, err)

	h.Update()
	test.ExpectSuccess(t, h.IsWorldLoading())
	h.Update()
	test.ExpectFailure(t, h.IsWorldLoading())
	test.ExpectSuccess(t, h.AdvanceOneFrame(input(t, "1,R")))
}

func TestSnapshot(t *testing.T) {
	h := hostsim.NewHost(0)
	play(t, h, "20,R")

	s, err := h.CaptureSnapshot()
	test.DemandSuccess(t, err)
	aux := h.AuxStatus()
	body := h.Body()

	play(t, h, "20,L")
	test.ExpectInequality(t, h.Body(), body)

	test.DemandSuccess(t, h.RestoreSnapshot(s))
	test.ExpectEquality(t, h.Body(), body)
	test.ExpectEquality(t, h.Frame(), 20)
	test.ExpectEquality(t, h.AuxStatus(), aux)

	test.ExpectFailure(t, h.RestoreSnapshot("not a snapshot"))
}

func TestRenderFinalOnly(t *testing.T) {
	h := hostsim.NewHost(0)
	h.PlanTick(playback.TickPlan{SubFrames: 4, RenderFinalOnly: true})
	play(t, h, "4,R")
	test.ExpectEquality(t, h.Rendered(), 1)

	h.PlanTick(playback.TickPlan{SubFrames: 4})
	play(t, h, "4,R")
	test.ExpectEquality(t, h.Rendered(), 5)
}

func TestWithEngine(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "test.tas")
	err := os.WriteFile(pth, []byte(strings.Join([]string{
		"#lvl_1",
		"20,R",
		"***S",
		"1,S",
		"5,R",
	}, "\n")), 0o600)
	test.DemandSuccess(t, err)

	src, err := script.NewController(pth)
	test.DemandSuccess(t, err)

	h := hostsim.NewHost(1)
	e := playback.NewEngine(h, src, playback.WithSavestates(savestate.NewCoordinator(h, src, nil)))

	// enable is retried until the host has finished loading
	test.ExpectFailure(t, e.Enable())
	h.Update()
	e.Tick()
	test.DemandSuccess(t, e.Running())

	// the savestate marker is reached on the next tick and the savestate is
	// taken on the tick after that
	test.ExpectEquality(t, src.Frame(), 1)
	e.Tick()
	test.ExpectEquality(t, src.Frame(), 20)
	e.Tick()
	test.ExpectSuccess(t, e.State().FrameStep)

	// the Start action opens the menu and playback stops immediately
	e.TogglePause()
	e.Tick()
	test.ExpectFailure(t, e.Running())
	test.ExpectEquality(t, e.LastReason(), playback.ReasonUnsafe)
	test.ExpectEquality(t, h.Frame(), 21)

	// the savestate can not be loaded while the menu is open
	test.DemandSuccess(t, e.Enable())
	test.ExpectEquality(t, src.Frame(), 0)
}
