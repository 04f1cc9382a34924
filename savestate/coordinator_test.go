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

package savestate_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophertas/prefs"
	"github.com/jetsetilly/gophertas/savestate"
	"github.com/jetsetilly/gophertas/script"
	"github.com/jetsetilly/gophertas/test"
)

// state of the mock host
type state struct {
	pos int
	aux savestate.Aux
}

type mockHost struct {
	state
	incompatible bool
	fail         bool
}

func (h *mockHost) CaptureSnapshot() (savestate.Handle, error) {
	if h.fail {
		return nil, errors.New("capture failed")
	}
	return h.state, nil
}

func (h *mockHost) RestoreSnapshot(s savestate.Handle) error {
	h.state = s.(state)
	return nil
}

func (h *mockHost) SceneCompatible() bool {
	return !h.incompatible
}

func (h *mockHost) AuxStatus() savestate.Aux {
	return h.aux
}

func (h *mockHost) RestoreAuxStatus(a savestate.Aux) {
	h.aux = a
}

// advance the script and the host by the number of frames
func (h *mockHost) advance(c *script.Controller, n int) {
	for range n {
		if _, ok := c.Advance(); ok {
			h.pos++
		}
	}
}

func writeScript(t *testing.T, pth string, lines ...string) {
	t.Helper()
	err := os.WriteFile(pth, []byte(strings.Join(lines, "\n")), 0o600)
	test.DemandSuccess(t, err)
}

func setup(t *testing.T) (string, *script.Controller, *mockHost, *savestate.Coordinator) {
	t.Helper()
	pth := filepath.Join(t.TempDir(), "savestate.tas")
	writeScript(t, pth, "5,R", "***S", "5,J")

	c, err := script.NewController(pth)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, c.Refresh(false))

	h := &mockHost{}
	return pth, c, h, savestate.NewCoordinator(h, c, nil)
}

func TestSaveLoad(t *testing.T) {
	_, c, h, sc := setup(t)

	test.ExpectEquality(t, sc.Update(true), savestate.OutcomeNone)
	test.ExpectEquality(t, sc.HighlightLine(), -1)

	// savestate is taken automatically at the marker
	h.advance(c, 5)
	h.aux = savestate.Aux{Position: "10, 20", Velocity: "1, 0", Time: "0.085"}
	test.DemandEquality(t, sc.Update(true), savestate.OutcomeSaved)
	test.ExpectSuccess(t, sc.IsSaved())
	test.ExpectEquality(t, sc.SavedFrame(), 5)
	test.ExpectEquality(t, sc.HighlightLine(), 1)

	rec, ok := sc.Record()
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, rec.ByBreakpoint)
	test.ExpectSuccess(t, rec.HasAux)
	test.ExpectEquality(t, rec.FrameInInput, 5)
	test.ExpectEquality(t, rec.Identity, c.Identity())

	// not taken again at the same frame
	test.ExpectEquality(t, sc.Update(true), savestate.OutcomeNone)
	test.ExpectEquality(t, sc.Save(false), savestate.OutcomeAlreadySaved)

	// host state and progress are restored on load
	c.Stop()
	h.state = state{}
	test.DemandEquality(t, sc.Load(), savestate.OutcomeLoaded)
	test.ExpectEquality(t, c.Frame(), 5)
	test.ExpectEquality(t, c.FrameInInput(), 5)
	test.ExpectEquality(t, h.pos, 5)
	test.ExpectEquality(t, h.aux, rec.Aux)

	// loading at the saved frame does nothing
	test.ExpectEquality(t, sc.Load(), savestate.OutcomeAlreadySaved)
}

func TestAutoLoad(t *testing.T) {
	_, c, h, sc := setup(t)
	h.advance(c, 5)
	test.DemandEquality(t, sc.Update(true), savestate.OutcomeSaved)

	c.Stop()
	h.state = state{}

	// not loaded unless playback is running
	test.ExpectEquality(t, sc.Update(false), savestate.OutcomeNone)

	// not loaded while the host is in an incompatible scene
	h.incompatible = true
	test.ExpectEquality(t, sc.Update(true), savestate.OutcomeNone)
	test.ExpectEquality(t, sc.Load(), savestate.OutcomeDeferred)
	test.ExpectSuccess(t, sc.IsSaved())

	h.incompatible = false
	test.ExpectEquality(t, sc.Update(true), savestate.OutcomeLoaded)
	test.ExpectEquality(t, c.Frame(), 5)
}

func TestInvalidation(t *testing.T) {
	pth, c, h, sc := setup(t)
	h.advance(c, 5)
	test.DemandEquality(t, sc.Update(true), savestate.OutcomeSaved)

	// changes after the saved frame do not invalidate the savestate
	writeScript(t, pth, "5,R", "***S", "5,L")
	test.DemandSuccess(t, c.Refresh(true))
	c.Stop()
	test.ExpectEquality(t, sc.Load(), savestate.OutcomeLoaded)

	// changes before the saved frame do
	writeScript(t, pth, "5,L", "***S", "5,L")
	test.DemandSuccess(t, c.Refresh(true))
	c.Stop()
	test.ExpectEquality(t, sc.Load(), savestate.OutcomeInvalidated)
	test.ExpectFailure(t, sc.IsSaved())
	test.ExpectEquality(t, c.Frame(), 0)
	test.ExpectEquality(t, sc.Load(), savestate.OutcomeNone)
}

func TestBreakpointDeleted(t *testing.T) {
	pth, c, h, sc := setup(t)
	h.advance(c, 5)
	test.DemandEquality(t, sc.Update(true), savestate.OutcomeSaved)

	writeScript(t, pth, "5,R", "5,J")
	test.DemandSuccess(t, c.Refresh(true))

	test.ExpectEquality(t, sc.UpdateMeta(false, false, false), savestate.OutcomeNone)
	test.ExpectEquality(t, sc.UpdateMeta(true, false, false), savestate.OutcomeInvalidated)
	test.ExpectFailure(t, sc.IsSaved())
}

func TestHotkeys(t *testing.T) {
	_, c, h, sc := setup(t)
	h.advance(c, 2)

	// saving requires playback to be running
	test.ExpectEquality(t, sc.UpdateMeta(false, true, false), savestate.OutcomeNone)
	test.ExpectEquality(t, sc.UpdateMeta(true, true, false), savestate.OutcomeSaved)

	rec, _ := sc.Record()
	test.ExpectFailure(t, rec.ByBreakpoint)
	test.ExpectEquality(t, sc.HighlightLine(), 0)

	test.ExpectEquality(t, sc.UpdateMeta(false, false, true), savestate.OutcomeCleared)
	test.ExpectFailure(t, sc.IsSaved())
	test.ExpectFailure(t, sc.Clear())
}

func TestIdentity(t *testing.T) {
	_, c, h, sc := setup(t)
	h.advance(c, 5)
	test.DemandEquality(t, sc.Update(true), savestate.OutcomeSaved)

	// a savestate is not valid for a different script
	other := filepath.Join(t.TempDir(), "other.tas")
	writeScript(t, other, "5,R", "***S", "5,J")
	d, err := script.NewController(other)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, d.Refresh(false))

	sd := savestate.NewCoordinator(h, d, nil)
	test.ExpectFailure(t, sd.IsSaved())
	test.ExpectEquality(t, sd.Load(), savestate.OutcomeNone)
}

func TestFailureAndPreferences(t *testing.T) {
	_, c, h, _ := setup(t)

	h.fail = true
	sc := savestate.NewCoordinator(h, c, nil)
	test.ExpectEquality(t, sc.Save(false), savestate.OutcomeFailed)
	test.ExpectFailure(t, sc.IsSaved())

	dsk, err := prefs.NewDisk(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	p, err := savestate.NewPreferences(dsk)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.Enabled.Set(false))

	h.fail = false
	sc = savestate.NewCoordinator(h, c, p)
	h.advance(c, 5)
	test.ExpectEquality(t, sc.Update(true), savestate.OutcomeNone)
	test.ExpectEquality(t, sc.Save(false), savestate.OutcomeNone)
	test.ExpectFailure(t, sc.IsSaved())
	test.ExpectEquality(t, savestate.OutcomeDeferred.String(), "deferred")
}
