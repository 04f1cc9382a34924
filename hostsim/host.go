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

package hostsim

import (
	"fmt"
	"math"

	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/playback"
	"github.com/jetsetilly/gophertas/savestate"
	"github.com/jetsetilly/gophertas/script"
)

// Sentinel error patterns.
const (
	SnapshotLoading      = "hostsim: cannot capture snapshot while loading"
	UnrecognisedSnapshot = "hostsim: unrecognised snapshot: %T"
)

// RoomWidth is the width of every room in pixels.
const RoomWidth = 320.0

// Scene of the host.
type Scene int

// List of valid Scene values.
const (
	SceneLevel Scene = iota
	SceneMenu
)

func (s Scene) String() string {
	switch s {
	case SceneLevel:
		return "level"
	case SceneMenu:
		return "menu"
	}
	return "unknown scene"
}

// the state of the host that is captured by a snapshot
type state struct {
	body  Body
	frame int
	scene Scene

	// whether the start button was pressed on the previous frame
	start bool
}

// Host is a simulated host. Implements playback.Host, playback.Inspector,
// playback.TickPlanner, savestate.Host, savestate.SceneChecker and
// savestate.AuxStatus.
type Host struct {
	state

	// number of calls to Update() before the host has finished loading
	loading int

	// the most recent plan from the engine
	plan     playback.TickPlan
	planned  int
	rendered int

	// the aux status most recently restored
	restored savestate.Aux
}

// NewHost is the preferred method of initialisation for the Host type. The
// host reports that it is loading until Update() has been called
// loadingTicks times.
func NewHost(loadingTicks int) *Host {
	return &Host{
		state: state{
			body: newBody(),
		},
		loading: loadingTicks,
	}
}

func (h *Host) String() string {
	return fmt.Sprintf("%s frame %d %s", h.Room(), h.frame, h.scene)
}

// Update should be called once per tick whether or not playback is running.
func (h *Host) Update() {
	if h.loading > 0 {
		h.loading--
	}
}

// Body returns the state of the body.
func (h *Host) Body() Body {
	return h.body
}

// Frame returns the number of frames advanced.
func (h *Host) Frame() int {
	return h.frame
}

// Scene returns the current scene.
func (h *Host) Scene() Scene {
	return h.scene
}

// Rendered returns the number of frames that have been rendered.
func (h *Host) Rendered() int {
	return h.rendered
}

// AdvanceOneFrame implements the playback.Host interface.
func (h *Host) AdvanceOneFrame(inp script.InputFrame) bool {
	if h.loading > 0 {
		return false
	}

	start := inp.Actions.Has(script.ActionStart)
	if start && !h.start {
		if h.scene == SceneMenu {
			h.scene = SceneLevel
		} else {
			h.scene = SceneMenu
		}
	}
	h.start = start

	if h.scene == SceneLevel {
		h.body.step(inp)
	}

	h.frame++

	h.planned--
	if !h.plan.RenderFinalOnly || h.planned <= 0 {
		h.rendered++
	}

	return true
}

// IsWorldLoading implements the playback.Host interface.
func (h *Host) IsWorldLoading() bool {
	return h.loading > 0
}

// SceneUnsafe implements the playback.Inspector interface.
func (h *Host) SceneUnsafe() bool {
	return h.scene == SceneMenu
}

// Room implements the playback.Inspector interface.
func (h *Host) Room() string {
	return fmt.Sprintf("lvl_%d", int(math.Floor(h.body.X/RoomWidth))+1)
}

// Timer implements the playback.Inspector interface.
func (h *Host) Timer() string {
	t := float64(h.frame) * frameDuration
	m := int(t) / 60
	return fmt.Sprintf("%d:%06.3f", m, t-float64(m*60))
}

// PlanTick implements the playback.TickPlanner interface.
func (h *Host) PlanTick(plan playback.TickPlan) {
	h.plan = plan
	h.planned = plan.SubFrames
}

// CaptureSnapshot implements the savestate.Host interface.
func (h *Host) CaptureSnapshot() (savestate.Handle, error) {
	if h.loading > 0 {
		return nil, curated.Errorf(SnapshotLoading)
	}
	return h.state, nil
}

// RestoreSnapshot implements the savestate.Host interface.
func (h *Host) RestoreSnapshot(s savestate.Handle) error {
	st, ok := s.(state)
	if !ok {
		return curated.Errorf(UnrecognisedSnapshot, s)
	}
	h.state = st
	return nil
}

// SceneCompatible implements the savestate.SceneChecker interface.
func (h *Host) SceneCompatible() bool {
	return h.loading == 0 && h.scene == SceneLevel
}

// AuxStatus implements the savestate.AuxStatus interface.
func (h *Host) AuxStatus() savestate.Aux {
	return savestate.Aux{
		Position: fmt.Sprintf("%.2f, %.2f", h.body.X, h.body.Y),
		Velocity: fmt.Sprintf("%.2f, %.2f", h.body.VX, h.body.VY),
		Time:     h.Timer(),
	}
}

// RestoreAuxStatus implements the savestate.AuxStatus interface.
func (h *Host) RestoreAuxStatus(aux savestate.Aux) {
	h.restored = aux
}

// RestoredAux returns the aux status most recently restored.
func (h *Host) RestoredAux() savestate.Aux {
	return h.restored
}
