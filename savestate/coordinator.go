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
	"time"

	"github.com/google/uuid"
	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/logger"
	"github.com/jetsetilly/gophertas/script"
)

// Sentinel error patterns. These are logged rather than returned.
const (
	SnapshotError     = "savestate: snapshot: %v"
	ChecksumMismatch  = "savestate: script has changed before frame %d"
	SceneIncompatible = "savestate: host scene is not compatible"
)

// Host is the part of the host that the coordinator needs.
type Host interface {
	CaptureSnapshot() (Handle, error)
	RestoreSnapshot(Handle) error
}

// SceneChecker is an optional interface for the Host. If it is not
// implemented then the host scene is always considered to be compatible.
type SceneChecker interface {
	SceneCompatible() bool
}

// AuxStatus is an optional interface for the Host.
type AuxStatus interface {
	AuxStatus() Aux
	RestoreAuxStatus(Aux)
}

// Source is the part of the script controller that the coordinator needs.
// Implemented by script.Controller.
type Source interface {
	Identity() string
	Len() int
	Frame() int
	FrameInInput() int
	SetProgress(frame int, frameInInput int)
	Checksum(upTo int) string
	HasFastForward() bool
	SaveStateMarkerAt(frame int) (script.FastForward, bool)
	LastSaveStateMarker() (script.FastForward, bool)
	LineAt(frame int, breakpoint bool) int
}

// Outcome is the result of a savestate operation.
type Outcome int

// List of valid Outcome values.
const (
	// nothing happened
	OutcomeNone Outcome = iota

	// a new savestate was taken
	OutcomeSaved

	// a savestate already exists for the current frame and script. playback
	// should resume
	OutcomeAlreadySaved

	// the savestate was loaded
	OutcomeLoaded

	// the savestate could not be loaded at this time but remains valid
	OutcomeDeferred

	// the savestate no longer matches the script and has been discarded
	OutcomeInvalidated

	// the savestate was cleared on request
	OutcomeCleared

	// the host failed to capture or restore a snapshot
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeSaved:
		return "saved"
	case OutcomeAlreadySaved:
		return "already saved"
	case OutcomeLoaded:
		return "loaded"
	case OutcomeDeferred:
		return "deferred"
	case OutcomeInvalidated:
		return "invalidated"
	case OutcomeCleared:
		return "cleared"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown outcome"
}

// Coordinator manages the savestate slot.
type Coordinator struct {
	host  Host
	src   Source
	prefs *Preferences

	rec *Record

	now func() time.Time
}

// NewCoordinator is the preferred method of initialisation for the
// Coordinator type. The default preferences are used if p is nil.
func NewCoordinator(host Host, src Source, p *Preferences) *Coordinator {
	if p == nil {
		p, _ = NewPreferences(nil)
	}
	return &Coordinator{
		host:  host,
		src:   src,
		prefs: p,
		now:   time.Now,
	}
}

func (c *Coordinator) enabled() bool {
	return c.prefs.Enabled.Get().(bool)
}

// IsSaved returns true if there is a savestate for the current script.
func (c *Coordinator) IsSaved() bool {
	return c.rec != nil && c.rec.Identity == c.src.Identity()
}

// Record returns a copy of the current savestate record.
func (c *Coordinator) Record() (Record, bool) {
	if !c.IsSaved() {
		return Record{}, false
	}
	return *c.rec, true
}

// SavedFrame returns the frame of the savestate or -1 if there is no
// savestate.
func (c *Coordinator) SavedFrame() int {
	if !c.IsSaved() {
		return -1
	}
	return c.rec.Frame
}

// HighlightLine returns the line in the script where the savestate was taken.
// Returns -1 if there is no savestate.
func (c *Coordinator) HighlightLine() int {
	if !c.enabled() || !c.IsSaved() {
		return -1
	}
	return c.src.LineAt(c.rec.Frame, c.rec.ByBreakpoint)
}

// a savestate created by a marker is no longer valid if the marker has been
// removed from the script
func (c *Coordinator) breakpointDeleted() bool {
	if !c.IsSaved() || !c.rec.ByBreakpoint {
		return false
	}
	_, ok := c.src.SaveStateMarkerAt(c.rec.Frame)
	return !ok
}

func (c *Coordinator) sceneCompatible() bool {
	if sc, ok := c.host.(SceneChecker); ok {
		return sc.SceneCompatible()
	}
	return true
}

// Save takes a new savestate at the current frame. The byBreakpoint argument
// should be true if the savestate is being taken because of a savestate
// marker in the script.
func (c *Coordinator) Save(byBreakpoint bool) Outcome {
	if !c.enabled() {
		return OutcomeNone
	}

	frame := c.src.Frame()
	if c.IsSaved() && frame == c.rec.Frame && c.rec.Checksum == c.src.Checksum(c.rec.Frame) {
		return OutcomeAlreadySaved
	}

	h, err := c.host.CaptureSnapshot()
	if err != nil {
		logger.Log(logger.Allow, "savestate", curated.Errorf(SnapshotError, err))
		return OutcomeFailed
	}

	rec := &Record{
		ID:           uuid.New(),
		Handle:       h,
		Checksum:     c.src.Checksum(frame),
		Frame:        frame,
		FrameInInput: c.src.FrameInInput(),
		ByBreakpoint: byBreakpoint,
		Identity:     c.src.Identity(),
		Created:      c.now(),
	}
	if aux, ok := c.host.(AuxStatus); ok {
		rec.Aux = aux.AuxStatus()
		rec.HasAux = true
	}
	c.rec = rec

	logger.Logf(logger.Allow, "savestate", "saved at frame %d", frame)

	return OutcomeSaved
}

// Load the savestate. If the script has changed before the saved frame, or
// the savestate was taken by a marker that no longer exists, the savestate is
// discarded and OutcomeInvalidated is returned.
func (c *Coordinator) Load() Outcome {
	if !c.enabled() || !c.IsSaved() {
		return OutcomeNone
	}

	if c.breakpointDeleted() || c.rec.Checksum != c.src.Checksum(c.rec.Frame) {
		logger.Log(logger.Allow, "savestate", curated.Errorf(ChecksumMismatch, c.rec.Frame))
		c.rec = nil
		return OutcomeInvalidated
	}

	if c.src.Frame() == c.rec.Frame {
		return OutcomeAlreadySaved
	}

	if !c.sceneCompatible() {
		return OutcomeDeferred
	}

	err := c.host.RestoreSnapshot(c.rec.Handle)
	if err != nil {
		logger.Log(logger.Allow, "savestate", curated.Errorf(SnapshotError, err))
		c.rec = nil
		return OutcomeFailed
	}

	c.src.SetProgress(c.rec.Frame, c.rec.FrameInInput)
	if aux, ok := c.host.(AuxStatus); ok && c.rec.HasAux {
		aux.RestoreAuxStatus(c.rec.Aux)
	}

	logger.Logf(logger.Allow, "savestate", "loaded frame %d", c.rec.Frame)

	return OutcomeLoaded
}

// Clear the savestate slot. Returns true if there was a savestate to clear.
func (c *Coordinator) Clear() bool {
	cleared := c.rec != nil
	c.rec = nil
	return cleared
}

// Update is called once per tick, whether or not playback is running. It
// takes a savestate when playback reaches the last savestate marker in the
// script and loads the savestate when playback is behind the saved frame.
func (c *Coordinator) Update(running bool) Outcome {
	if !c.enabled() {
		return OutcomeNone
	}

	frame := c.src.Frame()
	if frame < c.src.Len() {
		if ff, ok := c.src.SaveStateMarkerAt(frame); ok {
			if last, ok := c.src.LastSaveStateMarker(); ok && last.Frame == ff.Frame && c.SavedFrame() != frame {
				return c.Save(true)
			}
		}
	}

	if running && c.IsSaved() && c.sceneCompatible() && frame < c.rec.Frame {
		return c.Load()
	}

	return OutcomeNone
}

// UpdateMeta is called once per tick with the state of the savestate hotkeys.
// A clear request returns OutcomeCleared, in which case playback should be
// disabled.
func (c *Coordinator) UpdateMeta(running bool, save bool, clearState bool) Outcome {
	if !c.enabled() {
		return OutcomeNone
	}

	if running && save {
		return c.Save(false)
	}

	if clearState {
		c.Clear()
		return OutcomeCleared
	}

	if running && c.breakpointDeleted() {
		c.Clear()
		return OutcomeInvalidated
	}

	return OutcomeNone
}
