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

package hotkeys

import (
	"strings"
	"time"

	"github.com/jetsetilly/gophertas/curated"
)

// ID identifies a hotkey.
type ID int

// List of valid hotkey IDs.
const (
	StartStop ID = iota
	Restart
	FrameAdvance
	PauseResume
	FastForward
	SlowForward
	FastForwardComment
	SaveState
	ClearState

	NumIDs
)

var idNames = [NumIDs]string{
	"StartStop",
	"Restart",
	"FrameAdvance",
	"PauseResume",
	"FastForward",
	"SlowForward",
	"FastForwardComment",
	"SaveState",
	"ClearState",
}

var displayNames = [NumIDs]string{
	"Start/Stop",
	"Restart",
	"Frame Advance",
	"Pause/Resume",
	"Fast Forward",
	"Slow Forward",
	"Fast Forward to Next Label",
	"Save State",
	"Clear State",
}

func (id ID) String() string {
	if id < 0 || id >= NumIDs {
		return "unknown hotkey"
	}
	return idNames[id]
}

// DisplayName returns a name suitable for presenting to the user.
func (id ID) DisplayName() string {
	if id < 0 || id >= NumIDs {
		return "unknown hotkey"
	}
	return displayNames[id]
}

// UnknownID is returned by ParseID() if the string does not name a hotkey.
const UnknownID = "hotkeys: unknown hotkey (%s)"

// ParseID returns the ID for the name returned by ID.String(). The name is not
// case-sensitive.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	for i, n := range idNames {
		if strings.EqualFold(n, s) {
			return ID(i), nil
		}
	}
	return 0, curated.Errorf(UnknownID, s)
}

// held hotkeys are active for as long as they are pressed. an overridden
// held hotkey stays active until the override is released
func (id ID) held() bool {
	return id == FastForward || id == SlowForward
}

// Timing of double presses and repeats.
const (
	DoublePressTimeout = 200 * time.Millisecond
	RepeatTimeout      = 500 * time.Millisecond
)

// Hotkey is the state of a single hotkey.
type Hotkey struct {
	id ID

	check     bool
	lastCheck bool

	override bool

	doublePressed      bool
	repeated           bool
	doublePressTimeout time.Time
	repeatTimeout      time.Time
}

// ID returns the identity of the hotkey.
func (h *Hotkey) ID() ID {
	return h.id
}

// Update the state of the hotkey. The check argument is the physical state of
// the hotkey.
func (h *Hotkey) Update(check bool, now time.Time) {
	h.lastCheck = h.check

	if h.override {
		check = true
		if !h.id.held() {
			h.override = false
		}
	}

	h.check = check

	switch {
	case h.Pressed():
		h.doublePressed = now.Before(h.doublePressTimeout)
		if h.doublePressed {
			h.doublePressTimeout = time.Time{}
		} else {
			h.doublePressTimeout = now.Add(DoublePressTimeout)
		}
		h.repeated = true
		h.repeatTimeout = now.Add(RepeatTimeout)
	case h.check:
		h.doublePressed = false
		h.repeated = !now.Before(h.repeatTimeout)
	default:
		h.doublePressed = false
		h.repeated = false
		h.repeatTimeout = time.Time{}
	}
}

// Override forces the hotkey to be active on the next call to Update(). Held
// hotkeys stay active until ReleaseOverride() is called.
func (h *Hotkey) Override() {
	h.override = true
}

// ReleaseOverride cancels the effect of Override().
func (h *Hotkey) ReleaseOverride() {
	h.override = false
}

// Check is true while the hotkey is down.
func (h *Hotkey) Check() bool {
	return h.check
}

// Pressed is true only on the update where the hotkey went down.
func (h *Hotkey) Pressed() bool {
	return h.check && !h.lastCheck
}

// Released is true only on the update where the hotkey went up.
func (h *Hotkey) Released() bool {
	return !h.check && h.lastCheck
}

// DoublePressed is true if the hotkey has been pressed twice within the
// DoublePressTimeout period.
func (h *Hotkey) DoublePressed() bool {
	return h.doublePressed
}

// Repeated is true when the hotkey is pressed and then again on every update
// once it has been held for longer than the RepeatTimeout period.
func (h *Hotkey) Repeated() bool {
	return h.repeated
}

// Source is implemented by types that provide the physical state of the
// hotkeys.
type Source interface {
	IsDown(id ID) bool

	// the analog speed control. values are in the range -1 to 1
	Axis() float32
}

// Set is the collection of all hotkeys.
type Set struct {
	keys [NumIDs]Hotkey
	axis float32
}

// NewSet is the preferred method of initialisation for the Set type.
func NewSet() *Set {
	s := &Set{}
	for i := range s.keys {
		s.keys[i].id = ID(i)
	}
	return s
}

// Get returns the hotkey for the ID.
func (s *Set) Get(id ID) *Hotkey {
	return &s.keys[id]
}

// Poll updates every hotkey. A nil Source is treated as a Source with every
// hotkey up.
func (s *Set) Poll(src Source, now time.Time) {
	for i := range s.keys {
		var down bool
		if src != nil {
			down = src.IsDown(ID(i))
		}
		s.keys[i].Update(down, now)
	}

	s.axis = 0
	if src != nil {
		s.axis = max(-1, min(1, src.Axis()))
	}
}

// Axis returns the value of the analog speed control from the most recent
// call to Poll().
func (s *Set) Axis() float32 {
	return s.axis
}
