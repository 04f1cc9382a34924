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

import "sync"

// Manual is a Source whose state is set by calls to Press(), Release() and
// SetAxis(). It is safe to use from more than one goroutine.
type Manual struct {
	crit sync.Mutex
	down [NumIDs]bool
	axis float32
}

// Press the hotkey. It stays down until Release() is called.
func (m *Manual) Press(id ID) {
	m.crit.Lock()
	defer m.crit.Unlock()
	if id >= 0 && id < NumIDs {
		m.down[id] = true
	}
}

// Release the hotkey.
func (m *Manual) Release(id ID) {
	m.crit.Lock()
	defer m.crit.Unlock()
	if id >= 0 && id < NumIDs {
		m.down[id] = false
	}
}

// SetAxis sets the analog speed control.
func (m *Manual) SetAxis(v float32) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.axis = v
}

// IsDown implements the Source interface.
func (m *Manual) IsDown(id ID) bool {
	m.crit.Lock()
	defer m.crit.Unlock()
	return id >= 0 && id < NumIDs && m.down[id]
}

// Axis implements the Source interface.
func (m *Manual) Axis() float32 {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.axis
}

// Sources combines more than one Source. A hotkey is down if it is down in any
// of the sources. The axis with the largest magnitude is used.
type Sources []Source

// IsDown implements the Source interface.
func (s Sources) IsDown(id ID) bool {
	for _, src := range s {
		if src.IsDown(id) {
			return true
		}
	}
	return false
}

// Axis implements the Source interface.
func (s Sources) Axis() float32 {
	var a float32
	for _, src := range s {
		if v := src.Axis(); abs(v) > abs(a) {
			a = v
		}
	}
	return a
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
