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

package playback

import "slices"

type enableEntry struct {
	priority int
	name     string
	f        func()
}

type disableEntry struct {
	priority int
	name     string
	f        func(Reason)
}

// OnEnable registers a function to be called when playback is enabled.
// Functions with a lower priority are called first. Functions with the same
// priority are called in the order they were registered.
func (e *Engine) OnEnable(priority int, name string, f func()) {
	e.onEnable = append(e.onEnable, enableEntry{priority: priority, name: name, f: f})
	slices.SortStableFunc(e.onEnable, func(a, b enableEntry) int {
		return a.priority - b.priority
	})
}

// OnDisable registers a function to be called when playback is disabled. The
// reason for the disable is passed to the function. Ordering is the same as
// for OnEnable().
func (e *Engine) OnDisable(priority int, name string, f func(Reason)) {
	e.onDisable = append(e.onDisable, disableEntry{priority: priority, name: name, f: f})
	slices.SortStableFunc(e.onDisable, func(a, b disableEntry) int {
		return a.priority - b.priority
	})
}

// Callbacks returns the names of the registered enable and disable functions
// in the order they will be called.
func (e *Engine) Callbacks() (enable []string, disable []string) {
	for _, c := range e.onEnable {
		enable = append(enable, c.name)
	}
	for _, c := range e.onDisable {
		disable = append(disable, c.name)
	}
	return enable, disable
}
