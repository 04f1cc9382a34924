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
	"github.com/jetsetilly/gophertas/prefs"
)

// Preferences for the savestate coordinator.
type Preferences struct {
	dsk *prefs.Disk

	// whether savestates are used at all. disabling savestates means that
	// playback always starts from the beginning of the script
	Enabled prefs.Bool
}

func (p *Preferences) String() string {
	return "savestate.enabled: " + p.Enabled.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The values are registered with the Disk if it is not nil.
func NewPreferences(dsk *prefs.Disk) (*Preferences, error) {
	p := &Preferences{dsk: dsk}
	p.SetDefaults()

	if dsk != nil {
		if err := dsk.Add("savestate.enabled", &p.Enabled); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all savestate preferences to the default values.
func (p *Preferences) SetDefaults() {
	_ = p.Enabled.Set(true)
}
