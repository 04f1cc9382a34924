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

package studio

import (
	"github.com/jetsetilly/gophertas/prefs"
)

// DefaultAddress of the studio bridge.
const DefaultAddress = "localhost:32270"

// Preferences for the studio bridge.
type Preferences struct {
	dsk *prefs.Disk

	// the address the bridge listens on. an empty string disables the bridge
	Address prefs.String
}

func (p *Preferences) String() string {
	return p.Address.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences(dsk *prefs.Disk) (*Preferences, error) {
	p := &Preferences{dsk: dsk}
	p.SetDefaults()

	if dsk != nil {
		if err := dsk.Add("studio.address", &p.Address); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all studio preferences to the default values.
func (p *Preferences) SetDefaults() {
	_ = p.Address.Set(DefaultAddress)
}
