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

	"github.com/jetsetilly/gophertas/prefs"
)

// default key for each hotkey, in ID order
var defaultBindings = [NumIDs]string{
	"=",
	"+",
	"[",
	"]",
	"f",
	"s",
	"n",
	"v",
	"c",
}

// Bindings maps hotkeys to the names of keys. Key names are single printable
// characters or one of "space", "enter", "tab" or "backspace".
type Bindings struct {
	dsk  *prefs.Disk
	keys [NumIDs]prefs.String
}

func (b *Bindings) String() string {
	var s strings.Builder
	for id := range NumIDs {
		if id > 0 {
			s.WriteString(", ")
		}
		s.WriteString(id.DisplayName())
		s.WriteString(": ")
		s.WriteString(b.keys[id].String())
	}
	return s.String()
}

// NewBindings is the preferred method of initialisation for the Bindings type.
// The bindings are registered with the Disk if it is not nil.
func NewBindings(dsk *prefs.Disk) (*Bindings, error) {
	b := &Bindings{dsk: dsk}
	b.SetDefaults()

	if dsk == nil {
		return b, nil
	}

	for id := range NumIDs {
		err := dsk.Add("hotkeys."+strings.ToLower(id.String()), &b.keys[id])
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

// SetDefaults reverts all bindings to the default keys.
func (b *Bindings) SetDefaults() {
	for id := range NumIDs {
		_ = b.keys[id].Set(defaultBindings[id])
	}
}

// Key returns the name of the key bound to the hotkey.
func (b *Bindings) Key(id ID) string {
	if id < 0 || id >= NumIDs {
		return ""
	}
	return b.keys[id].String()
}

// Bind the hotkey to the named key.
func (b *Bindings) Bind(id ID, key string) error {
	if id < 0 || id >= NumIDs {
		return nil
	}
	return b.keys[id].Set(strings.TrimSpace(key))
}

// Lookup returns the hotkey bound to the named key. Key names are not
// case-sensitive.
func (b *Bindings) Lookup(key string) (ID, bool) {
	if key == "" {
		return 0, false
	}
	for id := range NumIDs {
		if strings.EqualFold(b.keys[id].String(), key) {
			return id, true
		}
	}
	return 0, false
}
