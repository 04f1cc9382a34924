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

import (
	"github.com/jetsetilly/gophertas/prefs"
)

// Preferences for the playback engine.
type Preferences struct {
	dsk *prefs.Disk

	// speed when the fast forward hotkey is held
	FastForwardSpeed prefs.Float

	// speed when the slow forward hotkey is held
	SlowForwardSpeed prefs.Float

	// playback is never slower than this
	MinimumSlowSpeed prefs.Float

	// speed at and above which the host is asked to render only the final
	// frame of a tick and at which per-frame logging is suppressed
	FastForwardThreshold prefs.Float

	// minimum time in milliseconds between summaries published in the middle
	// of a tick
	SummaryInterval prefs.Int

	// use the cadence of earlier versions for slow motion
	LegacyCadence prefs.Bool
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return "playback preferences"
	}
	return p.dsk.Path()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The values are registered with the Disk if it is not nil.
func NewPreferences(dsk *prefs.Disk) (*Preferences, error) {
	p := &Preferences{dsk: dsk}
	p.SetDefaults()

	if dsk == nil {
		return p, nil
	}

	if err := dsk.Add("playback.fastforwardspeed", &p.FastForwardSpeed); err != nil {
		return nil, err
	}
	if err := dsk.Add("playback.slowforwardspeed", &p.SlowForwardSpeed); err != nil {
		return nil, err
	}
	if err := dsk.Add("playback.minimumslowspeed", &p.MinimumSlowSpeed); err != nil {
		return nil, err
	}
	if err := dsk.Add("playback.fastforwardthreshold", &p.FastForwardThreshold); err != nil {
		return nil, err
	}
	if err := dsk.Add("playback.summaryinterval", &p.SummaryInterval); err != nil {
		return nil, err
	}
	if err := dsk.Add("playback.legacycadence", &p.LegacyCadence); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all playback preferences to the default values.
func (p *Preferences) SetDefaults() {
	_ = p.FastForwardSpeed.Set(10.0)
	_ = p.SlowForwardSpeed.Set(0.1)
	_ = p.MinimumSlowSpeed.Set(0.01)
	_ = p.FastForwardThreshold.Set(10.0)
	_ = p.SummaryInterval.Set(16)
	_ = p.LegacyCadence.Set(false)
}
