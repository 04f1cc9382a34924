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

package environment

import (
	"github.com/jetsetilly/gophertas/hotkeys"
	"github.com/jetsetilly/gophertas/paths"
	"github.com/jetsetilly/gophertas/playback"
	"github.com/jetsetilly/gophertas/prefs"
	"github.com/jetsetilly/gophertas/savestate"
	"github.com/jetsetilly/gophertas/studio"
)

// Environment is the configuration and the preferences of a session.
type Environment struct {
	Config Config

	// the preferences groups are all registered with the same Disk
	Disk      *prefs.Disk
	Playback  *playback.Preferences
	Savestate *savestate.Preferences
	Studio    *studio.Preferences
	Hotkeys   *hotkeys.Bindings
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type. Preferences are loaded from disk.
func NewEnvironment(cfg Config) (*Environment, error) {
	pth := cfg.PrefsFile
	if pth == "" {
		var err error
		pth, err = paths.ResourcePath("", prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	dsk, err := prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	env := &Environment{
		Config: cfg,
		Disk:   dsk,
	}

	env.Playback, err = playback.NewPreferences(dsk)
	if err != nil {
		return nil, err
	}
	env.Savestate, err = savestate.NewPreferences(dsk)
	if err != nil {
		return nil, err
	}
	env.Studio, err = studio.NewPreferences(dsk)
	if err != nil {
		return nil, err
	}
	env.Hotkeys, err = hotkeys.NewBindings(dsk)
	if err != nil {
		return nil, err
	}

	err = dsk.Load()
	if err != nil {
		return nil, err
	}

	if cfg.StudioAddr != "" {
		err = env.Studio.Address.Set(cfg.StudioAddr)
		if err != nil {
			return nil, err
		}
	}

	return env, nil
}

// Save the preferences to disk.
func (env *Environment) Save() error {
	return env.Disk.Save()
}

// Normalise sets every preference to its default value. Useful for sync
// checks, which should not depend on the preferences of the user.
func (env *Environment) Normalise() {
	env.Playback.SetDefaults()
	env.Savestate.SetDefaults()
	env.Studio.SetDefaults()
	env.Hotkeys.SetDefaults()
	if env.Config.StudioAddr != "" {
		_ = env.Studio.Address.Set(env.Config.StudioAddr)
	}
}
