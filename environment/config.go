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
	"github.com/caarlos0/env/v11"
	"github.com/jetsetilly/gophertas/curated"
)

// ConfigError is the sentinel pattern for errors returned by ParseConfig().
const ConfigError = "environment: %v"

// Prefix of every environment variable.
const Prefix = "GOPHERTAS_"

// Config read from the process environment.
type Config struct {
	// the script to play if one is not given on the command line
	Script string `env:"SCRIPT"`

	// the address of the studio bridge. overrides the studio.address
	// preference
	StudioAddr string `env:"STUDIO_ADDR"`

	// the preferences file. the default location is chosen by the paths
	// package
	PrefsFile string `env:"PREFS_FILE"`

	// the sync journal database
	SyncDB string `env:"SYNC_DB"`

	// echo log entries to stderr as they are created
	LogEcho bool `env:"LOG_ECHO"`

	// number of ticks per second
	TickRate int `env:"TICK_RATE" envDefault:"60"`
}

// ParseConfig reads the Config from the environment. If environ is nil then
// the process environment is used.
func ParseConfig(environ map[string]string) (Config, error) {
	var cfg Config

	opts := env.Options{Prefix: Prefix}
	if environ != nil {
		opts.Environment = environ
	}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, curated.Errorf(ConfigError, err)
	}

	if cfg.TickRate <= 0 {
		return Config{}, curated.Errorf(ConfigError, "tick rate must be greater than zero")
	}

	return cfg, nil
}
