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

package prefs

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jetsetilly/gophertas/curated"
	"gopkg.in/ini.v1"
)

// DefaultPrefsFile is the name of the preferences file in the resource
// directory. See the paths package.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is written to the top of every preferences file.
const WarningBoilerPlate = "; *** do not edit this file by hand while gophertas is running ***"

// Sentinel error patterns.
const (
	DiskError    = "prefs: %v"
	DuplicateKey = "prefs: duplicate key (%s)"
)

// Disk represents preference values as stored on disk. Values are registered
// with Add() and are stored and retrieved with Save() and Load().
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type. The
// file does not need to exist until Save() is called.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf(DiskError, "empty path")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Path returns the filename of the preferences file.
func (dsk *Disk) Path() string {
	return dsk.path
}

// Add preference value to the Disk. The key is used to identify the value in
// the file and on the command line.
func (dsk *Disk) Add(key string, p pref) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	key = strings.TrimSpace(key)
	if key == "" {
		return curated.Errorf(DiskError, "empty key")
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p
	return nil
}

// split key into ini section and key name. keys without a dot are placed in
// the default section.
func split(key string) (string, string) {
	if s, k, ok := strings.Cut(key, "."); ok {
		return s, k
	}
	return ini.DefaultSection, key
}

// open the ini file for the disk. a missing file results in an empty ini.File.
func (dsk *Disk) open() (*ini.File, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		Loose:               true,
		IgnoreInlineComment: true,
	}, dsk.path)
	if err != nil {
		return nil, curated.Errorf(DiskError, err)
	}
	return f, nil
}

// Save current preference values to disk. Values in the file that have not
// been added to this Disk instance are preserved, unless they are defunct.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	f, err := dsk.open()
	if err != nil {
		return err
	}

	for _, d := range defunct {
		s, k := split(d)
		if sec, err := f.GetSection(s); err == nil {
			sec.DeleteKey(k)
		}
	}

	keys := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		s, k := split(key)
		f.Section(s).Key(k).SetValue(dsk.entries[key].String())
	}

	out, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf(DiskError, err)
	}
	defer out.Close()

	if _, err := fmt.Fprintf(out, "%s\n\n", WarningBoilerPlate); err != nil {
		return curated.Errorf(DiskError, err)
	}
	if _, err := f.WriteTo(out); err != nil {
		return curated.Errorf(DiskError, err)
	}

	return nil
}

// Load preference values from disk. A missing file is not an error. Values on
// the command line stack are applied after the file has been read.
func (dsk *Disk) Load() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	f, err := dsk.open()
	if err != nil {
		return err
	}

	for key, p := range dsk.entries {
		s, k := split(key)
		if sec, err := f.GetSection(s); err == nil && sec.HasKey(k) {
			if err := p.Set(sec.Key(k).String()); err != nil {
				return curated.Errorf(DiskError, fmt.Errorf("%s: %w", key, err))
			}
		}

		if ok, v := GetCommandLinePref(key); ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf(DiskError, fmt.Errorf("%s: %w", key, err))
			}
		}
	}

	return nil
}

// Reset all values registered with the Disk to their zero value.
func (dsk *Disk) Reset() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for key, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return curated.Errorf(DiskError, fmt.Errorf("%s: %w", key, err))
		}
	}
	return nil
}
