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

package script

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/logger"
)

// WatcherError patterns are returned by the Watcher type.
const WatcherError = "watcher: %v"

// Watcher watches the files used by a script and calls a function when any of
// them change. The function is called from the watcher's own goroutine.
//
// The directories containing the files are watched rather than the files
// themselves. This means that editors which replace a file rather than write
// to it are handled correctly.
type Watcher struct {
	w        *fsnotify.Watcher
	onChange func(path string)

	crit  sync.Mutex
	files map[string]bool
	dirs  map[string]bool

	done chan bool
}

// NewWatcher is the preferred method of initialisation for the Watcher type.
func NewWatcher(onChange func(path string)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, curated.Errorf(WatcherError, err)
	}

	wtc := &Watcher{
		w:        w,
		onChange: onChange,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		done:     make(chan bool),
	}

	go wtc.run()

	return wtc, nil
}

// Watch replaces the list of watched files. Implements the FileWatcher
// interface.
func (wtc *Watcher) Watch(files ...string) error {
	wtc.crit.Lock()
	defer wtc.crit.Unlock()

	clear(wtc.files)
	dirs := make(map[string]bool)
	for _, f := range files {
		f = filepath.Clean(f)
		wtc.files[f] = true
		dirs[filepath.Dir(f)] = true
	}

	for d := range wtc.dirs {
		if !dirs[d] {
			_ = wtc.w.Remove(d)
			delete(wtc.dirs, d)
		}
	}

	for d := range dirs {
		if wtc.dirs[d] {
			continue
		}
		if err := wtc.w.Add(d); err != nil {
			return curated.Errorf(WatcherError, err)
		}
		wtc.dirs[d] = true
	}

	return nil
}

// Close stops the watcher. The onChange function will not be called after
// Close() returns.
func (wtc *Watcher) Close() error {
	err := wtc.w.Close()
	<-wtc.done
	if err != nil {
		return curated.Errorf(WatcherError, err)
	}
	return nil
}

func (wtc *Watcher) watched(name string) bool {
	wtc.crit.Lock()
	defer wtc.crit.Unlock()
	return wtc.files[filepath.Clean(name)]
}

func (wtc *Watcher) run() {
	defer close(wtc.done)

	for {
		select {
		case ev, ok := <-wtc.w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if wtc.watched(ev.Name) {
				wtc.onChange(ev.Name)
			}

		case err, ok := <-wtc.w.Errors:
			if !ok {
				return
			}
			logger.Log(logger.Allow, "script", curated.Errorf(WatcherError, err))
		}
	}
}
