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
	"errors"
	"io"
	"sync"
	"time"

	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/logger"
	"github.com/pkg/term"
)

// HoldWindow is how long a key is considered to be down after it has been
// received from the terminal. Terminals do not report key releases so a held
// key is seen as a series of key presses by the terminal's auto-repeat.
const HoldWindow = 80 * time.Millisecond

// TerminalError is returned by NewTerminal() if the terminal cannot be put
// into raw mode.
const TerminalError = "hotkeys: terminal: %v"

// keys that control the analog speed axis. these are not configurable
const (
	axisDown  = ","
	axisUp    = "."
	axisReset = "/"
	axisStep  = 0.1
)

// Terminal is a Source that reads hotkeys from a terminal in raw mode.
type Terminal struct {
	t        *term.Term
	bindings *Bindings

	// called when Ctrl-C is received. raw mode means the terminal does not
	// raise the interrupt signal
	onInterrupt func()

	crit sync.Mutex
	last [NumIDs]time.Time
	axis float32
	now  func() time.Time

	quit chan bool
	done chan bool
}

// NewTerminal opens the terminal device, usually "/dev/tty", in raw mode.
// Close() must be called to restore the terminal.
func NewTerminal(device string, bindings *Bindings, onInterrupt func()) (*Terminal, error) {
	t, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	// a read timeout allows the reading goroutine to notice the quit signal
	err = t.SetReadTimeout(100 * time.Millisecond)
	if err != nil {
		_ = t.Restore()
		_ = t.Close()
		return nil, curated.Errorf(TerminalError, err)
	}

	tm := &Terminal{
		t:           t,
		bindings:    bindings,
		onInterrupt: onInterrupt,
		now:         time.Now,
		quit:        make(chan bool),
		done:        make(chan bool),
	}

	go tm.run()

	return tm, nil
}

// Close stops reading from the terminal and restores it to the mode it was in
// when NewTerminal() was called.
func (tm *Terminal) Close() error {
	close(tm.quit)
	<-tm.done
	err := tm.t.Restore()
	if err != nil {
		_ = tm.t.Close()
		return curated.Errorf(TerminalError, err)
	}
	err = tm.t.Close()
	if err != nil {
		return curated.Errorf(TerminalError, err)
	}
	return nil
}

func (tm *Terminal) run() {
	defer close(tm.done)

	b := make([]byte, 16)
	for {
		select {
		case <-tm.quit:
			return
		default:
		}

		n, err := tm.t.Read(b)
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Log(logger.Allow, "hotkeys", curated.Errorf(TerminalError, err))
			return
		}
		if n > 0 {
			tm.handle(b[:n], tm.now())
		}
	}
}

// handle the bytes received from the terminal in a single read
func (tm *Terminal) handle(b []byte, now time.Time) {
	tm.crit.Lock()
	defer tm.crit.Unlock()

	for _, c := range b {
		// escape sequences are not supported. the rest of the read is
		// discarded because it is likely part of the sequence
		if c == 0x1b {
			return
		}

		// Ctrl-C
		if c == 0x03 {
			if tm.onInterrupt != nil {
				tm.onInterrupt()
			}
			continue
		}

		k := keyName(c)
		switch k {
		case axisDown:
			tm.axis = max(-1, tm.axis-axisStep)
			continue
		case axisUp:
			tm.axis = min(1, tm.axis+axisStep)
			continue
		case axisReset:
			tm.axis = 0
			continue
		}

		if id, ok := tm.bindings.Lookup(k); ok {
			tm.last[id] = now
		}
	}
}

// keyName returns the name of the key for the byte received from the
// terminal. returns the empty string for unsupported bytes
func keyName(c byte) string {
	switch c {
	case ' ':
		return "space"
	case '\r', '\n':
		return "enter"
	case '\t':
		return "tab"
	case 0x7f, 0x08:
		return "backspace"
	}
	if c > ' ' && c < 0x7f {
		return string(rune(c))
	}
	return ""
}

// IsDown implements the Source interface.
func (tm *Terminal) IsDown(id ID) bool {
	if id < 0 || id >= NumIDs {
		return false
	}
	tm.crit.Lock()
	defer tm.crit.Unlock()
	return !tm.last[id].IsZero() && tm.now().Sub(tm.last[id]) < HoldWindow
}

// Axis implements the Source interface.
func (tm *Terminal) Axis() float32 {
	tm.crit.Lock()
	defer tm.crit.Unlock()
	return tm.axis
}
