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

// Package limiter provides a rough and ready way of limiting events to a fixed
// rate. The playback session uses it to tick the engine and the host at the
// tick rate.
package limiter

import (
	"context"
	"sync"
	"time"

	"github.com/jetsetilly/gophertas/curated"
)

// LimitError is the sentinel pattern for errors returned by the limiter.
const LimitError = "limiter: %v"

// Ticker limits events to a number per second.
type Ticker struct {
	crit sync.Mutex
	hz   int
	t    *time.Ticker
}

func period(hz int) time.Duration {
	return time.Second / time.Duration(hz)
}

// NewTicker is the preferred method of initialisation for the Ticker type.
func NewTicker(hz int) (*Ticker, error) {
	if hz <= 0 {
		return nil, curated.Errorf(LimitError, "rate must be greater than zero")
	}
	return &Ticker{
		hz: hz,
		t:  time.NewTicker(period(hz)),
	}, nil
}

// SetLimit changes the number of events per second.
func (lim *Ticker) SetLimit(hz int) error {
	if hz <= 0 {
		return curated.Errorf(LimitError, "rate must be greater than zero")
	}
	lim.crit.Lock()
	defer lim.crit.Unlock()
	lim.hz = hz
	lim.t.Reset(period(hz))
	return nil
}

// Limit returns the number of events per second.
func (lim *Ticker) Limit() int {
	lim.crit.Lock()
	defer lim.crit.Unlock()
	return lim.hz
}

// Wait until the next event is due. Returns false if the context was
// cancelled before then.
func (lim *Ticker) Wait(ctx context.Context) bool {
	select {
	case <-lim.t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// HasWaited returns true if an event is due. It does not block.
func (lim *Ticker) HasWaited() bool {
	select {
	case <-lim.t.C:
		return true
	default:
		return false
	}
}

// Stop the limiter. No more events will become due.
func (lim *Ticker) Stop() {
	lim.t.Stop()
}
