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

import "sync"

// queue of functions to be run on the engine's goroutine. push never blocks
// and the queue is unbounded
type queue struct {
	crit sync.Mutex
	fns  []func()
}

func (q *queue) push(f func()) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.fns = append(q.fns, f)
}

// drain runs every function in the queue in the order they were pushed.
// functions pushed while draining are run on the next call to drain()
func (q *queue) drain() {
	q.crit.Lock()
	fns := q.fns
	q.fns = nil
	q.crit.Unlock()

	for _, f := range fns {
		f()
	}
}

// PushFunction arranges for the function to be run at the start of the next
// tick. It is safe to call from any goroutine and never blocks.
func (e *Engine) PushFunction(f func()) {
	e.queue.push(f)
}
