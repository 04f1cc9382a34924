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
	"math"

	"github.com/jetsetilly/gophertas/hotkeys"
)

// the axis must be beyond this value before it has any effect
const axisDeadZone = 0.001

// calcFrameLoops returns the playback speed for the tick. In order of
// priority:
//
//	frame step in effect or buffered: 1
//	fast-forward ahead in the script: speed of the fast-forward
//	fast forward hotkey held: fastforwardspeed preference
//	slow forward hotkey held: slowforwardspeed preference
//	axis pushed forward: axis scaled by fastforwardspeed
//	axis pulled back: slowforwardspeed scaled by the axis
//	otherwise: 1
//
// The result is never less than the minimumslowspeed preference.
func (e *Engine) calcFrameLoops() float64 {
	if e.curr.FrameStep || e.next.FrameStep {
		return 1
	}

	ffSpeed := e.prefs.FastForwardSpeed.Get().(float64)
	slowSpeed := e.prefs.SlowForwardSpeed.Get().(float64)

	var fl float64

	if ff, ok := e.src.CurrentFastForward(); ok && e.src.HasFastForward() {
		fl = ff.Speed
	} else if e.hotkeys.Get(hotkeys.FastForward).Check() {
		fl = ffSpeed
	} else if e.hotkeys.Get(hotkeys.SlowForward).Check() {
		fl = slowSpeed
	} else {
		x := float64(e.hotkeys.Axis())
		switch {
		case x >= axisDeadZone:
			fl = x * ffSpeed
		case x <= -axisDeadZone:
			fl = (1 + x) * slowSpeed
		default:
			fl = 1
		}
	}

	return math.Max(fl, e.prefs.MinimumSlowSpeed.Get().(float64))
}

// the tolerance used when taking the integer part of the accumulated frame
// count. without it, ten ticks at a speed of 0.1 would not produce a frame
const cadenceEpsilon = 1e-9

// subFrames returns the number of frames to advance this tick.
//
// The default cadence accumulates the fractional part of FrameLoops over
// successive ticks. The legacy cadence, chosen with the legacycadence
// preference, advances a frame on the ticks where the integer part of the
// running total changes.
func (e *Engine) subFrames() int {
	if e.prefs.LegacyCadence.Get().(bool) {
		prev := math.Floor(float64(e.ticks)*e.frameLoops + cadenceEpsilon)
		e.ticks++
		next := math.Floor(float64(e.ticks)*e.frameLoops + cadenceEpsilon)
		return int(next - prev)
	}

	e.accumulator += e.frameLoops
	n := math.Floor(e.accumulator + cadenceEpsilon)
	e.accumulator -= n
	return int(n)
}
