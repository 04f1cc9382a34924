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

package hostsim

import (
	"math"

	"github.com/jetsetilly/gophertas/script"
)

// physical constants. distance is measured in pixels and time in seconds.
// positive Y is downwards
const (
	frameDuration = 1.0 / 60.0

	runSpeed   = 90.0
	runAccel   = 1000.0
	gravity    = 900.0
	maxFall    = 160.0
	jumpSpeed  = 105.0
	dashSpeed  = 240.0
	dashFrames = 9
)

// Body is the simulated player character.
type Body struct {
	X, Y   float64
	VX, VY float64

	OnGround bool
	CanDash  bool
	Facing   float64

	// number of frames remaining in the current dash
	DashTimer int
}

func newBody() Body {
	return Body{OnGround: true, CanDash: true, Facing: 1}
}

// direction of the input as a vector with positive Y downwards
func direction(inp script.InputFrame) (float64, float64) {
	if inp.Actions.Has(script.ActionFeather) {
		return float64(inp.Feather.X), -float64(inp.Feather.Y)
	}

	var x, y float64
	if inp.Actions.Has(script.ActionLeft) {
		x--
	}
	if inp.Actions.Has(script.ActionRight) {
		x++
	}
	if inp.Actions.Has(script.ActionUp) {
		y--
	}
	if inp.Actions.Has(script.ActionDown) {
		y++
	}
	return x, y
}

func approach(v float64, target float64, step float64) float64 {
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}

// step the body forward by one frame
func (b *Body) step(inp script.InputFrame) {
	dx, dy := direction(inp)
	if dx != 0 {
		b.Facing = math.Copysign(1, dx)
	}

	dash := inp.Actions.Has(script.ActionDash) || inp.Actions.Has(script.ActionDash2)
	jump := inp.Actions.Has(script.ActionJump) || inp.Actions.Has(script.ActionJump2)

	switch {
	case dash && b.CanDash && b.DashTimer == 0:
		if dx == 0 && dy == 0 {
			dx = b.Facing
		}
		l := math.Hypot(dx, dy)
		b.VX = dashSpeed * dx / l
		b.VY = dashSpeed * dy / l
		b.DashTimer = dashFrames
		b.CanDash = false

	case b.DashTimer > 0:
		b.DashTimer--

	default:
		b.VX = approach(b.VX, dx*runSpeed, runAccel*frameDuration)
		b.VY = math.Min(b.VY+gravity*frameDuration, maxFall)
		if jump && b.OnGround {
			b.VY = -jumpSpeed
		}
	}

	b.X = math.Max(0, b.X+b.VX*frameDuration)
	b.Y += b.VY * frameDuration

	b.OnGround = b.Y >= 0
	if b.OnGround {
		b.Y = 0
		b.VY = math.Min(b.VY, 0)
		if b.DashTimer == 0 {
			b.CanDash = true
		}
	}
}
