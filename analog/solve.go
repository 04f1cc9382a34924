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

package analog

import (
	"math"
	"regexp"
	"strconv"
)

const (
	// DeadZone is the fraction of the raw axis range that is treated as no
	// input.
	DeadZone = 0.239532471

	dcMult = (1 - DeadZone) * (1 - DeadZone)

	// minimum post-deadzone amplitude accepted by the precise search
	ampLowerbound = float32(0.25 * dcMult)

	// Lowerbound is the smallest raw value considered by the precise search.
	// It is the first value outside the deadzone.
	Lowerbound int16 = 7849

	// largest raw value of an axis
	maxShort = 32767
)

// fractional part of the angle. the length of the entire match decides the
// precision of the precise search.
var fractional = regexp.MustCompile(`\d+\.(\d*)`)

// precision returns the acceptable error in the precise search for the
// angle. more decimal places in the angle means a smaller error is required.
func precision(angle float32) float64 {
	if angle == 0 {
		return float64(float32(1e-6))
	}
	digits := len(fractional.FindString(strconv.FormatFloat(float64(angle), 'f', -1, 32)))
	return float64(float32(0.5 * math.Pow10(-(digits + 2))))
}

// direction returns the unit vector for the angle, measured in degrees
// clockwise from up. the cardinal directions are exact.
func direction(angle float32) (float32, float32) {
	switch angle {
	case 0, 360:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	r := float64(angle) / 180.0 * math.Pi
	return float32(math.Sin(r)), float32(math.Cos(r))
}

// Solve returns the stick position for the angle and magnitude under the
// mode. A magnitude of zero (or less) is the neutral stick position.
func Solve(mode Mode, angle float32, magnitude float32) (Vector2, Vector2Short) {
	if magnitude <= 0 {
		return Vector2{}, Vector2Short{}
	}

	x, y := direction(angle)
	if mode != Precise {
		x *= magnitude
		y *= magnitude
	}

	return feather(mode, x, y, precision(angle), magnitude)
}

// quantise a float in the range 0 to 1 to a raw value outside the deadzone.
// rounding is to nearest even. an axis with no deflection is left at rest.
func quantise(f float32) int16 {
	if f == 0 {
		return 0
	}
	return int16(math.RoundToEven((float64(f)*(1.0-DeadZone) + DeadZone) * maxShort))
}

// dequantise is the value of the raw axis as seen by the host.
func dequantise(s int16) float32 {
	return float32(math.Max(float64(s)/maxShort-DeadZone, 0.0) / (1 - DeadZone))
}

// UpperBound is the largest raw axis value allowed by the precise search for
// the magnitude.
func UpperBound(magnitude float32) int16 {
	u := magnitude * maxShort
	u = max(u, float32(Lowerbound))
	u = min(u, maxShort)
	return int16(math.Round(float64(u)))
}

func feather(mode Mode, x, y float32, prec float64, magnitude float32) (Vector2, Vector2Short) {
	if x < 0 {
		v, s := feather(mode, -x, y, prec, magnitude)
		return Vector2{X: -v.X, Y: v.Y}, Vector2Short{X: -s.X, Y: s.Y}
	}
	if y < 0 {
		v, s := feather(mode, x, -y, prec, magnitude)
		return Vector2{X: v.X, Y: -v.Y}, Vector2Short{X: s.X, Y: -s.Y}
	}
	if x < y {
		v, s := feather(mode, y, x, prec, magnitude)
		return Vector2{X: v.Y, Y: v.X}, Vector2Short{X: s.Y, Y: s.X}
	}

	// x and y are both positive and x >= y
	var s Vector2Short

	switch mode {
	case Square:
		if d := max(x, y); d > 0 {
			x /= d
			y /= d
		}
		s = Vector2Short{X: quantise(x), Y: quantise(y)}
	case Precise:
		s, _ = PreciseSearch(x, y, prec, UpperBound(magnitude))
	default:
		s = Vector2Short{X: quantise(x), Y: quantise(y)}
	}

	if mode == Ignore {
		return Vector2{X: x, Y: y}, s
	}

	return Vector2{X: dequantise(s.X), Y: dequantise(s.Y)}, s
}

// PreciseSearch finds the raw pair whose post-deadzone ratio best matches
// y/x. The direction must be in the octant where x and y are positive and x
// >= y. Candidate Y values are tried in turn from Lowerbound, with the X value
// computed for each, until X reaches the upper bound.
//
// Also returns the number of steps taken by the search, which is never more
// than the number of raw values above Lowerbound.
func PreciseSearch(x, y float32, prec float64, upper int16) (Vector2Short, int) {
	if y < 1e-10 {
		return Vector2Short{X: upper, Y: 0}, 0
	}

	approx := float64(y) / float64(x)
	multip := float64(x) / float64(y)
	upperl := float64(upper) / maxShort

	// y/x of zero has an error of approx
	leastError := approx
	ret := Vector2Short{X: upper, Y: 0}

	accept := func(rx, ry int, ys float64) {
		xs := float64(rx)/maxShort - DeadZone
		err := math.Abs(ys/xs - approx)
		if xs*xs+ys*ys >= float64(ampLowerbound) && (err < leastError || err <= prec) {
			leastError = err
			ret = Vector2Short{X: int16(rx), Y: int16(ry)}
		}
	}

	var steps int
	ry := int(Lowerbound)
	for {
		ys := float64(ry)/maxShort - DeadZone
		xx := math.Min(DeadZone+multip*ys, upperl)
		rx := int(math.Floor(xx * maxShort))

		accept(rx, ry, ys)
		if rx < int(upper) {
			accept(rx+1, ry, ys)
		}

		if xx >= upperl || ry >= maxShort {
			break
		}

		ry++
		steps++
	}

	return ret, steps
}
