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
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jetsetilly/gophertas/analog"
	"github.com/jetsetilly/gophertas/curated"
)

// MaxFrames is the largest frame count allowed on an action line.
const MaxFrames = 9999

// width of the frame count when an InputFrame is written out
const framesWidth = 4

// Sentinel error patterns for action line parsing.
const (
	BadFrameCount = "frame count: %v"
	BadAction     = "unrecognised action: %s"
	BadDirection  = "unrecognised direction in %s: %c"
	BadFloat      = "bad value for %s: %s"
	NoAction      = "no frame count or action"
)

// InputFrame is a single action line from a script. The frame is held for
// Frames number of frames. Frames may be zero if an action has been
// specified, in which case the line is effectively a no-op for playback.
type InputFrame struct {
	Actions Actions
	Frames  int

	// the key names following the P action. uppercase and sorted
	CustomBindings string

	// the text of the angle and magnitude following the F action. if the
	// magnitude text is empty a magnitude of 1 is implied
	AngleText     string
	MagnitudeText string

	Angle     float32
	Magnitude float32

	// solved analog values using the analog mode that was in force when the
	// line was parsed
	Stick   analog.Vector2Short
	Feather analog.Vector2

	// directional vectors for the dash only and move only actions. values of
	// -1, 0 or 1 on each axis
	DashOnly analog.Vector2
	MoveOnly analog.Vector2

	// Line is the zero-based line in the main script that the input is
	// attributed to. inputs from files included with Read are attributed to
	// the line of the Read command
	Line int

	// FileLine is the one-based line in File
	File     string
	FileLine int

	// RepeatIndex and RepeatCount are non-zero only for inputs in the main
	// script that are inside a Repeat block
	RepeatIndex int
	RepeatCount int

	// FrameOffset is the number of frames preceding this input on the same
	// line of the main script. non-zero only for lines which expand to more
	// than one input, such as Read commands
	FrameOffset int
}

// ParseInputFrame parses an action line. The mode is used to solve the analog
// stick values for the F action.
func ParseInputFrame(line string, mode analog.Mode) (InputFrame, error) {
	var inp InputFrame

	tokens := strings.Split(line, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}

	if tokens[0] != "" {
		n, err := strconv.Atoi(tokens[0])
		if err != nil {
			return InputFrame{}, curated.Errorf(BadFrameCount, tokens[0])
		}
		if n < 0 || n > MaxFrames {
			return InputFrame{}, curated.Errorf(BadFrameCount, fmt.Sprintf("%d is out of range", n))
		}
		inp.Frames = n
	}

	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "" {
			continue
		}

		a, ok := ActionForChar(tok[0])
		if !ok {
			return InputFrame{}, curated.Errorf(BadAction, tok)
		}
		inp.Actions |= a

		switch a {
		case ActionDashOnly, ActionMoveOnly:
			for _, c := range []byte(tok[1:]) {
				if err := inp.addDirection(a, c, tok); err != nil {
					return InputFrame{}, err
				}
			}

		case ActionPressedKey:
			keys := []byte(strings.ToUpper(tok[1:]))
			slices.Sort(keys)
			inp.CustomBindings = string(keys)

		case ActionFeather:
			if len(tok) > 1 {
				return InputFrame{}, curated.Errorf(BadAction, tok)
			}

			// angle and magnitude are the tokens that follow the F action
			if i+1 < len(tokens) {
				i++
				if tokens[i] != "" {
					v, err := parseClamped(tokens[i], 0, 360, "angle")
					if err != nil {
						return InputFrame{}, err
					}
					inp.AngleText = v
				}
				if i+1 < len(tokens) && isFloat(tokens[i+1]) {
					i++
					v, err := parseClamped(tokens[i], 0, 1, "magnitude")
					if err != nil {
						return InputFrame{}, err
					}
					inp.MagnitudeText = v
				}
			}

		default:
			if len(tok) > 1 {
				return InputFrame{}, curated.Errorf(BadAction, tok)
			}
		}
	}

	if tokens[0] == "" && inp.Actions == NoActions {
		return InputFrame{}, curated.Errorf(NoAction)
	}

	inp.solve(mode)

	return inp, nil
}

func (inp *InputFrame) addDirection(a Actions, c byte, tok string) error {
	c = upper(c)
	for _, d := range directions {
		if d.c != c {
			continue
		}
		v := &inp.MoveOnly
		if a == ActionDashOnly {
			inp.Actions |= d.dashOnly
			v = &inp.DashOnly
		} else {
			inp.Actions |= d.moveOnly
		}
		switch d.a {
		case ActionLeft:
			v.X = -1
		case ActionRight:
			v.X = 1
		case ActionUp:
			v.Y = 1
		case ActionDown:
			v.Y = -1
		}
		return nil
	}
	return curated.Errorf(BadDirection, tok, c)
}

func isFloat(s string) bool {
	_, err := strconv.ParseFloat(s, 32)
	return err == nil
}

// parseClamped returns the text to be used for a value. if the value is out of
// range the text is replaced by the text of the limit
func parseClamped(s string, lower, upper float64, name string) (string, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return "", curated.Errorf(BadFloat, name, s)
	}
	if v < lower {
		return strconv.FormatFloat(lower, 'f', -1, 32), nil
	}
	if v > upper {
		return strconv.FormatFloat(upper, 'f', -1, 32), nil
	}
	return s, nil
}

func (inp *InputFrame) solve(mode analog.Mode) {
	if !inp.Actions.Has(ActionFeather) || inp.AngleText == "" {
		return
	}

	// values have been checked by parseClamped() so errors can be ignored
	angle, _ := strconv.ParseFloat(inp.AngleText, 32)
	inp.Angle = float32(angle)
	inp.Magnitude = 1
	if inp.MagnitudeText != "" {
		magnitude, _ := strconv.ParseFloat(inp.MagnitudeText, 32)
		inp.Magnitude = float32(magnitude)
	}

	inp.Feather, inp.Stick = analog.Solve(mode, inp.Angle, inp.Magnitude)
}

// String returns the input as it would appear in a script.
func (inp InputFrame) String() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("%*d", framesWidth, inp.Frames))

	for _, c := range actionChars {
		if !inp.Actions.Has(c.a) {
			continue
		}
		s.WriteByte(',')
		switch c.a {
		case ActionDashOnly:
			s.WriteString("A")
			s.WriteString(inp.Actions.directionString(true))
		case ActionMoveOnly:
			s.WriteString("M")
			s.WriteString(inp.Actions.directionString(false))
		case ActionPressedKey:
			s.WriteString("P")
			s.WriteString(inp.CustomBindings)
		default:
			s.WriteByte(c.c)
		}
	}

	if inp.Actions.Has(ActionFeather) {
		s.WriteByte(',')
		s.WriteString(inp.AngleText)
		if inp.MagnitudeText != "" {
			s.WriteByte(',')
			s.WriteString(inp.MagnitudeText)
		}
	}

	return s.String()
}

// RepeatString returns a short description of the input's position in a
// Repeat block. The empty string is returned for inputs not in a Repeat block.
func (inp InputFrame) RepeatString() string {
	if inp.RepeatCount <= 0 {
		return ""
	}
	return fmt.Sprintf(" %d/%d", inp.RepeatIndex, inp.RepeatCount)
}

// sameInput is true if the two inputs are from the same line and loop of
// the script.
func (inp InputFrame) sameInput(other InputFrame) bool {
	return inp.Line == other.Line &&
		inp.RepeatIndex == other.RepeatIndex &&
		inp.FrameOffset == other.FrameOffset
}
