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

import "strings"

// State of the playback engine.
type State struct {
	Enabled   bool
	FrameStep bool
	Disabling bool
}

// Values returned by the Bits() function.
const (
	BitEnable    = 1 << 0
	BitFrameStep = 1 << 2
	BitDisable   = 1 << 3
)

// Bits returns the state as a bitset. The values are those used by the
// studio.
func (s State) Bits() int {
	var b int
	if s.Enabled {
		b |= BitEnable
	}
	if s.FrameStep {
		b |= BitFrameStep
	}
	if s.Disabling {
		b |= BitDisable
	}
	return b
}

func (s State) String() string {
	var p []string
	if s.Enabled {
		p = append(p, "Enabled")
	}
	if s.FrameStep {
		p = append(p, "FrameStep")
	}
	if s.Disabling {
		p = append(p, "Disabling")
	}
	if len(p) == 0 {
		return "None"
	}
	return strings.Join(p, "|")
}

// Reason describes why playback was stopped.
type Reason int

// List of valid Reason values.
const (
	ReasonNone Reason = iota

	// the end of the script was reached
	ReasonFinished

	// the host was in an unsafe scene
	ReasonUnsafe

	// the host refused to advance another frame
	ReasonHostHalted

	// the script contains no input
	ReasonEmptyScript

	// the script could not be parsed
	ReasonParseFailed

	// the user or another component asked for playback to stop
	ReasonRequested

	// the savestate was cleared with the ClearState hotkey
	ReasonClearedState

	// playback was restarted
	ReasonRestart
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonFinished:
		return "finished"
	case ReasonUnsafe:
		return "unsafe input"
	case ReasonHostHalted:
		return "host halted"
	case ReasonEmptyScript:
		return "empty script"
	case ReasonParseFailed:
		return "parse failed"
	case ReasonRequested:
		return "stopped"
	case ReasonClearedState:
		return "savestate cleared"
	case ReasonRestart:
		return "restart"
	}
	return "unknown reason"
}
