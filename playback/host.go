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
	"github.com/jetsetilly/gophertas/script"
)

// Host is the simulation that is being driven by the engine.
type Host interface {
	// advance the host by one frame using the input. returns false if the host
	// cannot continue
	AdvanceOneFrame(frame script.InputFrame) bool

	// playback is paused while the host is loading. playback can not be
	// enabled while the host is loading
	IsWorldLoading() bool
}

// Inspector is an optional interface for the Host. It exposes information
// about the host that the engine uses for safety checks and for the tick
// summary.
type Inspector interface {
	// whether the host is in a scene where input might cause harm, such as an
	// options menu
	SceneUnsafe() bool

	// name of the current room
	Room() string

	// the host's timer, formatted for display
	Timer() string
}

// TickPlan is passed to a TickPlanner before any frames are advanced.
type TickPlan struct {
	// number of frames that will be advanced this tick
	SubFrames int

	// whether the host only needs to render the last frame of the tick
	RenderFinalOnly bool
}

// TickPlanner is an optional interface for the Host.
type TickPlanner interface {
	PlanTick(TickPlan)
}

// InputSource is the supply of input frames. Implemented by script.Controller.
type InputSource interface {
	Identity() string
	Refresh(force bool) error
	Stop()
	NeedsReload() bool
	Err() error

	Advance() (script.InputFrame, bool)
	CanPlayback() bool
	Len() int
	Frame() int
	FrameInInput() int
	Previous() (script.InputFrame, bool)

	CurrentFastForward() (script.FastForward, bool)
	HasFastForward() bool
	Break() bool
	FastForwardToNextLabel()
	ClearNextLabel()

	AllowUnsafe() bool
	RoomLabelsAt(frame int) []script.RoomLabel
}

// Observer receives the tick summary.
type Observer interface {
	Publish(Summary)
}
