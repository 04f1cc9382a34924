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
	"fmt"
	"strings"
	"time"
)

// Summary of the playback engine. Published to the Observer at least once
// per tick.
type Summary struct {
	Identity string

	// zero-based line in the main script of the most recently played input.
	// the value is -1 if no input has been played
	CurrentLine int

	// progress through the most recently played input. includes the repeat
	// count if the input is inside a Repeat block
	CurrentLineSuffix string

	CurrentFrame int
	FrameInInput int
	TotalFrames  int

	// line to highlight as the savestate location. the value is -1 if there
	// is no savestate
	SaveStateLine int

	State      State
	StateBits  int
	Running    bool
	FrameStep  bool
	FrameLoops float64

	// reason playback was last stopped
	Reason Reason

	NeedsReload bool

	// values from the host Inspector, if there is one
	Room  string
	Timer string

	// multi-line description of the playback engine for display
	Status string
}

// Summary returns the most recent summary.
func (e *Engine) Summary() Summary {
	return e.summary
}

func (e *Engine) buildSummary() Summary {
	s := Summary{
		Identity:      e.src.Identity(),
		CurrentLine:   -1,
		CurrentFrame:  e.src.Frame(),
		FrameInInput:  e.src.FrameInInput(),
		TotalFrames:   e.src.Len(),
		SaveStateLine: -1,
		State:         e.curr,
		StateBits:     e.curr.Bits(),
		Running:       e.curr.Enabled,
		FrameStep:     e.curr.FrameStep || e.next.FrameStep,
		FrameLoops:    e.frameLoops,
		Reason:        e.lastReason,
		NeedsReload:   e.src.NeedsReload(),
	}

	if prev, ok := e.src.Previous(); ok {
		s.CurrentLine = prev.Line
		s.CurrentLineSuffix = fmt.Sprintf("%d%s", e.src.FrameInInput()+prev.FrameOffset, prev.RepeatString())
	}

	if e.savestates != nil && e.savestates.IsSaved() {
		s.SaveStateLine = e.savestates.HighlightLine()
	}

	if e.inspector != nil {
		s.Room = e.inspector.Room()
		s.Timer = e.inspector.Timer()
	}

	s.Status = s.status()

	return s
}

func (s Summary) status() string {
	var b strings.Builder

	switch {
	case !s.Running:
		b.WriteString("Stopped")
		if s.Reason != ReasonNone {
			fmt.Fprintf(&b, ": %s", s.Reason)
		}
	case s.FrameStep:
		b.WriteString("FrameStep")
	default:
		fmt.Fprintf(&b, "Running x%.2f", s.FrameLoops)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "frame %d/%d", s.CurrentFrame, s.TotalFrames)
	if s.CurrentLine >= 0 {
		fmt.Fprintf(&b, " line %d (%s)", s.CurrentLine+1, s.CurrentLineSuffix)
	}

	if s.Room != "" || s.Timer != "" {
		fmt.Fprintf(&b, "\nroom %s timer %s", s.Room, s.Timer)
	}

	if s.NeedsReload {
		b.WriteString("\nscript has changed")
	}

	return b.String()
}

// publish the summary to the Observer. summaries that are not final are only
// published if enough time has passed since the previous publication
func (e *Engine) publish(final bool) {
	now := e.now()
	if !final && !e.curr.FrameStep {
		interval := time.Duration(e.prefs.SummaryInterval.Get().(int)) * time.Millisecond
		if now.Sub(e.lastPublish) < interval {
			return
		}
	}

	e.summary = e.buildSummary()
	e.lastPublish = now

	if e.observer != nil {
		e.observer.Publish(e.summary)
	}
}
