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

package synccheck

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/hotkeys"
	"github.com/jetsetilly/gophertas/logger"
	"github.com/jetsetilly/gophertas/playback"
	"github.com/jetsetilly/gophertas/script"
)

// Source is the part of the script controller used to describe a run.
// Implemented by script.Controller.
type Source interface {
	Identity() string
	Checksum(upTo int) string
	Len() int
	Frame() int
}

// StatusFromReason converts the reason playback was stopped to the status of
// a run.
func StatusFromReason(reason playback.Reason) Status {
	switch reason {
	case playback.ReasonFinished:
		return StatusSuccess
	case playback.ReasonUnsafe:
		return StatusUnsafe
	case playback.ReasonHostHalted:
		return StatusHalted
	case playback.ReasonParseFailed, playback.ReasonEmptyScript:
		return StatusParseFailed
	}
	return StatusNotFinished
}

// Attach the journal to the engine. A run is started whenever playback is
// enabled and finished whenever playback is disabled.
func Attach(j *Journal, e *playback.Engine, src Source) {
	var run uuid.UUID

	e.OnEnable(100, "synccheck", func() {
		id, err := j.Begin(src.Identity(), src.Checksum(src.Len()))
		if err != nil {
			logger.Log(logger.Allow, "synccheck", err)
			return
		}
		run = id
	})

	e.OnDisable(100, "synccheck", func(reason playback.Reason) {
		if run == uuid.Nil {
			return
		}
		err := j.Finish(run, src.Frame(), src.Len(), reason.String(), StatusFromReason(reason))
		if err != nil {
			logger.Log(logger.Allow, "synccheck", err)
		}
		run = uuid.Nil
	})
}

// Result of checking a single script.
type Result struct {
	Script string
	Status Status
	Frame  int
	Total  int
	Reason playback.Reason
}

func (r Result) String() string {
	if r.Status == StatusSuccess {
		return fmt.Sprintf("%s: %s (%d frames)", r.Script, r.Status, r.Total)
	}
	return fmt.Sprintf("%s: %s at frame %d of %d", r.Script, r.Status, r.Frame, r.Total)
}

// Report of a sync check.
type Report []Result

// OK returns true if every script in the report played to the end.
func (r Report) OK() bool {
	for _, res := range r {
		if res.Status != StatusSuccess {
			return false
		}
	}
	return true
}

// Write the report to the io.Writer.
func (r Report) Write(w io.Writer) error {
	for _, res := range r {
		if _, err := fmt.Fprintln(w, res); err != nil {
			return err
		}
	}
	return nil
}

// the speed at which scripts are checked
const checkSpeed = 10000.0

// Check each script by playing it on a new host. The journal may be nil.
//
// Playback is never paused. Breakpoints in the script are ignored.
func Check(ctx context.Context, paths []string, newHost func() (playback.Host, error), j *Journal) (Report, error) {
	var report Report

	for _, pth := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res, err := checkScript(ctx, pth, newHost, j)
		if err != nil {
			return report, err
		}
		logger.Log(logger.Allow, "synccheck", res)
		report = append(report, res)
	}

	return report, nil
}

func checkScript(ctx context.Context, pth string, newHost func() (playback.Host, error), j *Journal) (Result, error) {
	src, err := script.NewController(pth)
	if err != nil {
		return Result{}, err
	}

	host, err := newHost()
	if err != nil {
		return Result{}, err
	}

	prefs, err := playback.NewPreferences(nil)
	if err != nil {
		return Result{}, err
	}
	err = prefs.FastForwardSpeed.Set(checkSpeed)
	if err != nil {
		return Result{}, err
	}
	err = prefs.FastForwardThreshold.Set(checkSpeed)
	if err != nil {
		return Result{}, err
	}

	keys := &hotkeys.Manual{}
	keys.Press(hotkeys.FastForward)

	e := playback.NewEngine(host, src,
		playback.WithPreferences(prefs),
		playback.WithHotkeys(hotkeys.NewSet(), keys),
	)
	if j != nil {
		Attach(j, e, src)
	}

	res := Result{Script: src.Identity()}

	e.OnDisable(0, "report", func(_ playback.Reason) {
		res.Frame = src.Frame()
		res.Total = src.Len()
	})

	err = e.Enable()
	if err != nil && !curated.Is(err, playback.HostLoading) {
		res.Reason = e.LastReason()
		res.Status = StatusFromReason(res.Reason)
		res.Total = src.Len()
		if j != nil {
			id, err := j.Begin(src.Identity(), "")
			if err == nil {
				err = j.Finish(id, 0, src.Len(), res.Reason.String(), res.Status)
			}
			if err != nil {
				return res, err
			}
		}
		return res, nil
	}

	for e.Running() || e.NextState().Enabled {
		if ctx.Err() != nil {
			e.Disable(playback.ReasonRequested)
			break
		}

		e.Tick()

		// breakpoints are ignored
		if s := e.NextState(); s.Enabled && s.FrameStep {
			e.TogglePause()
		}
	}

	res.Reason = e.LastReason()
	res.Status = StatusFromReason(res.Reason)

	return res, nil
}
