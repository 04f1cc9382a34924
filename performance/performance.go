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

package performance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/hostsim"
	"github.com/jetsetilly/gophertas/hotkeys"
	"github.com/jetsetilly/gophertas/playback"
	"github.com/jetsetilly/gophertas/script"
)

// PerformanceError is the sentinel pattern for errors returned by Check().
const PerformanceError = "performance: %v"

// sentinal error returned by the runner when the duration has elapsed
var timedOut = errors.New("performance timed out")

// the speed at which the script is played during the check
const checkSpeed = 10000.0

// Check the performance of the playback engine using the script at the
// supplied path. The script is played on a simulated host, as quickly as
// possible and over and over, until the duration has elapsed or the context
// is cancelled.
//
// A cpu profile, memory profile or trace (or a combination of those) will be
// created as defined by the Profile argument.
func Check(ctx context.Context, output io.Writer, profile Profile, scriptPath string, duration time.Duration, tickRate int) error {
	if duration <= 0 {
		return curated.Errorf(PerformanceError, "duration must be greater than zero")
	}

	src, err := script.NewController(scriptPath)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	prefs, err := playback.NewPreferences(nil)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}
	err = prefs.FastForwardSpeed.Set(checkSpeed)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}
	err = prefs.FastForwardThreshold.Set(checkSpeed)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	keys := &hotkeys.Manual{}
	keys.Press(hotkeys.FastForward)

	host := hostsim.NewHost(0)
	e := playback.NewEngine(host, src,
		playback.WithPreferences(prefs),
		playback.WithHotkeys(hotkeys.NewSet(), keys),
	)

	var startFrame int
	var restarts int

	runner := func() error {
		ctx, cancel := context.WithTimeout(ctx, duration)
		defer cancel()

		startFrame = host.Frame()

		for {
			if ctx.Err() != nil {
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return timedOut
				}
				return ctx.Err()
			}

			if !e.Running() && !e.NextState().Enabled {
				err := e.Enable()
				if err != nil && !curated.Is(err, playback.HostLoading) {
					return err
				}
				restarts++
			}

			e.Tick()

			// breakpoints are ignored
			if s := e.NextState(); s.Enabled && s.FrameStep {
				e.TogglePause()
			}
		}
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return curated.Errorf(PerformanceError, err)
	}

	numFrames := host.Frame() - startFrame
	fps, accuracy := CalcFPS(numFrames, duration.Seconds(), tickRate)
	_, err = fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%% [%d plays]\n", fps, numFrames, duration.Seconds(), accuracy, restarts)
	return err
}
