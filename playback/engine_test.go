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

package playback_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/hotkeys"
	"github.com/jetsetilly/gophertas/notifications"
	"github.com/jetsetilly/gophertas/playback"
	"github.com/jetsetilly/gophertas/savestate"
	"github.com/jetsetilly/gophertas/script"
	"github.com/jetsetilly/gophertas/test"
)

type mockHost struct {
	frames  []script.InputFrame
	loading bool
	halt    bool
	unsafe  bool
	room    string
	plans   []playback.TickPlan

	// called after every frame with the number of frames played
	onFrame func(int)
}

func (h *mockHost) AdvanceOneFrame(f script.InputFrame) bool {
	if h.halt {
		return false
	}
	h.frames = append(h.frames, f)
	if h.onFrame != nil {
		h.onFrame(len(h.frames))
	}
	return true
}

func (h *mockHost) IsWorldLoading() bool {
	return h.loading
}

func (h *mockHost) SceneUnsafe() bool {
	return h.unsafe
}

func (h *mockHost) Room() string {
	return h.room
}

func (h *mockHost) Timer() string {
	return "0.000"
}

func (h *mockHost) PlanTick(p playback.TickPlan) {
	h.plans = append(h.plans, p)
}

func (h *mockHost) CaptureSnapshot() (savestate.Handle, error) {
	return len(h.frames), nil
}

func (h *mockHost) RestoreSnapshot(s savestate.Handle) error {
	h.frames = h.frames[:s.(int)]
	return nil
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

type notices struct {
	list []notifications.Notice
}

func (n *notices) Notify(notice notifications.Notice, _ string) error {
	n.list = append(n.list, notice)
	return nil
}

func (n *notices) count(notice notifications.Notice) int {
	var c int
	for _, l := range n.list {
		if l == notice {
			c++
		}
	}
	return c
}

type observer struct {
	published int
}

func (o *observer) Publish(_ playback.Summary) {
	o.published++
}

type fixture struct {
	e     *playback.Engine
	host  *mockHost
	keys  *hotkeys.Manual
	src   *script.Controller
	clk   *clock
	prefs *playback.Preferences
	notes *notices
	pth   string
}

func writeScript(t *testing.T, pth string, lines ...string) {
	t.Helper()
	err := os.WriteFile(pth, []byte(strings.Join(lines, "\n")+"\n"), 0o600)
	test.DemandSuccess(t, err)
}

func setup(t *testing.T, withSavestates bool, lines ...string) *fixture {
	t.Helper()

	f := &fixture{
		host:  &mockHost{room: "lvl_1"},
		keys:  &hotkeys.Manual{},
		clk:   &clock{t: time.Unix(0, 0)},
		notes: &notices{},
		pth:   filepath.Join(t.TempDir(), "test.tas"),
	}
	writeScript(t, f.pth, lines...)

	var err error
	f.src, err = script.NewController(f.pth)
	test.DemandSuccess(t, err)

	f.prefs, err = playback.NewPreferences(nil)
	test.DemandSuccess(t, err)

	opts := []playback.Option{
		playback.WithHotkeys(hotkeys.NewSet(), f.keys),
		playback.WithClock(f.clk.now),
		playback.WithNotify(f.notes),
		playback.WithPreferences(f.prefs),
	}
	if withSavestates {
		opts = append(opts, playback.WithSavestates(savestate.NewCoordinator(f.host, f.src, nil)))
	}

	f.e = playback.NewEngine(f.host, f.src, opts...)

	return f
}

// press the hotkey for a single tick. the release is seen by the next tick so
// a hotkey can not be pressed on two consecutive ticks
func (f *fixture) press(id hotkeys.ID) {
	f.keys.Press(id)
	f.e.Tick()
	f.keys.Release(id)
}

func TestToggleStartStop(t *testing.T) {
	f := setup(t, false, "10,R")

	test.ExpectSuccess(t, f.e.ToggleStartStop())
	test.ExpectSuccess(t, f.e.Running())
	test.ExpectEquality(t, f.e.State(), playback.State{Enabled: true})

	test.ExpectSuccess(t, f.e.ToggleStartStop())
	test.ExpectFailure(t, f.e.Running())
	test.ExpectEquality(t, f.e.LastReason(), playback.ReasonRequested)
	test.ExpectEquality(t, f.e.State(), playback.State{})

	// hotkey
	f.press(hotkeys.StartStop)
	test.ExpectSuccess(t, f.e.Running())
	test.ExpectEquality(t, len(f.host.frames), 1)
	f.e.Tick()
	f.press(hotkeys.StartStop)
	test.ExpectFailure(t, f.e.Running())
	test.ExpectEquality(t, len(f.host.frames), 2)
	test.ExpectEquality(t, f.src.Frame(), 0)

	test.ExpectEquality(t, f.notes.count(notifications.NotifyPlaybackStarted), 2)
	test.ExpectEquality(t, f.notes.count(notifications.NotifyPlaybackStopped), 2)
}

func TestEmptyScript(t *testing.T) {
	f := setup(t, false, "#nothing to see here")
	err := f.e.Enable()
	test.ExpectSuccess(t, curated.Is(err, playback.EmptyScript))
	test.ExpectFailure(t, f.e.Running())
	test.ExpectEquality(t, f.e.LastReason(), playback.ReasonEmptyScript)
}

func TestParseFailure(t *testing.T) {
	f := setup(t, false, "10,R", "bad line")
	err := f.e.Enable()
	test.ExpectSuccess(t, curated.Has(err, playback.ParseFailed))
	test.ExpectFailure(t, f.e.Running())
	test.ExpectEquality(t, f.e.LastReason(), playback.ReasonParseFailed)
}

func TestEnableWhileLoading(t *testing.T) {
	f := setup(t, false, "10,R")

	f.host.loading = true
	err := f.e.Enable()
	test.ExpectSuccess(t, curated.Is(err, playback.HostLoading))
	test.ExpectFailure(t, f.e.Running())
	test.ExpectSuccess(t, f.e.NextState().Enabled)

	f.e.Tick()
	test.ExpectFailure(t, f.e.Running())

	f.host.loading = false
	f.e.Tick()
	test.ExpectSuccess(t, f.e.Running())
	test.ExpectEquality(t, len(f.host.frames), 1)

	// a pending enable can be cancelled
	f.e.Disable(playback.ReasonRequested)
	f.host.loading = true
	_ = f.e.Enable()
	f.e.Disable(playback.ReasonRequested)
	f.host.loading = false
	f.e.Tick()
	test.ExpectFailure(t, f.e.Running())
}

func TestExhaustion(t *testing.T) {
	f := setup(t, false, "10,R")
	test.DemandSuccess(t, f.prefs.FastForwardSpeed.Set(4.0))
	test.DemandSuccess(t, f.e.Enable())

	f.keys.Press(hotkeys.FastForward)

	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 4)
	test.ExpectApproximate(t, f.e.FrameLoops(), 4.0, 0.0001)
	test.ExpectSuccess(t, f.e.Running())

	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 8)
	test.ExpectSuccess(t, f.e.Running())

	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 10)
	test.ExpectFailure(t, f.e.Running())
	test.ExpectFailure(t, f.e.Summary().Running)
	test.ExpectEquality(t, f.e.LastReason(), playback.ReasonFinished)
}

func TestFrameAdvance(t *testing.T) {
	f := setup(t, false, "10,R")
	test.DemandSuccess(t, f.e.Enable())

	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 1)

	// entering frame step does not play a frame
	f.press(hotkeys.FrameAdvance)
	test.ExpectEquality(t, len(f.host.frames), 1)
	test.ExpectSuccess(t, f.e.State().FrameStep)
	test.ExpectEquality(t, f.notes.count(notifications.NotifyFrameStepEntered), 1)

	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 1)

	// a single frame and then back to frame step
	f.press(hotkeys.FrameAdvance)
	test.ExpectEquality(t, len(f.host.frames), 2)
	test.ExpectFailure(t, f.e.State().FrameStep)
	test.ExpectSuccess(t, f.e.NextState().FrameStep)

	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 2)
	test.ExpectSuccess(t, f.e.State().FrameStep)

	// holding frame advance repeats after the timeout
	f.keys.Press(hotkeys.FrameAdvance)
	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 3)
	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 3)
	f.clk.t = f.clk.t.Add(hotkeys.RepeatTimeout)
	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 4)
	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 5)
	f.keys.Release(hotkeys.FrameAdvance)
	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 5)

	// holding fast forward while frame stepping plays a frame every tick
	f.keys.Press(hotkeys.FastForward)
	f.e.Tick()
	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 7)
	f.keys.Release(hotkeys.FastForward)
}

func TestPauseResume(t *testing.T) {
	f := setup(t, false, "10,R")
	test.DemandSuccess(t, f.e.Enable())

	f.press(hotkeys.PauseResume)
	test.ExpectSuccess(t, f.e.State().FrameStep)
	test.ExpectEquality(t, len(f.host.frames), 0)

	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 0)

	f.press(hotkeys.PauseResume)
	test.ExpectFailure(t, f.e.State().FrameStep)
	test.ExpectEquality(t, len(f.host.frames), 1)

	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 2)
}

func TestPushFunction(t *testing.T) {
	f := setup(t, false, "10,R")

	var order []int
	done := make(chan bool)
	go func() {
		f.e.PushFunction(func() { order = append(order, 1) })
		f.e.PushFunction(func() { _ = f.e.Enable() })
		f.e.PushFunction(func() { order = append(order, 2) })
		done <- true
	}()
	<-done

	test.ExpectFailure(t, f.e.Running())

	f.e.Tick()
	test.ExpectSuccess(t, f.e.Running())
	test.ExpectEquality(t, len(order), 2)
	test.ExpectEquality(t, order[0], 1)
	test.ExpectEquality(t, order[1], 2)

	// the enable was applied before frames were advanced
	test.ExpectEquality(t, len(f.host.frames), 1)
}

func TestDisableDuringAdvance(t *testing.T) {
	f := setup(t, false, "10,R")
	test.DemandSuccess(t, f.prefs.FastForwardSpeed.Set(4))
	test.DemandSuccess(t, f.e.Enable())

	f.host.onFrame = func(n int) {
		if n == 2 {
			f.e.Disable(playback.ReasonRequested)
		}
	}

	f.keys.Press(hotkeys.FastForward)
	f.e.Tick()

	// the tick is not interrupted
	test.ExpectEquality(t, len(f.host.frames), 4)
	test.ExpectSuccess(t, f.e.Running())
	test.ExpectSuccess(t, f.e.NextState().Disabling)

	f.e.Tick()
	test.ExpectFailure(t, f.e.Running())
	test.ExpectEquality(t, f.e.LastReason(), playback.ReasonRequested)
	test.ExpectEquality(t, len(f.host.frames), 4)
}

func TestHostHalted(t *testing.T) {
	f := setup(t, false, "10,R")
	test.DemandSuccess(t, f.e.Enable())
	f.host.halt = true
	f.e.Tick()
	test.ExpectFailure(t, f.e.Running())
	test.ExpectEquality(t, f.e.LastReason(), playback.ReasonHostHalted)
}

func TestUnsafe(t *testing.T) {
	f := setup(t, false, "10,R")
	test.DemandSuccess(t, f.e.Enable())
	f.host.unsafe = true

	// the first frame is always allowed
	f.e.Tick()
	test.ExpectSuccess(t, f.e.Running())

	f.e.Tick()
	test.ExpectFailure(t, f.e.Running())
	test.ExpectEquality(t, f.e.LastReason(), playback.ReasonUnsafe)
	test.ExpectEquality(t, f.notes.count(notifications.NotifyUnsafeInput), 1)

	f = setup(t, false, "Unsafe", "10,R")
	test.DemandSuccess(t, f.e.Enable())
	f.host.unsafe = true
	for range 3 {
		f.e.Tick()
	}
	test.ExpectSuccess(t, f.e.Running())
	test.ExpectEquality(t, len(f.host.frames), 3)
}

func TestBreakpoint(t *testing.T) {
	f := setup(t, false, "5,R", "***", "5,J")
	test.DemandSuccess(t, f.e.Enable())

	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 5)
	test.ExpectApproximate(t, f.e.FrameLoops(), script.DefaultSpeed, 0.0001)
	test.ExpectEquality(t, f.notes.count(notifications.NotifyBreakpointReached), 1)
	test.DemandEquality(t, len(f.host.plans), 1)
	test.ExpectEquality(t, f.host.plans[0].SubFrames, int(script.DefaultSpeed))
	test.ExpectSuccess(t, f.host.plans[0].RenderFinalOnly)
	test.ExpectFailure(t, f.e.AllowLogging())

	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 5)
	test.ExpectSuccess(t, f.e.State().FrameStep)
	test.ExpectSuccess(t, f.e.AllowLogging())

	f.press(hotkeys.FrameAdvance)
	test.ExpectEquality(t, len(f.host.frames), 6)
	test.ExpectEquality(t, f.host.frames[5].Actions, script.ActionJump)
}

func TestFastForwardComment(t *testing.T) {
	f := setup(t, false, "5,R", "#label", "5,J", "#second", "5,L")
	test.DemandSuccess(t, f.e.Enable())

	f.press(hotkeys.FastForwardComment)
	test.ExpectEquality(t, len(f.host.frames), 1)

	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 5)

	f.e.Tick()
	test.ExpectSuccess(t, f.e.State().FrameStep)
	test.ExpectEquality(t, len(f.host.frames), 5)

	// leaves frame step
	f.press(hotkeys.FastForwardComment)
	test.ExpectFailure(t, f.e.State().FrameStep)
	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 10)
}

func TestCadence(t *testing.T) {
	ticks := func(f *fixture, n int) int {
		start := len(f.host.frames)
		for range n {
			f.e.Tick()
		}
		return len(f.host.frames) - start
	}

	for _, legacy := range []bool{false, true} {
		f := setup(t, false, "100,R")
		test.DemandSuccess(t, f.prefs.LegacyCadence.Set(legacy))
		test.DemandSuccess(t, f.prefs.SlowForwardSpeed.Set(0.1))
		test.DemandSuccess(t, f.e.Enable())
		f.keys.Press(hotkeys.SlowForward)

		test.ExpectEquality(t, ticks(f, 9), 0, legacy)
		test.ExpectEquality(t, ticks(f, 1), 1, legacy)
		test.ExpectEquality(t, ticks(f, 20), 2, legacy)
	}

	// the cadences differ when the speed changes between ticks
	frames := make(map[bool]int)
	for _, legacy := range []bool{false, true} {
		f := setup(t, false, "100,R")
		test.DemandSuccess(t, f.prefs.LegacyCadence.Set(legacy))
		test.DemandSuccess(t, f.prefs.SlowForwardSpeed.Set(0.4))
		test.DemandSuccess(t, f.e.Enable())
		f.keys.Press(hotkeys.SlowForward)
		ticks(f, 2)
		test.DemandSuccess(t, f.prefs.SlowForwardSpeed.Set(0.25))
		frames[legacy] = ticks(f, 1)
	}
	test.ExpectEquality(t, frames[false], 1)
	test.ExpectEquality(t, frames[true], 0)
}

func TestMinimumSpeed(t *testing.T) {
	f := setup(t, false, "10,R")
	test.DemandSuccess(t, f.prefs.SlowForwardSpeed.Set(0.0))
	test.DemandSuccess(t, f.e.Enable())
	f.keys.Press(hotkeys.SlowForward)
	f.e.Tick()
	test.ExpectApproximate(t, f.e.FrameLoops(), 0.01, 0.0001)

	f.keys.Release(hotkeys.SlowForward)
	f.keys.SetAxis(0.5)
	f.e.Tick()
	test.ExpectApproximate(t, f.e.FrameLoops(), 5.0, 0.0001)

	f.keys.SetAxis(-0.5)
	test.DemandSuccess(t, f.prefs.SlowForwardSpeed.Set(0.1))
	f.e.Tick()
	test.ExpectApproximate(t, f.e.FrameLoops(), 0.05, 0.0001)

	f.keys.SetAxis(0.0)
	f.e.Tick()
	test.ExpectApproximate(t, f.e.FrameLoops(), 1.0, 0.0001)
}

func TestRoomLabels(t *testing.T) {
	f := setup(t, false, "#lvl_1", "5,R", "#lvl_2", "5,R")
	test.DemandSuccess(t, f.e.Enable())
	f.keys.Press(hotkeys.FastForward)
	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 10)
	test.ExpectEquality(t, f.notes.count(notifications.NotifyRoomLabelMismatch), 1)
}

func TestCallbacks(t *testing.T) {
	f := setup(t, false, "10,R")

	var order []string
	var reason playback.Reason
	f.e.OnEnable(10, "b", func() { order = append(order, "b") })
	f.e.OnEnable(0, "a", func() { order = append(order, "a") })
	f.e.OnEnable(10, "c", func() { order = append(order, "c") })
	f.e.OnDisable(0, "d", func(r playback.Reason) { reason = r })

	enable, disable := f.e.Callbacks()
	test.ExpectEquality(t, strings.Join(enable, ""), "abc")
	test.ExpectEquality(t, strings.Join(disable, ""), "d")

	test.DemandSuccess(t, f.e.Enable())
	test.ExpectEquality(t, strings.Join(order, ""), "abc")

	f.e.Disable(playback.ReasonRequested)
	test.ExpectEquality(t, reason, playback.ReasonRequested)
}

func TestSummary(t *testing.T) {
	f := setup(t, false, "5,R", "5,J")
	obs := &observer{}
	f.e = playback.NewEngine(f.host, f.src, playback.WithObserver(obs), playback.WithClock(f.clk.now))

	test.DemandSuccess(t, f.e.Enable())
	for range 7 {
		f.e.Tick()
	}
	test.ExpectEquality(t, obs.published, 7)

	s := f.e.Summary()
	test.ExpectEquality(t, s.CurrentLine, 1)
	test.ExpectEquality(t, s.CurrentLineSuffix, "2")
	test.ExpectEquality(t, s.CurrentFrame, 7)
	test.ExpectEquality(t, s.TotalFrames, 10)
	test.ExpectEquality(t, s.SaveStateLine, -1)
	test.ExpectEquality(t, s.StateBits, playback.BitEnable)
	test.ExpectEquality(t, s.Room, "lvl_1")
	test.ExpectSuccess(t, strings.HasPrefix(s.Status, "Running x1.00"))
}

func TestSavestates(t *testing.T) {
	f := setup(t, true, "5,R", "***S", "5,J")
	test.DemandSuccess(t, f.e.Enable())

	// the breakpoint
	f.e.Tick()
	test.ExpectEquality(t, len(f.host.frames), 5)

	// savestate taken on the next tick
	f.e.Tick()
	test.ExpectEquality(t, f.notes.count(notifications.NotifySavestateSaved), 1)
	test.ExpectSuccess(t, f.e.State().FrameStep)
	test.ExpectEquality(t, f.e.Summary().SaveStateLine, 1)

	// restart loads the savestate
	test.DemandSuccess(t, f.e.Restart())
	test.ExpectEquality(t, f.notes.count(notifications.NotifySavestateLoaded), 1)
	test.ExpectEquality(t, f.src.Frame(), 5)
	test.ExpectSuccess(t, f.e.State().FrameStep)

	// changing the script before the savestate invalidates it
	writeScript(t, f.pth, "5,L", "***S", "5,J")
	test.DemandSuccess(t, f.e.Restart())
	test.ExpectEquality(t, f.notes.count(notifications.NotifySavestateInvalidated), 1)
	test.ExpectEquality(t, f.src.Frame(), 0)
	test.ExpectSuccess(t, f.e.Running())
	test.ExpectFailure(t, f.e.State().FrameStep)

	// clearing the savestate stops playback
	f.e.Tick()
	f.e.Tick()
	f.press(hotkeys.ClearState)
	test.ExpectFailure(t, f.e.Running())
	test.ExpectEquality(t, f.e.LastReason(), playback.ReasonClearedState)
	test.ExpectEquality(t, f.notes.count(notifications.NotifySavestateCleared), 1)
}
