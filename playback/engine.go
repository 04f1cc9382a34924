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
	"time"

	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/hotkeys"
	"github.com/jetsetilly/gophertas/logger"
	"github.com/jetsetilly/gophertas/notifications"
	"github.com/jetsetilly/gophertas/savestate"
)

// Sentinel error patterns returned by Enable().
const (
	HostLoading = "playback: host is loading"
	EmptyScript = "playback: script has no input"
	ParseFailed = "playback: %v"
)

// Engine is the playback engine. It should be created with NewEngine().
type Engine struct {
	host      Host
	src       InputSource
	inspector Inspector
	planner   TickPlanner

	hotkeys    *hotkeys.Set
	hotkeySrc  hotkeys.Source
	savestates *savestate.Coordinator
	observer   Observer
	notify     notifications.Notify
	prefs      *Preferences
	now        func() time.Time

	// current and next playback state. see the package documentation
	curr State
	next State

	// the reason given to Disable() while frames were being advanced
	pendingReason Reason

	// the reason playback was last disabled
	lastReason Reason

	// true while the engine is advancing frames
	advancing bool

	// speed of playback for the current tick
	frameLoops float64

	// fractional frames carried over from previous ticks
	accumulator float64

	// number of ticks since playback was enabled. used by the legacy cadence
	ticks int

	queue queue

	onEnable  []enableEntry
	onDisable []disableEntry

	summary     Summary
	lastPublish time.Time
}

// Option is used to configure the Engine.
type Option func(*Engine)

// WithHotkeys sets the hotkeys used by the engine. The Source is polled once
// per tick and may be nil.
func WithHotkeys(set *hotkeys.Set, src hotkeys.Source) Option {
	return func(e *Engine) {
		e.hotkeys = set
		e.hotkeySrc = src
	}
}

// WithSavestates sets the savestate coordinator.
func WithSavestates(c *savestate.Coordinator) Option {
	return func(e *Engine) {
		e.savestates = c
	}
}

// WithObserver sets the receiver of the tick summary.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// WithNotify sets the receiver of notifications.
func WithNotify(n notifications.Notify) Option {
	return func(e *Engine) {
		e.notify = n
	}
}

// WithPreferences sets the preferences used by the engine.
func WithPreferences(p *Preferences) Option {
	return func(e *Engine) {
		e.prefs = p
	}
}

// WithClock replaces the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine is the preferred method of initialisation for the Engine type. If
// the host also implements the Inspector or TickPlanner interfaces then they
// will be used.
func NewEngine(host Host, src InputSource, opts ...Option) *Engine {
	e := &Engine{
		host:       host,
		src:        src,
		notify:     notifications.Discard{},
		now:        time.Now,
		frameLoops: 1,
	}

	if i, ok := host.(Inspector); ok {
		e.inspector = i
	}
	if p, ok := host.(TickPlanner); ok {
		e.planner = p
	}

	for _, o := range opts {
		o(e)
	}

	if e.hotkeys == nil {
		e.hotkeys = hotkeys.NewSet()
	}
	if e.prefs == nil {
		e.prefs, _ = NewPreferences(nil)
	}

	e.summary = e.buildSummary()

	return e
}

func (e *Engine) String() string {
	return fmt.Sprintf("playback: %s", e.curr)
}

// AllowLogging implements the logger.Permission interface. Logging is not
// allowed while playback is running at or above the fast-forward threshold.
func (e *Engine) AllowLogging() bool {
	return e.frameLoops < e.prefs.FastForwardThreshold.Get().(float64)
}

// Running returns true if playback is enabled.
func (e *Engine) Running() bool {
	return e.curr.Enabled
}

// State returns the current playback state.
func (e *Engine) State() State {
	return e.curr
}

// NextState returns the buffered playback state.
func (e *Engine) NextState() State {
	return e.next
}

// FrameLoops returns the playback speed for the most recent tick.
func (e *Engine) FrameLoops() float64 {
	return e.frameLoops
}

// LastReason returns the reason playback was last disabled.
func (e *Engine) LastReason() Reason {
	return e.lastReason
}

// Hotkeys returns the hotkey set used by the engine.
func (e *Engine) Hotkeys() *hotkeys.Set {
	return e.hotkeys
}

// Source returns the InputSource used by the engine.
func (e *Engine) Source() InputSource {
	return e.src
}

func (e *Engine) notice(n notifications.Notice, detail string) {
	if err := e.notify.Notify(n, detail); err != nil {
		logger.Log(logger.Allow, "playback", err)
	}
}

// Enable playback. The script is reloaded and playback starts from the
// beginning of the script, or from the savestate if there is one.
//
// Playback can not be enabled while the host is loading. In that case the
// enable is retried on every tick until the host has finished loading or
// until Disable() is called.
func (e *Engine) Enable() error {
	if e.curr.Enabled {
		return nil
	}

	if e.host.IsWorldLoading() {
		e.next.Enabled = true
		return curated.Errorf(HostLoading)
	}

	e.curr = State{}
	e.next = State{}
	e.src.Stop()

	if err := e.src.Refresh(true); err != nil {
		e.lastReason = ReasonParseFailed
		return curated.Errorf(ParseFailed, err)
	}

	if e.src.Len() == 0 {
		e.lastReason = ReasonEmptyScript
		logger.Logf(logger.Allow, "playback", "%s: %s", e.src.Identity(), ReasonEmptyScript)
		return curated.Errorf(EmptyScript)
	}

	e.curr.Enabled = true
	e.next.Enabled = true
	e.lastReason = ReasonNone
	e.accumulator = 0
	e.ticks = 0

	for _, c := range e.onEnable {
		c.f()
	}

	logger.Logf(logger.Allow, "playback", "started %s", e.src.Identity())
	e.notice(notifications.NotifyPlaybackStarted, e.src.Identity())

	if e.savestates != nil {
		e.savestateOutcome(e.savestates.Load())
	}

	return nil
}

// Disable playback. If frames are being advanced when Disable() is called
// then the disable is applied at the start of the next tick.
func (e *Engine) Disable(reason Reason) {
	if !e.curr.Enabled {
		// cancel a pending enable
		e.next = State{}
		return
	}

	if e.advancing {
		e.next.Disabling = true
		e.pendingReason = reason
		return
	}

	for _, c := range e.onDisable {
		c.f(reason)
	}

	e.curr = State{}
	e.next = State{}
	e.pendingReason = ReasonNone
	e.lastReason = reason
	e.accumulator = 0
	e.src.Stop()

	logger.Logf(logger.Allow, "playback", "stopped %s: %s", e.src.Identity(), reason)
	e.notice(notifications.NotifyPlaybackStopped, reason.String())
}

// Restart playback from the beginning of the script. The savestate, if there
// is one, is loaded as normal.
func (e *Engine) Restart() error {
	e.Disable(ReasonRestart)
	return e.Enable()
}

// ToggleStartStop enables playback if it is disabled and disables it
// otherwise. A pending enable is cancelled.
func (e *Engine) ToggleStartStop() error {
	if e.curr.Enabled || e.next.Enabled {
		e.Disable(ReasonRequested)
		return nil
	}
	return e.Enable()
}

// FrameAdvance enters frame step if playback is running continuously. If
// frame step is already in effect then exactly one frame will be played on
// the current tick before frame step resumes.
func (e *Engine) FrameAdvance() {
	if !e.curr.Enabled {
		return
	}

	if !e.curr.FrameStep {
		if !e.next.FrameStep {
			e.enterFrameStep()
		}
		return
	}

	if !e.src.CanPlayback() {
		_ = e.src.Refresh(false)
	}

	// stepping past the end of the script is allowed because it is the
	// exhaustion of the script that disables playback
	e.curr.FrameStep = false
	e.next.FrameStep = true
}

// TogglePause enters or leaves frame step.
func (e *Engine) TogglePause() {
	if !e.curr.Enabled {
		return
	}

	if e.curr.FrameStep || e.next.FrameStep {
		e.curr.FrameStep = false
		e.next.FrameStep = false
		return
	}

	e.enterFrameStep()
}

func (e *Engine) enterFrameStep() {
	e.curr.FrameStep = true
	e.next.FrameStep = true
	e.notice(notifications.NotifyFrameStepEntered, "")
}

// Tick should be called once per host tick.
func (e *Engine) Tick() {
	e.commit()
	e.queue.drain()

	if e.next.Disabling {
		e.Disable(e.pendingReason)
	}

	e.hotkeys.Poll(e.hotkeySrc, e.now())

	if e.savestates != nil {
		e.savestateHousekeeping()
	}

	e.frameLoops = e.calcFrameLoops()

	e.retryEnable()
	e.transitions()
	e.advance()

	e.publish(true)
}

// commit the buffered frame step
func (e *Engine) commit() {
	if e.curr.Enabled {
		e.curr.FrameStep = e.next.FrameStep
	}
}

func (e *Engine) retryEnable() {
	if e.next.Enabled && !e.curr.Enabled && !e.host.IsWorldLoading() {
		if err := e.Enable(); err != nil {
			logger.Log(logger.Allow, "playback", err)
		}
	}
}

func (e *Engine) transitions() {
	hk := e.hotkeys

	if hk.Get(hotkeys.StartStop).Pressed() {
		if err := e.ToggleStartStop(); err != nil && !curated.Is(err, HostLoading) {
			logger.Log(logger.Allow, "playback", err)
		}
		return
	}

	if hk.Get(hotkeys.Restart).Pressed() {
		if err := e.Restart(); err != nil && !curated.Is(err, HostLoading) {
			logger.Log(logger.Allow, "playback", err)
		}
		return
	}

	if !e.curr.Enabled {
		return
	}

	if hk.Get(hotkeys.FastForwardComment).Pressed() {
		e.src.FastForwardToNextLabel()
		e.curr.FrameStep = false
		e.next.FrameStep = false
		return
	}

	if hk.Get(hotkeys.PauseResume).Pressed() {
		e.TogglePause()
		return
	}

	if e.curr.FrameStep {
		if hk.Get(hotkeys.FrameAdvance).Repeated() || hk.Get(hotkeys.FastForward).Check() {
			e.FrameAdvance()
		}
		return
	}

	if hk.Get(hotkeys.FrameAdvance).Pressed() {
		e.FrameAdvance()
	}
}

func (e *Engine) savestateHousekeeping() {
	hk := e.hotkeys
	o := e.savestates.UpdateMeta(e.curr.Enabled, hk.Get(hotkeys.SaveState).Pressed(), hk.Get(hotkeys.ClearState).Pressed())
	e.savestateOutcome(o)
	if o == savestate.OutcomeCleared {
		e.Disable(ReasonClearedState)
	}

	if e.curr.Enabled && !e.host.IsWorldLoading() {
		e.savestateOutcome(e.savestates.Update(true))
	}
}

func (e *Engine) savestateOutcome(o savestate.Outcome) {
	switch o {
	case savestate.OutcomeSaved:
		e.notice(notifications.NotifySavestateSaved, fmt.Sprintf("%d", e.src.Frame()))
		e.afterSavestate()
	case savestate.OutcomeLoaded:
		e.notice(notifications.NotifySavestateLoaded, fmt.Sprintf("%d", e.src.Frame()))
		e.afterSavestate()
	case savestate.OutcomeAlreadySaved:
		e.curr.FrameStep = false
		e.next.FrameStep = false
	case savestate.OutcomeInvalidated:
		e.notice(notifications.NotifySavestateInvalidated, "")
	case savestate.OutcomeCleared:
		e.notice(notifications.NotifySavestateCleared, "")
	}
}

// playback continues after a savestate only if there is a fast-forward ahead
func (e *Engine) afterSavestate() {
	if !e.curr.Enabled {
		return
	}
	step := !e.src.HasFastForward()
	e.curr.FrameStep = step
	e.next.FrameStep = step
}

// advance the number of frames required for the tick
func (e *Engine) advance() {
	if !e.curr.Enabled || e.curr.FrameStep || e.host.IsWorldLoading() {
		return
	}

	n := e.subFrames()
	if n == 0 {
		return
	}

	if e.planner != nil {
		e.planner.PlanTick(TickPlan{
			SubFrames:       n,
			RenderFinalOnly: e.frameLoops >= e.prefs.FastForwardThreshold.Get().(float64),
		})
	}

	e.advancing = true
	stop := ReasonNone
	for i := 0; i < n; i++ {
		// a breakpoint or a single frame advance stops the loop
		if i > 0 && e.next.FrameStep {
			break
		}

		stop = e.subFrame()
		if stop != ReasonNone {
			break
		}

		if i < n-1 {
			e.publish(false)
		}
	}
	e.advancing = false

	if stop != ReasonNone {
		e.Disable(stop)
	}
}

// play a single frame. returns ReasonNone if playback can continue
func (e *Engine) subFrame() Reason {
	frame, ok := e.src.Advance()
	if !ok {
		if e.src.Err() != nil {
			return ReasonParseFailed
		}
		return ReasonFinished
	}

	if !e.host.AdvanceOneFrame(frame) {
		return ReasonHostHalted
	}

	if e.src.CanPlayback() {
		if e.inspector != nil && !e.src.AllowUnsafe() && e.src.Frame() > 1 && e.inspector.SceneUnsafe() {
			e.notice(notifications.NotifyUnsafeInput, "")
			return ReasonUnsafe
		}

		if e.src.Break() {
			e.next.FrameStep = true
			e.src.ClearNextLabel()
			e.notice(notifications.NotifyBreakpointReached, fmt.Sprintf("%d", e.src.Frame()))
		}
	}

	if e.inspector != nil {
		room := e.inspector.Room()
		for _, l := range e.src.RoomLabelsAt(e.src.Frame() - 1) {
			if l.Expected() != room {
				logger.Logf(e, "playback", "room label mismatch at line %d: expected %s got %s", l.Line+1, l.Expected(), room)
				e.notice(notifications.NotifyRoomLabelMismatch, fmt.Sprintf("%s != %s", l.Expected(), room))
			}
		}
	}

	return ReasonNone
}
