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
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/digest"
	"github.com/jetsetilly/gophertas/logger"
)

// ParseFailed is returned by Refresh() when the script could not be parsed.
const ParseFailed = "script: parse failed: %v"

// FileWatcher is implemented by types that can watch the files used by a
// script. The Watcher type implements this interface.
type FileWatcher interface {
	Watch(files ...string) error
}

// Controller feeds the input frames of a script to the playback engine.
type Controller struct {
	path string
	data *parsed

	// sorted keys of the fastForwards and labels maps
	ffFrames    []int
	labelFrames []int

	// progress through script. frame is the index of the next input to be
	// played
	frame        int
	frameInInput int

	// target of fast-forward to next label
	nextLabel *FastForward

	// whether the unsafe input guard is disabled
	allowUnsafe bool

	// set when the script needs to be parsed before use. may be set from
	// any goroutine
	dirty atomic.Bool

	// most recent error from Refresh()
	err error

	watcher FileWatcher
}

// NewController is the preferred method of initialisation for the Controller
// type. The script is not parsed until the first call to Refresh().
func NewController(path string) (*Controller, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	c := &Controller{path: abs}
	c.Clear()
	return c, nil
}

// SetWatcher sets the file watcher. The files used by the script are passed to
// the watcher every time the script is parsed successfully.
func (c *Controller) SetWatcher(w FileWatcher) {
	c.watcher = w
}

// Identity returns the absolute path of the main script.
func (c *Controller) Identity() string {
	return c.path
}

// MarkDirty flags the script for parsing on the next call to Refresh(). It is
// safe to call from any goroutine.
func (c *Controller) MarkDirty() {
	c.dirty.Store(true)
}

// NeedsReload returns true if the script will be parsed on the next call to
// Refresh(). It is safe to call from any goroutine.
func (c *Controller) NeedsReload() bool {
	return c.dirty.Load()
}

// Err returns the error from the most recent parse. Returns nil if the parse
// was successful.
func (c *Controller) Err() error {
	return c.err
}

// Clear removes all input from the controller. The script will be parsed on
// the next call to Refresh().
func (c *Controller) Clear() {
	d := newParsed()
	c.data = &d
	c.ffFrames = c.ffFrames[:0]
	c.labelFrames = c.labelFrames[:0]
	c.frame = 0
	c.frameInInput = 0
	c.nextLabel = nil
	c.allowUnsafe = false
	c.dirty.Store(true)
}

// Refresh parses the script if it has been marked as needing a reload or if
// force is true. Progress through the script is kept but is limited to the
// number of inputs in the new script.
func (c *Controller) Refresh(force bool) error {
	if !force && !c.NeedsReload() {
		return nil
	}

	frame := c.frame
	frameInInput := c.frameInInput
	nextLabel := c.nextLabel
	allowUnsafe := c.allowUnsafe

	// clearing also marks the script as dirty so a failed parse will be
	// retried on the next refresh
	c.Clear()

	// the flag is cleared before parsing so that a change to the file while
	// parsing is not missed
	c.dirty.Store(false)

	d, err := parse(c.path)
	if err != nil {
		c.dirty.Store(true)
		c.err = curated.Errorf(ParseFailed, err)
		logger.Log(logger.Allow, "script", c.err)
		return c.err
	}
	c.err = nil
	c.data = d

	for f := range d.fastForwards {
		c.ffFrames = append(c.ffFrames, f)
	}
	slices.Sort(c.ffFrames)
	for f := range d.labels {
		c.labelFrames = append(c.labelFrames, f)
	}
	slices.Sort(c.labelFrames)

	c.frame = min(frame, len(d.inputs))
	c.frameInInput = frameInInput
	c.nextLabel = nextLabel
	c.allowUnsafe = allowUnsafe

	if c.watcher != nil {
		if err := c.watcher.Watch(d.files...); err != nil {
			logger.Log(logger.Allow, "script", err)
		}
	}

	return nil
}

// Stop resets progress through the script to the beginning.
func (c *Controller) Stop() {
	c.frame = 0
	c.frameInInput = 0
	c.nextLabel = nil
	c.allowUnsafe = false
}

// Len returns the number of frames of input in the script.
func (c *Controller) Len() int {
	return len(c.data.inputs)
}

// Frame returns the number of frames that have been played.
func (c *Controller) Frame() int {
	return c.frame
}

// FrameInInput returns the number of frames that have been played from the
// most recent action line.
func (c *Controller) FrameInInput() int {
	return c.frameInInput
}

// SetProgress sets the progress through the script. Used when a savestate is
// loaded.
func (c *Controller) SetProgress(frame int, frameInInput int) {
	c.frame = max(0, min(frame, len(c.data.inputs)))
	c.frameInInput = frameInInput
}

// CanPlayback returns true if there are inputs remaining.
func (c *Controller) CanPlayback() bool {
	return c.frame < len(c.data.inputs)
}

// Current returns the next input to be played.
func (c *Controller) Current() (InputFrame, bool) {
	if c.frame < 0 || c.frame >= len(c.data.inputs) {
		return InputFrame{}, false
	}
	return c.data.inputs[c.frame], true
}

// Previous returns the most recently played input.
func (c *Controller) Previous() (InputFrame, bool) {
	f := c.frame - 1
	if f < 0 || f >= len(c.data.inputs) {
		return InputFrame{}, false
	}
	return c.data.inputs[f], true
}

// AllowUnsafe returns true if the Unsafe command is in force.
func (c *Controller) AllowUnsafe() bool {
	return c.allowUnsafe
}

// Advance returns the next input to be played and moves the progress through
// the script forward by one frame. Commands attached to the frame are run
// before the input is returned.
//
// Returns false if there are no more inputs.
func (c *Controller) Advance() (InputFrame, bool) {
	// errors are logged by Refresh() and available with Err(). a failed
	// parse leaves the controller with no inputs
	_ = c.Refresh(false)

	canPlayback := c.CanPlayback()

	for _, cmd := range c.data.commands[c.frame] {
		if info, ok := lookupCommand(cmd.Name); ok && info.run != nil {
			info.run(c, cmd)
		}
	}

	if !canPlayback {
		return InputFrame{}, false
	}

	inp := c.data.inputs[c.frame]
	if prev, ok := c.Previous(); c.frameInInput == 0 || (ok && inp.sameInput(prev)) {
		c.frameInInput++
	} else {
		c.frameInInput = 1
	}
	c.frame++

	return inp, true
}

// RoomLabelsAt returns the room labels that precede the input at the frame.
func (c *Controller) RoomLabelsAt(frame int) []RoomLabel {
	var labels []RoomLabel
	for _, cm := range c.data.comments[frame] {
		if r, ok := cm.RoomLabel(); ok {
			labels = append(labels, r)
		}
	}
	return labels
}

// CurrentFastForward returns the fast-forward that is currently in effect.
// In order of priority that is:
//
//	the first ForceStop marker ahead of the current frame
//	the target of FastForwardToNextLabel()
//	the first marker ahead of the current frame
//	the last marker in the script
//
// Returns false if there are no fast-forward markers and no label target.
func (c *Controller) CurrentFastForward() (FastForward, bool) {
	for _, f := range c.ffFrames {
		ff := c.data.fastForwards[f]
		if f > c.frame && ff.ForceStop {
			return ff, true
		}
	}

	if c.nextLabel != nil {
		return *c.nextLabel, true
	}

	for _, f := range c.ffFrames {
		if f > c.frame {
			return c.data.fastForwards[f], true
		}
	}

	if len(c.ffFrames) > 0 {
		return c.data.fastForwards[c.ffFrames[len(c.ffFrames)-1]], true
	}

	return FastForward{}, false
}

// HasFastForward returns true if the current fast-forward is ahead of the
// current frame.
func (c *Controller) HasFastForward() bool {
	ff, ok := c.CurrentFastForward()
	return ok && ff.Frame > c.frame
}

// Break returns true if playback should pause at the current frame.
func (c *Controller) Break() bool {
	if ff, ok := c.CurrentFastForward(); ok && ff.Frame == c.frame {
		return true
	}
	ff, ok := c.data.fastForwards[c.frame]
	return ok && ff.ForceStop
}

// FastForwardToNextLabel sets the target of the fast-forward to the next
// label after the current frame. If there is a fast-forward marker before the
// label then that marker becomes the target.
func (c *Controller) FastForwardToNextLabel() {
	_ = c.Refresh(false)
	c.nextLabel = nil

	var next *FastForward
	for _, f := range c.labelFrames {
		if f > c.frame {
			l := c.data.labels[f]
			next = &l
			break
		}
	}
	if next == nil {
		return
	}

	if c.HasFastForward() {
		if ff, _ := c.CurrentFastForward(); next.Frame > ff.Frame {
			c.nextLabel = &ff
			return
		}
	}
	c.nextLabel = next
}

// ClearNextLabel removes the target set by FastForwardToNextLabel().
func (c *Controller) ClearNextLabel() {
	c.nextLabel = nil
}

// SaveStateMarkerAt returns the savestate marker at the frame.
func (c *Controller) SaveStateMarkerAt(frame int) (FastForward, bool) {
	ff, ok := c.data.fastForwards[frame]
	if !ok || !ff.SaveState {
		return FastForward{}, false
	}
	return ff, true
}

// LastSaveStateMarker returns the savestate marker closest to the end of the
// script.
func (c *Controller) LastSaveStateMarker() (FastForward, bool) {
	for i := len(c.ffFrames) - 1; i >= 0; i-- {
		if ff := c.data.fastForwards[c.ffFrames[i]]; ff.SaveState {
			return ff, true
		}
	}
	return FastForward{}, false
}

// LineAt returns the line in the main script for the frame. If breakpoint is
// true the line of the fast-forward marker at the frame is returned instead.
//
// Returns -1 if there is no suitable line.
func (c *Controller) LineAt(frame int, breakpoint bool) int {
	if breakpoint {
		if ff, ok := c.data.fastForwards[frame]; ok {
			return ff.Line
		}
		return -1
	}
	if frame < 0 || frame >= len(c.data.inputs) {
		return -1
	}
	return c.data.inputs[frame].Line
}

// Checksum returns a digest of the script up to, but not including, the
// frame. Two scripts with the same checksum will produce the same inputs for
// those frames.
func (c *Controller) Checksum(upTo int) string {
	var d digest.Script
	d.Write(c.path)
	upTo = min(upTo, len(c.data.inputs))
	for i := range upTo {
		for _, cmd := range c.data.commands[i] {
			if info, ok := lookupCommand(cmd.Name); ok && info.checksum {
				d.Write(cmd.Text)
			}
		}
		d.Write(c.data.inputs[i].String())
	}
	return d.Hash()
}

// UsedFiles returns the absolute paths of every file used by the script.
func (c *Controller) UsedFiles() []string {
	return slices.Clone(c.data.files)
}

// Dump writes every frame of input to w, one line per frame, prefixed by the
// frame number and the file and line that the input came from.
func (c *Controller) Dump(w io.Writer) error {
	for i, inp := range c.data.inputs {
		loc := filepath.Base(inp.File) + ":" + strconv.Itoa(inp.FileLine)
		if _, err := fmt.Fprintf(w, "%6d %-20s %s\n", i, loc, inp.String()); err != nil {
			return err
		}
	}
	return nil
}
