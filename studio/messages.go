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

package studio

import (
	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/hotkeys"
	"github.com/jetsetilly/gophertas/notifications"
	"github.com/jetsetilly/gophertas/playback"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Sentinel error patterns returned by DecodeCommand().
const (
	BadMessage     = "studio: bad message: %s"
	UnknownCommand = "studio: unknown command: %s"
)

// CommandType is the type of command sent by a studio client.
type CommandType string

// List of valid CommandType values.
const (
	CommandHotkey CommandType = "hotkey"
	CommandAxis   CommandType = "axis"
	CommandReload CommandType = "reload"
)

// Command from a studio client.
type Command struct {
	Type CommandType

	// the hotkey for CommandHotkey. if Release is true then the hotkey is
	// released, which is only meaningful for the hotkeys that can be held
	Hotkey  hotkeys.ID
	Release bool

	// the value for CommandAxis in the range -1 to 1
	Axis float32
}

// DecodeCommand decodes a message from a studio client.
func DecodeCommand(msg string) (Command, error) {
	if !gjson.Valid(msg) {
		return Command{}, curated.Errorf(BadMessage, "not JSON")
	}

	typ := gjson.Get(msg, "type")
	if !typ.Exists() {
		return Command{}, curated.Errorf(BadMessage, "no type")
	}

	cmd := Command{Type: CommandType(typ.String())}

	switch cmd.Type {
	case CommandHotkey:
		id, err := hotkeys.ParseID(gjson.Get(msg, "id").String())
		if err != nil {
			return Command{}, curated.Errorf(BadMessage, err)
		}
		cmd.Hotkey = id
		cmd.Release = gjson.Get(msg, "release").Bool()

	case CommandAxis:
		v := gjson.Get(msg, "value")
		if v.Type != gjson.Number {
			return Command{}, curated.Errorf(BadMessage, "axis value must be a number")
		}
		cmd.Axis = float32(max(-1, min(1, v.Float())))

	case CommandReload:

	default:
		return Command{}, curated.Errorf(UnknownCommand, cmd.Type)
	}

	return cmd, nil
}

// EncodeSummary encodes the summary as a JSON message for studio clients.
func EncodeSummary(s playback.Summary) string {
	msg := `{"type":"summary"}`
	msg, _ = sjson.Set(msg, "identity", s.Identity)
	msg, _ = sjson.Set(msg, "currentLine", s.CurrentLine)
	msg, _ = sjson.Set(msg, "currentLineSuffix", s.CurrentLineSuffix)
	msg, _ = sjson.Set(msg, "currentFrame", s.CurrentFrame)
	msg, _ = sjson.Set(msg, "frameInInput", s.FrameInInput)
	msg, _ = sjson.Set(msg, "totalFrames", s.TotalFrames)
	msg, _ = sjson.Set(msg, "saveStateLine", s.SaveStateLine)
	msg, _ = sjson.Set(msg, "state", s.StateBits)
	msg, _ = sjson.Set(msg, "running", s.Running)
	msg, _ = sjson.Set(msg, "frameStep", s.FrameStep)
	msg, _ = sjson.Set(msg, "frameLoops", s.FrameLoops)
	msg, _ = sjson.Set(msg, "needsReload", s.NeedsReload)
	msg, _ = sjson.Set(msg, "reason", s.Reason.String())
	msg, _ = sjson.Set(msg, "room", s.Room)
	msg, _ = sjson.Set(msg, "timer", s.Timer)
	msg, _ = sjson.Set(msg, "status", s.Status)
	return msg
}

func encodeToast(notice notifications.Notice, detail string) string {
	msg := `{"type":"toast"}`
	msg, _ = sjson.Set(msg, "notice", string(notice))
	if detail != "" {
		msg, _ = sjson.Set(msg, "detail", detail)
	}
	return msg
}

// Apply the command to the engine. The command takes effect on the next tick
// of the engine. The axis command requires a Manual hotkey source that is
// being polled by the engine.
func (cmd Command) Apply(e *playback.Engine, axis *hotkeys.Manual) {
	e.PushFunction(func() {
		switch cmd.Type {
		case CommandHotkey:
			if cmd.Release {
				e.Hotkeys().Get(cmd.Hotkey).ReleaseOverride()
			} else {
				e.Hotkeys().Get(cmd.Hotkey).Override()
			}
		case CommandAxis:
			if axis != nil {
				axis.SetAxis(cmd.Axis)
			}
		case CommandReload:
			_ = e.Source().Refresh(true)
		}
	})
}
