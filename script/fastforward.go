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
	"regexp"
	"strconv"
	"strings"
)

// DefaultSpeed is the fast-forward speed for markers that do not specify a
// speed and for labels.
const DefaultSpeed = 400.0

// FastForward is a fast-forward marker or label. Playback runs at Speed until
// Frame is reached.
type FastForward struct {
	Frame int
	Line  int

	// ForceStop markers stop playback even when they are not the last marker
	ForceStop bool

	// SaveState markers take a savestate when they are reached
	SaveState bool

	Speed float64
}

func (ff FastForward) String() string {
	var s strings.Builder
	s.WriteString("***")
	if ff.ForceStop {
		s.WriteString("!")
	}
	if ff.SaveState {
		s.WriteString("S")
	}
	if ff.Speed != DefaultSpeed {
		s.WriteString(strconv.FormatFloat(ff.Speed, 'g', -1, 64))
	}
	return s.String()
}

const fastForwardPrefix = "***"

// parseFastForward returns false if the line is not a fast-forward line. The
// speed falls back to DefaultSpeed if it is missing or not a positive number.
func parseFastForward(line string, frame int, studioLine int) (FastForward, bool) {
	line = strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(line, fastForwardPrefix) {
		return FastForward{}, false
	}
	line = strings.TrimSpace(line[len(fastForwardPrefix):])

	ff := FastForward{
		Frame: frame,
		Line:  studioLine,
		Speed: DefaultSpeed,
	}

	if strings.HasPrefix(line, "!") {
		ff.ForceStop = true
		line = line[1:]
	}

	if len(line) > 0 && (line[0] == 'S' || line[0] == 's') {
		ff.SaveState = true
		line = line[1:]
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(line), 64); err == nil && v > 0 {
		ff.Speed = v
	}

	return ff, true
}

// Comment is a comment line in the script. Comments are associated with the
// input frame that follows them.
type Comment struct {
	Frame    int
	Line     int
	File     string
	FileLine int
	Text     string
}

// IsLabel returns true if the comment is a label. Labels are comments where
// the # character is followed immediately by a character that is not
// whitespace or another # character.
func (c Comment) IsLabel() bool {
	return isLabel(c.Text)
}

func isLabel(text string) bool {
	if len(text) < 2 || text[0] != '#' {
		return false
	}
	switch text[1] {
	case ' ', '\t', '#':
		return false
	}
	return true
}

var roomLabel = regexp.MustCompile(`^#lvl_([^\(\)]*)(?:\s\((\d+)\))?$`)

// RoomLabel is a label which names the room that the host should be in at
// the time the label is reached.
type RoomLabel struct {
	Comment

	// name of the room without the lvl_ prefix
	Room string

	// Count distinguishes between more than one visit to a room. Zero if the
	// label does not specify a count
	Count int
}

// Expected returns the room name in the form used by the host.
func (r RoomLabel) Expected() string {
	return fmt.Sprintf("lvl_%s", r.Room)
}

// RoomLabel returns the room label information for the comment. Returns false
// if the comment is not a room label.
func (c Comment) RoomLabel() (RoomLabel, bool) {
	m := roomLabel.FindStringSubmatch(strings.TrimSpace(c.Text))
	if m == nil {
		return RoomLabel{}, false
	}
	r := RoomLabel{Comment: c, Room: m[1]}
	if m[2] != "" {
		r.Count, _ = strconv.Atoi(m[2])
	}
	return r, true
}
