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
	"regexp"
	"strconv"
	"strings"

	"github.com/jetsetilly/gophertas/analog"
	"github.com/jetsetilly/gophertas/curated"
)

// Sentinel error patterns for commands.
const (
	UnknownCommand   = "unknown command: %s"
	CommandArguments = "%s: %v"
)

// Command is a command line in the script.
type Command struct {
	Name string
	Args []string

	// the frame the command is attached to. runtime commands are run when this
	// frame is reached
	Frame int

	Line     int
	File     string
	FileLine int
	Text     string
}

type commandInfo struct {
	// canonical name of command. commands are matched without regard to case
	name    string
	aliases []string

	// parse commands are run when the script is parsed
	parse func(p *parser, cmd Command) error

	// run commands are run as playback reaches the command
	run func(c *Controller, cmd Command)

	// whether the text of the command contributes to the script checksum
	checksum bool
}

var commands []commandInfo

func init() {
	commands = []commandInfo{
		{
			name:     "AnalogMode",
			aliases:  []string{"AnalogueMode"},
			parse:    parseAnalogMode,
			checksum: true,
		},
		{
			name:     "Unsafe",
			run:      func(c *Controller, _ Command) { c.allowUnsafe = true },
			checksum: true,
		},
		{
			name:     "Safe",
			run:      func(c *Controller, _ Command) { c.allowUnsafe = false },
			checksum: true,
		},
		{
			name:     "Repeat",
			parse:    parseRepeat,
			checksum: true,
		},
		{
			name:     "EndRepeat",
			parse:    parseEndRepeat,
			checksum: true,
		},
		{
			name:     "Read",
			parse:    parseRead,
			checksum: true,
		},
	}
}

func lookupCommand(name string) (commandInfo, bool) {
	for _, c := range commands {
		if strings.EqualFold(c.name, name) {
			return c, true
		}
		for _, a := range c.aliases {
			if strings.EqualFold(a, name) {
				return c, true
			}
		}
	}
	return commandInfo{}, false
}

var argSeparator = regexp.MustCompile(`(?:\s+)|(?:\s*,\s*)`)

// isCommand returns true if the line should be parsed as a command. Command
// lines begin with a letter.
func isCommand(line string) bool {
	if line == "" {
		return false
	}
	c := line[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// splitCommand splits the command line into the command name and arguments.
// the separator is whatever separates the command name from the first
// argument. the same separator must be used for the remaining arguments.
// double quotes can be used to group an argument that contains the separator
func splitCommand(line string) (string, []string) {
	line = strings.TrimSpace(line)

	loc := argSeparator.FindStringIndex(line)
	if loc == nil {
		return line, nil
	}
	name := line[:loc[0]]
	sep := line[loc[0]:loc[1]]
	rest := line[loc[1]:]

	var args []string
	var arg strings.Builder
	var quoted bool
	for i := 0; i < len(rest); i++ {
		switch {
		case rest[i] == '"':
			quoted = !quoted
		case !quoted && strings.HasPrefix(rest[i:], sep):
			args = append(args, strings.TrimSpace(arg.String()))
			arg.Reset()
			i += len(sep) - 1
		default:
			arg.WriteByte(rest[i])
		}
	}
	args = append(args, strings.TrimSpace(arg.String()))

	return name, args
}

func parseAnalogMode(p *parser, cmd Command) error {
	if len(cmd.Args) < 1 {
		return curated.Errorf(CommandArguments, cmd.Name, "analog mode is missing")
	}
	m, err := analog.ParseMode(cmd.Args[0])
	if err != nil {
		return curated.Errorf(CommandArguments, cmd.Name, err)
	}
	p.mode = m
	return nil
}

func parseRepeat(p *parser, cmd Command) error {
	if len(cmd.Args) < 1 {
		return curated.Errorf(CommandArguments, cmd.Name, "repeat count is missing")
	}
	n, err := strconv.Atoi(cmd.Args[0])
	if err != nil || n < 1 {
		return curated.Errorf(CommandArguments, cmd.Name, "repeat count must be a positive integer")
	}
	p.repeats = append(p.repeats, repeat{
		count:      n,
		file:       cmd.File,
		fileLine:   cmd.FileLine,
		studioLine: cmd.Line,
		frame:      len(p.inputs),
	})
	return nil
}

func parseEndRepeat(p *parser, cmd Command) error {
	if len(p.repeats) == 0 {
		return curated.Errorf(CommandArguments, cmd.Name, "no matching Repeat")
	}
	r := p.repeats[len(p.repeats)-1]
	p.repeats = p.repeats[:len(p.repeats)-1]
	if r.file != cmd.File {
		return curated.Errorf(CommandArguments, cmd.Name, "no matching Repeat in the same file")
	}
	return p.expandRepeat(r, cmd.FileLine)
}

func parseRead(p *parser, cmd Command) error {
	if len(cmd.Args) < 1 {
		return curated.Errorf(CommandArguments, cmd.Name, "file name is missing")
	}
	return p.read(cmd)
}
