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
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/jetsetilly/gophertas/analog"
	"github.com/jetsetilly/gophertas/curated"
)

// Sentinel error patterns for parsing.
const (
	ParseError = "script: %s line %d: %v"
	FileError  = "script: %v"
	ReadError  = "read: %v"
)

// the result of parsing a script
type parsed struct {
	// one entry for every frame of playback
	inputs []InputFrame

	// commands, comments and fast-forwards are keyed by the frame they precede
	commands     map[int][]Command
	comments     map[int][]Comment
	fastForwards map[int]FastForward
	labels       map[int]FastForward

	// every file used by the script, main file first
	files []string

	// number of lines in the main file
	lines int
}

func newParsed() parsed {
	return parsed{
		commands:     make(map[int][]Command),
		comments:     make(map[int][]Comment),
		fastForwards: make(map[int]FastForward),
		labels:       make(map[int]FastForward),
	}
}

type repeat struct {
	count      int
	file       string
	fileLine   int
	studioLine int

	// frame at which the repeat block begins
	frame int
}

type parser struct {
	parsed

	// absolute path of main script
	main string

	// analog mode used for solving F actions
	mode analog.Mode

	repeats []repeat

	// stack of files currently being read. the main script is at the bottom
	// of the stack
	reading []string

	// the line of the main script that inputs from a Read command are
	// attributed to
	readStudioLine int

	// cache of file contents
	cache map[string][]string

	// number of frames already added for a line of the main script
	lineFrames map[int]int
}

// parse the script at path, which should be absolute.
func parse(path string) (*parsed, error) {
	p := &parser{
		parsed:     newParsed(),
		main:       path,
		mode:       analog.Ignore,
		cache:      make(map[string][]string),
		lineFrames: make(map[int]int),
	}

	lines, err := p.fileLines(path)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	p.lines = len(lines)

	p.reading = append(p.reading, path)
	err = p.readFile(path, lines, 0, 0)
	if err != nil {
		return nil, err
	}

	// hidden label at the end of the script so that fast-forwarding to the
	// next label always has a target
	frame := len(p.inputs)
	p.labels[frame] = FastForward{Frame: frame, Line: p.lines, Speed: DefaultSpeed}

	return &p.parsed, nil
}

func (p *parser) fileLines(path string) ([]string, error) {
	if l, ok := p.cache[path]; ok {
		return l, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := strings.ReplaceAll(string(b), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	l := strings.Split(s, "\n")
	p.cache[path] = l
	if !slices.Contains(p.files, path) {
		p.files = append(p.files, path)
	}
	return l, nil
}

// readFile reads the lines of a file, from startLine to endLine inclusive.
// line numbers begin at one. a startLine or endLine of zero means the start or
// end of the file
func (p *parser) readFile(path string, lines []string, startLine int, endLine int) error {
	if endLine > 0 && endLine < len(lines) {
		lines = lines[:endLine]
	}

	studioLine := 0
	if path != p.main {
		studioLine = p.readStudioLine
	}

	err := p.readLines(path, lines, startLine, studioLine, 0, 0)
	if err != nil {
		return err
	}

	// Repeat commands must be closed in the same file
	for _, r := range p.repeats {
		if r.file == path {
			return curated.Errorf(ParseError, filepath.Base(path), r.fileLine, "Repeat without EndRepeat")
		}
	}

	return nil
}

func (p *parser) readLines(path string, lines []string, startLine int, studioLine int, repeatIndex int, repeatCount int) error {
	main := path == p.main
	for i, text := range lines {
		fileLine := i + 1
		if fileLine < startLine {
			continue
		}

		err := p.parseLine(text, path, fileLine, studioLine, repeatIndex, repeatCount)
		if err != nil {
			if curated.Has(err, ParseError) {
				return err
			}
			return curated.Errorf(ParseError, filepath.Base(path), fileLine, err)
		}

		if main {
			studioLine++
		}
	}
	return nil
}

func (p *parser) parseLine(text string, path string, fileLine int, studioLine int, repeatIndex int, repeatCount int) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	frame := len(p.inputs)
	main := path == p.main

	switch {
	case isCommand(trimmed):
		name, args := splitCommand(trimmed)
		info, ok := lookupCommand(name)
		if !ok {
			return curated.Errorf(UnknownCommand, name)
		}
		cmd := Command{
			Name:     info.name,
			Args:     args,
			Frame:    frame,
			Line:     studioLine,
			File:     path,
			FileLine: fileLine,
			Text:     trimmed,
		}
		p.commands[frame] = append(p.commands[frame], cmd)
		if info.parse != nil {
			return info.parse(p, cmd)
		}

	case strings.HasPrefix(trimmed, fastForwardPrefix):
		// fast-forward markers are ignored in files included with Read
		if !main {
			return nil
		}
		ff, _ := parseFastForward(trimmed, frame, studioLine)
		if existing, ok := p.fastForwards[frame]; ok && existing.SaveState && !ff.SaveState {
			return nil
		}
		p.fastForwards[frame] = ff

	case trimmed[0] == '#':
		c := Comment{
			Frame:    frame,
			Line:     studioLine,
			File:     path,
			FileLine: fileLine,
			Text:     trimmed,
		}
		p.comments[frame] = append(p.comments[frame], c)
		if main && c.IsLabel() {
			p.labels[frame] = FastForward{Frame: frame, Line: studioLine, Speed: DefaultSpeed}
		}

	default:
		inp, err := ParseInputFrame(trimmed, p.mode)
		if err != nil {
			return err
		}
		inp.Line = studioLine
		inp.File = path
		inp.FileLine = fileLine
		inp.RepeatIndex = repeatIndex
		inp.RepeatCount = repeatCount
		if !main {
			inp.FrameOffset = p.lineFrames[studioLine]
			p.lineFrames[studioLine] += inp.Frames
		}
		for range inp.Frames {
			p.inputs = append(p.inputs, inp)
		}
	}

	return nil
}

// expandRepeat is called when the EndRepeat for a Repeat has been parsed. the
// lines between the two commands have been parsed once already
func (p *parser) expandRepeat(r repeat, endFileLine int) error {
	main := r.file == p.main
	if main {
		for i := r.frame; i < len(p.inputs); i++ {
			p.inputs[i].RepeatIndex = 1
			p.inputs[i].RepeatCount = r.count
		}
	}

	if r.count < 2 {
		return nil
	}

	lines, err := p.fileLines(r.file)
	if err != nil {
		return curated.Errorf(FileError, err)
	}
	lines = lines[:endFileLine-1]

	for n := 2; n <= r.count; n++ {
		studioLine := r.studioLine
		repeatIndex, repeatCount := 0, 0
		if main {
			studioLine++
			repeatIndex = n
			repeatCount = r.count
		}
		err := p.readLines(r.file, lines, r.fileLine+1, studioLine, repeatIndex, repeatCount)
		if err != nil {
			return err
		}
	}

	return nil
}

var readLabel = regexp.MustCompile(`^#\s*(.+)$`)

// findLine returns the line number of a label in the lines. the label may
// also be given as a line number
func findLine(lines []string, label string) (int, error) {
	if n, err := strconv.Atoi(label); err == nil {
		if n < 1 || n > len(lines) {
			return 0, curated.Errorf(ReadError, "line "+label+" out of range")
		}
		return n, nil
	}
	for i, l := range lines {
		m := readLabel.FindStringSubmatch(strings.TrimSpace(l))
		if m != nil && strings.TrimSpace(m[1]) == label {
			return i + 1, nil
		}
	}
	return 0, curated.Errorf(ReadError, "label "+label+" not found")
}

func (p *parser) read(cmd Command) error {
	name := cmd.Args[0]
	if filepath.Ext(name) == "" {
		name += ".tas"
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(filepath.Dir(cmd.File), name)
	}
	name = filepath.Clean(name)

	if name == cmd.File {
		return curated.Errorf(ReadError, "file can not read itself")
	}
	if slices.Contains(p.reading, name) {
		return curated.Errorf(ReadError, "recursive read of "+filepath.Base(name))
	}

	lines, err := p.fileLines(name)
	if err != nil {
		return curated.Errorf(ReadError, err)
	}

	var start, end int
	if len(cmd.Args) > 1 && cmd.Args[1] != "" {
		start, err = findLine(lines, cmd.Args[1])
		if err != nil {
			return err
		}
	}
	if len(cmd.Args) > 2 && cmd.Args[2] != "" {
		end, err = findLine(lines, cmd.Args[2])
		if err != nil {
			return err
		}
	}

	// analog mode is restored once the file has been read
	mode := p.mode
	readStudioLine := p.readStudioLine
	p.readStudioLine = cmd.Line
	p.reading = append(p.reading, name)

	err = p.readFile(name, lines, start, end)

	p.reading = p.reading[:len(p.reading)-1]
	p.readStudioLine = readStudioLine
	p.mode = mode

	return err
}
