// Package script parses line-oriented takeoff event scripts. Each line is
// one input event; blank lines and lines starting with # are skipped.
//
//	image planta.png
//	mode calibrate
//	click 0,0
//	click 100,0
//	answer 5,00
//	material parede-externa
//	click 10,10
//	click 110,10 toggle
//	enter
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

// ErrSyntax is wrapped by every parse error
var ErrSyntax = errors.New("syntax error")

// Op names an event
type Op string

const (
	OpImage          Op = "image"
	OpMode           Op = "mode"
	OpMaterial       Op = "material"
	OpClick          Op = "click"
	OpDoubleClick    Op = "dblclick"
	OpMove           Op = "move"
	OpEnter          Op = "enter"
	OpEscape         Op = "escape"
	OpDelete         Op = "delete"
	OpUndo           Op = "undo"
	OpAnswer         Op = "answer"
	OpDismiss        Op = "dismiss"
	OpConfirm        Op = "confirm"
	OpSnap           Op = "snap"
	OpHeight         Op = "height"
	OpHide           Op = "hide"
	OpHideMaterial   Op = "hide-material"
	OpRemoveMaterial Op = "remove-material"
	OpSelect         Op = "select"
	OpSheet          Op = "sheet"
)

// Sheet subcommands
const (
	SheetNew    = "new"
	SheetRename = "rename"
	SheetDelete = "delete"
	SheetUse    = "use"
	SheetClear  = "clear"
)

// Event is one parsed script line. Only the fields used by Op are set.
type Event struct {
	Line   int
	Op     Op
	Point  geometry.Point // click, dblclick, move
	Toggle bool           // snap toggle held during a pointer event
	Text   string         // path, mode, material id, answer, shape or sheet reference
	Name   string         // sheet name
	Sub    string         // sheet subcommand
	Value  float64        // height
	Flag   bool           // confirm yes, snap on
}

func (e Event) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Op)
}

// ParseFile reads a script from disk
func ParseFile(filename string) ([]Event, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads every event of a script
func Parse(reader io.Reader) ([]Event, error) {
	scanner := bufio.NewScanner(reader)
	var events []Event
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ev, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		ev.Line = lineNo
		events = append(events, ev)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}

	return events, nil
}

func parseLine(line string) (Event, error) {
	fields := strings.Fields(line)
	ev := Event{Op: Op(strings.ToLower(fields[0]))}
	args := fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch ev.Op {
	case OpEnter, OpEscape, OpDelete, OpUndo, OpDismiss:
		if len(args) != 0 {
			return ev, syntaxf("%s takes no arguments", ev.Op)
		}

	case OpImage, OpAnswer:
		if rest == "" {
			return ev, syntaxf("%s needs an argument", ev.Op)
		}
		ev.Text = rest

	case OpMode, OpMaterial, OpHide, OpHideMaterial, OpRemoveMaterial, OpSelect:
		if len(args) != 1 {
			return ev, syntaxf("%s needs exactly one argument", ev.Op)
		}
		ev.Text = args[0]

	case OpClick, OpDoubleClick, OpMove:
		p, toggle, err := parsePointer(args)
		if err != nil {
			return ev, err
		}
		ev.Point, ev.Toggle = p, toggle

	case OpConfirm:
		flag, err := parseSwitch(args, "yes", "no")
		if err != nil {
			return ev, err
		}
		ev.Flag = flag

	case OpSnap:
		flag, err := parseSwitch(args, "on", "off")
		if err != nil {
			return ev, err
		}
		ev.Flag = flag

	case OpHeight:
		if len(args) != 2 {
			return ev, syntaxf("height needs a material and a value")
		}
		v, err := units.ParseDecimal(args[1])
		if err != nil {
			return ev, syntaxf("height: %v", err)
		}
		ev.Text, ev.Value = args[0], v

	case OpSheet:
		return parseSheet(ev, args)

	default:
		return ev, syntaxf("unknown command %q", fields[0])
	}

	return ev, nil
}

func parseSheet(ev Event, args []string) (Event, error) {
	if len(args) == 0 {
		return ev, syntaxf("sheet needs a subcommand")
	}
	ev.Sub = strings.ToLower(args[0])
	args = args[1:]

	switch ev.Sub {
	case SheetNew:
		ev.Name = strings.Join(args, " ")
	case SheetRename:
		if len(args) < 2 {
			return ev, syntaxf("sheet rename needs a sheet and a name")
		}
		ev.Text, ev.Name = args[0], strings.Join(args[1:], " ")
	case SheetDelete, SheetUse:
		if len(args) != 1 {
			return ev, syntaxf("sheet %s needs a sheet", ev.Sub)
		}
		ev.Text = args[0]
	case SheetClear:
		if len(args) != 0 {
			return ev, syntaxf("sheet clear takes no arguments")
		}
	default:
		return ev, syntaxf("unknown sheet subcommand %q", ev.Sub)
	}
	return ev, nil
}

// parsePointer accepts "x,y" or "x y", optionally followed by "toggle"
func parsePointer(args []string) (geometry.Point, bool, error) {
	toggle := false
	if n := len(args); n > 0 && strings.EqualFold(args[n-1], "toggle") {
		toggle = true
		args = args[:n-1]
	}

	var coords []string
	switch len(args) {
	case 1:
		coords = strings.Split(args[0], ",")
	case 2:
		coords = []string{strings.TrimSuffix(args[0], ","), args[1]}
	}
	if len(coords) != 2 {
		return geometry.Point{}, false, syntaxf("expected a position like 10,20")
	}

	x, errX := strconv.ParseFloat(coords[0], 64)
	y, errY := strconv.ParseFloat(coords[1], 64)
	if errX != nil || errY != nil {
		return geometry.Point{}, false, syntaxf("invalid position %q", strings.Join(args, " "))
	}
	return geometry.NewPoint(x, y), toggle, nil
}

func parseSwitch(args []string, on, off string) (bool, error) {
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case on:
			return true, nil
		case off:
			return false, nil
		}
	}
	return false, syntaxf("expected %s or %s", on, off)
}

func syntaxf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, a...))
}
