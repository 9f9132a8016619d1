package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

func TestParse(t *testing.T) {
	input := `
# calibrate first
image plans/planta baixa.png
mode calibrate
click 0,0
click 100 0
answer 3,50

material parede-externa
click 10.5,20 toggle
dblclick 30,20
move 40,40
height parede-externa 2,8
snap off
confirm yes
sheet new Pavimento superior
sheet rename 2 Térreo
sheet use 1
sheet clear
hide last
select @2
escape
`
	events, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []Event{
		{Line: 3, Op: OpImage, Text: "plans/planta baixa.png"},
		{Line: 4, Op: OpMode, Text: "calibrate"},
		{Line: 5, Op: OpClick, Point: geometry.NewPoint(0, 0)},
		{Line: 6, Op: OpClick, Point: geometry.NewPoint(100, 0)},
		{Line: 7, Op: OpAnswer, Text: "3,50"},
		{Line: 9, Op: OpMaterial, Text: "parede-externa"},
		{Line: 10, Op: OpClick, Point: geometry.NewPoint(10.5, 20), Toggle: true},
		{Line: 11, Op: OpDoubleClick, Point: geometry.NewPoint(30, 20)},
		{Line: 12, Op: OpMove, Point: geometry.NewPoint(40, 40)},
		{Line: 13, Op: OpHeight, Text: "parede-externa", Value: 2.8},
		{Line: 14, Op: OpSnap, Flag: false},
		{Line: 15, Op: OpConfirm, Flag: true},
		{Line: 16, Op: OpSheet, Sub: SheetNew, Name: "Pavimento superior"},
		{Line: 17, Op: OpSheet, Sub: SheetRename, Text: "2", Name: "Térreo"},
		{Line: 18, Op: OpSheet, Sub: SheetUse, Text: "1"},
		{Line: 19, Op: OpSheet, Sub: SheetClear},
		{Line: 20, Op: OpHide, Text: "last"},
		{Line: 21, Op: OpSelect, Text: "@2"},
		{Line: 22, Op: OpEscape},
	}

	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"unknown command", "jump 1,2", "line 1"},
		{"bad position", "mode draw\nclick a,b", "line 2"},
		{"missing position", "click", "line 1"},
		{"enter with args", "enter now", "line 1"},
		{"bad switch", "snap maybe", "line 1"},
		{"bad height", "height wall abc", "line 1"},
		{"sheet without sub", "sheet", "line 1"},
		{"unknown sheet sub", "sheet copy 1", "line 1"},
		{"rename without name", "sheet rename 1", "line 1"},
		{"material without id", "material", "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("expected ErrSyntax, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), tt.line) {
				t.Errorf("expected error to start with %q, got %q", tt.line, err.Error())
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.odecam")
	if err := os.WriteFile(path, []byte("mode select\nclick 1,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	events, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(events) != 2 || events[1].Op != OpClick {
		t.Errorf("unexpected events %+v", events)
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
