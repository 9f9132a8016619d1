package quantity

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Mecusp/odecamtakeoff/internal/calibration"
	"github.com/Mecusp/odecamtakeoff/internal/catalog"
	"github.com/Mecusp/odecamtakeoff/internal/project"
	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

func ptr(v float64) *float64 { return &v }

func pts(coords ...float64) []geometry.Point {
	var out []geometry.Point
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, geometry.NewPoint(coords[i], coords[i+1]))
	}
	return out
}

type fixture struct {
	cat   *catalog.Catalog
	p     *project.Project
	calib *calibration.Calibration
}

// newFixture uses a scale of 20 px per meter
func newFixture(t *testing.T) fixture {
	t.Helper()
	cat, err := catalog.New(
		catalog.Material{ID: "ruler", Name: "Régua", Category: catalog.CategoryMeasure, Kind: catalog.KindLinear},
		catalog.Material{ID: "wall", Name: "Parede", Category: catalog.CategoryWall, Kind: catalog.KindLinear, LineWidth: ptr(0.15), Height: ptr(2.8)},
		catalog.Material{ID: "skirting", Name: "Rodapé", Category: catalog.CategoryFinish, Kind: catalog.KindLinear},
		catalog.Material{ID: "floor", Name: "Piso", Category: catalog.CategoryFloor, Kind: catalog.KindArea},
		catalog.Material{ID: "pillar", Category: catalog.CategoryStructure, Kind: catalog.KindPoint},
	)
	if err != nil {
		t.Fatal(err)
	}
	calib := &calibration.Calibration{}
	if _, err := calib.Finalize(100, 5); err != nil {
		t.Fatal(err)
	}
	return fixture{cat: cat, p: project.New(cat), calib: calib}
}

func (f fixture) add(t *testing.T, material string, points []geometry.Point) project.Shape {
	t.Helper()
	s, err := f.p.Add(project.Shape{MaterialID: material, Points: points})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func (f fixture) aggregate(t *testing.T, scope project.Scope) []Group {
	t.Helper()
	groups, err := Aggregate(f.p.Entries(scope), f.cat, f.calib)
	if err != nil {
		t.Fatal(err)
	}
	return groups
}

func TestAggregateRequiresCalibration(t *testing.T) {
	f := newFixture(t)
	f.add(t, "wall", pts(0, 0, 100, 0))
	f.calib.Reset()

	if _, err := Aggregate(f.p.Entries(project.ScopeProject), f.cat, f.calib); !errors.Is(err, ErrNotCalibrated) {
		t.Errorf("expected ErrNotCalibrated, got %v", err)
	}
}

func TestAggregateExcludesMeasureCategory(t *testing.T) {
	f := newFixture(t)
	f.add(t, "ruler", pts(0, 0, 100, 0))
	f.add(t, "skirting", pts(0, 0, 100, 0))

	groups := f.aggregate(t, project.ScopeProject)
	if len(groups) != 1 || groups[0].Material.ID != "skirting" {
		t.Fatalf("expected only skirting, got %+v", groups)
	}
	if _, ok := Find(groups, "ruler"); ok {
		t.Error("measure material must never appear in the output")
	}
}

func TestVerticalArea(t *testing.T) {
	f := newFixture(t)
	f.add(t, "wall", pts(0, 0, 100, 0))
	f.add(t, "wall", pts(0, 0, 0, 100))
	f.add(t, "skirting", pts(0, 0, 100, 0))

	groups := f.aggregate(t, project.ScopeProject)

	wall, _ := Find(groups, "wall")
	if math.Abs(wall.Value-10) > 1e-10 {
		t.Errorf("expected 10 m of wall, got %v", wall.Value)
	}
	if wall.VerticalArea == nil || math.Abs(*wall.VerticalArea-28) > 1e-10 {
		t.Errorf("expected vertical area 28, got %v", wall.VerticalArea)
	}

	skirting, _ := Find(groups, "skirting")
	if skirting.VerticalArea != nil {
		t.Errorf("material without height must have no vertical area, got %v", *skirting.VerticalArea)
	}
}

func TestHeightEditAppliesRetroactively(t *testing.T) {
	f := newFixture(t)
	f.add(t, "skirting", pts(0, 0, 100, 0))
	f.cat.UpdateHeight("skirting", 0.1)

	g, _ := Find(f.aggregate(t, project.ScopeProject), "skirting")
	if g.VerticalArea == nil || math.Abs(*g.VerticalArea-0.5) > 1e-10 {
		t.Errorf("expected vertical area 0.5, got %v", g.VerticalArea)
	}
}

func TestAggregateValues(t *testing.T) {
	f := newFixture(t)
	f.add(t, "floor", pts(0, 0, 100, 0, 100, 100, 0, 100))
	f.add(t, "pillar", pts(1, 1))
	f.add(t, "pillar", pts(2, 2))
	f.add(t, "skirting", pts(0, 0, 60, 0, 60, 80))

	groups := f.aggregate(t, project.ScopeProject)

	tests := []struct {
		material string
		count    int
		value    float64
		unit     Unit
	}{
		{"floor", 1, 25, UnitSquareMeters},
		{"pillar", 2, 2, UnitCount},
		{"skirting", 1, 7, UnitMeters},
	}

	for _, tt := range tests {
		g, ok := Find(groups, tt.material)
		if !ok {
			t.Errorf("%s: group missing", tt.material)
			continue
		}
		if g.Count != tt.count || math.Abs(g.Value-tt.value) > 1e-10 || g.Unit != tt.unit {
			t.Errorf("%s: got count=%d value=%v unit=%s", tt.material, g.Count, g.Value, g.Unit)
		}
	}

	totals := Sum(groups)
	if math.Abs(totals.SquareMeters-25) > 1e-10 || math.Abs(totals.Meters-7) > 1e-10 || totals.Units != 2 {
		t.Errorf("unexpected totals %+v", totals)
	}
}

func TestAggregateFirstSeenOrder(t *testing.T) {
	f := newFixture(t)
	f.add(t, "pillar", pts(1, 1))
	f.add(t, "wall", pts(0, 0, 10, 0))
	f.add(t, "pillar", pts(2, 2))
	f.add(t, "floor", pts(0, 0, 10, 0, 10, 10))

	var ids []string
	for _, g := range f.aggregate(t, project.ScopeProject) {
		ids = append(ids, g.Material.ID)
	}
	if diff := cmp.Diff([]string{"pillar", "wall", "floor"}, ids); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestAggregateItemsAndHidden(t *testing.T) {
	f := newFixture(t)
	sheet := f.p.ActiveID()
	short := f.add(t, "skirting", pts(0, 0, 20, 0))
	long := f.add(t, "skirting", pts(0, 0, 60, 0))
	f.p.ToggleVisibility(short.ID)

	g, _ := Find(f.aggregate(t, project.ScopeProject), "skirting")
	want := []Item{
		{ShapeID: short.ID, SheetID: sheet, Value: 1, Hidden: true},
		{ShapeID: long.ID, SheetID: sheet, Value: 3},
	}
	if diff := cmp.Diff(want, g.Items); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
	if g.Count != 2 || math.Abs(g.Value-4) > 1e-10 {
		t.Errorf("hidden shapes must still count: count=%d value=%v", g.Count, g.Value)
	}

	largest := LargestItems(g, 1)
	if len(largest) != 1 || largest[0].ShapeID != long.ID {
		t.Errorf("unexpected largest items %+v", largest)
	}
}

func TestAggregateScope(t *testing.T) {
	f := newFixture(t)
	f.add(t, "pillar", pts(1, 1))
	f.p.CreateSheet("")
	f.add(t, "pillar", pts(2, 2))

	if g, _ := Find(f.aggregate(t, project.ScopeProject), "pillar"); g.Count != 2 {
		t.Errorf("project scope: expected 2 pillars, got %d", g.Count)
	}
}

func TestAggregateActiveSheetScope(t *testing.T) {
	f := newFixture(t)
	f.add(t, "pillar", pts(1, 1))
	f.p.CreateSheet("")
	f.add(t, "pillar", pts(2, 2))

	g, _ := Find(f.aggregate(t, project.ScopeActiveSheet), "pillar")
	if g.Count != 1 {
		t.Errorf("active scope: expected 1 pillar, got %d", g.Count)
	}
}

func TestReport(t *testing.T) {
	f := newFixture(t)
	f.add(t, "wall", pts(0, 0, 100, 0, 100, 100))
	f.add(t, "pillar", pts(1, 1))
	f.add(t, "ruler", pts(0, 0, 100, 0))

	rows := Report(f.aggregate(t, project.ScopeProject), units.ParseLocale("pt-BR"))
	want := []Row{
		{MaterialID: "wall", MaterialName: "Parede", CategoryLabel: "Paredes", Count: 1, Primary: "10,00 m", VerticalArea: "28,00 m²", HasVertical: true},
		{MaterialID: "pillar", MaterialName: "pillar", CategoryLabel: "Estrutura", Count: 1, Primary: "1 un"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}
