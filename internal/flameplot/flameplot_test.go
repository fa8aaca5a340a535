package flameplot

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mbareford/io-calltree-viewer/internal/calltree"
	"github.com/mbareford/io-calltree-viewer/internal/testutil"
)

func fixtureCallTree(t *testing.T) *calltree.CallTree {
	t.Helper()
	ct := calltree.New()
	for _, n := range []struct {
		id, parent, name string
		level            int
		time, calls      float64
	}{
		{"1", "", "main", 1, 1.0, 1.0},
		{"2", "1", "read", 2, 0.6, 1.0},
		{"3", "2", "decode", 3, 0.2, 9.0},
		{"4", "2", "copy", 3, 0.3, 4.0},
	} {
		if _, err := ct.AddNode(n.id, calltree.Label{
			Level: n.level,
			Time:  n.time,
			Calls: n.calls,
			Name:  n.name,
		}, n.parent); err != nil {
			t.Fatal(err)
		}
	}
	ct.LevelMax = 3
	ct.CallsMax = 9.0
	return ct
}

func TestBuild(t *testing.T) {
	ct := fixtureCallTree(t)

	plot := Build(ct, "main - 8 cores", Options{ColorByCalls: true})

	// (CallsMax - CallsMin + 1) / 9 hues puts one call count per bucket.
	want := Plot{
		Title: "main - 8 cores",
		Bars: []Bar{
			{Level: 1, Name: "main", Calls: 1.0, Time: 1.0, Offset: 0.0, Color: "#bd0026", Description: "1: main(1) - 1.000."},
			{Level: 2, Name: "read", Calls: 1.0, Time: 0.6, Offset: 0.2, Color: "#bd0026", Description: "2: read(1) - 0.600."},
			{Level: 3, Name: "decode", Calls: 9.0, Time: 0.2, Offset: 0.25, Color: "#ffffcc", Description: "3: decode(9) - 0.200."},
			{Level: 3, Name: "copy", Calls: 4.0, Time: 0.3, Offset: 0.45, Color: "#fd8d3c", Description: "3: copy(4) - 0.300."},
		},
		LevelMin: 1,
		LevelMax: 3,
		CallsMin: 1.0,
		CallsMax: 9.0,
		TimeMax:  1.0,
	}
	if diff := testutil.Diff(want, plot, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("plot differs: %v", diff)
	}
}

func TestBuildRandomColors(t *testing.T) {
	ct := fixtureCallTree(t)

	plot := Build(ct, "main", Options{})

	contains := func(hue string) bool {
		for _, p := range palette {
			if p == hue {
				return true
			}
		}
		return false
	}
	for _, bar := range plot.Bars {
		if !contains(bar.Color) {
			t.Fatalf("bar %q colored %q, not a palette hue", bar.Name, bar.Color)
		}
	}
}

func TestBuildEmptyTree(t *testing.T) {
	plot := Build(calltree.New(), "empty", Options{ColorByCalls: true})
	if len(plot.Bars) != 0 {
		t.Fatalf("expected no bars, got %d", len(plot.Bars))
	}
	if plot.TimeMax != 0 {
		t.Fatalf("expected zero time range, got %v", plot.TimeMax)
	}
}
