package calltree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mbareford/io-calltree-viewer/internal/testutil"
)

func offsetFixture(t *testing.T) *CallTree {
	t.Helper()
	ct := New()
	for _, n := range []struct {
		id, parent string
		time       float64
	}{
		{"1", "", 1.0},
		{"2", "1", 0.6},
		{"3", "2", 0.2},
		{"4", "2", 0.3},
	} {
		if _, err := ct.AddNode(n.id, Label{Time: n.time, Name: "fn" + n.id}, n.parent); err != nil {
			t.Fatal(err)
		}
	}
	return ct
}

func TestTimeOffset(t *testing.T) {
	ct := offsetFixture(t)

	// Breadth-first order resolves each parent before its children.
	var offsets []float64
	for _, n := range ct.Traverse(ct.RootID, BreadthFirst) {
		offsets = append(offsets, ct.TimeOffset(n))
	}

	// The parent of "3" and "4" runs for 0.6 with 0.5 covered by its
	// children, so 0.05 of padding sits on either side.
	want := []float64{0.0, 0.2, 0.25, 0.45}
	if diff := testutil.Diff(want, offsets, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("offsets differ: %v", diff)
	}
}

func TestTimeOffsetIdempotent(t *testing.T) {
	ct := offsetFixture(t)

	for _, n := range ct.Traverse(ct.RootID, BreadthFirst) {
		first := ct.TimeOffset(n)
		second := ct.TimeOffset(n)
		if first != second {
			t.Fatalf("offset of %s changed on recomputation: %v != %v", n.ID, first, second)
		}
		if n.Label.Offset != second {
			t.Fatalf("offset of %s not cached in its label", n.ID)
		}
	}
}

func TestShow(t *testing.T) {
	ct := offsetFixture(t)

	var buf bytes.Buffer
	ct.Show(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected one line per node, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "fn1") {
		t.Fatalf("first line should describe the root, got %q", lines[0])
	}
}
