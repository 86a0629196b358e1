package graph

import (
	"reflect"
	"sort"
	"testing"

	"github.com/rawblock/washtrade-engine/pkg/models"
)

func TestBoundedCycles_ThreeCycle(t *testing.T) {
	// A→B→C→A is exactly one 3-cycle, discovered once from its minimum
	// node.
	g := NewStore([]models.TransferRecord{
		tx("1", "A", "B", 0),
		tx("2", "B", "C", 10),
		tx("3", "C", "A", 20),
	}).Graph()

	cycles := BoundedCycles(g, AllNodes(g), 4)
	if len(cycles) != 1 {
		t.Fatalf("expected exactly 1 cycle, got %d: %v", len(cycles), cycles)
	}
	if len(cycles[0]) != 3 {
		t.Errorf("expected a 3-cycle, got %v", cycles[0])
	}
}

func TestBoundedCycles_ExcludesShortCycles(t *testing.T) {
	// A 2-cycle and a self-loop are not circular trading; they belong to
	// ping-pong and self-dealing respectively.
	g := NewStore([]models.TransferRecord{
		tx("1", "A", "B", 0),
		tx("2", "B", "A", 10),
		tx("3", "C", "C", 20),
	}).Graph()

	if cycles := BoundedCycles(g, AllNodes(g), 4); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %v", cycles)
	}
}

func TestBoundedCycles_LengthBound(t *testing.T) {
	// A 5-cycle is out of reach with maxLen 4 but found with maxLen 5.
	g := NewStore([]models.TransferRecord{
		tx("1", "A", "B", 0),
		tx("2", "B", "C", 1),
		tx("3", "C", "D", 2),
		tx("4", "D", "E", 3),
		tx("5", "E", "A", 4),
	}).Graph()

	if cycles := BoundedCycles(g, AllNodes(g), 4); len(cycles) != 0 {
		t.Errorf("expected no cycles at maxLen 4, got %v", cycles)
	}
	if cycles := BoundedCycles(g, AllNodes(g), 5); len(cycles) != 1 {
		t.Errorf("expected the 5-cycle at maxLen 5, got %v", cycles)
	}
}

func TestBoundedCycles_ParallelEdgesCountOnce(t *testing.T) {
	// Duplicate transfers along the ring must not multiply the cycle.
	g := NewStore([]models.TransferRecord{
		tx("1", "A", "B", 0),
		tx("2", "A", "B", 5),
		tx("3", "B", "C", 10),
		tx("4", "C", "A", 20),
	}).Graph()

	if cycles := BoundedCycles(g, AllNodes(g), 4); len(cycles) != 1 {
		t.Errorf("expected 1 cycle despite parallel edges, got %v", cycles)
	}
}

func TestDistance(t *testing.T) {
	// A→B→C, plus isolated D. Distances are directed.
	g := NewStore([]models.TransferRecord{
		tx("1", "A", "B", 0),
		tx("2", "B", "C", 10),
		tx("3", "D", "D", 20),
	}).Graph()

	a, _ := g.NodeID("A")
	b, _ := g.NodeID("B")
	c, _ := g.NodeID("C")
	d, _ := g.NodeID("D")

	cases := []struct {
		name     string
		from, to int
		want     int
	}{
		{"direct", a, b, 1},
		{"two hops", a, c, 2},
		{"reverse unreachable", c, a, -1},
		{"disconnected", a, d, -1},
		{"self", a, a, 0},
	}
	for _, tc := range cases {
		if got := Distance(g, tc.from, tc.to); got != tc.want {
			t.Errorf("%s: Distance = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestStronglyConnected(t *testing.T) {
	// Ring A→B→C→A is one SCC; D→A hangs off it as a singleton.
	g := NewStore([]models.TransferRecord{
		tx("1", "A", "B", 0),
		tx("2", "B", "C", 10),
		tx("3", "C", "A", 20),
		tx("4", "D", "A", 30),
	}).Graph()

	comps := StronglyConnected(g)
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d: %v", len(comps), comps)
	}

	var sizes []int
	for _, c := range comps {
		sizes = append(sizes, len(c))
	}
	sort.Ints(sizes)
	if !reflect.DeepEqual(sizes, []int{1, 3}) {
		t.Errorf("expected component sizes [1 3], got %v", sizes)
	}
}
