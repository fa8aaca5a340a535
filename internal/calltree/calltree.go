package calltree

import "io"

// DefaultRootID is the identifier given to the root call of an imported
// tree; descendants take sequential identifiers from there.
const DefaultRootID = "1"

// CallTree encodes the call paths stemming from a chosen root function.
// LevelMin and CallsMin are fixed at construction; LevelMax and CallsMax
// are running aggregates maintained by the importer as nodes are added.
// Once imported, a CallTree is only ever read.
type CallTree struct {
	Tree

	RootID   string
	LevelMin int
	LevelMax int
	CallsMin float64
	CallsMax float64
}

func New() *CallTree {
	return &CallTree{
		Tree:     *NewTree(),
		RootID:   DefaultRootID,
		LevelMin: 1,
		LevelMax: 1,
		CallsMin: 1.0,
		CallsMax: 1.0,
	}
}

// Root returns the root node, or nil for an empty tree.
func (ct *CallTree) Root() *Node {
	return ct.Node(ct.RootID)
}

// Show writes every node in breadth-first order.
func (ct *CallTree) Show(w io.Writer) {
	for _, n := range ct.Traverse(ct.RootID, BreadthFirst) {
		n.display(w)
	}
}

// TimeOffset computes the horizontal start position of the node's bar in
// a flame plot and caches it in the node's label. The parent's exclusive
// time, the part not covered by its children, is split evenly around the
// children so they sit centered under the parent. The parent's own time
// and offset must already be resolved, which holds when nodes are visited
// root first, e.g. in breadth-first order. Recomputation yields the same
// value.
func (ct *CallTree) TimeOffset(n *Node) float64 {
	if n.Parent == "" {
		n.Label.Offset = 0.0
		return 0.0
	}

	parent := ct.Node(n.Parent)
	var childTime, precedingTime float64
	for _, id := range parent.Children {
		if id == n.ID {
			precedingTime = childTime
		}
		childTime += ct.Node(id).Label.Time
	}

	offset := parent.Label.Offset
	offset += (parent.Label.Time - childTime) / 2.0
	offset += precedingTime

	n.Label.Offset = offset
	return offset
}
