package calltree

import (
	"fmt"
	"io"
	"strings"

	"github.com/mbareford/io-calltree-viewer/internal/errorutil"
)

type (
	// TraversalMode selects the queue discipline used by Traverse.
	TraversalMode int

	// Tree owns a set of nodes keyed by identifier. Identifiers must be
	// unique; uniqueness is the caller's responsibility. The structure is
	// acyclic by construction since a node's parent must already be in
	// the tree when the node is inserted.
	Tree struct {
		nodes map[string]*Node
	}
)

const (
	DepthFirst TraversalMode = iota
	BreadthFirst
)

func NewTree() *Tree {
	return &Tree{nodes: make(map[string]*Node)}
}

// Node returns the node registered under id, or nil.
func (t *Tree) Node(id string) *Node {
	return t.nodes[id]
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// AddNode inserts a new node under id and, when parent is non-empty,
// appends id to the parent's children. The parent must already exist.
func (t *Tree) AddNode(id string, label Label, parent string) (*Node, error) {
	if parent != "" {
		if _, ok := t.nodes[parent]; !ok {
			return nil, fmt.Errorf("%w: node %q declares missing parent %q", errorutil.ErrDataIntegrity, id, parent)
		}
	}
	n := &Node{
		ID:     id,
		Label:  label,
		Parent: parent,
	}
	t.nodes[id] = n
	if parent != "" {
		t.nodes[parent].addChild(id)
	}
	return n, nil
}

// Traverse returns the nodes reachable from id in the order dictated by
// mode. Depth-first exhausts a node's subtree before moving to the next
// pending sibling; breadth-first goes level by level. Each call builds a
// fresh sequence, so the result can be iterated any number of times.
func (t *Tree) Traverse(id string, mode TraversalMode) []*Node {
	start, ok := t.nodes[id]
	if !ok {
		return nil
	}
	out := []*Node{start}
	queue := append([]string(nil), start.Children...)
	for len(queue) > 0 {
		n := t.nodes[queue[0]]
		out = append(out, n)
		if mode == DepthFirst {
			queue = append(append([]string(nil), n.Children...), queue[1:]...)
		} else {
			queue = append(queue[1:], n.Children...)
		}
	}
	return out
}

// Display writes an indented dump of the subtree rooted at id. Diagnostic
// output only.
func (t *Tree) Display(w io.Writer, id string) {
	t.display(w, id, 0)
}

func (t *Tree) display(w io.Writer, id string, depth int) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	fmt.Fprintf(w, "%s%s: %+v\n", strings.Repeat("  ", depth), id, n.Label)
	for _, child := range n.Children {
		t.display(w, child, depth+1)
	}
}
