package calltree

import (
	"fmt"
	"io"
)

type (
	// Label carries the profiling data attached to a call. Time is the
	// inclusive time spent in the call, expressed as a fraction of the
	// root's inclusive time. Offset is the horizontal start position of
	// the call's bar in a flame plot, filled in by CallTree.TimeOffset.
	Label struct {
		Level  int     `json:"level"`
		Time   float64 `json:"time"`
		Calls  float64 `json:"calls"`
		Name   string  `json:"name"`
		Offset float64 `json:"offset"`
	}

	// Node is a single call in the tree. Parent and Children hold
	// identifiers, not pointers, all resolved through the owning Tree.
	// Parent is empty for the root. Children keep insertion order, which
	// is the order calls were discovered in the report.
	Node struct {
		ID       string   `json:"id"`
		Label    Label    `json:"label"`
		Parent   string   `json:"parent,omitempty"`
		Children []string `json:"children,omitempty"`
	}
)

func (n *Node) addChild(id string) {
	n.Children = append(n.Children, id)
}

func (n *Node) display(w io.Writer) {
	fmt.Fprintf(w, "%d: %s(%g) - %.3f\n", n.Label.Level, n.Label.Name, n.Label.Calls, n.Label.Time)
}
