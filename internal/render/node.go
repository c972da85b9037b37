package render

import (
	"context"
	"strings"

	"github.com/vk/reportgridgo/internal/selection"
)

// Node is a branch of the scope tree. It owns one selection and an
// ordered sequence of children. At render time the node first inherits
// any field its own selection leaves unset from the ambient selection,
// then renders every child with the enriched selection as their ambient
// context. Fields the node set itself are never overwritten.
type Node struct {
	sel      *selection.Selection
	children []Component
}

// NewNode returns a node carrying sel. A nil sel means an empty selection.
func NewNode(sel *selection.Selection) *Node {
	if sel == nil {
		sel = selection.New()
	}
	return &Node{sel: sel}
}

// AddChild appends a child component. Children render in insertion order.
func (n *Node) AddChild(child Component) {
	n.children = append(n.children, child)
}

// Render performs the pre-order inheritance walk described in the
// package comment and concatenates the children's fragments in order.
func (n *Node) Render(ctx context.Context, ambient *selection.Selection) (string, error) {
	n.sel.Inherit(ambient)

	var out strings.Builder
	for _, child := range n.children {
		fragment, err := child.Render(ctx, n.sel)
		if err != nil {
			return "", err
		}
		out.WriteString(fragment)
	}
	return out.String(), nil
}

// Clone deep-copies the node, its selection, and its subtree.
func (n *Node) Clone() Component {
	out := &Node{sel: n.sel.Clone()}
	for _, child := range n.children {
		out.children = append(out.children, child.Clone())
	}
	return out
}

// WithSelection returns a deep copy of the node carrying sel instead of
// the node's own selection. Block replication uses this to attach one
// replica of the shared child subtree under each block selection.
func (n *Node) WithSelection(sel *selection.Selection) *Node {
	out := &Node{sel: sel.Clone()}
	for _, child := range n.children {
		out.children = append(out.children, child.Clone())
	}
	return out
}
