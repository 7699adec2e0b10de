package scene

import (
	"github.com/jmylchreest/poptip/internal/display"
	"github.com/jmylchreest/poptip/internal/model"
)

// Node is a view in the scene tree. Its frame is in its parent's coordinate space.
type Node struct {
	Name string
	Kind display.ViewKind

	frame    model.Rect
	parent   *Node
	children []*Node
}

// NewNode creates a detached node.
func NewNode(name string, kind display.ViewKind, frame model.Rect) *Node {
	return &Node{Name: name, Kind: kind, frame: frame}
}

// Add attaches children to n, detaching them from any previous parent, and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Remove()
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Parent returns n's parent or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns n's children in insertion order.
func (n *Node) Children() []*Node { return n.children }

// Frame returns n's frame in its parent's space.
func (n *Node) Frame() model.Rect { return n.frame }

// SetFrame moves and resizes n.
func (n *Node) SetFrame(r model.Rect) { n.frame = r }

// Bounds returns n's extent in its own space.
func (n *Node) Bounds() model.Rect { return model.Rect{Size: n.frame.Size} }

// WindowOrigin returns n's origin in the root's space. A root's own frame
// origin is ignored.
func (n *Node) WindowOrigin() model.Point {
	var o model.Point
	for c := n; c != nil && c.parent != nil; c = c.parent {
		o = o.Add(c.frame.Origin)
	}
	return o
}

// WindowFrame returns n's frame in the root's space.
func (n *Node) WindowFrame() model.Rect {
	return model.Rect{Origin: n.WindowOrigin(), Size: n.frame.Size}
}

// Find returns the first node named name in n's subtree, depth first.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n's subtree depth first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}
