package splay

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// EmptyTree is the rendering of a map without entries.
const EmptyTree = "Tree is empty\n"

// String renders the shape of the tree, one line per node with branch
// connectors. Children are listed left before right; missing children are
// skipped. It does not splay and does not count as a search.
//
// The output is a debug view: the root line has no connector and an absent
// packet is shown as "-".
//
// Example:
//
//	10.0.0.5 (Packet: A)
//	├── 10.0.0.1 (Packet: B)
//	└── 10.0.0.9 (Packet: -)
func (m *Map) String() string {
	if m.root == nil {
		return EmptyTree
	}
	tree := treeprint.NewWithRoot(label(m.root))
	addChildren(tree, m.root)
	return tree.String()
}

// addChildren adds the children of n as branches of the given tree
func addChildren(tree treeprint.Tree, n *Node) {
	for _, child := range [2]*Node{n.left, n.right} {
		if child == nil {
			continue
		}
		addChildren(tree.AddBranch(label(child)), child)
	}
}

func label(n *Node) string {
	return fmt.Sprintf("%s (Packet: %s)", n.key, packetString(n.value))
}
