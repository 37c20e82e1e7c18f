package splay

// Entry is a key with its optional payload. It is used to seed a Map and
// as the element type of Entries.
type Entry struct {
	Key   string  `json:"key"`
	Value *string `json:"value,omitempty"`
}

// Node holds one key/value pair of a Map together with its tree linkage.
// The parent reference is only used for splaying and always points at the
// node whose left or right child this node is (nil for the root).
type Node struct {
	key    string
	value  *string
	left   *Node
	right  *Node
	parent *Node
}

// Key returns the key of the node.
func (n *Node) Key() string {
	return n.key
}

// Value returns the payload of the node or nil if it has none.
func (n *Node) Value() *string {
	return n.value
}

// Left returns the left child or nil.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the right child or nil.
func (n *Node) Right() *Node {
	return n.right
}

// Parent returns the parent or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// String returns the node in the form "IP: <key>, Packet: <value>".
func (n *Node) String() string {
	return "IP: " + n.key + ", Packet: " + packetString(n.value)
}

// isLeftChild reports whether n hangs on the left side of its parent.
func (n *Node) isLeftChild() bool {
	return n.parent != nil && n.parent.left == n
}

// packetString formats an optional payload, "-" if absent
func packetString(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
