package splay

// --------------------------------------------------------------------------
// Core Map structure
// --------------------------------------------------------------------------

// Map is an ordered map from string keys to optional string payloads, backed
// by a splay tree. Every access that locates a node moves it to the root.
//
// Keys are compared as plain strings, so "192.168.1.9" sorts after
// "192.168.1.100". No validation is done on keys.
//
// Thread-safety: Map is not safe for concurrent use. Even Search mutates the
// tree, so callers sharing a Map must serialize all calls with one lock.
type Map struct {
	root        *Node
	size        int
	searchCount uint64
}

// New creates a map and inserts the given entries in order. Later entries
// with an already present key overwrite the value like Insert does.
func New(seed ...Entry) *Map {
	m := &Map{}
	for _, e := range seed {
		m.Insert(e.Key, e.Value)
	}
	return m
}

// Len returns the number of keys in the map.
func (m *Map) Len() int {
	return m.size
}

// SearchCount returns how often Search has been called (hits and misses).
func (m *Map) SearchCount() uint64 {
	return m.searchCount
}

// Root returns the current root node or nil if the map is empty.
func (m *Map) Root() *Node {
	return m.root
}

// --------------------------------------------------------------------------
// Write Operations
// --------------------------------------------------------------------------

// Insert stores value under key and splays the node to the root.
// If the key already exists its value is replaced (a nil value clears it)
// and false is returned. For a new key a leaf is created and true is returned.
func (m *Map) Insert(key string, value *string) bool {
	var parent *Node
	current := m.root

	for current != nil {
		parent = current
		switch {
		case key < current.key:
			current = current.left
		case key > current.key:
			current = current.right
		default:
			current.value = value
			m.splay(current)
			return false
		}
	}

	node := &Node{key: key, value: value, parent: parent}
	switch {
	case parent == nil:
		m.root = node
	case key < parent.key:
		parent.left = node
	default:
		parent.right = node
	}

	m.splay(node)
	m.size++
	return true
}

// Delete removes key from the map. The key is first located with Search, so
// every call counts as one search and a hit is splayed to the root before it
// is unlinked. Returns false if the key was not present.
func (m *Map) Delete(key string) bool {
	node := m.Search(key)
	if node == nil {
		return false
	}

	switch {
	case node.left == nil:
		m.replace(node, node.right)
	case node.right == nil:
		m.replace(node, node.left)
	default:
		successor := minimum(node.right)
		if successor.parent != node {
			m.replace(successor, successor.right)
			successor.right = node.right
			successor.right.parent = successor
		}
		m.replace(node, successor)
		successor.left = node.left
		successor.left.parent = successor
	}

	node.left, node.right, node.parent = nil, nil, nil
	m.size--
	return true
}

// Update changes the value and/or the key of an existing entry.
//
//   - oldKey: the key to update, located without counting as a search
//   - newKey: the new key (nil or equal to oldKey = keep the key)
//   - newValue: the new value (nil = keep the current value)
//
// If the key is kept, the node is splayed to the root and replacedKey is nil.
// If the key changes, the entry is removed with Delete and re-added with
// Insert under newKey, carrying newValue or else the old value. The new key
// ends up at the root and replacedKey points to oldKey.
// oldValue is the value before the update. ok is false if oldKey is absent.
func (m *Map) Update(oldKey string, newKey, newValue *string) (ok bool, replacedKey, oldValue *string) {
	node := m.find(oldKey)
	if node == nil {
		return false, nil, nil
	}
	oldValue = node.value

	if newKey == nil || *newKey == oldKey {
		if newValue != nil {
			node.value = newValue
		}
		m.splay(node)
		return true, nil, oldValue
	}

	carry := oldValue
	if newValue != nil {
		carry = newValue
	}
	m.Delete(oldKey)
	m.Insert(*newKey, carry)

	return true, &oldKey, oldValue
}

// --------------------------------------------------------------------------
// Query Operations
// --------------------------------------------------------------------------

// Search looks up key and splays the node to the root on a hit.
// Every call increments the search counter, also when the key is absent.
// A miss leaves the tree unchanged and returns nil.
func (m *Map) Search(key string) *Node {
	m.searchCount++
	node := m.find(key)
	if node != nil {
		m.splay(node)
	}
	return node
}

// InOrder returns all nodes sorted by key. The tree is not splayed and the
// search counter is not touched.
func (m *Map) InOrder() []*Node {
	nodes := make([]*Node, 0, m.size)
	walkInOrder(m.root, func(n *Node) {
		nodes = append(nodes, n)
	})
	return nodes
}

// Entries returns a sorted snapshot of all keys and values.
func (m *Map) Entries() []Entry {
	entries := make([]Entry, 0, m.size)
	walkInOrder(m.root, func(n *Node) {
		entries = append(entries, Entry{Key: n.key, Value: n.value})
	})
	return entries
}

// find walks the tree without splaying or counting
func (m *Map) find(key string) *Node {
	current := m.root
	for current != nil {
		switch {
		case key < current.key:
			current = current.left
		case key > current.key:
			current = current.right
		default:
			return current
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Rotations and Splaying
// --------------------------------------------------------------------------

// rotateLeft lifts the right child of x into the position of x.
func (m *Map) rotateLeft(x *Node) {
	y := x.right
	if y == nil {
		return
	}
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	m.relink(x, y)
	y.left = x
	x.parent = y
}

// rotateRight lifts the left child of x into the position of x.
func (m *Map) rotateRight(x *Node) {
	y := x.left
	if y == nil {
		return
	}
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	m.relink(x, y)
	y.right = x
	x.parent = y
}

// splay rotates n up until it is the root.
//
//   - zig: the parent is the root, one rotation
//   - zig-zig: n and its parent are on the same side, rotate the grandparent
//     and then the parent in the same direction
//   - zig-zag: n and its parent are on opposite sides, rotate the parent and
//     then the former grandparent in the opposite direction; n ends with its
//     old parent and grandparent as children
func (m *Map) splay(n *Node) {
	for n.parent != nil {
		parent := n.parent
		grandparent := parent.parent
		nLeft := parent.left == n

		switch {
		case grandparent == nil:
			if nLeft {
				m.rotateRight(parent)
			} else {
				m.rotateLeft(parent)
			}
		case nLeft && parent.isLeftChild():
			m.rotateRight(grandparent)
			m.rotateRight(parent)
		case !nLeft && !parent.isLeftChild():
			m.rotateLeft(grandparent)
			m.rotateLeft(parent)
		case !nLeft:
			// parent is a left child
			m.rotateLeft(parent)
			m.rotateRight(grandparent)
		default:
			// n is a left child, parent is a right child
			m.rotateRight(parent)
			m.rotateLeft(grandparent)
		}
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// relink makes replacement take the slot of old under old's parent
// (or the root slot). The children of replacement are not touched.
func (m *Map) relink(old, replacement *Node) {
	replacement.parent = old.parent
	switch {
	case old.parent == nil:
		m.root = replacement
	case old.parent.left == old:
		old.parent.left = replacement
	default:
		old.parent.right = replacement
	}
}

// replace puts v (possibly nil) into the slot of u.
func (m *Map) replace(u, v *Node) {
	switch {
	case u.parent == nil:
		m.root = v
	case u.parent.left == u:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	if v != nil {
		v.parent = u.parent
	}
}

// minimum returns the leftmost node of the subtree rooted at n
func minimum(n *Node) *Node {
	for n.left != nil {
		n = n.left
	}
	return n
}

// walkInOrder visits the subtree rooted at n in ascending key order
func walkInOrder(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	walkInOrder(n.left, visit)
	visit(n)
	walkInOrder(n.right, visit)
}
