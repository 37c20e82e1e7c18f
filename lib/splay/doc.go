// Package splay implements an ordered map from IP-address strings to optional
// data packets, backed by a self-adjusting binary search tree (splay tree).
//
// The package focuses on:
//   - Insert, Search, Delete and Update that keep the most recently accessed
//     key at the root of the tree
//   - An in-order snapshot of all entries
//   - A human-readable rendering of the tree shape for inspection
//
// Key Components:
//
//   - Map: The tree itself. It tracks the number of keys (Len) and how often
//     Search was called (SearchCount). Keys are ordered by plain string
//     comparison, not by numeric octets: "192.168.1.9" sorts after
//     "192.168.1.100". Keys are never validated.
//
//   - Node: A single entry with its links. Nodes returned by Search, Root and
//     InOrder stay owned by the map and must not be kept across deletions.
//
// Splaying:
//
//	After a node is located it is rotated up to the root:
//	1. zig: the parent is the root, one single rotation
//	2. zig-zig: node and parent are both left (or both right) children,
//	   the grandparent is rotated first, then the parent
//	3. zig-zag: node and parent are children on opposite sides, the node is
//	   rotated up twice in opposite directions
//
// Deletion:
//
//	Delete first runs a regular Search (so every delete counts as one search
//	and splays the node to the root), then unlinks the node. A node with two
//	children is replaced by its in-order successor, which takes over both
//	subtrees. No second splay happens.
//
// Update:
//
//	Update locates the key without counting a search. If only the value changes,
//	the node is splayed to the root. If the key changes, Update runs a full
//	Delete followed by a full Insert, so the new key ends at the root and the
//	delete registers as one search.
//
// Thread Safety:
//
//	A Map is not safe for concurrent use. All operations, including Search,
//	modify the tree. Callers sharing a Map must guard it with a single lock
//	(see the lregistry package).
//
// Usage Example:
//
//	packet := "PKT-1234"
//	m := splay.New()
//	m.Insert("192.168.1.10", &packet)
//	if node := m.Search("192.168.1.10"); node != nil {
//		fmt.Println(node) // IP: 192.168.1.10, Packet: PKT-1234
//	}
//	fmt.Print(m)
package splay
