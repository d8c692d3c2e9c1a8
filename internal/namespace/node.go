package namespace

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"hostlink/internal/member"
)

// NodeID identifies a namespace node in the tree arena.
type NodeID uint32

const (
	// NoNodeID marks the absence of a node reference.
	NoNodeID NodeID = 0
)

// IsValid reports whether the ID refers to an allocated node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

// Node is one segment of a dotted namespace path. Children and contained
// types are keyed by NFC-normalized names; nodes are created on demand and
// never removed, so a path, once materialized, stays valid for the process
// lifetime.
type Node struct {
	Path     string // full dotted path from the root, "" for the root itself
	Segment  string
	Children map[string]NodeID
	Types    map[string]member.Tracker
}

// Nodes stores namespace nodes in a compact slice-based arena.
type Nodes struct {
	data []Node
}

// NewNodes creates an arena with optional capacity hint. The root node is
// allocated eagerly.
func NewNodes(capacity uint32) (*Nodes, NodeID) {
	if capacity == 0 {
		capacity = 32
	}
	n := &Nodes{
		data: make([]Node, 1, capacity+2), // index 0 reserved for NoNodeID
	}
	root := n.newNode("", "")
	return n, root
}

func (n *Nodes) newNode(path, segment string) NodeID {
	value, err := safecast.Conv[uint32](len(n.data))
	if err != nil {
		panic(fmt.Errorf("namespace arena overflow: %w", err))
	}
	id := NodeID(value)
	n.data = append(n.data, Node{
		Path:     path,
		Segment:  segment,
		Children: make(map[string]NodeID),
		Types:    make(map[string]member.Tracker),
	})
	return id
}

// Get returns the node pointer or nil if ID is invalid.
func (n *Nodes) Get(id NodeID) *Node {
	if !id.IsValid() || int(id) >= len(n.data) {
		return nil
	}
	return &n.data[id]
}

// Len reports the number of nodes excluding the sentinel.
func (n *Nodes) Len() int { return len(n.data) - 1 }

// Child returns the child for the segment, creating it when absent.
func (n *Nodes) Child(parent NodeID, segment string) NodeID {
	p := n.Get(parent)
	if p == nil {
		return NoNodeID
	}
	segment = Normalize(segment)
	if id, ok := p.Children[segment]; ok {
		return id
	}
	path := segment
	if p.Path != "" {
		path = p.Path + "." + segment
	}
	id := n.newNode(path, segment)
	// Re-fetch: newNode may have grown the arena slice.
	n.Get(parent).Children[segment] = id
	return id
}

// Normalize maps a path segment or member name to its NFC form. Host surfaces
// and scripting front ends disagree on the normalization of non-ASCII
// identifiers, so every key entering the tree goes through here.
func Normalize(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// SplitPath splits a full dotted type name into namespace segments and the
// simple name.
func SplitPath(full string) (segments []string, simple string) {
	parts := strings.Split(full, ".")
	if len(parts) == 1 {
		return nil, parts[0]
	}
	return parts[:len(parts)-1], parts[len(parts)-1]
}
