// Package snapshot exports the namespace tree for tooling. The snapshot is a
// tooling artifact, not tracker state: the tree itself stays in-process and
// transient.
package snapshot

import (
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"hostlink/internal/diag"
	"hostlink/internal/namespace"
)

// Current schema version - increment when Payload format changes.
const schemaVersion uint16 = 1

// Package is one materialized namespace node.
type Package struct {
	Path     string
	Children []string
	Types    []string
}

// Payload is the serialized view of a namespace tree.
type Payload struct {
	Schema    uint16
	Modules   []string
	NodeCount uint32
	Packages  []Package
}

// Capture walks the tree breadth-first from the root and records every
// materialized package. A lookup-triggered scan must have happened already;
// Capture itself never triggers discovery.
func Capture(top *namespace.Top) *Payload {
	p := &Payload{
		Schema:  schemaVersion,
		Modules: top.Modules(),
	}
	queue := []*namespace.Tracker{top.Root()}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		children := node.Children()
		p.Packages = append(p.Packages, Package{
			Path:     node.FullName(),
			Children: children,
			Types:    node.TypeNames(),
		})
		for _, seg := range children {
			if child, ok := node.TryGetPackageLazy(seg); ok {
				if tracker, isNode := child.(*namespace.Tracker); isNode {
					queue = append(queue, tracker)
				}
			}
		}
	}
	count, err := safecast.Conv[uint32](len(p.Packages))
	if err != nil {
		panic(fmt.Errorf("snapshot node count overflow: %w", err))
	}
	p.NodeCount = count
	return p
}

// Write serializes the payload.
func (p *Payload) Write(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(p)
}

// Read deserializes a payload, rejecting snapshots from a different schema.
func Read(r io.Reader) (*Payload, error) {
	var p Payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, err
	}
	if p.Schema != schemaVersion {
		return nil, diag.Errorf(diag.ToolSnapshotStale, "snapshot", "",
			"schema %d does not match current %d", p.Schema, schemaVersion)
	}
	return &p, nil
}
