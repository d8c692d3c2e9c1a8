package member

import (
	"fmt"
	"sort"
	"sync"

	"fortio.org/safecast"

	"hostlink/internal/host"
)

// TypeGroupID identifies a generic-arity type family in the arena.
type TypeGroupID uint32

const (
	// NoTypeGroupID marks the absence of a type group reference.
	NoTypeGroupID TypeGroupID = 0
)

// IsValid reports whether the ID refers to an allocated group.
func (id TypeGroupID) IsValid() bool { return id != NoTypeGroupID }

// TypeGroup accumulates arity-distinct types sharing one simple name.
type TypeGroup struct {
	Name    string
	ByArity map[int]host.Type
}

// TypeGroups stores type families in a compact slice-based arena. The arena
// carries its own lock: published trackers keep reading families while
// incremental scans merge new arities into them, so growth, merging and every
// read go through the arena's RWMutex.
type TypeGroups struct {
	mu   sync.RWMutex
	data []TypeGroup
}

// NewTypeGroups creates an arena with optional capacity hint.
func NewTypeGroups(capacity uint32) *TypeGroups {
	if capacity == 0 {
		capacity = 16
	}
	return &TypeGroups{
		data: make([]TypeGroup, 1, capacity+1), // index 0 reserved for NoTypeGroupID
	}
}

// New allocates a fresh group for the given simple name.
func (a *TypeGroups) New(name string) TypeGroupID {
	a.mu.Lock()
	defer a.mu.Unlock()
	value, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("type group arena overflow: %w", err))
	}
	id := TypeGroupID(value)
	a.data = append(a.data, TypeGroup{
		Name:    name,
		ByArity: make(map[int]host.Type, 2),
	})
	return id
}

// get returns the group slot. Callers must hold the lock.
func (a *TypeGroups) get(id TypeGroupID) *TypeGroup {
	if !id.IsValid() || int(id) >= len(a.data) {
		return nil
	}
	return &a.data[id]
}

// Len reports the number of groups excluding the sentinel.
func (a *TypeGroups) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.data) - 1
}

// MergeArity folds a newly discovered type into the family. A later type with
// an already-known arity replaces the earlier entry, so a rescan or a newer
// module wins; distinctness per arity is the classifier's concern, not the
// arena's.
func (a *TypeGroups) MergeArity(id TypeGroupID, arity int, t host.Type) {
	a.mu.Lock()
	defer a.mu.Unlock()
	g := a.get(id)
	if g == nil {
		panic(fmt.Errorf("member: invalid TypeGroupID %d", id))
	}
	g.ByArity[arity] = t
}

// Name returns the simple name of the group, or "" for an invalid ID.
func (a *TypeGroups) Name(id TypeGroupID) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if g := a.get(id); g != nil {
		return g.Name
	}
	return ""
}

// ByArity returns the family member with the requested generic arity.
func (a *TypeGroups) ByArity(id TypeGroupID, arity int) (host.Type, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	g := a.get(id)
	if g == nil {
		return nil, false
	}
	typ, ok := g.ByArity[arity]
	return typ, ok
}

// Arities returns the known arities of the group in ascending order.
func (a *TypeGroups) Arities(id TypeGroupID) []int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	g := a.get(id)
	if g == nil {
		return nil
	}
	out := make([]int, 0, len(g.ByArity))
	for arity := range g.ByArity {
		out = append(out, arity)
	}
	sort.Ints(out)
	return out
}
