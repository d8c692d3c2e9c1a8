package namespace

import (
	"sort"

	"hostlink/internal/host"
	"hostlink/internal/member"
)

// Tracker is the bindable view over one namespace node. It implements
// member.Tracker so namespace values flow through the binder like any other
// member, and adds the package-lookup operations.
type Tracker struct {
	top  *Top
	node NodeID
}

func (t *Tracker) Kind() host.Category { return host.CategoryNamespace }

func (t *Tracker) Name() string {
	if n := t.top.nodes.Get(t.node); n != nil {
		return n.Segment
	}
	return ""
}

// FullName returns the dotted path of the node from the root.
func (t *Tracker) FullName() string {
	if n := t.top.nodes.Get(t.node); n != nil {
		return n.Path
	}
	return ""
}

func (t *Tracker) Value() (host.Value, error) {
	return host.Value{Data: t}, nil
}

func (t *Tracker) CallTarget() (host.Callable, bool) { return nil, false }

// BindTo is the identity: namespaces are static members.
func (t *Tracker) BindTo(host.Value) member.Tracker { return t }

// TryGetPackage looks up a child namespace by name, triggering
// initialization and any pending module scan first. Contained types are not
// considered; missing names report absence, never an error.
func (t *Tracker) TryGetPackage(name string) (*Tracker, bool) {
	t.top.ensureInitialized()
	return t.childPackage(name)
}

// TryGetPackageAny looks up a child namespace or a directly contained type,
// triggering initialization and any pending module scan first.
func (t *Tracker) TryGetPackageAny(name string) (member.Tracker, bool) {
	t.top.ensureInitialized()
	return t.lookupAny(name)
}

// TryGetPackageLazy is the fast path: it consults only what previous scans
// already materialized and never triggers discovery.
func (t *Tracker) TryGetPackageLazy(name string) (member.Tracker, bool) {
	return t.lookupAny(name)
}

func (t *Tracker) childPackage(name string) (*Tracker, bool) {
	t.top.mu.RLock()
	defer t.top.mu.RUnlock()
	n := t.top.nodes.Get(t.node)
	if n == nil {
		return nil, false
	}
	id, ok := n.Children[Normalize(name)]
	if !ok {
		return nil, false
	}
	return &Tracker{top: t.top, node: id}, true
}

func (t *Tracker) lookupAny(name string) (member.Tracker, bool) {
	t.top.mu.RLock()
	defer t.top.mu.RUnlock()
	n := t.top.nodes.Get(t.node)
	if n == nil {
		return nil, false
	}
	key := Normalize(name)
	if id, ok := n.Children[key]; ok {
		return &Tracker{top: t.top, node: id}, true
	}
	if tr, ok := n.Types[key]; ok {
		return tr, true
	}
	return nil, false
}

// Children returns the child segment names in sorted order.
func (t *Tracker) Children() []string {
	t.top.mu.RLock()
	defer t.top.mu.RUnlock()
	n := t.top.nodes.Get(t.node)
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Children))
	for seg := range n.Children {
		out = append(out, seg)
	}
	sort.Strings(out)
	return out
}

// TypeNames returns the simple names of directly contained types in sorted
// order.
func (t *Tracker) TypeNames() []string {
	t.top.mu.RLock()
	defer t.top.mu.RUnlock()
	n := t.top.nodes.Get(t.node)
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Types))
	for name := range n.Types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
