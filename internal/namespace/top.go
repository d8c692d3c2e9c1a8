package namespace

import (
	"sync"
	"sync/atomic"

	"hostlink/internal/host"
	"hostlink/internal/member"
)

// Top is the root of the process-wide namespace tree. It owns the code module
// registry, bootstraps the built-in modules exactly once, and incrementally
// folds newly registered modules into the tree.
//
// Registration, discovery scans and type-group accumulation all run under one
// writer lock so the append-only registry and the scan cursor never observe
// each other mid-update. Lookups take the reader side only; the one-shot
// bootstrap is a compare-and-set so concurrent first lookups collapse into a
// single winner.
type Top struct {
	mu          sync.RWMutex
	initialized atomic.Bool

	nodes  *Nodes
	root   NodeID
	groups *member.TypeGroups

	builtins []host.Module
	modules  []host.Module
	byName   map[string]int
	cursor   int

	subs    map[int]func(host.Module)
	nextSub int
}

// Options configure a Top tracker.
type Options struct {
	// Builtins are registered by the one-shot bootstrap before any user
	// module is scanned.
	Builtins []host.Module
	// NodeHint suggests the initial namespace arena capacity.
	NodeHint uint
	// GroupHint suggests the initial type-group arena capacity.
	GroupHint uint
}

// NewTop builds an empty tracker. Nothing is scanned until the first
// non-lazy lookup.
func NewTop(opts Options) *Top {
	nodes, root := NewNodes(uint32(min(opts.NodeHint, 1<<20)))
	t := &Top{
		nodes:    nodes,
		root:     root,
		groups:   member.NewTypeGroups(uint32(min(opts.GroupHint, 1<<20))),
		builtins: opts.Builtins,
		byName:   make(map[string]int),
		subs:     make(map[int]func(host.Module)),
	}
	return t
}

// Root returns the tracker for the tree root.
func (t *Top) Root() *Tracker {
	return &Tracker{top: t, node: t.root}
}

// Initialized reports whether the bootstrap already ran.
func (t *Top) Initialized() bool { return t.initialized.Load() }

// Modules returns the names of registered modules in registration order.
func (t *Top) Modules() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.modules))
	for i, m := range t.modules {
		out[i] = m.Name()
	}
	return out
}

// LoadModule appends a module to the registry. A module whose name is already
// registered is rejected: the call returns false, no notification fires and
// no rescan is triggered. On a fresh registration subscribers are notified
// synchronously, after the registry mutation committed and outside the lock,
// so a subscriber always observes a registry containing the new module.
//
// The module's types become reachable on the next lookup that triggers a
// scan; LoadModule itself does not walk the module.
func (t *Top) LoadModule(m host.Module) bool {
	t.mu.Lock()
	ok := t.loadLocked(m)
	var notify []func(host.Module)
	if ok {
		notify = make([]func(host.Module), 0, len(t.subs))
		for _, fn := range t.subs {
			notify = append(notify, fn)
		}
	}
	t.mu.Unlock()
	if !ok {
		return false
	}
	for _, fn := range notify {
		fn(m)
	}
	return true
}

func (t *Top) loadLocked(m host.Module) bool {
	name := m.Name()
	if _, dup := t.byName[name]; dup {
		return false
	}
	t.byName[name] = len(t.modules)
	t.modules = append(t.modules, m)
	return true
}

// Subscribe registers a module-loaded callback and returns its token.
func (t *Top) Subscribe(fn func(host.Module)) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextSub++
	token := t.nextSub
	t.subs[token] = fn
	return token
}

// Unsubscribe removes a callback by token.
func (t *Top) Unsubscribe(token int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.subs, token)
}

// ensureInitialized runs the one-shot bootstrap and folds any unscanned
// modules into the tree. Concurrent callers serialize on the writer lock; the
// compare-and-set picks a single bootstrap winner and everyone leaves with
// the scan cursor at the registry length.
func (t *Top) ensureInitialized() {
	if t.initialized.Load() {
		t.scanPending()
		return
	}
	t.mu.Lock()
	if t.initialized.CompareAndSwap(false, true) {
		for _, m := range t.builtins {
			t.loadLocked(m)
		}
	}
	t.scanLocked()
	t.mu.Unlock()
}

func (t *Top) scanPending() {
	t.mu.RLock()
	pending := t.cursor < len(t.modules)
	t.mu.RUnlock()
	if !pending {
		return
	}
	t.mu.Lock()
	t.scanLocked()
	t.mu.Unlock()
}

// scanLocked walks modules in [cursor, len) and inserts their types. The
// interval is exactly the set of modules the tree does not reflect yet, so a
// module is never walked twice.
func (t *Top) scanLocked() {
	for ; t.cursor < len(t.modules); t.cursor++ {
		for _, typ := range t.modules[t.cursor].Types() {
			t.insertTypeLocked(typ)
		}
	}
}

func (t *Top) insertTypeLocked(typ host.Type) {
	segments, simple := SplitPath(typ.FullName())
	node := t.root
	for _, seg := range segments {
		node = t.nodes.Child(node, seg)
	}
	arity := 0
	if g, ok := typ.(host.Generic); ok {
		arity = g.GenericArity()
	}
	n := t.nodes.Get(node)
	key := Normalize(simple)
	existing, ok := n.Types[key]
	if !ok {
		n.Types[key] = member.NewTypeTracker(typ, arity)
		return
	}
	switch prev := existing.(type) {
	case *member.TypeGroupTracker:
		t.groups.MergeArity(prev.GroupID(), arity, typ)
	case *member.TypeTracker:
		if prev.Arity() == arity {
			// Same name, same arity: the later module wins.
			n.Types[key] = member.NewTypeTracker(typ, arity)
			return
		}
		id := t.groups.New(simple)
		t.groups.MergeArity(id, prev.Arity(), prev.Type())
		t.groups.MergeArity(id, arity, typ)
		n.Types[key] = member.NewTypeGroupTracker(t.groups, id)
	default:
		n.Types[key] = member.NewTypeTracker(typ, arity)
	}
}
