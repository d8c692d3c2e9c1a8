package member

import (
	"hostlink/internal/diag"
	"hostlink/internal/host"
)

// Tracker is the bindable form of a descriptor. An unbound tracker stands for
// a static/shared member; BindTo produces a new instance-scoped tracker and
// never mutates the receiver. Trackers are immutable after construction, so a
// published tracker is safe to share across threads.
type Tracker interface {
	Kind() host.Category
	Name() string
	// Value produces the readable value of the member, or the access error
	// the member reports instead.
	Value() (host.Value, error)
	// CallTarget exposes the member as an invokable object when the category
	// supports calling.
	CallTarget() (host.Callable, bool)
	// BindTo returns an instance-scoped copy of the tracker.
	BindTo(recv host.Value) Tracker
}

// FieldTracker reads a field (or a generic stored value) off its receiver.
type FieldTracker struct {
	desc  host.Descriptor
	recv  host.Value
	bound bool
}

// NewFieldTracker wraps a field descriptor into an unbound tracker.
func NewFieldTracker(desc host.Descriptor) *FieldTracker {
	return &FieldTracker{desc: desc}
}

func (t *FieldTracker) Kind() host.Category { return host.CategoryField }
func (t *FieldTracker) Name() string        { return t.desc.Name }

func (t *FieldTracker) Value() (host.Value, error) {
	if !t.desc.FieldReadable {
		return host.Value{}, diag.Errorf(diag.BindWriteOnly, subjectOf(t.desc), t.desc.Name,
			"field is write-only")
	}
	return t.desc.FieldGet(t.recv)
}

func (t *FieldTracker) CallTarget() (host.Callable, bool) { return nil, false }

func (t *FieldTracker) BindTo(recv host.Value) Tracker {
	return &FieldTracker{desc: t.desc, recv: recv, bound: true}
}

// PropertyTracker exposes a property getter. Indexed properties surface as a
// bound indexer object instead of an eager getter call.
type PropertyTracker struct {
	desc  host.Descriptor
	recv  host.Value
	bound bool
}

// NewPropertyTracker wraps a property descriptor into an unbound tracker.
func NewPropertyTracker(desc host.Descriptor) *PropertyTracker {
	return &PropertyTracker{desc: desc}
}

func (t *PropertyTracker) Kind() host.Category { return host.CategoryProperty }
func (t *PropertyTracker) Name() string        { return t.desc.Name }

func (t *PropertyTracker) Value() (host.Value, error) {
	if t.desc.Getter == nil {
		return host.Value{}, diag.Errorf(diag.BindWriteOnly, subjectOf(t.desc), t.desc.Name,
			"property has no getter")
	}
	if t.desc.Indexed {
		return host.Value{Data: &BoundIndexer{getter: t.desc.Getter, recv: t.recv}}, nil
	}
	return t.desc.Getter.Invoke(t.recv)
}

func (t *PropertyTracker) CallTarget() (host.Callable, bool) {
	if !t.desc.Indexed || t.desc.Getter == nil {
		return nil, false
	}
	return &BoundIndexer{getter: t.desc.Getter, recv: t.recv}, true
}

func (t *PropertyTracker) BindTo(recv host.Value) Tracker {
	return &PropertyTracker{desc: t.desc, recv: recv, bound: true}
}

// MethodGroupTracker wraps an overload set as one callable value.
type MethodGroupTracker struct {
	name      string
	declaring host.Type
	overloads []host.Signature
	recv      host.Value
	bound     bool
}

// NewMethodGroupTracker collects the overloads of every descriptor in the
// group into one unbound tracker.
func NewMethodGroupTracker(group host.Group) *MethodGroupTracker {
	t := &MethodGroupTracker{}
	for i := range group {
		d := &group[i]
		if t.name == "" {
			t.name = d.Name
			t.declaring = d.Declaring
		}
		t.overloads = append(t.overloads, d.Overloads...)
	}
	return t
}

func (t *MethodGroupTracker) Kind() host.Category { return host.CategoryMethodGroup }
func (t *MethodGroupTracker) Name() string        { return t.name }

// Bound reports whether the tracker carries a receiver.
func (t *MethodGroupTracker) Bound() bool { return t.bound }

// Overloads returns the signatures wrapped by the group.
func (t *MethodGroupTracker) Overloads() []host.Signature { return t.overloads }

func (t *MethodGroupTracker) Value() (host.Value, error) {
	return host.Value{Data: t}, nil
}

func (t *MethodGroupTracker) CallTarget() (host.Callable, bool) { return t, true }

func (t *MethodGroupTracker) BindTo(recv host.Value) Tracker {
	return &MethodGroupTracker{
		name:      t.name,
		declaring: t.declaring,
		overloads: t.overloads,
		recv:      recv,
		bound:     true,
	}
}

func (t *MethodGroupTracker) subject() string {
	if t.declaring != nil {
		return t.declaring.FullName()
	}
	return "<unknown>"
}

// Invoke dispatches to the overload matching the argument count. An instance
// overload reached through an unbound group reports an error instead of
// calling with a zero receiver. Richer overload resolution (parameter types,
// conversions) belongs to the host language's call binder, not to member
// tracking.
func (t *MethodGroupTracker) Invoke(args ...host.Value) (host.Value, error) {
	for i := range t.overloads {
		sig := &t.overloads[i]
		if sig.ParamCount != len(args) {
			continue
		}
		if !sig.Static && !t.bound {
			return host.Value{}, diag.Errorf(diag.BindArgumentCount, t.subject(), t.name,
				"instance method requires a receiver")
		}
		return sig.Invoke(t.recv, args...)
	}
	return host.Value{}, diag.Errorf(diag.BindArgumentCount, t.subject(), t.name,
		"no overload takes %d arguments", len(args))
}

// EventTracker binds an event descriptor plus receiver into a subscribable
// value.
type EventTracker struct {
	desc  host.Descriptor
	recv  host.Value
	bound bool
}

// NewEventTracker wraps an event descriptor into an unbound tracker.
func NewEventTracker(desc host.Descriptor) *EventTracker {
	return &EventTracker{desc: desc}
}

func (t *EventTracker) Kind() host.Category { return host.CategoryEvent }
func (t *EventTracker) Name() string        { return t.desc.Name }

func (t *EventTracker) Value() (host.Value, error) {
	if !t.bound {
		return host.Value{Data: t}, nil
	}
	return host.Value{Data: &BoundEvent{desc: t.desc, recv: t.recv}}, nil
}

func (t *EventTracker) CallTarget() (host.Callable, bool) { return nil, false }

func (t *EventTracker) BindTo(recv host.Value) Tracker {
	return &EventTracker{desc: t.desc, recv: recv, bound: true}
}

// TypeTracker exposes a concrete host type as a value.
type TypeTracker struct {
	typ   host.Type
	arity int
}

// NewTypeTracker wraps a host type handle.
func NewTypeTracker(typ host.Type, arity int) *TypeTracker {
	return &TypeTracker{typ: typ, arity: arity}
}

func (t *TypeTracker) Kind() host.Category { return host.CategoryNestedType }
func (t *TypeTracker) Name() string        { return t.typ.Name() }

// Type returns the wrapped handle.
func (t *TypeTracker) Type() host.Type { return t.typ }

// Arity returns the generic arity of the wrapped type.
func (t *TypeTracker) Arity() int { return t.arity }

func (t *TypeTracker) Value() (host.Value, error) { return host.Value{Data: t}, nil }
func (t *TypeTracker) CallTarget() (host.Callable, bool) { return nil, false }

// BindTo is the identity: types are static members.
func (t *TypeTracker) BindTo(host.Value) Tracker { return t }

// TypeGroupTracker exposes a generic-arity family through its arena slot. The
// slot keeps accumulating arities across module scans, so the tracker sees
// later discoveries without being rebuilt.
type TypeGroupTracker struct {
	groups *TypeGroups
	id     TypeGroupID
}

// NewTypeGroupTracker wraps an arena slot.
func NewTypeGroupTracker(groups *TypeGroups, id TypeGroupID) *TypeGroupTracker {
	return &TypeGroupTracker{groups: groups, id: id}
}

func (t *TypeGroupTracker) Kind() host.Category { return host.CategoryTypeGroup }

// GroupID returns the arena slot backing the tracker.
func (t *TypeGroupTracker) GroupID() TypeGroupID { return t.id }

func (t *TypeGroupTracker) Name() string { return t.groups.Name(t.id) }

// ByArity returns the family member with the requested generic arity.
func (t *TypeGroupTracker) ByArity(arity int) (host.Type, bool) {
	return t.groups.ByArity(t.id, arity)
}

// Arities returns the known arities of the family in ascending order.
func (t *TypeGroupTracker) Arities() []int { return t.groups.Arities(t.id) }

func (t *TypeGroupTracker) Value() (host.Value, error) { return host.Value{Data: t}, nil }
func (t *TypeGroupTracker) CallTarget() (host.Callable, bool) { return nil, false }

// BindTo is the identity: type groups are static members.
func (t *TypeGroupTracker) BindTo(host.Value) Tracker { return t }

// ErrorTracker carries a build-time classification failure so the rule body
// can replay it.
type ErrorTracker struct {
	err *diag.Error
}

// NewErrorTracker wraps a taxonomy error.
func NewErrorTracker(err *diag.Error) *ErrorTracker { return &ErrorTracker{err: err} }

func (t *ErrorTracker) Kind() host.Category { return host.CategoryMissing }

func (t *ErrorTracker) Name() string { return t.err.Member }

func (t *ErrorTracker) Value() (host.Value, error) { return host.Value{}, t.err }

func (t *ErrorTracker) CallTarget() (host.Callable, bool) { return nil, false }

func (t *ErrorTracker) BindTo(host.Value) Tracker { return t }

// Err returns the wrapped taxonomy error.
func (t *ErrorTracker) Err() *diag.Error { return t.err }
