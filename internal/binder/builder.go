package binder

import (
	"sync"

	"hostlink/internal/diag"
	"hostlink/internal/host"
	"hostlink/internal/member"
	"hostlink/internal/namespace"
)

// Options configure a Binder.
type Options struct {
	// AllowPrivateBinding makes non-public property getters usable. With the
	// flag off a private getter is reported as access denied.
	AllowPrivateBinding bool
}

// Binder builds guarded resolution rules for (receiver, member-name) pairs.
// One Binder is shared by all call sites; each Resolve owns its own builder
// state, so concurrent resolutions never interfere.
type Binder struct {
	opts Options

	mu         sync.Mutex
	groups     *member.TypeGroups
	groupIndex map[string]member.TypeGroupID
}

// New builds a Binder.
func New(opts Options) *Binder {
	return &Binder{
		opts:       opts,
		groups:     member.NewTypeGroups(0),
		groupIndex: make(map[string]member.TypeGroupID),
	}
}

// Resolve classifies the member access and compiles a guarded rule for it.
// Resolve never returns a Go error: every failure mode is embedded as a
// terminal error body, so the call-site cache always receives a valid,
// replayable rule for "this shape errors this way".
func (b *Binder) Resolve(recv host.Value, name string, staticCtx, noThrow bool) Rule {
	rb := &ruleBuilder{
		binder:    b,
		recv:      recv,
		name:      name,
		staticCtx: staticCtx,
		noThrow:   noThrow,
	}
	rb.capture()
	rb.lookup()
	return Rule{guard: rb.guard, body: rb.body}
}

// ruleBuilder is the per-resolution state machine: capture, lookup, classify,
// build, terminal. No step suspends; every failure ends in an error body.
type ruleBuilder struct {
	binder    *Binder
	recv      host.Value
	name      string
	staticCtx bool
	noThrow   bool

	guard Guard
	body  Body
}

// capture fixes the receiver guard. Tracker-backed receivers (namespaces,
// types) and boxed references guard on object identity; plain host values
// guard on their runtime type.
func (rb *ruleBuilder) capture() {
	rb.body.noThrow = rb.noThrow
	rb.body.memberName = rb.name
	rb.body.subject = subjectName(rb.recv)
	switch rb.recv.Data.(type) {
	case member.Tracker, host.Boxed:
		rb.guard = Guard{Kind: GuardIdentity, Identity: rb.recv.Data}
		return
	}
	if rb.recv.Type == nil {
		rb.guard = Guard{Kind: GuardIdentity, Identity: rb.recv.Data}
		return
	}
	rb.guard = Guard{Kind: GuardType, Type: rb.recv.Type}
}

// lookup queries member descriptors and drives classification and strategy
// building for the resolution.
func (rb *ruleBuilder) lookup() {
	// Legacy duck-typed protocol bypasses the categories entirely.
	if _, ok := rb.recv.Data.(host.CustomMemberProvider); ok {
		rb.body.append(Step{Kind: StepCustom, Name: rb.name})
		return
	}

	// Namespace receivers resolve through the tree, not through type
	// introspection.
	if ns, ok := rb.recv.Data.(*namespace.Tracker); ok {
		rb.buildNamespace(ns)
		return
	}

	// Member access on a type value is a static-context lookup on the
	// wrapped type.
	queryType := rb.recv.Type
	if tt, ok := rb.recv.Data.(*member.TypeTracker); ok {
		queryType = tt.Type()
		rb.staticCtx = true
	}

	// The injection hook runs before the built-in categories and may decline
	// at replay time, so it is emitted unconditionally when the capability
	// is present.
	if _, ok := rb.recv.Data.(host.MemberInjector); ok {
		rb.body.append(Step{Kind: StepInject, Name: rb.name})
	}

	if queryType == nil {
		rb.buildMissing()
		return
	}

	group := queryType.Members(rb.name)
	if len(group) == 0 {
		if boxed, ok := rb.recv.Data.(host.Boxed); ok {
			if inner, unboxed := boxed.Unbox(); unboxed && inner.Type != nil {
				rb.body.append(Step{Kind: StepUnwrap})
				rb.body.subject = subjectName(inner)
				group = inner.Type.Members(rb.name)
			}
		}
	}

	category, cerr := member.Classify(group)
	if cerr != nil {
		rb.raise(cerr)
		return
	}
	rb.build(category, group)
}

// build dispatches to the per-category strategy.
func (rb *ruleBuilder) build(category host.Category, group host.Group) {
	switch category {
	case host.CategoryField, host.CategoryCustom:
		rb.buildField(group[0])
	case host.CategoryProperty:
		rb.buildProperty(group[0])
	case host.CategoryMethodGroup:
		rb.buildMethodGroup(group)
	case host.CategoryEvent:
		rb.buildEvent(group[0])
	case host.CategoryNestedType, host.CategoryTypeGroup:
		rb.buildTypes(group)
	default:
		rb.buildMissing()
	}
}

// raise terminates the body with a taxonomy error, honoring the no-throw
// conversion for missing-member and access-denied failures.
func (rb *ruleBuilder) raise(err *diag.Error) {
	if rb.noThrow && (err.Code == diag.BindMissingMember || err.Code == diag.BindAccessDenied) {
		rb.body.append(Step{Kind: StepReturnValue, Value: host.OperationFailed})
		return
	}
	rb.body.append(Step{Kind: StepRaise, Err: err})
}

func subjectName(v host.Value) string {
	if v.Type != nil {
		return v.Type.FullName()
	}
	if tr, ok := v.Data.(member.Tracker); ok {
		return tr.Name()
	}
	return "<value>"
}
