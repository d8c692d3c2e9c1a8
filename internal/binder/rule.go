package binder

import (
	"errors"

	"hostlink/internal/host"
)

// ErrGuardMismatch reports a replay against a receiver the rule was not built
// for. The call-site cache treats it as a miss and rebuilds.
var ErrGuardMismatch = errors.New("binder: receiver shape does not match rule guard")

// GuardKind selects how a rule tests its receiver.
type GuardKind uint8

const (
	GuardInvalid GuardKind = iota
	// GuardType tests the receiver's runtime type against the type observed
	// at build time.
	GuardType
	// GuardIdentity tests the receiver payload's identity. Used for
	// namespace and type-tracker receivers and for boxed references, whose
	// shape is the particular object rather than a type.
	GuardIdentity
)

func (k GuardKind) String() string {
	switch k {
	case GuardType:
		return "type"
	case GuardIdentity:
		return "identity"
	default:
		return "invalid"
	}
}

// Guard is the cacheable receiver test of a rule.
type Guard struct {
	Kind     GuardKind
	Type     host.Type
	Identity any
}

// Match reports whether the receiver fits the shape observed at build time.
func (g Guard) Match(recv host.Value) bool {
	switch g.Kind {
	case GuardType:
		return recv.Type == g.Type
	case GuardIdentity:
		return recv.Data == g.Identity
	default:
		return false
	}
}

// Equal reports whether two guards test the same shape.
func (g Guard) Equal(other Guard) bool {
	return g.Kind == other.Kind && g.Type == other.Type && g.Identity == other.Identity
}

// Rule is one finished resolution: a guard plus the body replayed on every
// hit. Rules are immutable after construction and safe to publish to a shared
// call-site cache.
type Rule struct {
	guard Guard
	body  Body
}

// Guard returns the receiver test.
func (r Rule) Guard() Guard { return r.guard }

// Body returns the emitted body.
func (r Rule) Body() Body { return r.body }

// Invoke replays the rule against a receiver. Build-time failures embedded in
// the body surface here, not during Resolve.
func (r Rule) Invoke(recv host.Value) (host.Value, error) {
	if !r.guard.Match(recv) {
		return host.Value{}, ErrGuardMismatch
	}
	return r.body.run(recv)
}

// Equal reports whether two rules have equivalent guards and bodies. Replays
// of Resolve with an identical introspection result produce equal rules.
func (r Rule) Equal(other Rule) bool {
	return r.guard.Equal(other.guard) && r.body.Equal(other.body)
}
