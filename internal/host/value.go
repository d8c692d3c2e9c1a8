package host

// Value is one runtime value crossing the boundary between the scripting
// runtime and the host platform. Type is the introspectable host type of the
// payload; it is nil for values the host has no static view of (sentinels,
// bound helper objects).
type Value struct {
	Type Type
	Data any
}

// IsZero reports whether the value carries neither a type nor a payload.
func (v Value) IsZero() bool { return v.Type == nil && v.Data == nil }

// Callable is an invokable host object: a bound method group, a bound
// indexer, or anything else the binder exposes as a call target.
type Callable interface {
	Invoke(args ...Value) (Value, error)
}

type failedSentinel struct{}

type notHandledSentinel struct{}

// OperationFailed is the sentinel value a no-throw resolution returns instead
// of raising a missing-member or access-denied error.
var OperationFailed = Value{Data: failedSentinel{}}

// NotHandled is the sentinel a member-injection hook returns to hand
// resolution back to the built-in categories.
var NotHandled = Value{Data: notHandledSentinel{}}

// IsOperationFailed reports whether v is the no-throw failure sentinel.
func IsOperationFailed(v Value) bool {
	_, ok := v.Data.(failedSentinel)
	return ok
}

// IsNotHandled reports whether v is the injection-hook fall-through sentinel.
func IsNotHandled(v Value) bool {
	_, ok := v.Data.(notHandledSentinel)
	return ok
}
