package host

// Type is the introspection capability an adapter provides for one host type.
// Members must be deterministic for a fixed name within a process lifetime;
// the binder caches rules built from its answers.
type Type interface {
	// Name is the simple type name, the last segment of FullName.
	Name() string
	// FullName is the dotted path of the type inside its namespace tree.
	FullName() string
	// Members returns every descriptor sharing the lookup name.
	Members(name string) Group
}

// Module is one introspectable unit contributing types to the namespace tree.
type Module interface {
	Name() string
	// Types enumerates the contained types; FullName of each entry decides
	// its placement in the tree.
	Types() []Type
}

// Generic is an optional capability for types with a generic arity. Types not
// implementing it are treated as arity 0.
type Generic interface {
	GenericArity() int
}

// CustomMemberProvider is the legacy duck-typed protocol. A receiver payload
// implementing it short-circuits binding: every member access on that shape
// routes through CustomMember, bypassing the descriptor categories.
type CustomMemberProvider interface {
	CustomMember(name string) (Value, bool)
}

// MemberInjector is the member-injection extension point ("get bound
// member"). When the receiver payload implements it, the built rule consults
// the hook first; a NotHandled result falls through to the built-in
// categories.
type MemberInjector interface {
	InjectMember(recv Value, name string) Value
}

// Boxed marks a receiver payload that wraps a secondary value. When the
// primary member lookup yields zero descriptors, the binder unwraps once and
// retries against the secondary value's type. What counts as boxed is the
// adapter's decision; the binder only performs the documented fallback.
type Boxed interface {
	Unbox() (Value, bool)
}
