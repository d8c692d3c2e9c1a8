package host

// Category classifies what kind of member a descriptor (or a whole group)
// resolves to.
type Category uint8

const (
	CategoryMissing Category = iota
	CategoryField
	CategoryProperty
	CategoryMethodGroup
	CategoryEvent
	CategoryNestedType
	CategoryTypeGroup
	CategoryNamespace
	CategoryCustom
)

func (c Category) String() string {
	switch c {
	case CategoryMissing:
		return "missing"
	case CategoryField:
		return "field"
	case CategoryProperty:
		return "property"
	case CategoryMethodGroup:
		return "method group"
	case CategoryEvent:
		return "event"
	case CategoryNestedType:
		return "nested type"
	case CategoryTypeGroup:
		return "type group"
	case CategoryNamespace:
		return "namespace"
	case CategoryCustom:
		return "custom"
	default:
		return "invalid"
	}
}

// Signature describes one overload of a method or property accessor together
// with the host primitive that invokes it. Invoke receives the bound receiver
// first; static overloads ignore it.
type Signature struct {
	Name         string
	ParamCount   int
	Static       bool
	OpenGenerics bool
	Invoke       func(recv Value, args ...Value) (Value, error)
}

// Descriptor is the tagged union describing one accessible feature of a type.
// Only the fields matching Category are populated.
type Descriptor struct {
	Category  Category
	Name      string
	Declaring Type

	// Field.
	FieldReadable bool
	FieldGet      func(recv Value) (Value, error)

	// Property. Getter is nil for a write-only property.
	Getter       *Signature
	Setter       *Signature
	GetterPublic bool
	Indexed      bool

	// Method group.
	Overloads []Signature

	// Event.
	EventSubscribe   func(recv Value, handler Callable) error
	EventUnsubscribe func(recv Value, handler Callable) error

	// Nested type. Arity is the generic arity, 0 for non-generic types.
	Nested Type
	Arity  int
}

// Group is the ordered set of descriptors sharing one lookup name, produced
// by a single Type.Members query. Multiple entries are legitimate only for
// method overloads and generic-arity families of one type name.
type Group []Descriptor
