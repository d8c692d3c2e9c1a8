// Package hostreflect adapts Go types to the host introspection capability.
//
// The adapter maps struct fields to field descriptors, methods to
// single-overload method groups, and Get<Name>/Set<Name> accessor pairs to
// property descriptors queried by the bare name. Events and private members
// have no reflect surface; adapters for richer hosts supply those through
// their own descriptor construction.
package hostreflect

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"hostlink/internal/host"
)

// Type wraps one Go type as a host type. The dotted full name decides where
// the type lands in the namespace tree and is supplied by the registrar, not
// derived from the Go package path.
type Type struct {
	rt       reflect.Type
	fullName string
	arity    int
}

// TypeFor registers the Go type T under a dotted full name.
func TypeFor[T any](fullName string) *Type {
	return &Type{rt: reflect.TypeOf((*T)(nil)).Elem(), fullName: fullName}
}

// TypeOf registers the dynamic type of sample under a dotted full name.
func TypeOf(sample any, fullName string) *Type {
	return &Type{rt: reflect.TypeOf(sample), fullName: fullName}
}

// WithArity marks the type as the arity-n member of a generic family.
func (t *Type) WithArity(n int) *Type {
	t.arity = n
	return t
}

// GenericArity implements host.Generic.
func (t *Type) GenericArity() int { return t.arity }

// Name returns the simple name, the last segment of the full name.
func (t *Type) Name() string {
	if i := strings.LastIndexByte(t.fullName, '.'); i >= 0 {
		return t.fullName[i+1:]
	}
	return t.fullName
}

// FullName returns the dotted path of the type.
func (t *Type) FullName() string { return t.fullName }

// Go returns the wrapped reflect type.
func (t *Type) Go() reflect.Type { return t.rt }

// Value wraps a payload as a host value of this type.
func (t *Type) Value(data any) host.Value {
	return host.Value{Type: t, Data: data}
}

// Members enumerates descriptors for one lookup name. The answer depends
// only on the wrapped Go type, so it is deterministic for the process
// lifetime.
func (t *Type) Members(name string) host.Group {
	var group host.Group

	if d, ok := t.fieldMember(name); ok {
		group = append(group, d)
	}
	if d, ok := t.propertyMember(name); ok {
		group = append(group, d)
	}
	if d, ok := t.methodMember(name); ok {
		group = append(group, d)
	}
	return group
}

func (t *Type) fieldMember(name string) (host.Descriptor, bool) {
	st := t.rt
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return host.Descriptor{}, false
	}
	field, ok := st.FieldByName(name)
	if !ok || !field.IsExported() {
		return host.Descriptor{}, false
	}
	index := field.Index
	return host.Descriptor{
		Category:      host.CategoryField,
		Name:          name,
		Declaring:     t,
		FieldReadable: true,
		FieldGet: func(recv host.Value) (host.Value, error) {
			rv := reflect.ValueOf(recv.Data)
			for rv.Kind() == reflect.Pointer {
				if rv.IsNil() {
					return host.Value{}, fmt.Errorf("hostreflect: nil receiver reading %s.%s", t.fullName, name)
				}
				rv = rv.Elem()
			}
			return host.Value{Data: rv.FieldByIndex(index).Interface()}, nil
		},
	}, true
}

func (t *Type) propertyMember(name string) (host.Descriptor, bool) {
	getter, hasGetter := t.rt.MethodByName("Get" + name)
	_, hasSetter := t.rt.MethodByName("Set" + name)
	if !hasGetter && !hasSetter {
		return host.Descriptor{}, false
	}
	d := host.Descriptor{
		Category:     host.CategoryProperty,
		Name:         name,
		Declaring:    t,
		GetterPublic: true,
	}
	if hasGetter {
		params := getter.Type.NumIn() - 1 // drop the receiver
		d.Indexed = params > 0
		d.Getter = &host.Signature{
			Name:       getter.Name,
			ParamCount: params,
			Invoke:     invokeMethod(getter),
		}
	}
	return d, true
}

func (t *Type) methodMember(name string) (host.Descriptor, bool) {
	m, ok := t.rt.MethodByName(name)
	if !ok {
		return host.Descriptor{}, false
	}
	// Accessor methods surface through the property view only. "Settle" or
	// "Getaway" are ordinary methods: the prefix counts only when the rest is
	// itself an exported name.
	if rest, found := strings.CutPrefix(name, "Get"); found && isAccessorRest(rest) {
		return host.Descriptor{}, false
	}
	if rest, found := strings.CutPrefix(name, "Set"); found && isAccessorRest(rest) {
		return host.Descriptor{}, false
	}
	return host.Descriptor{
		Category:  host.CategoryMethodGroup,
		Name:      name,
		Declaring: t,
		Overloads: []host.Signature{{
			Name:       name,
			ParamCount: m.Type.NumIn() - 1,
			Invoke:     invokeMethod(m),
		}},
	}, true
}

// isAccessorRest reports whether the part after a Get/Set prefix names a
// property, which keeps the method hidden behind the property view.
func isAccessorRest(rest string) bool {
	if rest == "" {
		return false
	}
	r := []rune(rest)[0]
	return unicode.IsUpper(r)
}

// invokeMethod wraps a reflect method as a signature invoker. A trailing
// error result propagates; otherwise the first result (or a zero value for
// void methods) comes back as an untyped host value.
func invokeMethod(m reflect.Method) func(recv host.Value, args ...host.Value) (host.Value, error) {
	return func(recv host.Value, args ...host.Value) (host.Value, error) {
		rcv := reflect.ValueOf(recv.Data)
		if !rcv.IsValid() {
			return host.Value{}, fmt.Errorf("hostreflect: %s requires a receiver", m.Name)
		}
		in := make([]reflect.Value, 0, len(args)+1)
		in = append(in, rcv)
		for i, a := range args {
			want := m.Type.In(i + 1)
			rv := reflect.ValueOf(a.Data)
			if !rv.IsValid() {
				rv = reflect.Zero(want)
			} else if rv.Type() != want && rv.Type().ConvertibleTo(want) {
				rv = rv.Convert(want)
			}
			in = append(in, rv)
		}
		out := m.Func.Call(in)
		if n := len(out); n > 0 {
			if err, ok := out[n-1].Interface().(error); ok {
				if err != nil {
					return host.Value{}, err
				}
				out = out[:n-1]
			}
		}
		if len(out) == 0 {
			return host.Value{}, nil
		}
		return host.Value{Data: out[0].Interface()}, nil
	}
}
