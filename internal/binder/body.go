package binder

import (
	"reflect"

	"hostlink/internal/diag"
	"hostlink/internal/host"
	"hostlink/internal/member"
)

// StepKind enumerates the operations a rule body is assembled from.
type StepKind uint8

const (
	StepInvalid StepKind = iota
	// StepUnwrap replaces the receiver with its boxed secondary value.
	StepUnwrap
	// StepCustom routes the access through the legacy custom-member
	// protocol and terminates the body.
	StepCustom
	// StepInject consults the member-injection hook; a NotHandled result
	// falls through to the following steps.
	StepInject
	// StepBindValue binds a tracker to the receiver and returns its value.
	StepBindValue
	// StepCallGetter calls a property getter with the receiver.
	StepCallGetter
	// StepReturnValue returns a value computed at build time.
	StepReturnValue
	// StepRaise raises the embedded taxonomy error.
	StepRaise
)

func (k StepKind) String() string {
	switch k {
	case StepUnwrap:
		return "unwrap"
	case StepCustom:
		return "custom"
	case StepInject:
		return "inject"
	case StepBindValue:
		return "bind-value"
	case StepCallGetter:
		return "call-getter"
	case StepReturnValue:
		return "return"
	case StepRaise:
		return "raise"
	default:
		return "invalid"
	}
}

// Step is one emitted operation. Only the fields matching Kind are set.
type Step struct {
	Kind    StepKind
	Name    string
	Tracker member.Tracker
	Getter  *host.Signature
	Value   host.Value
	Err     *diag.Error
}

// Body is the ordered operation sequence of a rule. It is append-only during
// building and frozen once the rule is handed out.
type Body struct {
	steps      []Step
	noThrow    bool
	subject    string
	memberName string
}

// Steps exposes the emitted operations for inspection and tooling.
func (b Body) Steps() []Step { return b.steps }

// Terminal reports whether the body ends in an operation that produces a
// value or raises.
func (b Body) Terminal() bool {
	if len(b.steps) == 0 {
		return false
	}
	switch b.steps[len(b.steps)-1].Kind {
	case StepCustom, StepBindValue, StepCallGetter, StepReturnValue, StepRaise:
		return true
	}
	return false
}

func (b *Body) append(s Step) { b.steps = append(b.steps, s) }

func (b Body) run(recv host.Value) (host.Value, error) {
	cur := recv
	for i := range b.steps {
		st := &b.steps[i]
		switch st.Kind {
		case StepUnwrap:
			if boxed, ok := cur.Data.(host.Boxed); ok {
				if inner, ok := boxed.Unbox(); ok {
					cur = inner
				}
			}
		case StepCustom:
			provider, ok := cur.Data.(host.CustomMemberProvider)
			if !ok {
				return host.Value{}, ErrGuardMismatch
			}
			if v, found := provider.CustomMember(st.Name); found {
				return v, nil
			}
			return b.fail(st.Name)
		case StepInject:
			if injector, ok := cur.Data.(host.MemberInjector); ok {
				v := injector.InjectMember(cur, st.Name)
				if !host.IsNotHandled(v) {
					return v, nil
				}
			}
		case StepBindValue:
			return st.Tracker.BindTo(cur).Value()
		case StepCallGetter:
			return st.Getter.Invoke(cur)
		case StepReturnValue:
			return st.Value, nil
		case StepRaise:
			return host.Value{}, st.Err
		}
	}
	return host.Value{}, ErrGuardMismatch
}

// fail is the terminal outcome for a custom lookup that found nothing.
func (b Body) fail(name string) (host.Value, error) {
	if b.noThrow {
		return host.OperationFailed, nil
	}
	return host.Value{}, diag.Errorf(diag.BindMissingMember, b.subject, name, "no such member")
}

// Equal compares bodies structurally: kinds, names, signature shapes, error
// codes and value shapes, not closure identities.
func (b Body) Equal(other Body) bool {
	if len(b.steps) != len(other.steps) || b.noThrow != other.noThrow {
		return false
	}
	for i := range b.steps {
		if !stepEqual(&b.steps[i], &other.steps[i]) {
			return false
		}
	}
	return true
}

func stepEqual(a, b *Step) bool {
	if a.Kind != b.Kind || a.Name != b.Name {
		return false
	}
	if (a.Tracker == nil) != (b.Tracker == nil) {
		return false
	}
	if a.Tracker != nil {
		if a.Tracker.Kind() != b.Tracker.Kind() || a.Tracker.Name() != b.Tracker.Name() {
			return false
		}
	}
	if (a.Getter == nil) != (b.Getter == nil) {
		return false
	}
	if a.Getter != nil {
		if a.Getter.ParamCount != b.Getter.ParamCount || a.Getter.Static != b.Getter.Static {
			return false
		}
	}
	if (a.Err == nil) != (b.Err == nil) {
		return false
	}
	if a.Err != nil && a.Err.Code != b.Err.Code {
		return false
	}
	if host.IsOperationFailed(a.Value) != host.IsOperationFailed(b.Value) {
		return false
	}
	if reflect.TypeOf(a.Value.Data) != reflect.TypeOf(b.Value.Data) {
		return false
	}
	return true
}
