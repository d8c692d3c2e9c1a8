package binder

import (
	"hostlink/internal/diag"
	"hostlink/internal/host"
	"hostlink/internal/member"
	"hostlink/internal/namespace"
)

func (rb *ruleBuilder) buildField(d host.Descriptor) {
	if !d.FieldReadable {
		rb.raise(diag.Errorf(diag.BindWriteOnly, rb.body.subject, rb.name,
			"field is write-only"))
		return
	}
	rb.body.append(Step{Kind: StepBindValue, Name: rb.name, Tracker: member.NewFieldTracker(d)})
}

func (rb *ruleBuilder) buildProperty(d host.Descriptor) {
	if d.Getter == nil {
		rb.raise(diag.Errorf(diag.BindWriteOnly, rb.body.subject, rb.name,
			"property has no getter"))
		return
	}
	if !d.GetterPublic && !rb.binder.opts.AllowPrivateBinding {
		rb.raise(diag.Errorf(diag.BindAccessDenied, rb.body.subject, rb.name,
			"getter is not public and private binding is disabled"))
		return
	}
	if d.Getter.OpenGenerics {
		rb.raise(diag.Errorf(diag.BindGenericAccess, rb.body.subject, rb.name,
			"generic property access is not supported"))
		return
	}
	if d.Getter.Static != rb.staticCtx {
		rb.raise(diag.Errorf(diag.BindArgumentCount, rb.body.subject, rb.name,
			"getter calling convention does not match the lookup context"))
		return
	}
	if d.Indexed {
		// An indexed property is handed out as a receiver-bound indexer
		// object, never invoked eagerly.
		rb.body.append(Step{Kind: StepBindValue, Name: rb.name, Tracker: member.NewPropertyTracker(d)})
		return
	}
	rb.body.append(Step{Kind: StepCallGetter, Name: rb.name, Getter: d.Getter})
}

func (rb *ruleBuilder) buildMethodGroup(group host.Group) {
	mg := member.NewMethodGroupTracker(group)
	hasInstance := false
	for _, sig := range mg.Overloads() {
		if !sig.Static {
			hasInstance = true
			break
		}
	}
	if hasInstance && !rb.staticCtx {
		rb.body.append(Step{Kind: StepBindValue, Name: rb.name, Tracker: mg})
		return
	}
	value, _ := mg.Value()
	rb.body.append(Step{Kind: StepReturnValue, Name: rb.name, Value: value})
}

func (rb *ruleBuilder) buildEvent(d host.Descriptor) {
	tracker := member.NewEventTracker(d)
	if rb.staticCtx {
		value, _ := tracker.Value()
		rb.body.append(Step{Kind: StepReturnValue, Name: rb.name, Value: value})
		return
	}
	rb.body.append(Step{Kind: StepBindValue, Name: rb.name, Tracker: tracker})
}

// buildTypes folds same-name type descriptors into one tracker. A single
// plain type stays a TypeTracker; arity families go through the binder's
// type-group arena so later resolutions of the same family share one slot.
func (rb *ruleBuilder) buildTypes(group host.Group) {
	if len(group) == 1 && group[0].Category == host.CategoryNestedType {
		tracker := member.NewTypeTracker(group[0].Nested, group[0].Arity)
		value, _ := tracker.Value()
		rb.body.append(Step{Kind: StepReturnValue, Name: rb.name, Value: value})
		return
	}
	key := rb.body.subject + "." + rb.name
	rb.binder.mu.Lock()
	id, ok := rb.binder.groupIndex[key]
	if !ok {
		id = rb.binder.groups.New(rb.name)
		rb.binder.groupIndex[key] = id
	}
	for i := range group {
		d := &group[i]
		rb.binder.groups.MergeArity(id, d.Arity, d.Nested)
	}
	rb.binder.mu.Unlock()
	tracker := member.NewTypeGroupTracker(rb.binder.groups, id)
	value, _ := tracker.Value()
	rb.body.append(Step{Kind: StepReturnValue, Name: rb.name, Value: value})
}

func (rb *ruleBuilder) buildMissing() {
	rb.raise(diag.Errorf(diag.BindMissingMember, rb.body.subject, rb.name,
		"no such member"))
}

// buildNamespace resolves a member of a namespace value: a child package, a
// contained type, or a missing name. The result is stable for the identity-
// guarded receiver, so it is embedded as a build-time value.
func (rb *ruleBuilder) buildNamespace(ns *namespace.Tracker) {
	tracker, ok := ns.TryGetPackageAny(rb.name)
	if !ok {
		rb.buildMissing()
		return
	}
	value, err := tracker.Value()
	if err != nil {
		if derr, isDiag := err.(*diag.Error); isDiag {
			rb.raise(derr)
			return
		}
		rb.raise(diag.Errorf(diag.NsUnknownPackage, rb.body.subject, rb.name, "%v", err))
		return
	}
	rb.body.append(Step{Kind: StepReturnValue, Name: rb.name, Value: value})
}
