package member

import (
	"hostlink/internal/diag"
	"hostlink/internal/host"
)

// Classify reduces a member group to its single dominant category.
//
// An empty group is CategoryMissing and is not an error; the missing-member
// strategy decides between a sentinel and a raise. Multiple descriptors are
// legal only when every entry is a nested type: those fold into a
// generic-arity family (CategoryTypeGroup), and an arity collision inside the
// family is ambiguous. Any other multi-entry group is ambiguous outright.
//
// The returned error is never raised at build time; the rule builder embeds
// it as a terminal error body.
func Classify(group host.Group) (host.Category, *diag.Error) {
	switch len(group) {
	case 0:
		return host.CategoryMissing, nil
	case 1:
		return group[0].Category, nil
	}

	allTypes := true
	for i := range group {
		if group[i].Category != host.CategoryNestedType && group[i].Category != host.CategoryTypeGroup {
			allTypes = false
			break
		}
	}
	if !allTypes {
		return group[0].Category, diag.Errorf(
			diag.BindAmbiguousMember,
			subjectOf(group[0]), group[0].Name,
			"%d descriptors of mixed categories share one name", len(group),
		)
	}

	seen := make(map[int]host.Type, len(group))
	for i := range group {
		d := &group[i]
		if prev, ok := seen[d.Arity]; ok && prev != d.Nested {
			return host.CategoryTypeGroup, diag.Errorf(
				diag.BindAmbiguousTypeMember,
				subjectOf(group[0]), d.Name,
				"two distinct types share generic arity %d", d.Arity,
			)
		}
		seen[d.Arity] = d.Nested
	}
	return host.CategoryTypeGroup, nil
}

func subjectOf(d host.Descriptor) string {
	if d.Declaring != nil {
		return d.Declaring.FullName()
	}
	return "<unknown>"
}
