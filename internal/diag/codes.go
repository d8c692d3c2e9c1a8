package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode covers failures that predate classification.
	UnknownCode Code = 0

	// Binder: classification and access-strategy errors.
	BindInfo                Code = 1000
	BindAmbiguousMember     Code = 1001
	BindAmbiguousTypeMember Code = 1002
	BindMissingMember       Code = 1003
	BindAccessDenied        Code = 1004
	BindGenericAccess       Code = 1005
	BindArgumentCount       Code = 1006
	BindWriteOnly           Code = 1007

	// Namespace tracker.
	NsInfo            Code = 2000
	NsDuplicateModule Code = 2001
	NsUnknownPackage  Code = 2002

	// Tooling (snapshot, config).
	ToolInfo          Code = 3000
	ToolSnapshotStale Code = 3001
	ToolBadConfig     Code = 3002
)

func (c Code) String() string {
	switch {
	case c >= ToolInfo:
		return fmt.Sprintf("TOOL%04d", uint16(c))
	case c >= NsInfo:
		return fmt.Sprintf("NS%04d", uint16(c))
	case c >= BindInfo:
		return fmt.Sprintf("BIND%04d", uint16(c))
	default:
		return fmt.Sprintf("UNK%04d", uint16(c))
	}
}
