package hostreflect

import (
	"time"

	"hostlink/internal/host"
)

// Module is a static set of adapted types registered under one module name.
type Module struct {
	name  string
	types []host.Type
}

// NewModule builds a module from adapted types.
func NewModule(name string, types ...host.Type) *Module {
	return &Module{name: name, types: types}
}

func (m *Module) Name() string { return m.name }

func (m *Module) Types() []host.Type {
	out := make([]host.Type, len(m.types))
	copy(out, m.types)
	return out
}

// Builtins returns the foundational modules the namespace bootstrap registers
// before any user module: the minimal always-available type set.
func Builtins() []host.Module {
	return []host.Module{
		NewModule("builtin",
			TypeFor[string]("builtin.Text"),
			TypeFor[int64]("builtin.Int"),
			TypeFor[float64]("builtin.Float"),
			TypeFor[bool]("builtin.Bool"),
			TypeFor[time.Time]("builtin.Time"),
			TypeFor[time.Duration]("builtin.Duration"),
		),
	}
}
