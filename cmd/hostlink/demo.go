package main

import (
	"math"

	"github.com/spf13/cobra"

	"hostlink/internal/config"
	"hostlink/internal/host"
	"hostlink/internal/hostreflect"
	"hostlink/internal/namespace"
)

// The demo universe gives the subcommands a realistic set of host types to
// bind against without embedding a scripting runtime.

// Point is a 2D point with a derived Magnitude property.
type Point struct {
	X float64
	Y float64
}

// GetMagnitude is the Magnitude property getter.
func (p Point) GetMagnitude() float64 {
	return math.Hypot(p.X, p.Y)
}

// Translate returns the point shifted by (dx, dy).
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min Point
	Max Point
}

// GetArea is the Area property getter.
func (r Rect) GetArea() float64 {
	return (r.Max.X - r.Min.X) * (r.Max.Y - r.Min.Y)
}

// Grid exposes an indexed Cell property.
type Grid struct {
	Cells map[[2]int]string
}

// GetCell is the indexed Cell property getter.
func (g Grid) GetCell(x, y int) string {
	return g.Cells[[2]int{x, y}]
}

func demoModules() []host.Module {
	return []host.Module{
		hostreflect.NewModule("geometry",
			hostreflect.TypeOf(Point{}, "Geometry.Point"),
			hostreflect.TypeOf(Rect{}, "Geometry.Shapes.Rect"),
			hostreflect.TypeOf(Grid{}, "Geometry.Shapes.Grid"),
		),
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Default(), err
	}
	return config.Load(path)
}

func newTop(cfg config.Config) *namespace.Top {
	opts := namespace.Options{}
	if cfg.Namespace.Bootstrap {
		opts.Builtins = hostreflect.Builtins()
	}
	top := namespace.NewTop(opts)
	for _, m := range demoModules() {
		top.LoadModule(m)
	}
	return top
}
