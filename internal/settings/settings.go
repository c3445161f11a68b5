// Package settings holds the user-adjustable display style and its
// settings.conf persistence.
package settings

import (
	"fmt"
	"math"
)

// Projection selects how the model is projected onto the viewport.
type Projection int

const (
	Parallel Projection = 0 // Orthographic
	Central  Projection = 1 // Perspective
)

// String returns a human-readable projection name.
func (p Projection) String() string {
	switch p {
	case Parallel:
		return "Parallel"
	case Central:
		return "Central"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

func (p Projection) valid() bool { return p == Parallel || p == Central }

// Toggle returns the other projection.
func (p Projection) Toggle() Projection {
	if p == Central {
		return Parallel
	}
	return Central
}

// EdgeType selects how polygon edges are stroked.
type EdgeType int

const (
	Solid  EdgeType = 0
	Dashed EdgeType = 1
)

// String returns a human-readable edge type name.
func (e EdgeType) String() string {
	switch e {
	case Solid:
		return "Solid"
	case Dashed:
		return "Dashed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(e))
	}
}

func (e EdgeType) valid() bool { return e == Solid || e == Dashed }

// Toggle returns the other edge type.
func (e EdgeType) Toggle() EdgeType {
	if e == Dashed {
		return Solid
	}
	return Dashed
}

// DisplayMethod selects how vertices are drawn on top of the edges.
type DisplayMethod int

const (
	None   DisplayMethod = 0 // Vertices hidden
	Circle DisplayMethod = 1 // Round points
	Square DisplayMethod = 2 // Square points
)

// String returns a human-readable display method name.
func (d DisplayMethod) String() string {
	switch d {
	case None:
		return "None"
	case Circle:
		return "Circle"
	case Square:
		return "Square"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

func (d DisplayMethod) valid() bool { return d >= None && d <= Square }

// Next cycles None, Circle, Square.
func (d DisplayMethod) Next() DisplayMethod {
	if d >= Square || d < None {
		return None
	}
	return d + 1
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Array returns the color as [r, g, b, a], the layout color pickers use.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// ColorFromArray builds a Color from [r, g, b, a].
func ColorFromArray(a [4]float32) Color {
	return Color{R: a[0], G: a[1], B: a[2], A: a[3]}
}

func (c Color) valid() bool {
	for _, v := range c.Array() {
		// Written this way round so NaN fails.
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

// ValidSize reports whether v can be used as an edge thickness or vertex
// size: finite and greater than zero.
func ValidSize(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Settings is the display style of the viewer.
type Settings struct {
	Projection      Projection
	EdgeType        EdgeType
	EdgeColor       Color
	EdgeThickness   float64
	DisplayMethod   DisplayMethod
	VertexColor     Color
	VertexSize      float64
	BackgroundColor Color
}

// Default returns the factory style: white solid edges of width 1 on black,
// parallel projection, hidden green vertices of size 5.
func Default() Settings {
	return Settings{
		Projection:      Parallel,
		EdgeType:        Solid,
		EdgeColor:       Color{R: 1, G: 1, B: 1, A: 1},
		EdgeThickness:   1,
		DisplayMethod:   None,
		VertexColor:     Color{R: 0, G: 1, B: 0, A: 1},
		VertexSize:      5,
		BackgroundColor: Color{R: 0, G: 0, B: 0, A: 1},
	}
}
