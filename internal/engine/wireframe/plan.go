package wireframe

import (
	"github.com/Faultbox/objviewer/internal/settings"
	"github.com/Faultbox/objviewer/pkg/model"
)

// indexSize is the byte size of one element array entry (GL_UNSIGNED_INT).
const indexSize = 4

// BaseVertex is added to every stored index when drawing; faces hold 1-based
// OBJ indices.
const BaseVertex = -1

// Stipple pattern for dashed edges: 8 pixels on, 8 off, each bit repeated
// StippleFactor times.
const (
	StipplePattern = 0x00FF
	StippleFactor  = 3
)

// DrawRange is one GL_LINE_LOOP draw over the element array.
type DrawRange struct {
	Offset uintptr // Byte offset of the first index
	Count  int32   // Number of indices
}

// Plan returns the per-polygon draw ranges of m, in polygon order.
// Polygons without indices are skipped.
func Plan(m *model.Model) []DrawRange {
	ranges := make([]DrawRange, 0, m.PolygonCount)
	m.Polygons(func(_ int, p model.Polygon) bool {
		if len(p.Indices) > 0 {
			ranges = append(ranges, DrawRange{
				Offset: uintptr(p.Offset * indexSize),
				Count:  int32(len(p.Indices)),
			})
		}
		return true
	})
	return ranges
}

// PointStyle reports whether vertices are drawn for d and whether they are
// round.
func PointStyle(d settings.DisplayMethod) (draw, round bool) {
	switch d {
	case settings.Circle:
		return true, true
	case settings.Square:
		return true, false
	default:
		return false, false
	}
}

// StippleOn reports whether a fragment at distance px along a dashed edge
// is lit. It mirrors the test done in the fragment shader.
func StippleOn(px float32) bool {
	bit := int(px/StippleFactor) % 16
	return (StipplePattern>>bit)&1 == 1
}
