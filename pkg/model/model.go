// Package model holds the in-memory polygon mesh shown by the viewer.
package model

import (
	gomath "math"

	"github.com/Faultbox/objviewer/pkg/math"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// emptyAABB returns the seed box used before any vertex is seen.
func emptyAABB() AABB {
	return AABB{
		Min: math.Vec3{X: gomath.MaxFloat64, Y: gomath.MaxFloat64, Z: gomath.MaxFloat64},
		Max: math.Vec3{X: -gomath.MaxFloat64, Y: -gomath.MaxFloat64, Z: -gomath.MaxFloat64},
	}
}

// Extend grows the box to contain p.
func (b *AABB) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Center returns the midpoint of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b AABB) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Model is a polygon mesh.
//
// Vertices is a flat x,y,z array of VertexCount triples. Faces holds
// FaceCount 1-based vertex indices; polygon i owns the NumVerticesInPolygon[i]
// indices that follow the ones of polygons 0..i-1.
//
// Bounds is computed at load time and is not updated by Transform. Use
// ComputeBounds for the box of the current vertices.
type Model struct {
	VertexCount          uint32
	Vertices             []float64
	PolygonCount         uint32
	NumVerticesInPolygon []uint32
	FaceCount            uint32
	Faces                []uint32
	Bounds               AABB
}

// Empty reports whether the model has no geometry to draw.
func (m *Model) Empty() bool {
	return m.VertexCount == 0 || len(m.Vertices) == 0
}

// Free releases all geometry and zeroes the model.
func (m *Model) Free() {
	*m = Model{}
}

// Vertex returns the i-th vertex (0-based).
func (m *Model) Vertex(i int) math.Vec3 {
	return math.Vec3{X: m.Vertices[3*i], Y: m.Vertices[3*i+1], Z: m.Vertices[3*i+2]}
}

// SetVertex overwrites the i-th vertex (0-based).
func (m *Model) SetVertex(i int, v math.Vec3) {
	m.Vertices[3*i] = v.X
	m.Vertices[3*i+1] = v.Y
	m.Vertices[3*i+2] = v.Z
}

// AddVertex appends a vertex and extends Bounds.
func (m *Model) AddVertex(v math.Vec3) {
	if m.VertexCount == 0 {
		m.Bounds = emptyAABB()
	}
	m.Vertices = append(m.Vertices, v.X, v.Y, v.Z)
	m.VertexCount++
	m.Bounds.Extend(v)
}

// AddPolygon appends one polygon given its 1-based vertex indices.
func (m *Model) AddPolygon(indices ...uint32) {
	m.Faces = append(m.Faces, indices...)
	m.FaceCount += uint32(len(indices))
	m.NumVerticesInPolygon = append(m.NumVerticesInPolygon, uint32(len(indices)))
	m.PolygonCount++
}

// Transform applies t to every vertex in place.
// The homogeneous component is dropped after multiplication.
func (m *Model) Transform(t math.Mat4) {
	for i := 0; i < int(m.VertexCount); i++ {
		m.SetVertex(i, t.TransformPoint(m.Vertex(i)))
	}
}

// ComputeBounds returns the box of the current vertices.
// A model without vertices yields a zero box.
func (m *Model) ComputeBounds() AABB {
	if m.VertexCount == 0 {
		return AABB{}
	}
	b := emptyAABB()
	for i := 0; i < int(m.VertexCount); i++ {
		b.Extend(m.Vertex(i))
	}
	return b
}

// Polygon is one face of the mesh.
type Polygon struct {
	// Offset is the position of the first index in Faces.
	Offset int
	// Indices are the 1-based vertex indices of the face.
	Indices []uint32
}

// Polygons calls fn for each polygon in order. It stops when fn returns false.
func (m *Model) Polygons(fn func(i int, p Polygon) bool) {
	offset := 0
	for i, n := range m.NumVerticesInPolygon {
		end := offset + int(n)
		if end > len(m.Faces) {
			return
		}
		if !fn(i, Polygon{Offset: offset, Indices: m.Faces[offset:end]}) {
			return
		}
		offset = end
	}
}

// EdgeCount returns the number of polygon edges, counting shared edges once
// per polygon that draws them.
func (m *Model) EdgeCount() int {
	edges := 0
	for _, n := range m.NumVerticesInPolygon {
		switch {
		case n >= 3:
			edges += int(n)
		case n == 2:
			edges++
		}
	}
	return edges
}
