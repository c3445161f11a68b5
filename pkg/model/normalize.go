package model

import "github.com/Faultbox/objviewer/pkg/math"

// TranslateToOrigin moves the model so the centre of Bounds lands on the
// origin. Bounds itself is left as loaded.
func (m *Model) TranslateToOrigin() {
	c := m.Bounds.Center()
	m.Transform(math.Translate(-c.X, -c.Y, -c.Z))
}

// FitToCube uniformly scales the model so its largest Bounds extent becomes 1.
// A model whose extents are all zero is left untouched.
func (m *Model) FitToCube() {
	d := m.Bounds.Size().MaxComponent()
	if d <= 0 {
		return
	}
	m.Transform(math.Scale(1 / d))
}

// Normalize centres the model on the origin and fits it into the unit cube
// [-0.5, 0.5]^3. It must run right after a load, while Bounds is fresh.
func (m *Model) Normalize() {
	if m.VertexCount == 0 {
		return
	}
	m.TranslateToOrigin()
	m.FitToCube()
}
