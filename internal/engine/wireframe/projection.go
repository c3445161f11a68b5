// Package wireframe computes the GPU-independent parts of a wireframe frame:
// projection matrices, per-polygon draw ranges and stroke styles.
package wireframe

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/objviewer/internal/settings"
)

// Volume is a clip volume given by its left, right, bottom, top, near and
// far planes, as taken by glOrtho and glFrustum.
type Volume struct {
	Left, Right, Bottom, Top, Near, Far float32
}

// Clip volumes for the two projection modes.
var (
	ParallelVolume = Volume{Left: 0.1, Right: 1, Bottom: 0.1, Top: 1, Near: 0.1, Far: 100}
	CentralVolume  = Volume{Left: -1, Right: 1, Bottom: -1, Top: 1, Near: 1, Far: 100}
)

// boundRadius is the radius of the sphere around the unit cube [-0.5, 0.5]^3.
// Framing that sphere keeps a normalized model visible under any rotation.
var boundRadius = float32(math.Sqrt(3) / 2)

// Projection returns the matrix that maps model space to clip space for p.
//
// Normalized models live around the origin, which lies outside both clip
// volumes, so the volume matrix is combined with a framing transform that
// places the model's bounding sphere inside the volume. aspect is the
// viewport width over height; the shorter side keeps the full volume.
func Projection(p settings.Projection, aspect float32) mgl32.Mat4 {
	var proj mgl32.Mat4
	switch p {
	case settings.Central:
		v := CentralVolume
		proj = mgl32.Frustum(v.Left, v.Right, v.Bottom, v.Top, v.Near, v.Far).Mul4(v.centralFrame())
	default:
		v := ParallelVolume
		proj = mgl32.Ortho(v.Left, v.Right, v.Bottom, v.Top, v.Near, v.Far).Mul4(v.parallelFrame())
	}
	return aspectCorrection(aspect).Mul4(proj)
}

// parallelFrame centres the bounding sphere in the orthographic box, halfway
// between the near and far planes.
func (v Volume) parallelFrame() mgl32.Mat4 {
	cx, cy := (v.Left+v.Right)/2, (v.Bottom+v.Top)/2
	cz := -(v.Near + v.Far) / 2
	s := v.halfMin() / boundRadius
	return mgl32.Translate3D(cx, cy, cz).Mul4(mgl32.Scale3D(s, s, s))
}

// centralFrame moves the bounding sphere down the view axis until it sits
// inside the frustum and beyond the near plane.
func (v Volume) centralFrame() mgl32.Mat4 {
	halfAngle := math.Atan(float64(v.halfMin() / v.Near))
	d := float32(math.Max(float64(boundRadius)/math.Sin(halfAngle), float64(v.Near+boundRadius)))
	d *= 1.1
	// The frustum axis passes through the centre of the near window.
	cx := (v.Left + v.Right) / 2 / v.Near * d
	cy := (v.Bottom + v.Top) / 2 / v.Near * d
	return mgl32.Translate3D(cx, cy, -d)
}

func (v Volume) halfMin() float32 {
	w, h := v.Right-v.Left, v.Top-v.Bottom
	if h < w {
		return h / 2
	}
	return w / 2
}

func aspectCorrection(aspect float32) mgl32.Mat4 {
	switch {
	case aspect <= 0 || aspect == 1:
		return mgl32.Ident4()
	case aspect > 1:
		return mgl32.Scale3D(1/aspect, 1, 1)
	default:
		return mgl32.Scale3D(1, aspect, 1)
	}
}
