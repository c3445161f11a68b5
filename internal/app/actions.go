package app

import (
	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/internal/viewer"
)

// dragDegrees is the rotation per pixel of mouse drag.
const dragDegrees = 0.5

// Steps are the increments applied per key press.
type Steps struct {
	Move   float64
	Rotate float64 // Degrees
	Scale  float64 // Factor, > 1
}

// Apply performs a model or style action on v. It reports whether the
// action was one it handles.
func Apply(v *viewer.Viewer, action input.Action, s Steps) bool {
	switch action {
	case input.ActionRotateXPos:
		v.Rotate(s.Rotate, 0, 0)
	case input.ActionRotateXNeg:
		v.Rotate(-s.Rotate, 0, 0)
	case input.ActionRotateYPos:
		v.Rotate(0, s.Rotate, 0)
	case input.ActionRotateYNeg:
		v.Rotate(0, -s.Rotate, 0)
	case input.ActionRotateZPos:
		v.Rotate(0, 0, s.Rotate)
	case input.ActionRotateZNeg:
		v.Rotate(0, 0, -s.Rotate)
	case input.ActionMoveXPos:
		v.Move(s.Move, 0, 0)
	case input.ActionMoveXNeg:
		v.Move(-s.Move, 0, 0)
	case input.ActionMoveYPos:
		v.Move(0, s.Move, 0)
	case input.ActionMoveYNeg:
		v.Move(0, -s.Move, 0)
	case input.ActionScaleUp:
		v.Scale(s.Scale)
	case input.ActionScaleDown:
		if s.Scale != 0 {
			v.Scale(1 / s.Scale)
		}
	case input.ActionToggleProjection:
		_ = v.SetProjection(v.Settings.Projection.Toggle())
	case input.ActionToggleEdgeType:
		_ = v.SetEdgeType(v.Settings.EdgeType.Toggle())
	case input.ActionCycleDisplay:
		_ = v.SetDisplayMethod(v.Settings.DisplayMethod.Next())
	default:
		return false
	}
	return true
}
