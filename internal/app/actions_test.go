package app

import (
	"testing"

	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/internal/settings"
	"github.com/Faultbox/objviewer/internal/viewer"
	"github.com/Faultbox/objviewer/pkg/math"
)

var testSteps = Steps{Move: 0.5, Rotate: 90, Scale: 2}

func newViewer() *viewer.Viewer {
	v := viewer.New(nil)
	v.Model.AddVertex(math.Vec3{X: 1})
	return v
}

func TestApplyTransforms(t *testing.T) {
	tests := []struct {
		action input.Action
		want   math.Vec3
	}{
		{input.ActionMoveXPos, math.Vec3{X: 1.5}},
		{input.ActionMoveXNeg, math.Vec3{X: 0.5}},
		{input.ActionMoveYPos, math.Vec3{X: 1, Y: 0.5}},
		{input.ActionMoveYNeg, math.Vec3{X: 1, Y: -0.5}},
		{input.ActionScaleUp, math.Vec3{X: 2}},
		{input.ActionScaleDown, math.Vec3{X: 0.5}},
		{input.ActionRotateZPos, math.Vec3{Y: 1}},
		{input.ActionRotateZNeg, math.Vec3{Y: -1}},
		{input.ActionRotateYPos, math.Vec3{Z: -1}},
		{input.ActionRotateYNeg, math.Vec3{Z: 1}},
		{input.ActionRotateXPos, math.Vec3{X: 1}},
	}

	for _, tt := range tests {
		v := newViewer()
		if !Apply(v, tt.action, testSteps) {
			t.Errorf("action %d: expected to be handled", tt.action)
			continue
		}
		got := v.Model.Vertex(0)
		if !approx(got, tt.want) {
			t.Errorf("action %d: expected %v, got %v", tt.action, tt.want, got)
		}
	}
}

func TestApplyStyle(t *testing.T) {
	v := newViewer()

	Apply(v, input.ActionToggleProjection, testSteps)
	if v.Settings.Projection != settings.Central {
		t.Errorf("expected central projection, got %v", v.Settings.Projection)
	}
	Apply(v, input.ActionToggleEdgeType, testSteps)
	if v.Settings.EdgeType != settings.Dashed {
		t.Errorf("expected dashed edges, got %v", v.Settings.EdgeType)
	}
	Apply(v, input.ActionCycleDisplay, testSteps)
	Apply(v, input.ActionCycleDisplay, testSteps)
	if v.Settings.DisplayMethod != settings.Square {
		t.Errorf("expected square vertices, got %v", v.Settings.DisplayMethod)
	}
}

func TestApplyUnhandled(t *testing.T) {
	v := newViewer()
	for _, a := range []input.Action{input.ActionNone, input.ActionQuit, input.ActionReload, input.ActionScreenshot} {
		if Apply(v, a, testSteps) {
			t.Errorf("action %d should not be handled by Apply", a)
		}
	}
}

func TestApplyZeroScaleStep(t *testing.T) {
	v := newViewer()
	Apply(v, input.ActionScaleDown, Steps{})
	if got := v.Model.Vertex(0); !approx(got, math.Vec3{X: 1}) {
		t.Errorf("zero scale step should leave the model alone, got %v", got)
	}
}

func approx(a, b math.Vec3) bool {
	const eps = 1e-9
	d := a.Sub(b)
	return d.Length() < eps
}
