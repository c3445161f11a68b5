package main

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/objviewer/internal/settings"
)

// renderTransformPanel renders the move, rotate and scale controls.
func (app *App) renderTransformPanel() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Transform", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	disabled := app.viewer.Model.Empty()
	imgui.BeginDisabledV(disabled)

	imgui.Text("Move")
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##MoveX", &app.moveX, -1, 1, "X %.2f", imgui.SliderFlagsNone)
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##MoveY", &app.moveY, -1, 1, "Y %.2f", imgui.SliderFlagsNone)
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##MoveZ", &app.moveZ, -1, 1, "Z %.2f", imgui.SliderFlagsNone)
	if imgui.ButtonV("Move", imgui.NewVec2(-1, 0)) {
		app.viewer.Move(float64(app.moveX), float64(app.moveY), float64(app.moveZ))
	}

	imgui.Spacing()
	imgui.Text("Rotate (degrees)")
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##RotateX", &app.rotateX, -180, 180, "X %.0f", imgui.SliderFlagsNone)
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##RotateY", &app.rotateY, -180, 180, "Y %.0f", imgui.SliderFlagsNone)
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##RotateZ", &app.rotateZ, -180, 180, "Z %.0f", imgui.SliderFlagsNone)
	if imgui.ButtonV("Rotate", imgui.NewVec2(-1, 0)) {
		app.viewer.Rotate(float64(app.rotateX), float64(app.rotateY), float64(app.rotateZ))
	}

	imgui.Spacing()
	imgui.Text("Scale")
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##Scale", &app.scaleFactor, 0.1, 10, "%.2fx", imgui.SliderFlagsNone)
	if imgui.ButtonV("Scale", imgui.NewVec2(-1, 0)) {
		app.viewer.Scale(float64(app.scaleFactor))
	}

	imgui.Spacing()
	if imgui.ButtonV("Reset Inputs", imgui.NewVec2(-1, 0)) {
		app.moveX, app.moveY, app.moveZ = 0, 0, 0
		app.rotateX, app.rotateY, app.rotateZ = 0, 0, 0
		app.scaleFactor = 1
	}

	imgui.EndDisabled()
}

// renderStylePanel renders projection, edge and vertex style controls.
func (app *App) renderStylePanel() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Style", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	v := app.viewer
	s := v.Settings

	imgui.Text("Projection")
	if imgui.RadioButtonBool("Parallel", s.Projection == settings.Parallel) {
		_ = v.SetProjection(settings.Parallel)
	}
	imgui.SameLine()
	if imgui.RadioButtonBool("Central", s.Projection == settings.Central) {
		_ = v.SetProjection(settings.Central)
	}

	imgui.Separator()
	imgui.Text("Edges")
	dashed := s.EdgeType == settings.Dashed
	if imgui.Checkbox("Dashed", &dashed) {
		edgeType := settings.Solid
		if dashed {
			edgeType = settings.Dashed
		}
		_ = v.SetEdgeType(edgeType)
	}

	thickness := float32(s.EdgeThickness)
	imgui.SetNextItemWidth(-1)
	if imgui.SliderFloatV("##Thickness", &thickness, 1, 10, "Thickness %.1f", imgui.SliderFlagsNone) {
		_ = v.SetEdgeThickness(float64(thickness))
	}

	edgeColor := s.EdgeColor.Array()
	if imgui.ColorEdit4("Edge Color", &edgeColor) {
		v.SetEdgeColor(settings.ColorFromArray(edgeColor))
	}

	imgui.Separator()
	imgui.Text("Vertices")
	for _, d := range []settings.DisplayMethod{settings.None, settings.Circle, settings.Square} {
		if imgui.RadioButtonBool(d.String(), s.DisplayMethod == d) {
			_ = v.SetDisplayMethod(d)
		}
		if d != settings.Square {
			imgui.SameLine()
		}
	}

	imgui.BeginDisabledV(s.DisplayMethod == settings.None)
	size := float32(s.VertexSize)
	imgui.SetNextItemWidth(-1)
	if imgui.SliderFloatV("##VertexSize", &size, 1, 20, "Size %.1f", imgui.SliderFlagsNone) {
		_ = v.SetVertexSize(float64(size))
	}

	vertexColor := s.VertexColor.Array()
	if imgui.ColorEdit4("Vertex Color", &vertexColor) {
		v.SetVertexColor(settings.ColorFromArray(vertexColor))
	}
	imgui.EndDisabled()

	imgui.Separator()
	bgColor := s.BackgroundColor.Array()
	if imgui.ColorEdit4("Background", &bgColor) {
		v.SetBackgroundColor(settings.ColorFromArray(bgColor))
	}
}
