package main

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/objviewer/internal/engine/ui"
)

// dragDegrees is the rotation per pixel of mouse drag in the viewport.
const dragDegrees = 0.5

// wheelScale is the scale factor per mouse wheel notch.
const wheelScale = 1.1

// renderViewport redraws the wireframe into the offscreen target when needed
// and shows it filling the panel.
func (app *App) renderViewport() {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}

	// Render at framebuffer resolution so HiDPI displays stay sharp.
	scale := imgui.CurrentIO().DisplayFramebufferScale()
	w, h := int(avail.X*scale.X), int(avail.Y*scale.Y)
	if fw, fh := app.target.Size(); fw != w || fh != h {
		app.target.Resize(w, h)
		app.viewer.Invalidate()
	}

	if app.viewer.NeedsRedraw() {
		restore := app.target.Bind()
		fw, fh := app.target.Size()
		app.renderer.Resize(fw, fh)
		app.viewer.Draw()
		restore()
	}

	bg := app.viewer.Settings.BackgroundColor
	ui.GLImage(app.target.ColorTexture(), avail.X, avail.Y, imgui.NewVec4(bg.R, bg.G, bg.B, bg.A))

	if !imgui.IsItemHovered() || app.viewer.Model.Empty() {
		app.lastMousePos = imgui.MousePos()
		return
	}

	// Drag rotates about the screen axes.
	mousePos := imgui.MousePos()
	if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
		dx := mousePos.X - app.lastMousePos.X
		dy := mousePos.Y - app.lastMousePos.Y
		app.viewer.Rotate(float64(dy)*dragDegrees, float64(dx)*dragDegrees, 0)
	}
	app.lastMousePos = mousePos

	// Wheel scales.
	wheel := imgui.CurrentIO().MouseWheel()
	switch {
	case wheel > 0:
		app.viewer.Scale(wheelScale)
	case wheel < 0:
		app.viewer.Scale(1 / wheelScale)
	}

	imgui.SetTooltip("Drag to rotate, scroll to scale")
}
