// Package viewer holds the state of an open model: its geometry, the display
// settings and the renderer that draws them.
package viewer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/internal/settings"
	"github.com/Faultbox/objviewer/pkg/formats"
	"github.com/Faultbox/objviewer/pkg/math"
	"github.com/Faultbox/objviewer/pkg/model"
)

// Errors returned by Viewer operations.
var (
	ErrNoFile        = errors.New("no file loaded")
	ErrNonPositive   = errors.New("value must be positive and finite")
	ErrInvalidOption = errors.New("invalid option")
)

// Renderer draws a model. *renderer.Renderer satisfies it.
type Renderer interface {
	Upload(m *model.Model)
	Render(m *model.Model, s *settings.Settings)
}

// Viewer is the state shared by the UI and the renderer.
// It is not safe for concurrent use; all calls belong on the UI thread.
type Viewer struct {
	Model    model.Model
	Settings settings.Settings

	renderer Renderer
	path     string
	status   string
	dirty    bool

	log *zap.Logger
}

// New creates a viewer with default settings and no model.
// r may be nil until a GL context exists; see SetRenderer.
func New(r Renderer) *Viewer {
	return &Viewer{
		Settings: settings.Default(),
		renderer: r,
		dirty:    true,
		log:      logger.Named("viewer"),
	}
}

// SetRenderer attaches the renderer and uploads the current model to it.
func (v *Viewer) SetRenderer(r Renderer) {
	v.renderer = r
	if r != nil {
		r.Upload(&v.Model)
	}
	v.dirty = true
}

// Path returns the file the current model was loaded from.
func (v *Viewer) Path() string {
	return v.path
}

// Status returns the text for the status line. It is empty until a file
// loads and keeps the last successful load afterwards.
func (v *Viewer) Status() string {
	return v.status
}

// Open replaces the model with the contents of an OBJ file, normalized to the
// unit cube. On failure the model is left empty and the status unchanged.
func (v *Viewer) Open(path string) error {
	v.Model.Free()
	v.dirty = true

	if err := formats.ParseOBJFile(path, &v.Model); err != nil {
		v.Model.Free()
		v.upload()
		v.log.Error("failed to load model", zap.String("path", path), zap.Error(err))
		return err
	}

	v.Model.Normalize()
	v.upload()

	v.path = path
	v.status = fmt.Sprintf("File: %s (%d vertices, %d edges)", path, v.Model.VertexCount, v.Model.PolygonCount)
	v.log.Info("model loaded",
		zap.String("path", path),
		zap.Uint32("vertices", v.Model.VertexCount),
		zap.Uint32("polygons", v.Model.PolygonCount),
		zap.Int("edges", v.Model.EdgeCount()),
	)
	return nil
}

// Reload opens the current file again, discarding any transforms.
func (v *Viewer) Reload() error {
	if v.path == "" {
		return ErrNoFile
	}
	return v.Open(v.path)
}

func (v *Viewer) upload() {
	if v.renderer != nil {
		v.renderer.Upload(&v.Model)
	}
}

// Move translates the model. A zero vector is ignored.
func (v *Viewer) Move(x, y, z float64) {
	if x == 0 && y == 0 && z == 0 {
		return
	}
	v.Model.Transform(math.Translate(x, y, z))
	v.dirty = true
}

// Rotate rotates the model by the given angles in degrees, about X, then Y,
// then Z. Axes with a zero angle are skipped.
func (v *Viewer) Rotate(x, y, z float64) {
	if x != 0 {
		v.Model.Transform(math.RotateX(x))
		v.dirty = true
	}
	if y != 0 {
		v.Model.Transform(math.RotateY(y))
		v.dirty = true
	}
	if z != 0 {
		v.Model.Transform(math.RotateZ(z))
		v.dirty = true
	}
}

// Scale scales the model uniformly. Zero is ignored.
func (v *Viewer) Scale(s float64) {
	if s == 0 {
		return
	}
	v.Model.Transform(math.Scale(s))
	v.dirty = true
}

// SetProjection selects parallel or central projection.
func (v *Viewer) SetProjection(p settings.Projection) error {
	if p != settings.Parallel && p != settings.Central {
		return fmt.Errorf("projection %d: %w", int(p), ErrInvalidOption)
	}
	v.Settings.Projection = p
	v.dirty = true
	return nil
}

// SetEdgeType selects solid or dashed edges.
func (v *Viewer) SetEdgeType(e settings.EdgeType) error {
	if e != settings.Solid && e != settings.Dashed {
		return fmt.Errorf("edge type %d: %w", int(e), ErrInvalidOption)
	}
	v.Settings.EdgeType = e
	v.dirty = true
	return nil
}

// SetEdgeColor sets the edge color.
func (v *Viewer) SetEdgeColor(c settings.Color) {
	v.Settings.EdgeColor = c
	v.dirty = true
}

// SetEdgeThickness sets the edge width in pixels.
func (v *Viewer) SetEdgeThickness(t float64) error {
	if !settings.ValidSize(t) {
		return fmt.Errorf("edge thickness %g: %w", t, ErrNonPositive)
	}
	v.Settings.EdgeThickness = t
	v.dirty = true
	return nil
}

// SetDisplayMethod selects how vertices are drawn.
func (v *Viewer) SetDisplayMethod(d settings.DisplayMethod) error {
	if d < settings.None || d > settings.Square {
		return fmt.Errorf("display method %d: %w", int(d), ErrInvalidOption)
	}
	v.Settings.DisplayMethod = d
	v.dirty = true
	return nil
}

// SetVertexColor sets the vertex color.
func (v *Viewer) SetVertexColor(c settings.Color) {
	v.Settings.VertexColor = c
	v.dirty = true
}

// SetVertexSize sets the vertex point size in pixels.
func (v *Viewer) SetVertexSize(s float64) error {
	if !settings.ValidSize(s) {
		return fmt.Errorf("vertex size %g: %w", s, ErrNonPositive)
	}
	v.Settings.VertexSize = s
	v.dirty = true
	return nil
}

// SetBackgroundColor sets the clear color.
func (v *Viewer) SetBackgroundColor(c settings.Color) {
	v.Settings.BackgroundColor = c
	v.dirty = true
}

// Invalidate forces the next NeedsRedraw to report true, for example after
// the render target was resized.
func (v *Viewer) Invalidate() {
	v.dirty = true
}

// NeedsRedraw reports whether state changed since the last Draw.
func (v *Viewer) NeedsRedraw() bool {
	return v.dirty
}

// Draw renders the current model with the current settings and clears the
// redraw flag. Without a renderer nothing is drawn and the flag stays set.
func (v *Viewer) Draw() {
	if v.renderer == nil {
		return
	}
	v.renderer.Render(&v.Model, &v.Settings)
	v.dirty = false
}

// LoadSettings replaces the settings with those stored at path. A missing or
// unreadable file leaves the defaults in place and is returned as an error.
func (v *Viewer) LoadSettings(path string) error {
	v.dirty = true
	return settings.Load(path, &v.Settings)
}

// Close saves the settings to path and frees the model.
func (v *Viewer) Close(path string) error {
	defer v.Model.Free()

	if path == "" {
		return nil
	}
	if err := v.Settings.Save(path); err != nil {
		v.log.Error("failed to save settings", zap.String("path", path), zap.Error(err))
		return err
	}
	v.log.Debug("settings saved", zap.String("path", path))
	return nil
}
