// Package ui wraps the ImGui SDL backend used by the desktop viewer.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/logger"
)

// latinGlyphRanges covers ASCII and Latin-1, enough for file paths and labels.
// Format: pairs of [start, end] values terminated by 0.
var latinGlyphRanges = []imgui.Wchar{
	0x0020, 0x00FF,
	0,
}

// Config holds the window settings for the backend.
type Config struct {
	Title  string
	Width  int
	Height int
	// FontPath optionally names a TTF font to use instead of the built-in one.
	FontPath string
	FontSize float32
}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	cfg     Config
}

// NewBackend creates the window, the ImGui context and the GL context.
func NewBackend(cfg Config) (*Backend, error) {
	b := &Backend{cfg: cfg}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	// Fonts must be added after the ImGui context exists and before the
	// first frame builds the atlas.
	b.backend.SetAfterCreateContextHook(b.loadFont)

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

func (b *Backend) loadFont() {
	if b.cfg.FontPath == "" {
		return
	}
	if _, err := os.Stat(b.cfg.FontPath); err != nil {
		logger.Warn("font not found, using default", zap.String("path", b.cfg.FontPath))
		return
	}

	size := b.cfg.FontSize
	if size <= 0 {
		size = 16
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	fonts := imgui.CurrentIO().Fonts()
	if fonts.AddFontFromFileTTFV(b.cfg.FontPath, size, fontCfg, &latinGlyphRanges[0]) == nil {
		logger.Warn("failed to load font", zap.String("path", b.cfg.FontPath))
		return
	}
	logger.Debug("loaded font", zap.String("path", b.cfg.FontPath), zap.Float32("size", size))
}

// Run starts the main loop, calling renderFunc once per frame.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// OnShutdown registers fn to run while the GL context still exists, just
// before the backend destroys it.
func (b *Backend) OnShutdown(fn func()) {
	b.backend.SetBeforeDestroyContextHook(fn)
}

// Quit asks the main loop to stop after the current frame. Run then returns
// and the window and contexts are destroyed by the backend.
func (b *Backend) Quit() {
	b.backend.SetShouldClose(true)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// WorkArea returns the main viewport area below the menu bar.
func WorkArea() (pos, size imgui.Vec2) {
	viewport := imgui.MainViewport()
	return viewport.WorkPos(), viewport.WorkSize()
}

// GLImage shows an OpenGL texture, flipping V since GL rows start at the bottom.
func GLImage(texID uint32, width, height float32, bg imgui.Vec4) {
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texID))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(width, height),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		bg,
		imgui.NewVec4(1, 1, 1, 1),
	)
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsCtrlKeyPressed checks if key was pressed with Ctrl held.
func IsCtrlKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(imgui.ModCtrl) | imgui.KeyChord(key))
}
