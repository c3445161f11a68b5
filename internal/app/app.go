// Package app runs the viewer in a plain SDL window, without the ImGui panels.
// It backs the objtool view and snapshot commands.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/framebuffer"
	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/internal/engine/renderer"
	"github.com/Faultbox/objviewer/internal/engine/screenshot"
	"github.com/Faultbox/objviewer/internal/engine/window"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/internal/viewer"
	"github.com/Faultbox/objviewer/internal/watch"
)

// Config holds app configuration.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
	// Hidden keeps the window off screen; used for snapshots.
	Hidden bool
	// Watch reloads the open file when it changes on disk.
	Watch         bool
	SettingsPath  string
	ScreenshotDir string
	Steps         Steps
}

// App owns the window, the GL renderer and the viewer state.
type App struct {
	config   Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	viewer   *viewer.Viewer
	watcher  *watch.Watcher
	capture  *screenshot.Capture

	log *zap.Logger
}

// New creates the window and GL state. Settings are loaded from
// cfg.SettingsPath when it is set.
func New(cfg Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logger.Named("app"),
	}
	a.log.Info("initializing viewer",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		VSync:  cfg.VSync,
		Hidden: cfg.Hidden,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after window, the GL context must exist.
	a.renderer, err = renderer.New()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.Resize(a.window.DrawableSize())

	a.viewer = viewer.New(a.renderer)
	if cfg.SettingsPath != "" {
		if err := a.viewer.LoadSettings(cfg.SettingsPath); err != nil {
			a.log.Debug("using default settings", zap.Error(err))
		}
	}

	if cfg.Watch {
		a.watcher, err = watch.New(0)
		if err != nil {
			a.log.Warn("file watching disabled", zap.Error(err))
		}
	}

	a.input = input.New(input.DefaultKeymap())
	a.capture = screenshot.New(cfg.ScreenshotDir, "objviewer")
	return a, nil
}

// Viewer returns the viewer state.
func (a *App) Viewer() *viewer.Viewer {
	return a.viewer
}

// Open loads an OBJ file and starts watching it if enabled.
func (a *App) Open(path string) error {
	if err := a.viewer.Open(path); err != nil {
		return err
	}
	a.window.SetTitle(fmt.Sprintf("%s - %s", a.config.Title, a.viewer.Status()))
	if a.watcher != nil {
		if err := a.watcher.Watch(path); err != nil {
			a.log.Warn("cannot watch file", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

// Run draws frames until the window closes or Escape is pressed.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}

		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.renderer.Resize(a.window.DrawableSize())
				a.viewer.Invalidate()
			case input.EventMouseWheel:
				if a.config.Steps.Scale <= 0 {
					break
				}
				if event.DY > 0 {
					a.viewer.Scale(a.config.Steps.Scale)
				} else if event.DY < 0 {
					a.viewer.Scale(1 / a.config.Steps.Scale)
				}
			case input.EventMouseDrag:
				a.viewer.Rotate(float64(event.DY)*dragDegrees, float64(event.DX)*dragDegrees, 0)
			}
		}

		for _, action := range a.input.Actions() {
			a.handle(action)
		}

		if a.watcher != nil {
			select {
			case <-a.watcher.Changed():
				a.log.Info("file changed, reloading", zap.String("path", a.viewer.Path()))
				if err := a.viewer.Reload(); err != nil {
					a.log.Error("reload failed", zap.Error(err))
				}
			default:
			}
		}

		// The back buffer is undefined after a swap, so every frame is drawn.
		a.viewer.Draw()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handle(action input.Action) {
	switch action {
	case input.ActionQuit:
		a.running = false
	case input.ActionReload:
		if err := a.viewer.Reload(); err != nil {
			a.log.Warn("reload failed", zap.Error(err))
		}
	case input.ActionScreenshot:
		w, h := a.window.DrawableSize()
		path, err := a.Screenshot(w, h)
		if err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
			return
		}
		a.log.Info("screenshot saved", zap.String("path", path))
	default:
		Apply(a.viewer, action, a.config.Steps)
	}
}

// RenderPixels draws one frame into an offscreen target of the given size
// and returns its RGBA pixels, bottom row first.
func (a *App) RenderPixels(width, height int) ([]byte, error) {
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}
	defer fb.Destroy()

	restore := fb.Bind()
	w, h := fb.Size()
	a.renderer.Resize(w, h)
	a.viewer.Draw()
	pixels := fb.ReadPixels()
	restore()

	a.renderer.Resize(a.window.DrawableSize())
	a.viewer.Invalidate()
	return pixels, nil
}

// Screenshot renders a frame of the given size to a timestamped PNG file.
func (a *App) Screenshot(width, height int) (string, error) {
	pixels, err := a.RenderPixels(width, height)
	if err != nil {
		return "", err
	}
	return a.capture.SavePixels(pixels, width, height)
}

// Close saves the settings and releases everything.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.viewer != nil {
		if err := a.viewer.Close(a.config.SettingsPath); err != nil {
			a.log.Warn("settings not saved", zap.Error(err))
		}
	}
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
