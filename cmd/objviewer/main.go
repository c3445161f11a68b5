// OBJ Viewer - a desktop wireframe viewer for Wavefront OBJ models.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/framebuffer"
	"github.com/Faultbox/objviewer/internal/engine/renderer"
	"github.com/Faultbox/objviewer/internal/engine/screenshot"
	"github.com/Faultbox/objviewer/internal/engine/ui"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/internal/viewer"
	"github.com/Faultbox/objviewer/internal/watch"
)

const windowTitle = "OBJ Viewer"

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== OBJ Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if args := config.Args(); len(args) > 0 {
		if err := app.OpenModel(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening model: %v\n", err)
		}
	}

	app.Run()
}

// App is the viewer application state.
type App struct {
	cfg     *config.Config
	backend *ui.Backend

	viewer   *viewer.Viewer
	renderer *renderer.Renderer
	target   *framebuffer.Framebuffer
	watcher  *watch.Watcher
	capture  *screenshot.Capture

	settingsPath string

	// Paths chosen in the file dialog, which runs off the UI thread.
	pendingOpen chan string

	// Transform panel inputs
	moveX, moveY, moveZ       float32
	rotateX, rotateY, rotateZ float32
	scaleFactor               float32

	// Viewport mouse tracking
	lastMousePos imgui.Vec2

	// Screenshot state
	screenshotRequested bool

	// Overlay notification
	notifyMsg  string
	notifyTime time.Time

	log *zap.Logger
}

// NewApp creates the window, the renderer and the viewer.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:         cfg,
		pendingOpen: make(chan string, 1),
		scaleFactor: 1,
		capture:     screenshot.New(cfg.Viewer.ScreenshotDir, "objviewer"),
		log:         logger.Named("objviewer"),
	}

	var err error
	app.backend, err = ui.NewBackend(ui.Config{
		Title:    windowTitle,
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
		FontPath: cfg.Window.FontPath,
		FontSize: cfg.Window.FontSize,
	})
	if err != nil {
		return nil, err
	}

	app.renderer, err = renderer.New()
	if err != nil {
		return nil, err
	}

	app.target, err = framebuffer.New(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		app.renderer.Close()
		return nil, err
	}

	app.viewer = viewer.New(app.renderer)
	app.backend.OnShutdown(app.releaseGPU)

	app.settingsPath, err = cfg.SettingsPath()
	if err != nil {
		app.log.Warn("settings will not be persisted", zap.Error(err))
	} else if err := app.viewer.LoadSettings(app.settingsPath); err != nil {
		app.log.Info("using default settings", zap.String("path", app.settingsPath), zap.Error(err))
	}

	if cfg.Viewer.Watch {
		app.watcher, err = watch.New(0)
		if err != nil {
			app.log.Warn("file watching disabled", zap.Error(err))
		}
	}

	if cfg.Viewer.ScreenshotDir != "" {
		if err := os.MkdirAll(cfg.Viewer.ScreenshotDir, 0755); err != nil {
			app.log.Warn("could not create screenshot dir", zap.Error(err))
		}
	}

	return app, nil
}

// Close saves the settings and releases anything not freed at shutdown.
func (app *App) Close() {
	if err := app.viewer.Close(app.settingsPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
	}
	if app.watcher != nil {
		app.watcher.Close()
	}
	app.releaseGPU()
}

// releaseGPU frees the offscreen target and the renderer. The backend calls
// it before destroying the GL context.
func (app *App) releaseGPU() {
	if app.target != nil {
		app.target.Destroy()
		app.target = nil
	}
	if app.renderer != nil {
		app.viewer.SetRenderer(nil)
		app.renderer.Close()
		app.renderer = nil
	}
}

// Run starts the main application loop. It returns when the window is
// closed or File > Exit is chosen.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// OpenModel loads an OBJ file into the viewer.
func (app *App) OpenModel(path string) error {
	if err := app.viewer.Open(path); err != nil {
		app.showNotification(fmt.Sprintf("Failed to open %s", filepath.Base(path)))
		return err
	}

	app.backend.SetWindowTitle(fmt.Sprintf("%s - %s", windowTitle, filepath.Base(path)))

	if app.watcher != nil {
		if err := app.watcher.Watch(path); err != nil {
			app.log.Warn("cannot watch file", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

// openFileDialog shows a native file dialog to select an OBJ file.
func (app *App) openFileDialog() {
	// SDL/Cocoa window operations must happen on the main thread, so the
	// dialog result is handed back over pendingOpen and opened in render().
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open Model").
			Load()

		if err != nil {
			if err != dialog.ErrCancelled {
				app.log.Error("file dialog error", zap.Error(err))
			}
			return
		}

		select {
		case app.pendingOpen <- filename:
		default:
		}
	}()
}

// render is called each frame to draw the UI.
func (app *App) render() {
	// Capture at the start of the frame, before the viewport is redrawn.
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureScreenshot()
	}

	app.checkAndExecuteCommand()

	select {
	case path := <-app.pendingOpen:
		if err := app.OpenModel(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening model: %v\n", err)
		}
	default:
	}

	if app.watcher != nil {
		select {
		case <-app.watcher.Changed():
			app.log.Info("file changed, reloading", zap.String("path", app.viewer.Path()))
			if err := app.viewer.Reload(); err != nil {
				app.showNotification("Reload failed")
			}
		default:
		}
	}

	// F12 = screenshot of the viewport
	if ui.IsKeyPressed(imgui.KeyF12) {
		app.screenshotRequested = true
	}
	// Ctrl+O = open
	if ui.IsCtrlKeyPressed(imgui.KeyO) {
		app.openFileDialog()
	}
	// Ctrl+D = dump viewer state as JSON
	if ui.IsCtrlKeyPressed(imgui.KeyD) {
		app.dumpState()
	}

	app.renderMenuBar()

	workPos, workSize := ui.WorkArea()

	leftPanelWidth := float32(300)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	// Left panel - transform and style controls
	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Controls", nil, flags) {
		app.renderTransformPanel()
		imgui.Separator()
		app.renderStylePanel()
	}
	imgui.End()

	// Center panel - wireframe viewport
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-leftPanelWidth, contentHeight))
	if imgui.BeginV("Viewport", nil, flags|imgui.WindowFlagsNoScrollbar) {
		app.renderViewport()
	}
	imgui.End()

	// Status bar at bottom
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()

	app.renderNotification(workPos)
}

func (app *App) renderMenuBar() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open...") {
			app.openFileDialog()
		}
		if imgui.MenuItemBool("Reload") {
			if err := app.viewer.Reload(); err != nil {
				app.showNotification(err.Error())
			}
		}
		imgui.Separator()
		if imgui.MenuItemBool("Save Settings") {
			app.saveSettings()
		}
		if imgui.MenuItemBool("Reset Settings") {
			if _, err := app.viewer.Execute(viewer.Command{Action: "reset_settings"}); err == nil {
				app.showNotification("Settings reset to defaults")
			}
		}
		imgui.Separator()
		if imgui.MenuItemBool("Screenshot") {
			app.screenshotRequested = true
		}
		imgui.Separator()
		if imgui.MenuItemBool("Exit") {
			app.backend.Quit()
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

func (app *App) saveSettings() {
	if app.settingsPath == "" {
		app.showNotification("No settings location")
		return
	}
	if err := app.viewer.Settings.Save(app.settingsPath); err != nil {
		app.showNotification(fmt.Sprintf("Save failed: %v", err))
		return
	}
	app.showNotification("Settings saved")
}

func (app *App) renderStatusBar() {
	status := app.viewer.Status()
	if status == "" {
		imgui.TextDisabled("No model loaded (File > Open or Ctrl+O)")
		return
	}
	imgui.Text(status)
}

// showNotification displays a brief overlay message.
func (app *App) showNotification(msg string) {
	app.notifyMsg = msg
	app.notifyTime = time.Now()
}

func (app *App) renderNotification(workPos imgui.Vec2) {
	if app.notifyMsg == "" {
		return
	}
	if time.Since(app.notifyTime) >= 2*time.Second {
		app.notifyMsg = ""
		return
	}

	notifyFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+310, workPos.Y+10))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Notify", nil, notifyFlags) {
		imgui.Text(app.notifyMsg)
	}
	imgui.End()
}
