// Command and screenshot handling for OBJ Viewer.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/screenshot"
	"github.com/Faultbox/objviewer/internal/viewer"
)

// captureScreenshot saves the viewport contents to a PNG file.
func (app *App) captureScreenshot() {
	w, h := app.target.Size()
	pixels := app.target.ReadPixels()

	path, err := app.capture.SavePixels(pixels, w, h)
	if err != nil {
		app.showNotification(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}

	// Also save as "latest.png" for automation scripts.
	if img, err := screenshot.PixelsToImage(pixels, w, h); err == nil {
		_ = screenshot.WritePNG(filepath.Join(app.cfg.Viewer.ScreenshotDir, "latest.png"), img)
	}

	app.showNotification(fmt.Sprintf("Saved: %s", filepath.Base(path)))
	fmt.Printf("Screenshot saved: %s\n", path)
}

// dumpState writes the viewer state as JSON next to the screenshots.
func (app *App) dumpState() {
	statePath := filepath.Join(app.cfg.Viewer.ScreenshotDir, "state.json")
	if err := app.viewer.WriteState(statePath); err != nil {
		app.showNotification(fmt.Sprintf("State dump failed: %v", err))
		return
	}
	app.showNotification("State saved: state.json")
	fmt.Printf("State saved: %s\n", statePath)
}

// checkAndExecuteCommand polls for a command file and executes it if found.
// Called each frame from render(). Commands are single-shot.
func (app *App) checkAndExecuteCommand() {
	cmdPath := filepath.Join(app.cfg.Viewer.ScreenshotDir, "command.json")

	cmd, err := viewer.ReadCommand(cmdPath)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		app.log.Warn("bad command file", zap.Error(err))
		return
	}

	switch cmd.Action {
	case "screenshot":
		app.screenshotRequested = true
		return
	case "dump_state":
		app.dumpState()
		return
	case "open":
		if err := app.OpenModel(cmd.Path); err != nil {
			app.log.Error("command failed", zap.String("action", cmd.Action), zap.Error(err))
		}
		return
	}

	msg, err := app.viewer.Execute(cmd)
	if err != nil {
		app.showNotification(fmt.Sprintf("%s: %v", cmd.Action, err))
		app.log.Error("command failed", zap.String("action", cmd.Action), zap.Error(err))
		return
	}
	app.showNotification(msg)
	fmt.Println(msg)
}
