package viewer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Faultbox/objviewer/internal/settings"
)

// ErrUnknownCommand is returned by Execute for actions it does not know.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a scripted viewer operation, read from a JSON command file to
// drive the GUI from automation scripts.
type Command struct {
	Action string     `json:"action"`
	Path   string     `json:"path,omitempty"`
	X      float64    `json:"x,omitempty"`
	Y      float64    `json:"y,omitempty"`
	Z      float64    `json:"z,omitempty"`
	Value  float64    `json:"value,omitempty"`
	Color  [4]float32 `json:"color,omitempty"`
}

// ReadCommand reads and removes a single-shot command file.
// It returns os.ErrNotExist (wrapped) when there is no pending command.
func ReadCommand(path string) (Command, error) {
	var cmd Command

	data, err := os.ReadFile(path)
	if err != nil {
		return cmd, err
	}
	// Remove first so a bad command is not retried every frame.
	os.Remove(path)

	if err := json.Unmarshal(data, &cmd); err != nil {
		return cmd, fmt.Errorf("invalid command: %w", err)
	}
	return cmd, nil
}

// Execute applies cmd and returns a short description for the status line.
// Actions that need the GUI, such as screenshots, are not handled here.
func (v *Viewer) Execute(cmd Command) (string, error) {
	var err error

	switch cmd.Action {
	case "open":
		err = v.Open(cmd.Path)
	case "reload":
		err = v.Reload()
	case "move":
		v.Move(cmd.X, cmd.Y, cmd.Z)
	case "rotate":
		v.Rotate(cmd.X, cmd.Y, cmd.Z)
	case "scale":
		v.Scale(cmd.Value)
	case "set_projection":
		err = v.SetProjection(settings.Projection(int(cmd.Value)))
	case "set_edge_type":
		err = v.SetEdgeType(settings.EdgeType(int(cmd.Value)))
	case "set_edge_color":
		v.SetEdgeColor(settings.ColorFromArray(cmd.Color))
	case "set_edge_thickness":
		err = v.SetEdgeThickness(cmd.Value)
	case "set_display_method":
		err = v.SetDisplayMethod(settings.DisplayMethod(int(cmd.Value)))
	case "set_vertex_color":
		v.SetVertexColor(settings.ColorFromArray(cmd.Color))
	case "set_vertex_size":
		err = v.SetVertexSize(cmd.Value)
	case "set_background_color":
		v.SetBackgroundColor(settings.ColorFromArray(cmd.Color))
	case "reset_settings":
		v.Settings = settings.Default()
		v.dirty = true
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Action)
	}

	if err != nil {
		return "", err
	}
	return "Command executed: " + cmd.Action, nil
}

// State is a JSON snapshot of the viewer for automated checks.
type State struct {
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	Status    string `json:"status"`
	Vertices  uint32 `json:"vertices"`
	Polygons  uint32 `json:"polygons"`
	Edges     int    `json:"edges"`
	Bounds    struct {
		Min [3]float64 `json:"min"`
		Max [3]float64 `json:"max"`
	} `json:"bounds"`
	Settings struct {
		Projection      string     `json:"projection"`
		EdgeType        string     `json:"edgeType"`
		EdgeColor       [4]float32 `json:"edgeColor"`
		EdgeThickness   float64    `json:"edgeThickness"`
		DisplayMethod   string     `json:"displayMethod"`
		VertexColor     [4]float32 `json:"vertexColor"`
		VertexSize      float64    `json:"vertexSize"`
		BackgroundColor [4]float32 `json:"backgroundColor"`
	} `json:"settings"`
}

// State returns the current state. Bounds are recomputed from the vertices.
func (v *Viewer) State() State {
	st := State{
		Timestamp: time.Now().Format(time.RFC3339),
		Path:      v.path,
		Status:    v.status,
		Vertices:  v.Model.VertexCount,
		Polygons:  v.Model.PolygonCount,
		Edges:     v.Model.EdgeCount(),
	}

	b := v.Model.ComputeBounds()
	st.Bounds.Min = [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	st.Bounds.Max = [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	s := v.Settings
	st.Settings.Projection = s.Projection.String()
	st.Settings.EdgeType = s.EdgeType.String()
	st.Settings.EdgeColor = s.EdgeColor.Array()
	st.Settings.EdgeThickness = s.EdgeThickness
	st.Settings.DisplayMethod = s.DisplayMethod.String()
	st.Settings.VertexColor = s.VertexColor.Array()
	st.Settings.VertexSize = s.VertexSize
	st.Settings.BackgroundColor = s.BackgroundColor.Array()
	return st
}

// WriteState writes State as indented JSON to path.
func (v *Viewer) WriteState(path string) error {
	data, err := json.MarshalIndent(v.State(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
