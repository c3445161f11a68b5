package viewer

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/objviewer/internal/settings"
)

func TestReadCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "command.json")

	if _, err := ReadCommand(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist without a command file, got %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"action":"rotate","x":10,"z":-5}`), 0644); err != nil {
		t.Fatal(err)
	}
	cmd, err := ReadCommand(path)
	if err != nil {
		t.Fatalf("ReadCommand failed: %v", err)
	}
	if cmd.Action != "rotate" || cmd.X != 10 || cmd.Z != -5 {
		t.Errorf("unexpected command: %+v", cmd)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected command file removed after reading")
	}
}

func TestReadCommandInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "command.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCommand(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected invalid command file removed")
	}
}

func TestExecute(t *testing.T) {
	v := New(&fakeRenderer{})
	path := writeOBJ(t, tetrahedronOBJ)

	cmds := []Command{
		{Action: "open", Path: path},
		{Action: "scale", Value: 2},
		{Action: "set_projection", Value: 1},
		{Action: "set_edge_type", Value: 1},
		{Action: "set_edge_thickness", Value: 3},
		{Action: "set_display_method", Value: 2},
		{Action: "set_vertex_size", Value: 9},
		{Action: "set_edge_color", Color: [4]float32{1, 0, 0, 1}},
	}
	for _, c := range cmds {
		if _, err := v.Execute(c); err != nil {
			t.Fatalf("%s failed: %v", c.Action, err)
		}
	}

	s := v.Settings
	if s.Projection != settings.Central || s.EdgeType != settings.Dashed || s.DisplayMethod != settings.Square {
		t.Errorf("enum commands not applied: %+v", s)
	}
	if s.EdgeThickness != 3 || s.VertexSize != 9 {
		t.Errorf("size commands not applied: %+v", s)
	}
	if s.EdgeColor != (settings.Color{R: 1, A: 1}) {
		t.Errorf("expected red edges, got %+v", s.EdgeColor)
	}

	// Scaled by 2 after normalization, so z spans [-1, 1].
	b := v.Model.ComputeBounds()
	if abs(b.Max.Z-1) > 1e-9 {
		t.Errorf("expected max z 1, got %v", b.Max.Z)
	}

	if _, err := v.Execute(Command{Action: "reset_settings"}); err != nil {
		t.Fatal(err)
	}
	if v.Settings != settings.Default() {
		t.Errorf("expected defaults after reset, got %+v", v.Settings)
	}
}

func TestExecuteErrors(t *testing.T) {
	v := New(nil)

	tests := []struct {
		cmd  Command
		want error
	}{
		{Command{Action: "explode"}, ErrUnknownCommand},
		{Command{Action: "reload"}, ErrNoFile},
		{Command{Action: "set_vertex_size", Value: 0}, ErrNonPositive},
		{Command{Action: "set_projection", Value: 4}, ErrInvalidOption},
	}
	for _, tt := range tests {
		if _, err := v.Execute(tt.cmd); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.cmd.Action, tt.want, err)
		}
	}
}

func TestWriteState(t *testing.T) {
	v := New(&fakeRenderer{})
	objPath := writeOBJ(t, tetrahedronOBJ)
	if err := v.Open(objPath); err != nil {
		t.Fatal(err)
	}

	statePath := filepath.Join(t.TempDir(), "state.json")
	if err := v.WriteState(statePath); err != nil {
		t.Fatalf("WriteState failed: %v", err)
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatal(err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("state is not valid JSON: %v", err)
	}

	if st.Path != objPath || st.Vertices != 4 || st.Polygons != 4 || st.Edges != 12 {
		t.Errorf("unexpected state: %+v", st)
	}
	if st.Settings.Projection != "Parallel" || st.Settings.DisplayMethod != "None" {
		t.Errorf("unexpected settings in state: %+v", st.Settings)
	}
	if abs(st.Bounds.Max[2]-0.5) > 1e-9 {
		t.Errorf("expected max z 0.5, got %v", st.Bounds.Max[2])
	}
}
