package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestDefaultKeymap(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		key  sdl.Scancode
		want Action
	}{
		{sdl.SCANCODE_ESCAPE, ActionQuit},
		{sdl.SCANCODE_UP, ActionRotateXNeg},
		{sdl.SCANCODE_PAGEUP, ActionRotateZPos},
		{sdl.SCANCODE_W, ActionMoveYPos},
		{sdl.SCANCODE_KP_PLUS, ActionScaleUp},
		{sdl.SCANCODE_MINUS, ActionScaleDown},
		{sdl.SCANCODE_P, ActionToggleProjection},
		{sdl.SCANCODE_R, ActionReload},
		{sdl.SCANCODE_Q, ActionNone},
	}
	for _, tt := range tests {
		if got := km.Lookup(tt.key); got != tt.want {
			t.Errorf("key %d: expected action %d, got %d", tt.key, tt.want, got)
		}
	}
}

func TestActions(t *testing.T) {
	in := New(DefaultKeymap())
	in.events = []Event{
		{Type: EventKeyDown, Key: sdl.SCANCODE_LEFT},
		{Type: EventMouseWheel, DY: 1},
		{Type: EventKeyDown, Key: sdl.SCANCODE_Q},
		{Type: EventKeyDown, Key: sdl.SCANCODE_V},
	}

	got := in.Actions()
	want := []Action{ActionRotateYNeg, ActionCycleDisplay}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}
