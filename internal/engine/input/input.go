// Package input turns SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionRotateXPos
	ActionRotateXNeg
	ActionRotateYPos
	ActionRotateYNeg
	ActionRotateZPos
	ActionRotateZNeg
	ActionMoveXPos
	ActionMoveXNeg
	ActionMoveYPos
	ActionMoveYNeg
	ActionScaleUp
	ActionScaleDown
	ActionToggleProjection
	ActionToggleEdgeType
	ActionCycleDisplay
	ActionReload
	ActionScreenshot
)

// Keymap binds scancodes to actions.
type Keymap map[sdl.Scancode]Action

// DefaultKeymap returns the bindings used by the standalone viewer.
func DefaultKeymap() Keymap {
	return Keymap{
		sdl.SCANCODE_ESCAPE:   ActionQuit,
		sdl.SCANCODE_UP:       ActionRotateXNeg,
		sdl.SCANCODE_DOWN:     ActionRotateXPos,
		sdl.SCANCODE_LEFT:     ActionRotateYNeg,
		sdl.SCANCODE_RIGHT:    ActionRotateYPos,
		sdl.SCANCODE_PAGEUP:   ActionRotateZPos,
		sdl.SCANCODE_PAGEDOWN: ActionRotateZNeg,
		sdl.SCANCODE_D:        ActionMoveXPos,
		sdl.SCANCODE_A:        ActionMoveXNeg,
		sdl.SCANCODE_W:        ActionMoveYPos,
		sdl.SCANCODE_S:        ActionMoveYNeg,
		sdl.SCANCODE_EQUALS:   ActionScaleUp,
		sdl.SCANCODE_KP_PLUS:  ActionScaleUp,
		sdl.SCANCODE_MINUS:    ActionScaleDown,
		sdl.SCANCODE_KP_MINUS: ActionScaleDown,
		sdl.SCANCODE_P:        ActionToggleProjection,
		sdl.SCANCODE_L:        ActionToggleEdgeType,
		sdl.SCANCODE_V:        ActionCycleDisplay,
		sdl.SCANCODE_R:        ActionReload,
		sdl.SCANCODE_F12:      ActionScreenshot,
	}
}

// Lookup returns the action bound to key, or ActionNone.
func (k Keymap) Lookup(key sdl.Scancode) Action {
	return k[key]
}

// EventType is the kind of a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseWheel
	EventMouseDrag
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	// Relative motion for drags, scroll amount for the wheel.
	DX, DY int
}

// Input polls SDL events once per frame.
type Input struct {
	events []Event
	keymap Keymap
}

// New creates an input handler using keymap.
func New(keymap Keymap) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		keymap: keymap,
	}
}

// Update polls pending SDL events. It returns true when the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type: EventMouseWheel,
				DX:   int(e.X),
				DY:   int(e.Y),
			})

		case *sdl.MouseMotionEvent:
			if e.State&sdl.ButtonLMask() != 0 {
				i.events = append(i.events, Event{
					Type: EventMouseDrag,
					DX:   int(e.XRel),
					DY:   int(e.YRel),
				})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Actions returns the actions of the keys pressed since the last Update,
// in event order.
func (i *Input) Actions() []Action {
	var actions []Action
	for _, e := range i.events {
		if e.Type != EventKeyDown {
			continue
		}
		if a := i.keymap.Lookup(e.Key); a != ActionNone {
			actions = append(actions, a)
		}
	}
	return actions
}
