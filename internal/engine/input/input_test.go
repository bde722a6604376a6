package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
	}{
		{
			name:  "quit",
			event: &sdl.QuitEvent{Type: sdl.QUIT},
			want:  Event{Type: EventQuit},
			ok:    true,
		},
		{
			name:  "resize",
			event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			want:  Event{Type: EventWindowResize, Width: 800, Height: 600},
			ok:    true,
		},
		{
			name:  "window focus ignored",
			event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED},
			ok:    false,
		},
		{
			name:  "x down",
			event: &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_X}},
			want:  Event{Type: EventKeyDown, Key: KeyX},
			ok:    true,
		},
		{
			name:  "repeat ignored",
			event: &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_X}},
			ok:    false,
		},
		{
			name:  "space up",
			event: &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_SPACE}},
			want:  Event{Type: EventKeyUp, Key: KeySpace},
			ok:    true,
		},
		{
			name:  "unmapped key",
			event: &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_Q}},
			want:  Event{Type: EventKeyDown, Key: KeyOther},
			ok:    true,
		},
		{
			name:  "motion",
			event: &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 12, Y: 34},
			want:  Event{Type: EventMouseMove, MouseX: 12, MouseY: 34},
			ok:    true,
		},
		{
			name:  "left down",
			event: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 5, Y: 6},
			want:  Event{Type: EventMouseDown, Button: ButtonLeft, MouseX: 5, MouseY: 6},
			ok:    true,
		},
		{
			name:  "right up",
			event: &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_RIGHT, X: 7, Y: 8},
			want:  Event{Type: EventMouseUp, Button: ButtonRight, MouseX: 7, MouseY: 8},
			ok:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.event)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsKeyPressed(t *testing.T) {
	in := New()
	in.events = append(in.events,
		Event{Type: EventKeyUp, Key: KeyY},
		Event{Type: EventKeyDown, Key: KeyZ},
	)

	if !in.IsKeyPressed(KeyZ) {
		t.Error("Z should be pressed")
	}
	if in.IsKeyPressed(KeyY) {
		t.Error("a key release is not a press")
	}
}
