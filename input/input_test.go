package input

import (
	"testing"

	"github.com/pkg/errors"
)

func TestPressRelease(t *testing.T) {
	m := New()
	m.Add("left", "ArrowLeft")
	m.Add("right", "ArrowRight")

	m.KeyDown("ArrowLeft", false)
	if !m.IsPressed("left") {
		t.Fatal("left not pressed after KeyDown")
	}
	if m.IsPressed("right") {
		t.Fatal("right pressed")
	}
	if got := m.Axis("left", "right"); got != -1 {
		t.Fatalf("Axis: got %v, want -1", got)
	}
	m.KeyDown("ArrowRight", false)
	if got := m.Axis("left", "right"); got != 0 {
		t.Fatalf("Axis: got %v, want 0", got)
	}
	m.KeyUp("ArrowLeft")
	if m.IsPressed("left") {
		t.Fatal("left pressed after KeyUp")
	}
	if got := m.Axis("left", "right"); got != 1 {
		t.Fatalf("Axis: got %v, want 1", got)
	}
}

func TestRepeatIgnored(t *testing.T) {
	m := New()
	m.Add("jump", "Space")
	m.KeyDown("Space", true)
	if m.IsPressed("jump") {
		t.Fatal("repeat event pressed the input")
	}
}

func TestSharedCode(t *testing.T) {
	m := New()
	m.Add("fire", "Space")
	m.Add("jump", "Space")
	m.KeyDown("Space", false)
	if !m.IsPressed("fire") || !m.IsPressed("jump") {
		t.Fatal("all inputs bound to a code must be pressed")
	}
	m.KeyUp("Space")
	if m.IsPressed("fire") || m.IsPressed("jump") {
		t.Fatal("all inputs bound to a code must be released")
	}
}

func TestRebind(t *testing.T) {
	m := New()
	m.Add("jump", "Space")
	m.KeyDown("Space", false)
	m.Add("jump", "KeyW")
	if m.IsPressed("jump") {
		t.Fatal("rebinding must release the input")
	}
	m.KeyDown("Space", false)
	if m.IsPressed("jump") {
		t.Fatal("old code still bound")
	}
	m.KeyDown("KeyW", false)
	if !m.IsPressed("jump") {
		t.Fatal("new code not bound")
	}
	if c, _ := m.Code("jump"); c != "KeyW" {
		t.Fatalf("Code: got %q", c)
	}
}

func TestUnboundCode(t *testing.T) {
	m := New()
	m.Add("jump", "Space")
	m.KeyDown("KeyQ", false)
	m.KeyUp("KeyQ")
	if m.IsPressed("jump") {
		t.Fatal("unbound code changed state")
	}
}

func TestUnknownInput(t *testing.T) {
	m := New()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || errors.Cause(err) != ErrUnknownInput {
			t.Fatalf("got panic %v, want %v", r, ErrUnknownInput)
		}
	}()
	m.IsPressed("nope")
}

func TestValidCode(t *testing.T) {
	for _, td := range []struct {
		code string
		ok   bool
	}{
		{"ArrowLeft", true},
		{"KeyA", true},
		{"Digit0", true},
		{"F12", true},
		{"Space", true},
		{"F13", false},
		{"arrowleft", false},
		{"", false},
	} {
		t.Run(td.code, func(t *testing.T) {
			if got := ValidCode(td.code); got != td.ok {
				t.Fatalf("got %v, want %v", got, td.ok)
			}
		})
	}
}
