// Package input maps physical key codes to named logical inputs.
//
// Key codes use the DOM KeyboardEvent.code vocabulary ("KeyA", "ArrowLeft",
// "Space", ...). Platform layers translate their own key events into these
// codes and feed them to a Map.
//
package input

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownInput is the panic value's cause when querying an input name that
// was never bound.
//
var ErrUnknownInput = errors.New("unknown input")

type binding struct {
	code    string
	pressed bool
}

// Map holds input bindings and their pressed state.
//
// A Map is meant to be used from a single goroutine.
//
type Map struct {
	m      map[string]*binding
	byCode map[string][]*binding
}

// New returns an empty Map.
//
func New() *Map {
	return &Map{
		m:      make(map[string]*binding),
		byCode: make(map[string][]*binding),
	}
}

// Add binds name to the physical key code. Rebinding a name moves it to the
// new code and releases it.
//
func (m *Map) Add(name, code string) {
	if b, ok := m.m[name]; ok {
		m.unlink(b)
		b.code = code
		b.pressed = false
		m.byCode[code] = append(m.byCode[code], b)
		return
	}
	b := &binding{code: code}
	m.m[name] = b
	m.byCode[code] = append(m.byCode[code], b)
}

func (m *Map) unlink(b *binding) {
	bs := m.byCode[b.code]
	for i := range bs {
		if bs[i] == b {
			m.byCode[b.code] = append(bs[:i], bs[i+1:]...)
			break
		}
	}
	if len(m.byCode[b.code]) == 0 {
		delete(m.byCode, b.code)
	}
}

// KeyDown marks every input bound to code as pressed. Auto-repeat events are
// ignored.
//
func (m *Map) KeyDown(code string, repeat bool) {
	if repeat {
		return
	}
	for _, b := range m.byCode[code] {
		b.pressed = true
	}
}

// KeyUp releases every input bound to code.
//
func (m *Map) KeyUp(code string) {
	for _, b := range m.byCode[code] {
		b.pressed = false
	}
}

// Reset releases all inputs, as when the window loses focus.
//
func (m *Map) Reset() {
	for _, b := range m.m {
		b.pressed = false
	}
}

// IsPressed reports whether the named input is held down. It panics if name
// was never bound.
//
func (m *Map) IsPressed(name string) bool {
	b, ok := m.m[name]
	if !ok {
		panic(errors.Wrap(ErrUnknownInput, name))
	}
	return b.pressed
}

// Value returns 1 if the named input is pressed, 0 otherwise.
//
func (m *Map) Value(name string) float32 {
	if m.IsPressed(name) {
		return 1
	}
	return 0
}

// Axis returns Value(pos) - Value(neg).
//
func (m *Map) Axis(neg, pos string) float32 {
	return m.Value(pos) - m.Value(neg)
}

// Names returns the bound input names in lexical order.
//
func (m *Map) Names() []string {
	names := make([]string, 0, len(m.m))
	for n := range m.m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Code returns the key code bound to name.
//
func (m *Map) Code(name string) (string, bool) {
	b, ok := m.m[name]
	if !ok {
		return "", false
	}
	return b.code, true
}
