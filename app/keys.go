package app

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// keyCodes maps GLFW keys to input key codes.
//
var keyCodes = func() map[glfw.Key]string {
	m := map[glfw.Key]string{
		glfw.KeySpace:        "Space",
		glfw.KeyEnter:        "Enter",
		glfw.KeyEscape:       "Escape",
		glfw.KeyTab:          "Tab",
		glfw.KeyBackspace:    "Backspace",
		glfw.KeyLeft:         "ArrowLeft",
		glfw.KeyRight:        "ArrowRight",
		glfw.KeyUp:           "ArrowUp",
		glfw.KeyDown:         "ArrowDown",
		glfw.KeyLeftShift:    "ShiftLeft",
		glfw.KeyRightShift:   "ShiftRight",
		glfw.KeyLeftControl:  "ControlLeft",
		glfw.KeyRightControl: "ControlRight",
		glfw.KeyLeftAlt:      "AltLeft",
		glfw.KeyRightAlt:     "AltRight",
		glfw.KeyMinus:        "Minus",
		glfw.KeyEqual:        "Equal",
		glfw.KeyComma:        "Comma",
		glfw.KeyPeriod:       "Period",
		glfw.KeySlash:        "Slash",
		glfw.KeySemicolon:    "Semicolon",
		glfw.KeyApostrophe:   "Quote",
		glfw.KeyLeftBracket:  "BracketLeft",
		glfw.KeyRightBracket: "BracketRight",
		glfw.KeyBackslash:    "Backslash",
		glfw.KeyGraveAccent:  "Backquote",
		glfw.KeyInsert:       "Insert",
		glfw.KeyDelete:       "Delete",
		glfw.KeyHome:         "Home",
		glfw.KeyEnd:          "End",
		glfw.KeyPageUp:       "PageUp",
		glfw.KeyPageDown:     "PageDown",
	}
	for i := 0; i < 26; i++ {
		m[glfw.KeyA+glfw.Key(i)] = "Key" + string(rune('A'+i))
	}
	for i := 0; i < 10; i++ {
		m[glfw.Key0+glfw.Key(i)] = "Digit" + string(rune('0'+i))
		m[glfw.KeyKP0+glfw.Key(i)] = "Numpad" + string(rune('0'+i))
	}
	for i := 0; i < 12; i++ {
		m[glfw.KeyF1+glfw.Key(i)] = fmt.Sprintf("F%d", i+1)
	}
	return m
}()
