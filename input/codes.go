package input

import "strconv"

// Codes lists the key codes platform layers are expected to produce.
//
var Codes = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, c := range []string{
		"Space", "Enter", "Escape", "Tab", "Backspace",
		"ArrowLeft", "ArrowRight", "ArrowUp", "ArrowDown",
		"ShiftLeft", "ShiftRight", "ControlLeft", "ControlRight", "AltLeft", "AltRight",
		"Minus", "Equal", "Comma", "Period", "Slash", "Semicolon", "Quote",
		"BracketLeft", "BracketRight", "Backslash", "Backquote",
		"Insert", "Delete", "Home", "End", "PageUp", "PageDown",
	} {
		m[c] = struct{}{}
	}
	for c := 'A'; c <= 'Z'; c++ {
		m["Key"+string(c)] = struct{}{}
	}
	for c := '0'; c <= '9'; c++ {
		m["Digit"+string(c)] = struct{}{}
		m["Numpad"+string(c)] = struct{}{}
	}
	for i := 1; i <= 12; i++ {
		m["F"+strconv.Itoa(i)] = struct{}{}
	}
	return m
}()

// ValidCode reports whether code is a known key code.
//
func ValidCode(code string) bool {
	_, ok := Codes[code]
	return ok
}
