package spry

import "github.com/pkg/errors"

var (
	// ErrUnknownSprite is returned when drawing a sprite name that was never
	// registered.
	ErrUnknownSprite = errors.New("unknown sprite")
	// ErrUnknownTexture is returned when a sprite refers to a texture name that
	// was never registered.
	ErrUnknownTexture = errors.New("unknown texture")
)
