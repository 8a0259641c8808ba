package spry

import (
	"image"
)

// A Sprite is a named region of a texture together with its size in world
// units.
//
type Sprite struct {
	Texture string          // texture name, see TextureTable
	Atlas   image.Rectangle // pixel-space region within the texture
	Size    Point
}

// SpriteTable maps sprite names to sprites. Entries are immutable.
//
// The table does not check that textures exist: textures must be registered
// before the sprites using them are drawn. A missing texture is reported by
// BatchRenderer.Draw.
//
type SpriteTable struct {
	m map[string]Sprite
}

func NewSpriteTable() *SpriteTable {
	return &SpriteTable{m: make(map[string]Sprite)}
}

// Register adds a sprite whose size is the pixel size of its atlas rectangle.
//
func (st *SpriteTable) Register(name, texture string, atlas image.Rectangle) {
	st.RegisterSize(name, texture, atlas, PtPt(atlas.Size()))
}

// RegisterSize adds a sprite with an explicit world size.
//
func (st *SpriteTable) RegisterSize(name, texture string, atlas image.Rectangle, size Point) {
	st.m[name] = Sprite{Texture: texture, Atlas: atlas, Size: size}
}

func (st *SpriteTable) Lookup(name string) (Sprite, bool) {
	s, ok := st.m[name]
	return s, ok
}

func (st *SpriteTable) Len() int {
	return len(st.m)
}
