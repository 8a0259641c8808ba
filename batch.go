package spry

import (
	"image"

	"github.com/pkg/errors"
)

// Stats counts the device work of the current frame.
//
type Stats struct {
	DrawCalls    int
	Quads        int
	TextureBinds int
}

// BatchRenderer accumulates quads and submits them to the device in batches.
//
// All quads of a batch share one texture. A batch is flushed when a quad with
// a different texture is drawn, when it is full, and at End.
//
type BatchRenderer struct {
	dev      Device
	cam      *Camera
	textures *TextureTable
	sprites  *SpriteTable

	buf     [streamCount]*GeometryBuffer
	texture string // active texture, valid if active is set
	active  bool
	index   int // quads in the current batch
	stats   Stats

	pos [VerticesPerQuad * 3]float32
	col [VerticesPerQuad * 4]float32
	tex [VerticesPerQuad * 2]float32
}

// NewBatchRenderer returns a batch renderer drawing sprites from sprites and
// textures onto dev, using cam for the frame's view transform.
//
func NewBatchRenderer(dev Device, cam *Camera, textures *TextureTable, sprites *SpriteTable) *BatchRenderer {
	b := &BatchRenderer{
		dev:      dev,
		cam:      cam,
		textures: textures,
		sprites:  sprites,
	}
	for s := StreamPosition; s < streamCount; s++ {
		b.buf[s] = NewGeometryBuffer(s.Components(), BatchSize)
	}
	return b
}

// Begin starts a new frame: it clears the device targets, loads the camera
// transform and resets the batch.
//
func (b *BatchRenderer) Begin() {
	b.dev.Clear()
	b.dev.SetView(b.cam.TransformParams())
	b.reset()
	b.texture = ""
	b.active = false
	b.stats = Stats{}
}

// SetView flushes pending quads and changes the view transform for the quads
// that follow.
//
func (b *BatchRenderer) SetView(resX, resY, posX, posY float32) {
	if b.index > 0 {
		b.flush()
		b.reset()
	}
	b.dev.SetView(resX, resY, posX, posY)
}

// Draw appends a quad for the named sprite centered on pos, scaled by scale
// and modulated by mod.
//
// Unknown sprites or textures are reported without touching the batch.
//
func (b *BatchRenderer) Draw(name string, pos Pos, scale Point, mod Color) error {
	s, ok := b.sprites.Lookup(name)
	if !ok {
		return errors.Wrapf(ErrUnknownSprite, "draw %q", name)
	}
	return errors.Wrapf(b.DrawRegion(s.Texture, s.Atlas, s.Size, pos, scale, mod), "draw %q", name)
}

// DrawRegion appends a quad for the atlas region of the named texture, of
// the given world size.
//
func (b *BatchRenderer) DrawRegion(texture string, atlas image.Rectangle, size Point, pos Pos, scale Point, mod Color) error {
	t, ok := b.textures.Lookup(texture)
	if !ok {
		return errors.Wrap(ErrUnknownTexture, texture)
	}

	if !b.active || b.texture != texture {
		if b.index > 0 {
			b.flush()
		}
		b.dev.BindTexture(0, t.Handle)
		b.stats.TextureBinds++
		b.texture = texture
		b.active = true
		b.reset()
	} else if b.index == BatchSize {
		b.flush()
		b.reset()
	}

	s1, t1, s2, t2 := t.UV(atlas)
	w2, h2 := size.X/2*scale.X, size.Y/2*scale.Y
	x0, y0, x1, y1, z := pos.X-w2, pos.Y-h2, pos.X+w2, pos.Y+h2, pos.Z

	// (x0,y0) is the bottom left corner in the quad's own frame.
	b.pos = [...]float32{
		x0, y0, z,
		x1, y0, z,
		x1, y1, z,
		x0, y0, z,
		x1, y1, z,
		x0, y1, z,
	}
	b.tex = [...]float32{
		s1, t1,
		s2, t1,
		s2, t2,
		s1, t1,
		s2, t2,
		s1, t2,
	}
	for i := 0; i < len(b.col); i += 4 {
		b.col[i+0], b.col[i+1], b.col[i+2], b.col[i+3] = mod.R, mod.G, mod.B, mod.A
	}

	b.buf[StreamPosition].Write(b.index, b.pos[:])
	b.buf[StreamColor].Write(b.index, b.col[:])
	b.buf[StreamTexCoord].Write(b.index, b.tex[:])
	b.index++
	b.stats.Quads++
	return nil
}

// End flushes the current batch, even if it is empty.
//
func (b *BatchRenderer) End() {
	b.flush()
	b.reset()
}

// Pending returns the number of quads in the current batch.
//
func (b *BatchRenderer) Pending() int {
	return b.index
}

// Stats returns the counters of the current frame.
//
func (b *BatchRenderer) Stats() Stats {
	return b.stats
}

// flush submits the current batch. It leaves the batch untouched.
//
func (b *BatchRenderer) flush() {
	for s, buf := range b.buf {
		b.dev.UploadBuffer(Stream(s), buf.Data())
	}
	b.dev.Draw(VerticesPerQuad * b.index)
	b.stats.DrawCalls++
}

func (b *BatchRenderer) reset() {
	b.index = 0
	for _, buf := range b.buf {
		buf.Reset()
	}
}
