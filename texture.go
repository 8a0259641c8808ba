package spry

import (
	"image"

	"github.com/pkg/errors"
)

// TextureFilter selects how to filter textures when minifying or magnifying.
//
type TextureFilter int32

const (
	Nearest TextureFilter = iota + 1
	Linear
)

// TextureWrap selects how textures wrap when texture coordinates get outside of
// the range [0, 1].
//
// Batched sprites sample from atlas sub-regions, so the only setting that makes
// sense there is ClampToEdge (the default).
//
type TextureWrap int32

const (
	ClampToEdge TextureWrap = iota + 1
	Repeat
	MirroredRepeat
)

// TextureParams holds the sampling parameters applied when a texture's
// contents are uploaded.
//
type TextureParams struct {
	WrapS, WrapT         TextureWrap
	MinFilter, MagFilter TextureFilter
}

// DefaultTextureParams are nearest filtering and edge clamping, which suits
// pixel art atlases.
//
var DefaultTextureParams = TextureParams{
	WrapS:     ClampToEdge,
	WrapT:     ClampToEdge,
	MinFilter: Nearest,
	MagFilter: Nearest,
}

// TextureParameter is implemented by functions setting texture parameters. See
// TextureTable.Register.
//
type TextureParameter interface {
	set(*TextureParams)
}

type textureOptionFunc func(*TextureParams)

func (f textureOptionFunc) set(p *TextureParams) {
	f(p)
}

// Wrap sets the wrap mode for the S and T coordinates.
//
func Wrap(wrapS, wrapT TextureWrap) TextureParameter {
	return textureOptionFunc(func(p *TextureParams) {
		p.WrapS = wrapS
		p.WrapT = wrapT
	})
}

// Filter sets the minifying and magnifying filters.
//
func Filter(min, mag TextureFilter) TextureParameter {
	return textureOptionFunc(func(p *TextureParams) {
		p.MinFilter = min
		p.MagFilter = mag
	})
}

// A Texture is a TextureTable entry.
//
// Width and Height are 1 until the real image has been uploaded. Handle never
// changes.
//
type Texture struct {
	Handle TextureID
	Width  int
	Height int
	Loaded bool
	params TextureParams
}

// UV maps the pixel rectangle r to normalized texture coordinates using the
// texture's current dimensions.
//
func (t *Texture) UV(r image.Rectangle) (s1, t1, s2, t2 float32) {
	w, h := float32(t.Width), float32(t.Height)
	return float32(r.Min.X) / w, float32(r.Min.Y) / h, float32(r.Max.X) / w, float32(r.Max.Y) / h
}

var placeholder = []byte{0xff, 0xff, 0xff, 0xff}

// TextureTable maps texture names to device textures.
//
type TextureTable struct {
	dev Device
	m   map[string]*Texture
}

// NewTextureTable returns an empty table allocating textures on dev.
//
func NewTextureTable(dev Device) *TextureTable {
	return &TextureTable{dev: dev, m: make(map[string]*Texture)}
}

// Register creates a device texture for name and uploads a 1×1 opaque white
// placeholder. The real contents are provided later through Complete.
//
// Registering an existing name replaces the entry; the old device texture is
// not released.
//
func (tt *TextureTable) Register(name string, params ...TextureParameter) (*Texture, error) {
	id, err := tt.dev.CreateTexture()
	if err != nil {
		return nil, errors.Wrapf(err, "create texture %q", name)
	}
	t := &Texture{Handle: id, Width: 1, Height: 1, params: DefaultTextureParams}
	for _, p := range params {
		p.set(&t.params)
	}
	tt.dev.UploadTexture(id, 1, 1, placeholder, t.params)
	tt.m[name] = t
	return t, nil
}

// Complete uploads img into the texture registered as name and updates its
// dimensions in place.
//
func (tt *TextureTable) Complete(name string, img *image.NRGBA) error {
	t, ok := tt.m[name]
	if !ok {
		return errors.Wrap(ErrUnknownTexture, name)
	}
	sz := img.Rect.Size()
	if sz.X == 0 || sz.Y == 0 {
		return errors.Errorf("texture %q: empty image", name)
	}
	pix := img.Pix
	if img.Stride != 4*sz.X || img.Rect.Min != (image.Point{}) {
		pix = make([]byte, 4*sz.X*sz.Y)
		for y := 0; y < sz.Y; y++ {
			i := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
			copy(pix[4*sz.X*y:], img.Pix[i:i+4*sz.X])
		}
	}
	tt.dev.UploadTexture(t.Handle, sz.X, sz.Y, pix, t.params)
	t.Width, t.Height = sz.X, sz.Y
	t.Loaded = true
	return nil
}

// Lookup returns the texture registered as name.
//
func (tt *TextureTable) Lookup(name string) (*Texture, bool) {
	t, ok := tt.m[name]
	return t, ok
}

// Len returns the number of registered textures.
//
func (tt *TextureTable) Len() int {
	return len(tt.m)
}

// Release deletes all device textures and empties the table.
//
func (tt *TextureTable) Release() {
	for name, t := range tt.m {
		tt.dev.DeleteTexture(t.Handle)
		delete(tt.m, name)
	}
}
