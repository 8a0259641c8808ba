// Package overlay draws screen-fixed text labels on top of the sprites.
//
// Each label is rasterized into its own image when its text changes. The
// images are handed to a Target, which turns them into textures and draws
// them as quads.
//
package overlay

import (
	"image"
	"image/color"
	"sort"

	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Depth is the z value at which labels are drawn. It is in front of any
// sprite drawn with a smaller depth key.
//
const Depth = 999

// DefaultSize is the font size of labels that do not set one.
//
const DefaultSize = 16

// ErrUnknownLabel is returned for operations on a label that was never added.
//
var ErrUnknownLabel = errors.New("unknown label")

// A Label is a line of text anchored by its top-left corner, in screen
// pixels.
//
type Label struct {
	X, Y   float32
	Size   float64     // font size in pixels, DefaultSize if 0
	Color  color.Color // nil means white
	Text   string
	Hidden bool
}

// Target receives rasterized labels.
//
type Target interface {
	// SetImage creates or replaces the contents of the named texture.
	SetImage(name string, img *image.NRGBA) error
	// DrawImage draws the named texture as a w×h quad centered on (x, y, z),
	// modulated by c.
	DrawImage(name string, x, y, z, w, h float32, c color.Color) error
}

type entry struct {
	Label
	texture string
	w, h    int
	dirty   bool
}

// Overlay holds the labels of a screen.
//
type Overlay struct {
	font   *truetype.Font
	faces  map[float64]font.Face
	labels map[string]*entry
	order  []string
}

// New returns an overlay rendering text with f. If f is nil, the Go Regular
// font is used.
//
func New(f *truetype.Font) (*Overlay, error) {
	if f == nil {
		var err error
		if f, err = truetype.Parse(goregular.TTF); err != nil {
			return nil, errors.Wrap(err, "parse default font")
		}
	}
	return &Overlay{
		font:   f,
		faces:  make(map[float64]font.Face),
		labels: make(map[string]*entry),
	}, nil
}

// Add registers a label under name. Adding an existing name replaces the
// label but keeps its texture.
//
func (o *Overlay) Add(name string, l Label) {
	if l.Size <= 0 {
		l.Size = DefaultSize
	}
	if e, ok := o.labels[name]; ok {
		e.Label = l
		e.dirty = true
		return
	}
	o.labels[name] = &entry{
		Label:   l,
		texture: "overlay/" + uuid.NewString(),
		dirty:   true,
	}
	o.order = append(o.order, name)
	sort.Strings(o.order)
}

func (o *Overlay) lookup(name string) (*entry, error) {
	e, ok := o.labels[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownLabel, name)
	}
	return e, nil
}

// Write replaces the text of the named label.
//
func (o *Overlay) Write(name, text string) error {
	e, err := o.lookup(name)
	if err != nil {
		return err
	}
	if e.Text != text {
		e.Text = text
		e.dirty = true
	}
	return nil
}

// SetVisible shows or hides the named label.
//
func (o *Overlay) SetVisible(name string, visible bool) error {
	e, err := o.lookup(name)
	if err != nil {
		return err
	}
	e.Hidden = !visible
	return nil
}

// Visible reports whether the named label is shown.
//
func (o *Overlay) Visible(name string) (bool, error) {
	e, err := o.lookup(name)
	if err != nil {
		return false, err
	}
	return !e.Hidden, nil
}

// Text returns the text of the named label.
//
func (o *Overlay) Text(name string) (string, error) {
	e, err := o.lookup(name)
	if err != nil {
		return "", err
	}
	return e.Text, nil
}

// Len returns the number of labels.
//
func (o *Overlay) Len() int {
	return len(o.order)
}

// Render rasterizes the labels whose text changed and draws the visible ones,
// in name order.
//
func (o *Overlay) Render(t Target) error {
	for _, name := range o.order {
		e := o.labels[name]
		if e.Hidden || e.Text == "" {
			continue
		}
		if e.dirty {
			img := Rasterize(o.face(e.Size), e.Text)
			if err := t.SetImage(e.texture, img); err != nil {
				return errors.Wrapf(err, "label %q", name)
			}
			sz := img.Rect.Size()
			e.w, e.h = sz.X, sz.Y
			e.dirty = false
		}
		w, h := float32(e.w), float32(e.h)
		c := e.Color
		if c == nil {
			c = color.White
		}
		if err := t.DrawImage(e.texture, e.X+w/2, e.Y+h/2, Depth, w, h, c); err != nil {
			return errors.Wrapf(err, "label %q", name)
		}
	}
	return nil
}

func (o *Overlay) face(size float64) font.Face {
	f, ok := o.faces[size]
	if !ok {
		f = truetype.NewFace(o.font, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		o.faces[size] = f
	}
	return f
}
