package assets

import (
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Result is the outcome of an asynchronous load.
//
type Result struct {
	Key   string       // caller supplied key
	Name  string       // file name relative to the file system root
	Image *image.NRGBA // decoded image, nil on error
	Err   error
}

// LoadImage decodes the named image in the background. The result is
// reported by Poll under key. Requests for a key that is already pending are
// ignored. There are no retries.
//
func (m *Manager) LoadImage(key, name string) {
	name = m.texturePath(name)
	m.submit(key, name, func() Result {
		img, err := m.decodeImage(name)
		if err != nil {
			return Result{Key: key, Name: name, Err: errors.Wrapf(err, "load image %s", name)}
		}
		return Result{Key: key, Name: name, Image: img}
	})
}

// DecodeImage synchronously decodes the named image.
//
func (m *Manager) DecodeImage(name string) (*image.NRGBA, error) {
	name = m.texturePath(name)
	img, err := m.decodeImage(name)
	return img, errors.Wrapf(err, "load image %s", name)
}

func (m *Manager) decodeImage(name string) (*image.NRGBA, error) {
	r, err := m.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return toNRGBA(src), nil
}

// toNRGBA returns src as a tightly packed NRGBA image with its origin at
// (0, 0).
//
func toNRGBA(src image.Image) *image.NRGBA {
	sr := src.Bounds()
	if i, ok := src.(*image.NRGBA); ok && sr.Min == (image.Point{}) && i.Stride == 4*sr.Dx() {
		return i
	}
	dr := image.Rectangle{Max: sr.Size()}
	dst := image.NewNRGBA(dr)
	draw.Draw(dst, dr, src, sr.Min, draw.Src)
	return dst
}
