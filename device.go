package spry

// TextureID is a device texture handle. It never changes for the lifetime of a
// texture, even when its contents are replaced.
//
type TextureID uint32

// Stream identifies one of the three per-vertex attribute streams of a batch.
//
type Stream int

const (
	StreamPosition Stream = iota // x, y, z
	StreamColor                  // r, g, b, a
	StreamTexCoord               // s, t
	streamCount
)

var streamNames = [...]string{"position", "color", "texcoord"}

func (s Stream) String() string {
	if s < 0 || s >= streamCount {
		return "invalid stream"
	}
	return streamNames[s]
}

// Components returns the number of float32 components per vertex in the stream.
//
func (s Stream) Components() int {
	switch s {
	case StreamPosition:
		return 3
	case StreamColor:
		return 4
	case StreamTexCoord:
		return 2
	}
	panic("invalid stream")
}

// Device is the graphics device the renderer submits to. All calls are
// synchronous from the renderer's point of view.
//
// CreateTexture is the only call that can fail; any other failure is the device
// implementation's own business.
//
type Device interface {
	CreateTexture() (TextureID, error)
	// UploadTexture replaces the contents of the texture. pix holds
	// non-premultiplied RGBA pixels, 4 bytes per pixel, rows top to bottom.
	UploadTexture(id TextureID, width, height int, pix []byte, p TextureParams)
	DeleteTexture(id TextureID)
	BindTexture(unit int, id TextureID)
	UploadBuffer(s Stream, data []float32)
	// Draw issues one non-indexed triangle list draw of the given number of
	// vertices from the last uploaded buffers.
	Draw(vertices int)
	// Clear clears the color and depth targets.
	Clear()
	// SetView sets the four scalars of the world to clip space transform. See
	// Camera.TransformParams.
	SetView(resX, resY, posX, posY float32)
}
