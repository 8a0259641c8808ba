package spry

import "github.com/pkg/errors"

const (
	// BatchSize is the number of quads a batch holds before it must be
	// flushed.
	BatchSize = 64
	// VerticesPerQuad is the number of vertices of a quad: two triangles, no
	// shared indices.
	VerticesPerQuad = 6
)

// GeometryBuffer is fixed-capacity storage for one attribute stream of a batch
// of quads.
//
// Quad i is always stored at offset i*VerticesPerQuad*components. Reset does
// not zero the storage; data past the written quads is never exposed.
//
type GeometryBuffer struct {
	data   []float32
	stride int // floats per quad
	quads  int
}

// NewGeometryBuffer returns a buffer for quads of components floats per
// vertex, with room for batchSize quads.
//
func NewGeometryBuffer(components, batchSize int) *GeometryBuffer {
	stride := components * VerticesPerQuad
	return &GeometryBuffer{
		data:   make([]float32, batchSize*stride),
		stride: stride,
	}
}

// Write stores one quad's worth of vertex components at index quad. values
// must hold exactly VerticesPerQuad*components floats and quad must be lower
// than the buffer capacity.
//
func (b *GeometryBuffer) Write(quad int, values []float32) {
	if len(values) != b.stride {
		panic(errors.Errorf("geometry buffer: got %d values, want %d", len(values), b.stride))
	}
	if quad < 0 || quad >= b.Cap() {
		panic(errors.Errorf("geometry buffer: quad %d out of range [0, %d)", quad, b.Cap()))
	}
	copy(b.data[quad*b.stride:], values)
	b.quads = quad + 1
}

// Data returns the contiguous range holding the written quads.
//
func (b *GeometryBuffer) Data() []float32 {
	return b.data[:b.quads*b.stride]
}

// Len returns the number of written quads.
//
func (b *GeometryBuffer) Len() int { return b.quads }

// Cap returns the buffer capacity in quads.
//
func (b *GeometryBuffer) Cap() int { return len(b.data) / b.stride }

// Reset logically empties the buffer.
//
func (b *GeometryBuffer) Reset() { b.quads = 0 }
