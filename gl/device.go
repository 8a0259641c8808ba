// Package gl implements a spry.Device on top of OpenGL 2.1.
//
// All functions and methods must be called from the goroutine that owns the
// GL context.
//
package gl

import (
	"image/color"

	"github.com/db47h/spry"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/pkg/errors"
)

// Option configures a Device.
//
type Option interface {
	set(*Device)
}

type optionFunc func(*Device)

func (f optionFunc) set(d *Device) {
	f(d)
}

// ClearColor sets the color the frame is cleared to. The default is a light
// gray.
//
func ClearColor(c color.Color) Option {
	return optionFunc(func(d *Device) {
		d.clear = spry.ColorOf(c)
	})
}

// Device renders through an OpenGL 2.1 context.
//
type Device struct {
	program  Program
	attribs  [3]uint32
	vbos     [3]uint32
	uView    int32
	uSampler int32
	clear    spry.Color
}

// DefaultClearColor is the clear color of devices created without the
// ClearColor option.
//
var DefaultClearColor = spry.Color{R: 0.9, G: 0.9, B: 0.9, A: 1}

// NewDevice loads the GL entry points of the current context, builds the
// sprite shader and sets up the vertex streams and blending state. Any
// failure is fatal for the renderer.
//
func NewDevice(options ...Option) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "gl init")
	}
	d := &Device{clear: DefaultClearColor}
	for _, o := range options {
		o.set(d)
	}

	vs, err := NewShader(gl.VERTEX_SHADER, vertexShader)
	if err != nil {
		return nil, errors.Wrap(err, "vertex shader")
	}
	defer vs.Delete()
	fs, err := NewShader(gl.FRAGMENT_SHADER, fragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "fragment shader")
	}
	defer fs.Delete()
	if d.program, err = NewProgram(vs, fs); err != nil {
		return nil, err
	}

	for s, name := range [...]string{
		spry.StreamPosition: "aPos",
		spry.StreamColor:    "aCol",
		spry.StreamTexCoord: "aTex",
	} {
		if d.attribs[s], err = d.program.AttribLocation(name); err != nil {
			d.program.Delete()
			return nil, err
		}
	}
	if d.uView, err = d.program.UniformLocation("uView"); err != nil {
		d.program.Delete()
		return nil, err
	}
	if d.uSampler, err = d.program.UniformLocation("uSampler"); err != nil {
		d.program.Delete()
		return nil, err
	}

	gl.GenBuffers(int32(len(d.vbos)), &d.vbos[0])
	for s, vbo := range d.vbos {
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, spry.BatchSize*spry.VerticesPerQuad*spry.Stream(s).Components()*4, nil, gl.DYNAMIC_DRAW)
		gl.VertexAttribPointer(d.attribs[s], int32(spry.Stream(s).Components()), gl.FLOAT, false, 0, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(d.attribs[s])
	}

	d.program.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(d.uSampler, 0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	return d, nil
}

// Version returns the GL version string of the current context.
//
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Device) CreateTexture() (spry.TextureID, error) {
	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return 0, errors.Errorf("glGenTextures failed: error 0x%x", gl.GetError())
	}
	return spry.TextureID(id), nil
}

func (d *Device) UploadTexture(id spry.TextureID, w, h int, pix []byte, p spry.TextureParams) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapMode(p.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapMode(p.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterMode(p.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterMode(p.MagFilter))
}

func (d *Device) DeleteTexture(id spry.TextureID) {
	t := uint32(id)
	gl.DeleteTextures(1, &t)
}

func (d *Device) BindTexture(unit int, id spry.TextureID) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

func (d *Device) UploadBuffer(s spry.Stream, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbos[s])
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
}

func (d *Device) Draw(vertices int) {
	if vertices == 0 {
		return
	}
	gl.DrawArrays(gl.TRIANGLES, 0, int32(vertices))
}

func (d *Device) Clear() {
	gl.ClearColor(d.clear.R, d.clear.G, d.clear.B, d.clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) SetView(resX, resY, posX, posY float32) {
	gl.Uniform4f(d.uView, resX, resY, posX, posY)
}

// Viewport sets the window area the logical screen is drawn to, in
// framebuffer pixels.
//
func (d *Device) Viewport(x, y, w, h int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
}

// Delete releases the program and vertex buffers.
//
func (d *Device) Delete() {
	gl.DeleteBuffers(int32(len(d.vbos)), &d.vbos[0])
	d.program.Delete()
}

func wrapMode(w spry.TextureWrap) int32 {
	switch w {
	case spry.Repeat:
		return gl.REPEAT
	case spry.MirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}

func filterMode(f spry.TextureFilter) int32 {
	if f == spry.Linear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

var _ spry.Device = (*Device)(nil)
