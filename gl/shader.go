package gl

import (
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/pkg/errors"
)

// Shader is a compiled shader object.
//
type Shader uint32

// NewShader compiles source as a shader of the given type (gl.VERTEX_SHADER or
// gl.FRAGMENT_SHADER). Compilation errors carry the driver's info log.
//
func NewShader(typ uint32, source string) (Shader, error) {
	s := gl.CreateShader(typ)
	csrc, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s, 1, csrc, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &l)
		msg := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(s, l, nil, gl.Str(msg))
		gl.DeleteShader(s)
		return 0, errors.Errorf("compile shader: %s", strings.TrimRight(msg, "\x00"))
	}
	return Shader(s), nil
}

func (s Shader) Delete() {
	gl.DeleteShader(uint32(s))
}

// Program is a linked shader program.
//
type Program uint32

// NewProgram links shaders into a program.
//
func NewProgram(shaders ...Shader) (Program, error) {
	p := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(p, uint32(s))
	}
	gl.LinkProgram(p)

	var status int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &l)
		msg := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(p, l, nil, gl.Str(msg))
		gl.DeleteProgram(p)
		return 0, errors.Errorf("link program: %s", strings.TrimRight(msg, "\x00"))
	}
	return Program(p), nil
}

func (p Program) Delete() {
	gl.DeleteProgram(uint32(p))
}

func (p Program) Use() {
	gl.UseProgram(uint32(p))
}

func (p Program) AttribLocation(name string) (uint32, error) {
	r := gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
	if r < 0 {
		return ^uint32(0), errors.Errorf("unknown attribute %s", name)
	}
	return uint32(r), nil
}

func (p Program) UniformLocation(name string) (int32, error) {
	r := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	if r < 0 {
		return r, errors.Errorf("unknown uniform %s", name)
	}
	return r, nil
}
