// Package opengl provides the OpenGL 4.1 core backend for package pbr: a
// Device issuing go-gl calls and a GLFW window owning the context.
package opengl

import (
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/pbr"
)

// Device implements pbr.Device on the OpenGL context current on the
// calling thread. gl.Init must have succeeded first; NewWindow does that.
type Device struct{}

var _ pbr.Device = (*Device)(nil)

// NewDevice returns a device for the current context.
func NewDevice() *Device {
	return &Device{}
}

// GenBuffer creates a buffer object.
func (d *Device) GenBuffer() pbr.Handle {
	var h uint32
	gl.GenBuffers(1, &h)
	return pbr.Handle(h)
}

// DeleteBuffer deletes a buffer object.
func (d *Device) DeleteBuffer(h pbr.Handle) {
	id := uint32(h)
	gl.DeleteBuffers(1, &id)
}

// BindBuffer binds h to target.
func (d *Device) BindBuffer(target pbr.Enum, h pbr.Handle) {
	gl.BindBuffer(uint32(target), uint32(h))
}

// BufferData uploads data to the buffer bound to target.
func (d *Device) BufferData(target pbr.Enum, data []byte, usage pbr.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data), gl.Ptr(data), uint32(usage))
}

// GenTexture creates a texture object.
func (d *Device) GenTexture() pbr.Handle {
	var h uint32
	gl.GenTextures(1, &h)
	return pbr.Handle(h)
}

// DeleteTexture deletes a texture object.
func (d *Device) DeleteTexture(h pbr.Handle) {
	id := uint32(h)
	gl.DeleteTextures(1, &id)
}

// BindTexture binds h to target on the active unit.
func (d *Device) BindTexture(target pbr.Enum, h pbr.Handle) {
	gl.BindTexture(uint32(target), uint32(h))
}

// ActiveTexture selects the texture unit for later binds.
func (d *Device) ActiveTexture(unit pbr.Enum) {
	gl.ActiveTexture(uint32(unit))
}

// TexImage2D uploads RGBA8 pixels to mip level 0.
func (d *Device) TexImage2D(target pbr.Enum, width, height int, pix []byte) {
	// Rows of RGBA8 are always 4-byte aligned, the default unpack alignment.
	gl.TexImage2D(uint32(target), 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
}

// GenerateMipmap builds the mip chain of the bound texture.
func (d *Device) GenerateMipmap(target pbr.Enum) {
	gl.GenerateMipmap(uint32(target))
}

// TexParameteri sets an integer texture parameter.
func (d *Device) TexParameteri(target, pname pbr.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

// CreateShader creates a shader stage object.
func (d *Device) CreateShader(stage pbr.Enum) pbr.Handle {
	return pbr.Handle(gl.CreateShader(uint32(stage)))
}

// ShaderSource replaces the source of a shader stage.
func (d *Device) ShaderSource(h pbr.Handle, src string) {
	csource, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(uint32(h), 1, csource, nil)
}

// CompileShader compiles a shader stage.
func (d *Device) CompileShader(h pbr.Handle) {
	gl.CompileShader(uint32(h))
}

// GetShaderi queries an integer shader stage parameter.
func (d *Device) GetShaderi(h pbr.Handle, pname pbr.Enum) int32 {
	var v int32
	gl.GetShaderiv(uint32(h), uint32(pname), &v)
	return v
}

// ShaderInfoLog returns the compile log of a shader stage.
func (d *Device) ShaderInfoLog(h pbr.Handle) string {
	var logLength int32
	gl.GetShaderiv(uint32(h), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetShaderInfoLog(uint32(h), logLength, nil, &log[0])
	return trimLog(log)
}

// DeleteShader deletes a shader stage.
func (d *Device) DeleteShader(h pbr.Handle) {
	gl.DeleteShader(uint32(h))
}

// CreateProgram creates a program object.
func (d *Device) CreateProgram() pbr.Handle {
	return pbr.Handle(gl.CreateProgram())
}

// AttachShader attaches a stage to a program.
func (d *Device) AttachShader(program, shader pbr.Handle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

// LinkProgram links a program.
func (d *Device) LinkProgram(program pbr.Handle) {
	gl.LinkProgram(uint32(program))
}

// GetProgrami queries an integer program parameter.
func (d *Device) GetProgrami(program pbr.Handle, pname pbr.Enum) int32 {
	var v int32
	gl.GetProgramiv(uint32(program), uint32(pname), &v)
	return v
}

// ProgramInfoLog returns the link log of a program.
func (d *Device) ProgramInfoLog(program pbr.Handle) string {
	var logLength int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetProgramInfoLog(uint32(program), logLength, nil, &log[0])
	return trimLog(log)
}

// DeleteProgram deletes a program.
func (d *Device) DeleteProgram(program pbr.Handle) {
	gl.DeleteProgram(uint32(program))
}

// UseProgram makes program current.
func (d *Device) UseProgram(program pbr.Handle) {
	gl.UseProgram(uint32(program))
}

// GetUniformLocation looks up a uniform by name.
func (d *Device) GetUniformLocation(program pbr.Handle, name string) pbr.Location {
	return pbr.Location(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
}

// GetAttribLocation looks up a vertex input by name.
func (d *Device) GetAttribLocation(program pbr.Handle, name string) int32 {
	return gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
}

// Uniform1i uploads an int or sampler uniform.
func (d *Device) Uniform1i(loc pbr.Location, v int32) {
	gl.Uniform1i(int32(loc), v)
}

// Uniform1fv uploads a float array uniform.
func (d *Device) Uniform1fv(loc pbr.Location, v []float32) {
	if len(v) > 0 {
		gl.Uniform1fv(int32(loc), int32(len(v)), &v[0])
	}
}

// Uniform2fv uploads a vec2 array uniform.
func (d *Device) Uniform2fv(loc pbr.Location, v []float32) {
	if len(v) >= 2 {
		gl.Uniform2fv(int32(loc), int32(len(v)/2), &v[0])
	}
}

// Uniform3fv uploads a vec3 array uniform.
func (d *Device) Uniform3fv(loc pbr.Location, v []float32) {
	if len(v) >= 3 {
		gl.Uniform3fv(int32(loc), int32(len(v)/3), &v[0])
	}
}

// Uniform4fv uploads a vec4 array uniform.
func (d *Device) Uniform4fv(loc pbr.Location, v []float32) {
	if len(v) >= 4 {
		gl.Uniform4fv(int32(loc), int32(len(v)/4), &v[0])
	}
}

// UniformMatrix3fv uploads a mat3 array uniform.
func (d *Device) UniformMatrix3fv(loc pbr.Location, transpose bool, v []float32) {
	if len(v) >= 9 {
		gl.UniformMatrix3fv(int32(loc), int32(len(v)/9), transpose, &v[0])
	}
}

// UniformMatrix4fv uploads a mat4 array uniform.
func (d *Device) UniformMatrix4fv(loc pbr.Location, transpose bool, v []float32) {
	if len(v) >= 16 {
		gl.UniformMatrix4fv(int32(loc), int32(len(v)/16), transpose, &v[0])
	}
}

// GenVertexArray creates a vertex array object.
func (d *Device) GenVertexArray() pbr.Handle {
	var h uint32
	gl.GenVertexArrays(1, &h)
	return pbr.Handle(h)
}

// DeleteVertexArray deletes a vertex array object.
func (d *Device) DeleteVertexArray(h pbr.Handle) {
	id := uint32(h)
	gl.DeleteVertexArrays(1, &id)
}

// BindVertexArray binds a vertex array object.
func (d *Device) BindVertexArray(h pbr.Handle) {
	gl.BindVertexArray(uint32(h))
}

// VertexAttribPointer describes a vertex input of the bound vertex array.
func (d *Device) VertexAttribPointer(index uint32, size int32, typ pbr.Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(typ), normalized, stride, uintptr(offset))
}

// EnableVertexAttribArray enables a vertex input.
func (d *Device) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

// DrawArrays draws count vertices starting at first.
func (d *Device) DrawArrays(mode pbr.Enum, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

// GetInteger queries an integer state value.
func (d *Device) GetInteger(pname pbr.Enum) int32 {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return v
}

// Enable turns on a capability.
func (d *Device) Enable(capability pbr.Enum) {
	gl.Enable(uint32(capability))
}

// ClearColor sets the clear color.
func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

// Clear clears the buffers selected by mask.
func (d *Device) Clear(mask pbr.Enum) {
	gl.Clear(uint32(mask))
}

// Viewport sets the viewport rectangle.
func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

// trimLog drops the terminating NUL and trailing newlines of a driver log.
func trimLog(log []byte) string {
	return strings.TrimRight(string(log), "\x00\r\n")
}

// ReadPixels reads a width x height RGBA rectangle of the current read
// framebuffer, starting at its lower left corner. The returned image has
// its first row at the top.
func (d *Device) ReadPixels(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	flipRows(img.Pix, img.Stride, height)
	return img
}

// flipRows reverses the row order of pix in place; OpenGL's origin is the
// bottom-left corner.
func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for y := 0; y < rows/2; y++ {
		top := pix[y*stride : (y+1)*stride]
		bot := pix[(rows-1-y)*stride : (rows-y)*stride]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}
