package pbr

import "log/slog"

// VAO binds vertex buffers to the inputs of a shader and draws them.
//
// A VAO holds a reference to its shader and one reference per bound
// attribute to each buffer, so the owners of those may release them while
// the VAO is still in use. Releasing the VAO's last reference releases
// them in turn.
type VAO struct {
	refCount

	dev     Device
	handle  Handle
	shader  *Shader
	buffers []*Buffer
}

// NewVAO creates a vertex array object drawing with shader.
func NewVAO(dev Device, shader *Shader) *VAO {
	shader.AddRef()
	return &VAO{
		dev:    dev,
		handle: dev.GenVertexArray(),
		shader: shader,
	}
}

// Handle returns the driver handle, or 0 after the VAO was freed.
func (v *VAO) Handle() Handle {
	return v.handle
}

// Shader returns the shader the VAO draws with.
func (v *VAO) Shader() *Shader {
	return v.shader
}

// BindBuffer feeds the shader input name from buffer. size is the number
// of components per vertex, typ their type, stride the distance between
// vertices and offset the byte offset of the first component.
//
// The buffer is uploaded if it has pending changes. Each call takes its
// own reference on buffer, also when the same buffer backs several
// inputs.
func (v *VAO) BindBuffer(buffer *Buffer, name string, size int32, typ Enum, normalized bool, stride int32, offset int) {
	v.dev.BindVertexArray(v.handle)
	buffer.Bind(ArrayBuffer)

	v.buffers = append(v.buffers, buffer)
	buffer.AddRef()

	loc := v.shader.AttribLocation(name)
	if loc < 0 {
		slog.Debug("vertex input not found in program", "name", name)
		return
	}
	v.dev.VertexAttribPointer(uint32(loc), size, typ, normalized, stride, offset)
	v.dev.EnableVertexAttribArray(uint32(loc))
}

// Draw renders count vertices starting at first with the given primitive
// mode, binding the shader and its textures first.
func (v *VAO) Draw(mode Enum, first, count int32) {
	v.shader.Use()
	v.dev.BindVertexArray(v.handle)
	v.dev.DrawArrays(mode, first, count)
}

// Release drops a reference. The last one deletes the vertex array and
// releases the shader and every bound buffer.
func (v *VAO) Release() {
	if v.release("vao") {
		v.dev.DeleteVertexArray(v.handle)
		v.handle = 0

		v.shader.Release()
		v.shader = nil

		for _, b := range v.buffers {
			b.Release()
		}
		v.buffers = nil
	}
}
