package pbr

// Handle identifies a driver-side object (buffer, texture, program, shader
// stage or vertex array). Zero means "not allocated" or "already released".
type Handle uint32

// Valid reports whether the handle refers to an allocated object.
func (h Handle) Valid() bool {
	return h != 0
}

// Location is a uniform location inside a program. -1 means the uniform
// does not exist; the driver silently drops uploads to it.
type Location int32

// Valid reports whether the uniform was found in the program.
func (l Location) Valid() bool {
	return l != -1
}

// Enum is a graphics API enumerant. Values match the OpenGL constants so a
// backend can pass them through unchanged.
type Enum uint32

// Buffer targets and usage hints.
const (
	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	UniformBuffer      Enum = 0x8A11

	StaticDraw  Enum = 0x88E4
	DynamicDraw Enum = 0x88E8
	StreamDraw  Enum = 0x88E0
)

// Texture targets, units and parameters.
const (
	Texture2D Enum = 0x0DE1
	Texture0  Enum = 0x84C0

	TextureMagFilter Enum = 0x2800
	TextureMinFilter Enum = 0x2801
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803

	Nearest            Enum = 0x2600
	Linear             Enum = 0x2601
	LinearMipmapLinear Enum = 0x2703
	Repeat             Enum = 0x2901
	ClampToEdge        Enum = 0x812F
)

// Shader stages, status queries and limits.
const (
	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31

	CompileStatus Enum = 0x8B81
	LinkStatus    Enum = 0x8B82

	MaxCombinedTextureImageUnits Enum = 0x8B4D
)

// Component types for vertex attributes.
const (
	Byte          Enum = 0x1400
	UnsignedByte  Enum = 0x1401
	Short         Enum = 0x1402
	UnsignedShort Enum = 0x1403
	Int           Enum = 0x1404
	UnsignedInt   Enum = 0x1405
	Float         Enum = 0x1406
)

// Primitive modes.
const (
	Points        Enum = 0x0000
	Lines         Enum = 0x0001
	LineLoop      Enum = 0x0002
	LineStrip     Enum = 0x0003
	Triangles     Enum = 0x0004
	TriangleStrip Enum = 0x0005
	TriangleFan   Enum = 0x0006
)

// Frame state.
const (
	DepthTest      Enum = 0x0B71
	CullFace       Enum = 0x0B44
	DepthBufferBit Enum = 0x0100
	ColorBufferBit Enum = 0x4000
)

// Device is the subset of the graphics API used by the resources in this
// package. All calls must happen on the thread that owns the context.
//
// The OpenGL implementation lives in backend/opengl; pbrtest provides an
// in-memory one for tests.
type Device interface {
	GenBuffer() Handle
	DeleteBuffer(h Handle)
	BindBuffer(target Enum, h Handle)
	BufferData(target Enum, data []byte, usage Enum)

	GenTexture() Handle
	DeleteTexture(h Handle)
	BindTexture(target Enum, h Handle)
	ActiveTexture(unit Enum)
	// TexImage2D uploads tightly packed RGBA8 pixels to mip level 0.
	TexImage2D(target Enum, width, height int, pix []byte)
	GenerateMipmap(target Enum)
	TexParameteri(target, pname Enum, param int32)

	CreateShader(stage Enum) Handle
	ShaderSource(h Handle, src string)
	CompileShader(h Handle)
	GetShaderi(h Handle, pname Enum) int32
	ShaderInfoLog(h Handle) string
	DeleteShader(h Handle)

	CreateProgram() Handle
	AttachShader(program, shader Handle)
	LinkProgram(program Handle)
	GetProgrami(program Handle, pname Enum) int32
	ProgramInfoLog(program Handle) string
	DeleteProgram(program Handle)
	UseProgram(program Handle)

	GetUniformLocation(program Handle, name string) Location
	GetAttribLocation(program Handle, name string) int32
	Uniform1i(loc Location, v int32)
	// The vector uploads take len(v)/N elements of N components each.
	Uniform1fv(loc Location, v []float32)
	Uniform2fv(loc Location, v []float32)
	Uniform3fv(loc Location, v []float32)
	Uniform4fv(loc Location, v []float32)
	UniformMatrix3fv(loc Location, transpose bool, v []float32)
	UniformMatrix4fv(loc Location, transpose bool, v []float32)

	GenVertexArray() Handle
	DeleteVertexArray(h Handle)
	BindVertexArray(h Handle)
	VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	DrawArrays(mode Enum, first, count int32)

	GetInteger(pname Enum) int32
	Enable(capability Enum)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Viewport(x, y, width, height int32)
}
