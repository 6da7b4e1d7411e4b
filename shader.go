package pbr

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader is a linked program built from a vertex and a fragment stage.
//
// Sampler uniforms are assigned texture units in the order they are first
// set; the unit of a sampler never changes for the lifetime of the
// program. Textures referenced by the sampler table are not owned.
//
// The owner calls Release when done. Holders that store the shader (VAO)
// call AddRef first and Release when they let go of it.
type Shader struct {
	refCount

	dev      Device
	program  Handle
	maxUnits int

	samplers []samplerEntry
	units    map[string]int
}

type samplerEntry struct {
	name    string
	texture *Texture
}

// NewShader compiles and links vert and frag. On failure every object
// created so far is deleted and a *ShaderError carrying the driver log is
// returned.
func NewShader(dev Device, vert, frag string) (*Shader, error) {
	shdVert := dev.CreateShader(VertexShader)
	shdFrag := dev.CreateShader(FragmentShader)
	prog := dev.CreateProgram()

	if err := buildProgram(dev, prog, shdVert, shdFrag, vert, frag); err != nil {
		dev.DeleteShader(shdVert)
		dev.DeleteShader(shdFrag)
		dev.DeleteProgram(prog)
		return nil, err
	}

	// Linked into the program now.
	dev.DeleteShader(shdFrag)
	dev.DeleteShader(shdVert)

	return &Shader{
		dev:      dev,
		program:  prog,
		maxUnits: int(dev.GetInteger(MaxCombinedTextureImageUnits)),
		units:    make(map[string]int),
	}, nil
}

func buildProgram(dev Device, prog, shdVert, shdFrag Handle, vert, frag string) error {
	if err := compileStage(dev, shdVert, vert, "vertex"); err != nil {
		return err
	}
	if err := compileStage(dev, shdFrag, frag, "fragment"); err != nil {
		return err
	}

	dev.AttachShader(prog, shdVert)
	dev.AttachShader(prog, shdFrag)
	dev.LinkProgram(prog)

	if dev.GetProgrami(prog, LinkStatus) == 0 {
		return &ShaderError{Stage: "link", Log: dev.ProgramInfoLog(prog)}
	}
	return nil
}

func compileStage(dev Device, shd Handle, src, stage string) error {
	dev.ShaderSource(shd, src)
	dev.CompileShader(shd)

	if dev.GetShaderi(shd, CompileStatus) == 0 {
		return &ShaderError{Stage: stage, Log: dev.ShaderInfoLog(shd)}
	}
	return nil
}

// Handle returns the program handle, or 0 after the shader was freed.
func (s *Shader) Handle() Handle {
	return s.program
}

// Units returns the number of texture units assigned to samplers.
func (s *Shader) Units() int {
	return len(s.samplers)
}

// SetFloat sets a float (or float array) uniform.
func (s *Shader) SetFloat(name string, values ...float32) {
	if len(values) == 0 {
		return
	}
	s.dev.UseProgram(s.program)
	s.dev.Uniform1fv(s.location(name), values)
}

// SetVec2 sets a vec2 (or vec2 array) uniform.
func (s *Shader) SetVec2(name string, values ...mgl32.Vec2) {
	if len(values) == 0 {
		return
	}
	data := make([]float32, 0, 2*len(values))
	for _, v := range values {
		data = append(data, v[:]...)
	}
	s.dev.UseProgram(s.program)
	s.dev.Uniform2fv(s.location(name), data)
}

// SetVec3 sets a vec3 (or vec3 array) uniform.
func (s *Shader) SetVec3(name string, values ...mgl32.Vec3) {
	if len(values) == 0 {
		return
	}
	data := make([]float32, 0, 3*len(values))
	for _, v := range values {
		data = append(data, v[:]...)
	}
	s.dev.UseProgram(s.program)
	s.dev.Uniform3fv(s.location(name), data)
}

// SetVec4 sets a vec4 (or vec4 array) uniform.
func (s *Shader) SetVec4(name string, values ...mgl32.Vec4) {
	if len(values) == 0 {
		return
	}
	data := make([]float32, 0, 4*len(values))
	for _, v := range values {
		data = append(data, v[:]...)
	}
	s.dev.UseProgram(s.program)
	s.dev.Uniform4fv(s.location(name), data)
}

// SetMat3 sets a mat3 uniform from a column-major matrix.
func (s *Shader) SetMat3(name string, value mgl32.Mat3) {
	s.SetMat3Transpose(name, value, false)
}

// SetMat3Transpose sets a mat3 uniform, transposing it on upload if asked.
func (s *Shader) SetMat3Transpose(name string, value mgl32.Mat3, transpose bool) {
	s.dev.UseProgram(s.program)
	s.dev.UniformMatrix3fv(s.location(name), transpose, value[:])
}

// SetMat4 sets a mat4 uniform from a column-major matrix.
func (s *Shader) SetMat4(name string, value mgl32.Mat4) {
	s.SetMat4Transpose(name, value, false)
}

// SetMat4Transpose sets a mat4 uniform, transposing it on upload if asked.
func (s *Shader) SetMat4Transpose(name string, value mgl32.Mat4, transpose bool) {
	s.dev.UseProgram(s.program)
	s.dev.UniformMatrix4fv(s.location(name), transpose, value[:])
}

// SetTexture assigns texture to the sampler uniform name.
//
// The first assignment to a sampler allocates the next texture unit and
// uploads the unit index once. Later assignments only swap the texture
// bound to that unit. Samplers missing from the program are ignored.
// A nil texture is rejected with ErrNilTexture.
func (s *Shader) SetTexture(name string, texture *Texture) error {
	if texture == nil {
		return errors.Wrapf(ErrNilTexture, "sampler %q", name)
	}
	if unit, ok := s.units[name]; ok {
		s.samplers[unit].texture = texture
		return nil
	}

	loc := s.location(name)
	if !loc.Valid() {
		return nil
	}
	if len(s.samplers) >= s.maxUnits {
		return errors.Wrapf(ErrTooManyTextures, "sampler %q needs unit %d of %d", name, len(s.samplers), s.maxUnits)
	}

	unit := len(s.samplers)
	s.units[name] = unit
	s.samplers = append(s.samplers, samplerEntry{name: name, texture: texture})

	s.dev.UseProgram(s.program)
	s.dev.Uniform1i(loc, int32(unit))
	return nil
}

// Use activates the program and binds every assigned texture to its unit.
func (s *Shader) Use() {
	s.dev.UseProgram(s.program)

	for unit, entry := range s.samplers {
		s.dev.ActiveTexture(Texture0 + Enum(unit))
		entry.texture.Bind(Texture2D)
	}
}

// AttribLocation returns the location of the vertex input name, or -1 if
// the program has no such input.
func (s *Shader) AttribLocation(name string) int32 {
	return s.dev.GetAttribLocation(s.program, name)
}

// Release drops a reference and deletes the program with the last one.
func (s *Shader) Release() {
	if s.release("shader") {
		s.dev.DeleteProgram(s.program)
		s.program = 0
	}
}

func (s *Shader) location(name string) Location {
	return s.dev.GetUniformLocation(s.program, name)
}
