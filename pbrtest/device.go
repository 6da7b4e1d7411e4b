// Package pbrtest provides an in-memory pbr.Device for tests.
//
// The device needs no graphics context. It hands out sequential handles,
// remembers which ones are alive and records the work issued against it,
// so tests can check uploads, bindings and teardown order.
package pbrtest

import (
	"fmt"

	"github.com/go-theft-auto/pbr"
)

// Kind classifies the handles handed out by a Device.
type Kind string

const (
	KindBuffer      Kind = "buffer"
	KindTexture     Kind = "texture"
	KindShader      Kind = "shader"
	KindProgram     Kind = "program"
	KindVertexArray Kind = "vertex-array"
)

// Image is a texture upload.
type Image struct {
	Width, Height int
	Pix           []byte
}

// Attrib is a configured vertex attribute.
type Attrib struct {
	Index      uint32
	Buffer     pbr.Handle
	Size       int32
	Type       pbr.Enum
	Normalized bool
	Stride     int32
	Offset     int
	Enabled    bool
}

// Uniform is a recorded uniform upload.
type Uniform struct {
	Program   pbr.Handle
	Location  pbr.Location
	Kind      string
	Transpose bool
	Values    []float32
	Int       int32
}

// DrawCall is a recorded DrawArrays.
type DrawCall struct {
	Program     pbr.Handle
	VertexArray pbr.Handle
	Mode        pbr.Enum
	First       int32
	Count       int32
	// Textures maps texture units to the texture bound on them.
	Textures map[int]pbr.Handle
}

// Device is a recording pbr.Device.
//
// Uniform and attribute names are declared with DeclareUniforms and
// DeclareAttribs; unknown names resolve to -1 like they do on a real
// driver.
type Device struct {
	// MaxTextureUnits is reported for pbr.MaxCombinedTextureImageUnits.
	MaxTextureUnits int32
	// CompileErrors makes compilation of a stage (pbr.VertexShader or
	// pbr.FragmentShader) fail with the given log.
	CompileErrors map[pbr.Enum]string
	// LinkError makes linking fail with the given log when not empty.
	LinkError string

	// Calls lists the names of the issued calls in order.
	Calls []string
	// Deleted lists deleted handles in deletion order.
	Deleted []pbr.Handle

	Uploads    map[pbr.Handle][][]byte
	Usage      map[pbr.Handle]pbr.Enum
	Images     map[pbr.Handle][]Image
	Params     map[pbr.Handle]map[pbr.Enum]int32
	Mipmaps    map[pbr.Handle]int
	UniformLog []Uniform
	Attribs    map[pbr.Handle]map[uint32]*Attrib
	Draws      []DrawCall
	Enabled    map[pbr.Enum]bool

	uniforms map[string]pbr.Location
	attribs  map[string]int32

	next    pbr.Handle
	kinds   map[pbr.Handle]Kind
	live    map[pbr.Handle]bool
	deletes map[pbr.Handle]int
	stages  map[pbr.Handle]pbr.Enum
	status  map[pbr.Handle]int32
	logs    map[pbr.Handle]string
	attach  map[pbr.Handle][]pbr.Handle

	program     pbr.Handle
	vertexArray pbr.Handle
	buffers     map[pbr.Enum]pbr.Handle
	activeUnit  int
	units       map[int]pbr.Handle
}

var _ pbr.Device = (*Device)(nil)

// NewDevice returns a device with 16 texture units and no declared
// uniforms or attributes.
func NewDevice() *Device {
	return &Device{
		MaxTextureUnits: 16,
		CompileErrors:   make(map[pbr.Enum]string),
		Uploads:         make(map[pbr.Handle][][]byte),
		Usage:           make(map[pbr.Handle]pbr.Enum),
		Images:          make(map[pbr.Handle][]Image),
		Params:          make(map[pbr.Handle]map[pbr.Enum]int32),
		Mipmaps:         make(map[pbr.Handle]int),
		Attribs:         make(map[pbr.Handle]map[uint32]*Attrib),
		Enabled:         make(map[pbr.Enum]bool),
		uniforms:        make(map[string]pbr.Location),
		attribs:         make(map[string]int32),
		kinds:           make(map[pbr.Handle]Kind),
		live:            make(map[pbr.Handle]bool),
		deletes:         make(map[pbr.Handle]int),
		stages:          make(map[pbr.Handle]pbr.Enum),
		status:          make(map[pbr.Handle]int32),
		logs:            make(map[pbr.Handle]string),
		attach:          make(map[pbr.Handle][]pbr.Handle),
		buffers:         make(map[pbr.Enum]pbr.Handle),
		units:           make(map[int]pbr.Handle),
	}
}

// DeclareUniforms declares uniform names, assigning them increasing locations.
func (d *Device) DeclareUniforms(names ...string) *Device {
	for _, name := range names {
		if _, ok := d.uniforms[name]; !ok {
			d.uniforms[name] = pbr.Location(len(d.uniforms))
		}
	}
	return d
}

// DeclareAttribs declares vertex input names, assigning them increasing
// locations.
func (d *Device) DeclareAttribs(names ...string) *Device {
	for _, name := range names {
		if _, ok := d.attribs[name]; !ok {
			d.attribs[name] = int32(len(d.attribs))
		}
	}
	return d
}

// UniformLocation returns the location declared for name, or -1.
func (d *Device) UniformLocation(name string) pbr.Location {
	if loc, ok := d.uniforms[name]; ok {
		return loc
	}
	return -1
}

// Kind returns the kind of h, or "" if h was never allocated.
func (d *Device) Kind(h pbr.Handle) Kind {
	return d.kinds[h]
}

// IsLive reports whether h is allocated and not yet deleted.
func (d *Device) IsLive(h pbr.Handle) bool {
	return d.live[h]
}

// DeleteCount returns how many times h was deleted.
func (d *Device) DeleteCount(h pbr.Handle) int {
	return d.deletes[h]
}

// Live returns the number of live handles of kind k.
func (d *Device) Live(k Kind) int {
	n := 0
	for h, alive := range d.live {
		if alive && d.kinds[h] == k {
			n++
		}
	}
	return n
}

// Samplers returns the unit index uploaded with Uniform1i for each
// location of program.
func (d *Device) Samplers(program pbr.Handle) map[pbr.Location]int32 {
	out := make(map[pbr.Location]int32)
	for _, u := range d.UniformLog {
		if u.Program == program && u.Kind == "1i" {
			out[u.Location] = u.Int
		}
	}
	return out
}

// LastUniform returns the most recent upload to loc in program.
func (d *Device) LastUniform(program pbr.Handle, loc pbr.Location) (Uniform, bool) {
	for i := len(d.UniformLog) - 1; i >= 0; i-- {
		u := d.UniformLog[i]
		if u.Program == program && u.Location == loc {
			return u, true
		}
	}
	return Uniform{}, false
}

func (d *Device) call(name string) {
	d.Calls = append(d.Calls, name)
}

func (d *Device) gen(k Kind) pbr.Handle {
	d.next++
	d.kinds[d.next] = k
	d.live[d.next] = true
	return d.next
}

func (d *Device) del(k Kind, h pbr.Handle) {
	if h == 0 {
		return
	}
	if d.kinds[h] != k {
		panic(fmt.Sprintf("pbrtest: deleting %s handle %d as %s", d.kinds[h], h, k))
	}
	d.deletes[h]++
	d.live[h] = false
	d.Deleted = append(d.Deleted, h)
}

// GenBuffer hands out a new buffer handle.
func (d *Device) GenBuffer() pbr.Handle {
	d.call("GenBuffer")
	return d.gen(KindBuffer)
}

// DeleteBuffer marks a buffer handle deleted.
func (d *Device) DeleteBuffer(h pbr.Handle) {
	d.call("DeleteBuffer")
	d.del(KindBuffer, h)
}

// BindBuffer remembers the buffer bound to target.
func (d *Device) BindBuffer(target pbr.Enum, h pbr.Handle) {
	d.call("BindBuffer")
	d.buffers[target] = h
}

// BufferData records an upload to the bound buffer.
func (d *Device) BufferData(target pbr.Enum, data []byte, usage pbr.Enum) {
	d.call("BufferData")
	h := d.buffers[target]
	d.Uploads[h] = append(d.Uploads[h], append([]byte(nil), data...))
	d.Usage[h] = usage
}

// GenTexture hands out a new texture handle.
func (d *Device) GenTexture() pbr.Handle {
	d.call("GenTexture")
	return d.gen(KindTexture)
}

// DeleteTexture marks a texture handle deleted.
func (d *Device) DeleteTexture(h pbr.Handle) {
	d.call("DeleteTexture")
	d.del(KindTexture, h)
}

// BindTexture binds h on the active unit.
func (d *Device) BindTexture(target pbr.Enum, h pbr.Handle) {
	d.call("BindTexture")
	d.units[d.activeUnit] = h
}

// ActiveTexture selects the unit for later binds.
func (d *Device) ActiveTexture(unit pbr.Enum) {
	d.call("ActiveTexture")
	d.activeUnit = int(unit - pbr.Texture0)
}

// TexImage2D records an image for the bound texture.
func (d *Device) TexImage2D(target pbr.Enum, width, height int, pix []byte) {
	d.call("TexImage2D")
	h := d.units[d.activeUnit]
	d.Images[h] = append(d.Images[h], Image{Width: width, Height: height, Pix: append([]byte(nil), pix...)})
}

// GenerateMipmap counts mipmap generation for the bound texture.
func (d *Device) GenerateMipmap(target pbr.Enum) {
	d.call("GenerateMipmap")
	d.Mipmaps[d.units[d.activeUnit]]++
}

// TexParameteri records a parameter of the bound texture.
func (d *Device) TexParameteri(target, pname pbr.Enum, param int32) {
	d.call("TexParameteri")
	h := d.units[d.activeUnit]
	if d.Params[h] == nil {
		d.Params[h] = make(map[pbr.Enum]int32)
	}
	d.Params[h][pname] = param
}

// CreateShader hands out a new shader stage handle.
func (d *Device) CreateShader(stage pbr.Enum) pbr.Handle {
	d.call("CreateShader")
	h := d.gen(KindShader)
	d.stages[h] = stage
	return h
}

// ShaderSource is recorded by name only.
func (d *Device) ShaderSource(h pbr.Handle, src string) {
	d.call("ShaderSource")
}

// CompileShader fails for stages listed in CompileErrors.
func (d *Device) CompileShader(h pbr.Handle) {
	d.call("CompileShader")
	if log, ok := d.CompileErrors[d.stages[h]]; ok {
		d.status[h] = 0
		d.logs[h] = log
		return
	}
	d.status[h] = 1
}

// GetShaderi returns the compile status.
func (d *Device) GetShaderi(h pbr.Handle, pname pbr.Enum) int32 {
	d.call("GetShaderi")
	return d.status[h]
}

// ShaderInfoLog returns the configured compile error.
func (d *Device) ShaderInfoLog(h pbr.Handle) string {
	d.call("ShaderInfoLog")
	return d.logs[h]
}

// DeleteShader marks a shader stage handle deleted.
func (d *Device) DeleteShader(h pbr.Handle) {
	d.call("DeleteShader")
	d.del(KindShader, h)
}

// CreateProgram hands out a new program handle.
func (d *Device) CreateProgram() pbr.Handle {
	d.call("CreateProgram")
	return d.gen(KindProgram)
}

// AttachShader records an attached stage.
func (d *Device) AttachShader(program, shader pbr.Handle) {
	d.call("AttachShader")
	d.attach[program] = append(d.attach[program], shader)
}

// LinkProgram fails when LinkError is set.
func (d *Device) LinkProgram(program pbr.Handle) {
	d.call("LinkProgram")
	if d.LinkError != "" {
		d.status[program] = 0
		d.logs[program] = d.LinkError
		return
	}
	d.status[program] = 1
}

// GetProgrami returns the link status.
func (d *Device) GetProgrami(program pbr.Handle, pname pbr.Enum) int32 {
	d.call("GetProgrami")
	return d.status[program]
}

// ProgramInfoLog returns the configured link error.
func (d *Device) ProgramInfoLog(program pbr.Handle) string {
	d.call("ProgramInfoLog")
	return d.logs[program]
}

// DeleteProgram marks a program handle deleted.
func (d *Device) DeleteProgram(program pbr.Handle) {
	d.call("DeleteProgram")
	d.del(KindProgram, program)
}

// UseProgram makes program current for uniform and draw records.
func (d *Device) UseProgram(program pbr.Handle) {
	d.call("UseProgram")
	d.program = program
}

// GetUniformLocation resolves declared uniforms, -1 otherwise.
func (d *Device) GetUniformLocation(program pbr.Handle, name string) pbr.Location {
	d.call("GetUniformLocation")
	return d.UniformLocation(name)
}

// GetAttribLocation resolves declared attributes, -1 otherwise.
func (d *Device) GetAttribLocation(program pbr.Handle, name string) int32 {
	d.call("GetAttribLocation")
	if loc, ok := d.attribs[name]; ok {
		return loc
	}
	return -1
}

// Uniform1i records an int upload.
func (d *Device) Uniform1i(loc pbr.Location, v int32) {
	d.call("Uniform1i")
	d.UniformLog = append(d.UniformLog, Uniform{Program: d.program, Location: loc, Kind: "1i", Int: v})
}

func (d *Device) uniformv(kind string, loc pbr.Location, transpose bool, v []float32) {
	d.UniformLog = append(d.UniformLog, Uniform{
		Program:   d.program,
		Location:  loc,
		Kind:      kind,
		Transpose: transpose,
		Values:    append([]float32(nil), v...),
	})
}

// Uniform1fv records a float upload.
func (d *Device) Uniform1fv(loc pbr.Location, v []float32) {
	d.call("Uniform1fv")
	d.uniformv("1fv", loc, false, v)
}

// Uniform2fv records a vec2 upload.
func (d *Device) Uniform2fv(loc pbr.Location, v []float32) {
	d.call("Uniform2fv")
	d.uniformv("2fv", loc, false, v)
}

// Uniform3fv records a vec3 upload.
func (d *Device) Uniform3fv(loc pbr.Location, v []float32) {
	d.call("Uniform3fv")
	d.uniformv("3fv", loc, false, v)
}

// Uniform4fv records a vec4 upload.
func (d *Device) Uniform4fv(loc pbr.Location, v []float32) {
	d.call("Uniform4fv")
	d.uniformv("4fv", loc, false, v)
}

// UniformMatrix3fv records a mat3 upload.
func (d *Device) UniformMatrix3fv(loc pbr.Location, transpose bool, v []float32) {
	d.call("UniformMatrix3fv")
	d.uniformv("mat3", loc, transpose, v)
}

// UniformMatrix4fv records a mat4 upload.
func (d *Device) UniformMatrix4fv(loc pbr.Location, transpose bool, v []float32) {
	d.call("UniformMatrix4fv")
	d.uniformv("mat4", loc, transpose, v)
}

// GenVertexArray hands out a new vertex array handle.
func (d *Device) GenVertexArray() pbr.Handle {
	d.call("GenVertexArray")
	return d.gen(KindVertexArray)
}

// DeleteVertexArray marks a vertex array handle deleted.
func (d *Device) DeleteVertexArray(h pbr.Handle) {
	d.call("DeleteVertexArray")
	d.del(KindVertexArray, h)
}

// BindVertexArray makes h current for attribute and draw records.
func (d *Device) BindVertexArray(h pbr.Handle) {
	d.call("BindVertexArray")
	d.vertexArray = h
}

// VertexAttribPointer records an attribute of the bound vertex array.
func (d *Device) VertexAttribPointer(index uint32, size int32, typ pbr.Enum, normalized bool, stride int32, offset int) {
	d.call("VertexAttribPointer")
	if d.Attribs[d.vertexArray] == nil {
		d.Attribs[d.vertexArray] = make(map[uint32]*Attrib)
	}
	d.Attribs[d.vertexArray][index] = &Attrib{
		Index:      index,
		Buffer:     d.buffers[pbr.ArrayBuffer],
		Size:       size,
		Type:       typ,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
	}
}

// EnableVertexAttribArray marks a recorded attribute enabled.
func (d *Device) EnableVertexAttribArray(index uint32) {
	d.call("EnableVertexAttribArray")
	if a, ok := d.Attribs[d.vertexArray][index]; ok {
		a.Enabled = true
	}
}

// DrawArrays records a draw with the current bindings.
func (d *Device) DrawArrays(mode pbr.Enum, first, count int32) {
	d.call("DrawArrays")
	textures := make(map[int]pbr.Handle, len(d.units))
	for unit, h := range d.units {
		textures[unit] = h
	}
	d.Draws = append(d.Draws, DrawCall{
		Program:     d.program,
		VertexArray: d.vertexArray,
		Mode:        mode,
		First:       first,
		Count:       count,
		Textures:    textures,
	})
}

// GetInteger answers MaxCombinedTextureImageUnits and 0 otherwise.
func (d *Device) GetInteger(pname pbr.Enum) int32 {
	d.call("GetInteger")
	if pname == pbr.MaxCombinedTextureImageUnits {
		return d.MaxTextureUnits
	}
	return 0
}

// Enable records an enabled capability.
func (d *Device) Enable(capability pbr.Enum) {
	d.call("Enable")
	d.Enabled[capability] = true
}

// ClearColor is recorded by name only.
func (d *Device) ClearColor(r, g, b, a float32) {
	d.call("ClearColor")
}

// Clear is recorded by name only.
func (d *Device) Clear(mask pbr.Enum) {
	d.call("Clear")
}

// Viewport is recorded by name only.
func (d *Device) Viewport(x, y, width, height int32) {
	d.call("Viewport")
}
