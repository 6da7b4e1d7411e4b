package pbr

// Mesh is static vertex data that can feed the position, normal and
// texture coordinate inputs of a shader through a VAO.
type Mesh interface {
	// BindPosition binds the 3-component position data to input name.
	BindPosition(vao *VAO, name string)
	// BindNormal binds the 3-component normals to input name. It does
	// nothing if the mesh was built without normals.
	BindNormal(vao *VAO, name string)
	// BindTexCoord binds the 2-component texture coordinates to input
	// name. It does nothing if the mesh was built without them.
	BindTexCoord(vao *VAO, name string)
	// NumVertices returns the number of vertices to draw.
	NumVertices() int

	Releaser
}

// MeshOption selects the optional vertex attributes of a mesh.
type MeshOption func(*meshOptions)

type meshOptions struct {
	normals   bool
	texCoords bool
}

// WithNormals adds per-vertex normals to the mesh.
func WithNormals() MeshOption {
	return func(o *meshOptions) { o.normals = true }
}

// WithTexCoords adds per-vertex texture coordinates to the mesh.
func WithTexCoords() MeshOption {
	return func(o *meshOptions) { o.texCoords = true }
}

// Interleaved vertex layout: position, then normal, then texcoord.
const (
	positionSize = 12
	normalSize   = 12
	texCoordSize = 8
)

// VertexSize returns the size in bytes of one interleaved vertex with the
// given attributes.
func VertexSize(normals, texCoords bool) int {
	size := positionSize
	if normals {
		size += normalSize
	}
	if texCoords {
		size += texCoordSize
	}
	return size
}

// meshData is the buffer and layout shared by the mesh shapes.
type meshData struct {
	buffer       *Buffer
	numVertices  int
	hasNormals   bool
	hasTexCoords bool
}

func newMeshData(dev Device, numVertices int, opts []MeshOption) *meshData {
	var o meshOptions
	for _, opt := range opts {
		opt(&o)
	}
	m := &meshData{
		numVertices:  numVertices,
		hasNormals:   o.normals,
		hasTexCoords: o.texCoords,
	}
	m.buffer = NewBuffer(dev, m.vertexSize()*numVertices)
	return m
}

func (m *meshData) vertexSize() int {
	return VertexSize(m.hasNormals, m.hasTexCoords)
}

func (m *meshData) normalOffset() int {
	return positionSize
}

func (m *meshData) texCoordOffset() int {
	if m.hasNormals {
		return positionSize + normalSize
	}
	return positionSize
}

// putVertex writes one vertex, skipping the attributes the mesh lacks.
func (m *meshData) putVertex(px, py, pz, nx, ny, nz, tx, ty float32) error {
	values := []float32{px, py, pz}
	if m.hasNormals {
		values = append(values, nx, ny, nz)
	}
	if m.hasTexCoords {
		values = append(values, tx, ty)
	}
	for _, v := range values {
		if err := m.buffer.PutFloat(v); err != nil {
			return err
		}
	}
	return nil
}

// Buffer returns the vertex buffer. The mesh keeps ownership.
func (m *meshData) Buffer() *Buffer {
	return m.buffer
}

// HasNormals reports whether the mesh carries normals.
func (m *meshData) HasNormals() bool {
	return m.hasNormals
}

// HasTexCoords reports whether the mesh carries texture coordinates.
func (m *meshData) HasTexCoords() bool {
	return m.hasTexCoords
}

func (m *meshData) BindPosition(vao *VAO, name string) {
	vao.BindBuffer(m.buffer, name, 3, Float, false, int32(m.vertexSize()), 0)
}

func (m *meshData) BindNormal(vao *VAO, name string) {
	if m.hasNormals {
		vao.BindBuffer(m.buffer, name, 3, Float, false, int32(m.vertexSize()), m.normalOffset())
	}
}

func (m *meshData) BindTexCoord(vao *VAO, name string) {
	if m.hasTexCoords {
		vao.BindBuffer(m.buffer, name, 2, Float, false, int32(m.vertexSize()), m.texCoordOffset())
	}
}

func (m *meshData) NumVertices() int {
	return m.numVertices
}

// Release releases the vertex buffer.
func (m *meshData) Release() {
	m.buffer.Release()
}
