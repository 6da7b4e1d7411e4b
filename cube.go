package pbr

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
)

// Cube is an axis-aligned box of 12 triangles.
type Cube struct {
	*meshData
}

var _ Mesh = (*Cube)(nil)

// cubeVertex selects a corner (0 = min, 1 = max per axis) together with
// the face normal and texture coordinate.
type cubeVertex struct {
	corner [3]uint8
	normal [3]float32
	uv     [2]float32
}

var cubeVertices = [36]cubeVertex{
	// +Z
	{[3]uint8{0, 0, 1}, [3]float32{0, 0, 1}, [2]float32{0, 0}},
	{[3]uint8{1, 0, 1}, [3]float32{0, 0, 1}, [2]float32{1, 0}},
	{[3]uint8{1, 1, 1}, [3]float32{0, 0, 1}, [2]float32{1, 1}},
	{[3]uint8{1, 1, 1}, [3]float32{0, 0, 1}, [2]float32{1, 1}},
	{[3]uint8{0, 1, 1}, [3]float32{0, 0, 1}, [2]float32{0, 1}},
	{[3]uint8{0, 0, 1}, [3]float32{0, 0, 1}, [2]float32{0, 0}},
	// -Z
	{[3]uint8{0, 0, 0}, [3]float32{0, 0, -1}, [2]float32{0, 0}},
	{[3]uint8{0, 1, 0}, [3]float32{0, 0, -1}, [2]float32{0, 1}},
	{[3]uint8{1, 1, 0}, [3]float32{0, 0, -1}, [2]float32{1, 1}},
	{[3]uint8{1, 1, 0}, [3]float32{0, 0, -1}, [2]float32{1, 1}},
	{[3]uint8{1, 0, 0}, [3]float32{0, 0, -1}, [2]float32{1, 0}},
	{[3]uint8{0, 0, 0}, [3]float32{0, 0, -1}, [2]float32{0, 0}},
	// +Y
	{[3]uint8{0, 1, 0}, [3]float32{0, 1, 0}, [2]float32{0, 0}},
	{[3]uint8{0, 1, 1}, [3]float32{0, 1, 0}, [2]float32{0, 1}},
	{[3]uint8{1, 1, 1}, [3]float32{0, 1, 0}, [2]float32{1, 1}},
	{[3]uint8{1, 1, 1}, [3]float32{0, 1, 0}, [2]float32{1, 1}},
	{[3]uint8{1, 1, 0}, [3]float32{0, 1, 0}, [2]float32{1, 0}},
	{[3]uint8{0, 1, 0}, [3]float32{0, 1, 0}, [2]float32{0, 0}},
	// -Y
	{[3]uint8{1, 0, 0}, [3]float32{0, -1, 0}, [2]float32{0, 0}},
	{[3]uint8{1, 0, 1}, [3]float32{0, -1, 0}, [2]float32{0, 1}},
	{[3]uint8{0, 0, 1}, [3]float32{0, -1, 0}, [2]float32{1, 1}},
	{[3]uint8{0, 0, 1}, [3]float32{0, -1, 0}, [2]float32{1, 1}},
	{[3]uint8{0, 0, 0}, [3]float32{0, -1, 0}, [2]float32{1, 0}},
	{[3]uint8{1, 0, 0}, [3]float32{0, -1, 0}, [2]float32{0, 0}},
	// -X
	{[3]uint8{0, 0, 0}, [3]float32{-1, 0, 0}, [2]float32{0, 0}},
	{[3]uint8{0, 0, 1}, [3]float32{-1, 0, 0}, [2]float32{0, 1}},
	{[3]uint8{0, 1, 1}, [3]float32{-1, 0, 0}, [2]float32{1, 1}},
	{[3]uint8{0, 1, 1}, [3]float32{-1, 0, 0}, [2]float32{1, 1}},
	{[3]uint8{0, 1, 0}, [3]float32{-1, 0, 0}, [2]float32{1, 0}},
	{[3]uint8{0, 0, 0}, [3]float32{-1, 0, 0}, [2]float32{0, 0}},
	// +X
	{[3]uint8{1, 1, 0}, [3]float32{1, 0, 0}, [2]float32{0, 0}},
	{[3]uint8{1, 1, 1}, [3]float32{1, 0, 0}, [2]float32{0, 1}},
	{[3]uint8{1, 0, 1}, [3]float32{1, 0, 0}, [2]float32{1, 1}},
	{[3]uint8{1, 0, 1}, [3]float32{1, 0, 0}, [2]float32{1, 1}},
	{[3]uint8{1, 0, 0}, [3]float32{1, 0, 0}, [2]float32{1, 0}},
	{[3]uint8{1, 1, 0}, [3]float32{1, 0, 0}, [2]float32{0, 0}},
}

// NewCube builds a cube centered at center extending radius along each
// axis in both directions.
func NewCube(dev Device, center, radius mgl32.Vec3, opts ...MeshOption) (*Cube, error) {
	m := newMeshData(dev, len(cubeVertices), opts)
	corners := [2]mgl32.Vec3{center.Sub(radius), center.Add(radius)}

	for _, cv := range cubeVertices {
		p := mgl32.Vec3{
			corners[cv.corner[0]].X(),
			corners[cv.corner[1]].Y(),
			corners[cv.corner[2]].Z(),
		}
		err := m.putVertex(p[0], p[1], p[2],
			cv.normal[0], cv.normal[1], cv.normal[2],
			cv.uv[0], cv.uv[1])
		if err != nil {
			m.buffer.Release()
			return nil, errors.Wrap(err, "generate cube")
		}
	}
	m.buffer.Flip()

	return &Cube{meshData: m}, nil
}
