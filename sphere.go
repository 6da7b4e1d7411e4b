package pbr

import (
	"github.com/chewxy/math32"
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere is a latitude/longitude tessellated ellipsoid.
type Sphere struct {
	*meshData
}

var _ Mesh = (*Sphere)(nil)

// SphereVertices returns the vertex count of a sphere with the given
// number of longitude steps: 6 * steps * ceil(steps/2).
func SphereVertices(steps int) int {
	return 6 * steps * ((steps + 1) / 2)
}

// NewSphere builds an ellipsoid centered at center with the per-axis radii
// in radius. steps is the number of slices around the Z axis; the number
// of stacks from pole to pole is half of that, rounded up.
//
// Normals are the normalized offsets from the center, which is only exact
// for uniform radii.
func NewSphere(dev Device, center, radius mgl32.Vec3, steps int, opts ...MeshOption) (*Sphere, error) {
	if steps < 1 {
		return nil, errors.Wrapf(ErrInvalidSteps, "%d", steps)
	}

	subSteps := (steps + 1) / 2
	m := newMeshData(dev, SphereVertices(steps), opts)

	if err := m.generateSphere(center, radius, steps, subSteps); err != nil {
		m.buffer.Release()
		return nil, errors.Wrap(err, "generate sphere")
	}
	m.buffer.Flip()

	return &Sphere{meshData: m}, nil
}

func (m *meshData) generateSphere(center, radius mgl32.Vec3, steps, subSteps int) error {
	n := float32(steps)
	sn := float32(subSteps)

	for i := float32(0); i < n; i++ {
		cos0, sin0 := math32.Cos(2*math32.Pi*i/n), math32.Sin(2*math32.Pi*i/n)
		cos1, sin1 := math32.Cos(2*math32.Pi*(i+1)/n), math32.Sin(2*math32.Pi*(i+1)/n)
		u0, u1 := i/n, (i+1)/n

		for j := float32(0); j < sn; j++ {
			subCos0, subSin0 := math32.Cos(math32.Pi*j/sn), math32.Sin(math32.Pi*j/sn)
			subCos1, subSin1 := math32.Cos(math32.Pi*(j+1)/sn), math32.Sin(math32.Pi*(j+1)/sn)
			v0, v1 := 1-j/sn, 1-(j+1)/sn

			quad := [6]struct {
				off  mgl32.Vec3
				u, v float32
			}{
				{mgl32.Vec3{radius.X() * cos0 * subSin0, radius.Y() * sin0 * subSin0, -radius.Z() * subCos0}, u0, v0},
				{mgl32.Vec3{radius.X() * cos1 * subSin0, radius.Y() * sin1 * subSin0, -radius.Z() * subCos0}, u1, v0},
				{mgl32.Vec3{radius.X() * cos1 * subSin1, radius.Y() * sin1 * subSin1, -radius.Z() * subCos1}, u1, v1},

				{mgl32.Vec3{radius.X() * cos1 * subSin1, radius.Y() * sin1 * subSin1, -radius.Z() * subCos1}, u1, v1},
				{mgl32.Vec3{radius.X() * cos0 * subSin1, radius.Y() * sin0 * subSin1, -radius.Z() * subCos1}, u0, v1},
				{mgl32.Vec3{radius.X() * cos0 * subSin0, radius.Y() * sin0 * subSin0, -radius.Z() * subCos0}, u0, v0},
			}

			for _, q := range quad {
				p := center.Add(q.off)
				nrm := q.off.Normalize()
				if err := m.putVertex(p[0], p[1], p[2], nrm[0], nrm[1], nrm[2], q.u, q.v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
