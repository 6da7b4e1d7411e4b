package pbr_test

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/pbr"
	"github.com/go-theft-auto/pbr/pbrtest"
)

var layouts = []struct {
	normals, texCoords bool
}{
	{false, false},
	{true, false},
	{false, true},
	{true, true},
}

func meshOptions(normals, texCoords bool) []pbr.MeshOption {
	var opts []pbr.MeshOption
	if normals {
		opts = append(opts, pbr.WithNormals())
	}
	if texCoords {
		opts = append(opts, pbr.WithTexCoords())
	}
	return opts
}

// uploaded binds the mesh buffer and returns the uploaded floats.
func uploaded(t *testing.T, dev *pbrtest.Device, b *pbr.Buffer) []float32 {
	t.Helper()
	b.Bind(pbr.ArrayBuffer)
	uploads := dev.Uploads[b.Handle()]
	require.NotEmpty(t, uploads)
	return floats(uploads[len(uploads)-1])
}

func TestVertexSize(t *testing.T) {
	assert.Equal(t, 12, pbr.VertexSize(false, false))
	assert.Equal(t, 24, pbr.VertexSize(true, false))
	assert.Equal(t, 20, pbr.VertexSize(false, true))
	assert.Equal(t, 32, pbr.VertexSize(true, true))
}

func TestCubeLayout(t *testing.T) {
	for _, l := range layouts {
		t.Run(fmt.Sprintf("normals=%v,texcoords=%v", l.normals, l.texCoords), func(t *testing.T) {
			dev := newDevice()
			cube, err := pbr.NewCube(dev, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0.5, 2, 4}, meshOptions(l.normals, l.texCoords)...)
			require.NoError(t, err)
			defer cube.Release()

			size := pbr.VertexSize(l.normals, l.texCoords)
			assert.Equal(t, 36, cube.NumVertices())
			assert.Equal(t, 36*size, cube.Buffer().Cap())
			assert.Len(t, uploaded(t, dev, cube.Buffer()), 36*size/4)
			assert.Equal(t, l.normals, cube.HasNormals())
			assert.Equal(t, l.texCoords, cube.HasTexCoords())
		})
	}
}

func TestCubeVertices(t *testing.T) {
	dev := newDevice()
	cube, err := pbr.NewCube(dev, mgl32.Vec3{}, mgl32.Vec3{1, 2, 3}, pbr.WithNormals(), pbr.WithTexCoords())
	require.NoError(t, err)
	defer cube.Release()

	data := uploaded(t, dev, cube.Buffer())
	assert.Equal(t, []float32{-1, -2, 3, 0, 0, 1, 0, 0}, data[:8])
	assert.Equal(t, []float32{1, -2, 3, 0, 0, 1, 1, 0}, data[8:16])

	// Every vertex lies on the face its normal points out of.
	for v := 0; v < 36; v++ {
		vert := data[8*v : 8*v+8]
		pos := mgl32.Vec3{vert[0], vert[1], vert[2]}
		nrm := mgl32.Vec3{vert[3], vert[4], vert[5]}
		face := mgl32.Vec3{mgl32.Abs(nrm[0]), mgl32.Abs(nrm[1]), mgl32.Abs(nrm[2])}
		assert.InDelta(t, face.Dot(mgl32.Vec3{1, 2, 3}), pos.Dot(nrm), 1e-6, "vertex %d", v)
		assert.InDelta(t, 1, nrm.Len(), 1e-6)
		assert.True(t, vert[6] == 0 || vert[6] == 1)
		assert.True(t, vert[7] == 0 || vert[7] == 1)
	}
}

func TestCubeBindOffsets(t *testing.T) {
	dev := newDevice()
	shader := newShader(t, dev)
	defer shader.Release()
	cube, err := pbr.NewCube(dev, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, pbr.WithTexCoords())
	require.NoError(t, err)
	defer cube.Release()

	vao := pbr.NewVAO(dev, shader)
	defer vao.Release()
	cube.BindPosition(vao, "inPos")
	cube.BindNormal(vao, "inNormal")
	cube.BindTexCoord(vao, "inTexCoord")

	assert.Equal(t, 2, cube.Buffer().Refs(), "normals were not generated")

	attribs := dev.Attribs[vao.Handle()]
	require.Len(t, attribs, 2)
	assert.Equal(t, int32(20), attribs[0].Stride)
	assert.Equal(t, 0, attribs[0].Offset)
	assert.Equal(t, int32(3), attribs[0].Size)
	assert.Equal(t, int32(20), attribs[2].Stride)
	assert.Equal(t, 12, attribs[2].Offset)
	assert.Equal(t, int32(2), attribs[2].Size)
}

func TestSphereVertexCount(t *testing.T) {
	for _, steps := range []int{1, 2, 3, 4, 7, 128} {
		dev := newDevice()
		sphere, err := pbr.NewSphere(dev, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, steps, pbr.WithNormals(), pbr.WithTexCoords())
		require.NoError(t, err)

		want := 6 * steps * ((steps + 1) / 2)
		assert.Equal(t, want, sphere.NumVertices(), "steps=%d", steps)
		assert.Equal(t, want, pbr.SphereVertices(steps))
		assert.Equal(t, want*32, sphere.Buffer().Cap())
		assert.Len(t, uploaded(t, dev, sphere.Buffer()), want*8)

		sphere.Release()
		assert.Equal(t, 0, dev.Live(pbrtest.KindBuffer))
	}
}

func TestSphereVertices(t *testing.T) {
	dev := newDevice()
	center := mgl32.Vec3{1, -1, 2}
	sphere, err := pbr.NewSphere(dev, center, mgl32.Vec3{2, 2, 2}, 16, pbr.WithNormals(), pbr.WithTexCoords())
	require.NoError(t, err)
	defer sphere.Release()

	data := uploaded(t, dev, sphere.Buffer())
	for v := 0; v < sphere.NumVertices(); v++ {
		vert := data[8*v : 8*v+8]
		pos := mgl32.Vec3{vert[0], vert[1], vert[2]}
		nrm := mgl32.Vec3{vert[3], vert[4], vert[5]}

		assert.InDelta(t, 2, pos.Sub(center).Len(), 1e-4, "vertex %d", v)
		assert.InDelta(t, 1, nrm.Len(), 1e-4, "vertex %d", v)
		want := pos.Sub(center).Normalize()
		assert.InDeltaSlice(t, want[:], nrm[:], 1e-5, "vertex %d", v)
		assert.True(t, vert[6] >= 0 && vert[6] <= 1)
		assert.True(t, vert[7] >= 0 && vert[7] <= 1)
	}

	// The first stack starts at the -Z pole.
	assert.InDelta(t, center.Z()-2, data[2], 1e-5)
	assert.Equal(t, float32(1), data[7])
}

func TestSphereEllipsoid(t *testing.T) {
	dev := newDevice()
	radius := mgl32.Vec3{1, 2, 3}
	sphere, err := pbr.NewSphere(dev, mgl32.Vec3{}, radius, 8)
	require.NoError(t, err)
	defer sphere.Release()

	data := uploaded(t, dev, sphere.Buffer())
	for v := 0; v < sphere.NumVertices(); v++ {
		p := mgl32.Vec3{data[3*v] / radius.X(), data[3*v+1] / radius.Y(), data[3*v+2] / radius.Z()}
		assert.InDelta(t, 1, p.Len(), 1e-4, "vertex %d", v)
	}
}

func TestSphereInvalidSteps(t *testing.T) {
	dev := newDevice()
	sphere, err := pbr.NewSphere(dev, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 0)
	assert.Nil(t, sphere)
	assert.True(t, errors.Is(err, pbr.ErrInvalidSteps))
	assert.Equal(t, 0, dev.Live(pbrtest.KindBuffer))
}

func TestMeshInterface(t *testing.T) {
	dev := newDevice()
	cube, err := pbr.NewCube(dev, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
	require.NoError(t, err)
	sphere, err := pbr.NewSphere(dev, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 4)
	require.NoError(t, err)

	var stack pbr.ResourceStack
	for _, m := range []pbr.Mesh{cube, sphere} {
		stack.Add(m)
	}
	stack.Release()
	assert.Equal(t, 0, dev.Live(pbrtest.KindBuffer))
}
