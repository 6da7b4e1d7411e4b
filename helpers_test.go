package pbr_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/pbr"
	"github.com/go-theft-auto/pbr/pbrtest"
)

const (
	passVert = "#version 410 core\nin vec3 inPos;\nvoid main() { gl_Position = vec4(inPos, 1.0); }\n"
	passFrag = "#version 410 core\nout vec4 color;\nvoid main() { color = vec4(1.0); }\n"
)

// newDevice returns a device knowing the inputs of the demo shader.
func newDevice() *pbrtest.Device {
	return pbrtest.NewDevice().
		DeclareAttribs("inPos", "inNormal", "inTexCoord").
		DeclareUniforms("uModel", "uColor", "uAlbedo", "uNormalMap", "uMetallicMap", "uRoughnessMap")
}

func newShader(t *testing.T, dev pbr.Device) *pbr.Shader {
	t.Helper()
	shader, err := pbr.NewShader(dev, passVert, passFrag)
	require.NoError(t, err)
	return shader
}

func floats(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out
}
