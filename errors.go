package pbr

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrBufferOverflow is returned when a write does not fit in a Buffer.
	ErrBufferOverflow = errors.New("buffer overflow")

	// ErrTooManyTextures is returned by Shader.SetTexture when every
	// texture unit of the platform is already assigned.
	ErrTooManyTextures = errors.New("too many textures set")

	// ErrNilTexture is returned by Shader.SetTexture for a nil texture.
	ErrNilTexture = errors.New("nil texture")

	// ErrInvalidSteps is returned for sphere step counts below one.
	ErrInvalidSteps = errors.New("invalid sphere step count")

	// ErrInvalidImage is returned for pixel data that does not match the
	// given dimensions.
	ErrInvalidImage = errors.New("invalid image data")
)

// ShaderError carries the driver log of a failed compile or link.
type ShaderError struct {
	// Stage is "vertex", "fragment" or "link".
	Stage string
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == "link" {
		return fmt.Sprintf("failed to link program:\n%s", e.Log)
	}
	return fmt.Sprintf("failed to compile %s shader:\n%s", e.Stage, e.Log)
}
