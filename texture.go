package pbr

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture is a 2D RGBA8 texture object. Decoded pixels are uploaded and
// dropped immediately; only the driver keeps a copy.
//
// The owner calls Release when done. Holders that store the texture call
// AddRef first and Release when they let go of it.
type Texture struct {
	refCount

	dev    Device
	handle Handle
}

// NewTexture allocates an empty texture object.
func NewTexture(dev Device) *Texture {
	return &Texture{dev: dev, handle: dev.GenTexture()}
}

// NewTextureFromFile creates a texture from an encoded image file.
func NewTextureFromFile(dev Device, path string) (*Texture, error) {
	t := NewTexture(dev)
	if err := t.LoadFile(path); err != nil {
		dev.DeleteTexture(t.handle)
		return nil, err
	}
	return t, nil
}

// NewTextureFromReader creates a texture from an encoded image stream.
func NewTextureFromReader(dev Device, r io.Reader) (*Texture, error) {
	t := NewTexture(dev)
	if err := t.Load(r); err != nil {
		dev.DeleteTexture(t.handle)
		return nil, err
	}
	return t, nil
}

// Handle returns the driver handle, or 0 after the texture was freed.
func (t *Texture) Handle() Handle {
	return t.handle
}

// LoadFile replaces the contents with the image stored at path.
func (t *Texture) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to load a texture file")
	}
	if err := t.Load(bytes.NewReader(data)); err != nil {
		return errors.Wrapf(err, "texture %s", path)
	}
	return nil
}

// Load replaces the contents with the image read from r. Any format
// registered with the image package is accepted; PNG, JPEG, GIF, BMP,
// TIFF and WebP are registered by this package.
func (t *Texture) Load(r io.Reader) error {
	img, _, err := image.Decode(r)
	if err != nil {
		return errors.Wrap(err, "failed to load a texture file")
	}
	return t.LoadImage(img)
}

// LoadImage replaces the contents with img. Rows are flipped so that the
// first row of the upload is the bottom of the image, matching texture
// coordinates with the origin in the lower left corner.
func (t *Texture) LoadImage(img image.Image) error {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return t.LoadRaw(flipRows(rgba.Pix, rgba.Stride, b.Dy()), b.Dx(), b.Dy())
}

// LoadRaw uploads tightly packed RGBA8 pixels, generates mipmaps and sets
// repeat wrapping with trilinear filtering. It may be called again to
// replace the contents.
func (t *Texture) LoadRaw(pix []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(pix) != 4*width*height {
		return errors.Wrapf(ErrInvalidImage, "%d bytes for %dx%d RGBA", len(pix), width, height)
	}

	t.dev.BindTexture(Texture2D, t.handle)
	t.dev.TexImage2D(Texture2D, width, height, pix)
	t.dev.GenerateMipmap(Texture2D)

	t.dev.TexParameteri(Texture2D, TextureWrapS, int32(Repeat))
	t.dev.TexParameteri(Texture2D, TextureWrapT, int32(Repeat))
	t.dev.TexParameteri(Texture2D, TextureMinFilter, int32(LinearMipmapLinear))
	t.dev.TexParameteri(Texture2D, TextureMagFilter, int32(Linear))
	return nil
}

// Bind binds the texture to target on the active texture unit.
func (t *Texture) Bind(target Enum) {
	t.dev.BindTexture(target, t.handle)
}

// Release drops a reference and frees the texture with the last one.
func (t *Texture) Release() {
	if t.release("texture") {
		t.dev.DeleteTexture(t.handle)
		t.handle = 0
	}
}

func flipRows(pix []byte, stride, rows int) []byte {
	out := make([]byte, len(pix))
	for y := 0; y < rows; y++ {
		copy(out[(rows-1-y)*stride:(rows-y)*stride], pix[y*stride:(y+1)*stride])
	}
	return out
}
