package pbr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/pbr"
	"github.com/go-theft-auto/pbr/pbrtest"
)

type counted interface {
	AddRef()
	Release()
	Refs() int
	Handle() pbr.Handle
}

var resources = []struct {
	name string
	make func(t *testing.T, dev *pbrtest.Device) counted
}{
	{"buffer", func(t *testing.T, dev *pbrtest.Device) counted {
		return pbr.NewBuffer(dev, 16)
	}},
	{"texture", func(t *testing.T, dev *pbrtest.Device) counted {
		return pbr.NewTexture(dev)
	}},
	{"shader", func(t *testing.T, dev *pbrtest.Device) counted {
		return newShader(t, dev)
	}},
	{"vao", func(t *testing.T, dev *pbrtest.Device) counted {
		shader := newShader(t, dev)
		t.Cleanup(shader.Release)
		return pbr.NewVAO(dev, shader)
	}},
}

func TestAddRefReleaseKeepsHandle(t *testing.T) {
	for _, tt := range resources {
		t.Run(tt.name, func(t *testing.T) {
			dev := newDevice()
			r := tt.make(t, dev)
			h := r.Handle()
			require.True(t, h.Valid())

			r.AddRef()
			r.Release()

			assert.True(t, dev.IsLive(h))
			assert.Equal(t, h, r.Handle())
			assert.Equal(t, 0, r.Refs())
		})
	}
}

func TestLastReleaseFreesOnce(t *testing.T) {
	for _, tt := range resources {
		for _, n := range []int{0, 1, 5} {
			t.Run(tt.name, func(t *testing.T) {
				dev := newDevice()
				r := tt.make(t, dev)
				h := r.Handle()

				for i := 0; i < n; i++ {
					r.AddRef()
				}
				for i := 0; i < n; i++ {
					r.Release()
					require.True(t, dev.IsLive(h), "freed after %d of %d releases", i+1, n+1)
				}

				r.Release()
				assert.False(t, dev.IsLive(h))
				assert.Equal(t, 1, dev.DeleteCount(h))
				assert.False(t, r.Handle().Valid())
				assert.Equal(t, -1, r.Refs())
			})
		}
	}
}

func TestOverReleaseDoesNotFreeAgain(t *testing.T) {
	dev := newDevice()
	b := pbr.NewBuffer(dev, 4)
	h := b.Handle()

	b.Release()
	b.Release()

	assert.Equal(t, 1, dev.DeleteCount(h))
	assert.Equal(t, -2, b.Refs())
}
