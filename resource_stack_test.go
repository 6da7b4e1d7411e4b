package pbr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/pbr"
)

type releaseRecorder struct {
	name string
	log  *[]string
}

func (r releaseRecorder) Release() {
	*r.log = append(*r.log, r.name)
}

func TestResourceStackReleasesInReverse(t *testing.T) {
	var log []string
	var stack pbr.ResourceStack
	for _, name := range []string{"window", "texture", "mesh", "shader", "vao"} {
		stack.Add(releaseRecorder{name: name, log: &log})
	}
	assert.Equal(t, 5, stack.Len())

	stack.Release()
	assert.Equal(t, []string{"vao", "shader", "mesh", "texture", "window"}, log)
	assert.Equal(t, 0, stack.Len())

	// A released stack is empty and can be released again.
	stack.Release()
	assert.Len(t, log, 5)
}

func TestResourceStackNests(t *testing.T) {
	var log []string
	var inner, outer pbr.ResourceStack
	inner.Add(releaseRecorder{name: "a", log: &log})
	inner.Add(releaseRecorder{name: "b", log: &log})
	outer.Add(releaseRecorder{name: "first", log: &log})
	outer.Add(&inner)
	outer.Add(releaseRecorder{name: "last", log: &log})

	outer.Release()
	assert.Equal(t, []string{"last", "b", "a", "first"}, log)
}

func TestResourceStackDependencies(t *testing.T) {
	dev := newDevice()
	var stack pbr.ResourceStack

	shader := newShader(t, dev)
	stack.Add(shader)
	vao := pbr.NewVAO(dev, shader)
	stack.Add(vao)

	prog := shader.Handle()
	stack.Release()

	assert.Equal(t, 1, dev.DeleteCount(prog))
	assert.Equal(t, -1, shader.Refs())
	assert.Equal(t, -1, vao.Refs())
}
