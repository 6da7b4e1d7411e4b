package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5, "want %v, got %v", want, got)
}

func TestOrbitIgnoresMotionWithoutButton(t *testing.T) {
	o := newOrbit(mgl32.Vec2{10, 10})
	o.update(mgl32.Vec2{50, 80}, false)
	ident := mgl32.Ident4()
	model := o.model()
	assert.InDeltaSlice(t, ident[:], model[:], 1e-6)

	// The drag starts from the last seen position.
	o.update(mgl32.Vec2{140, 80}, true)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, o.rot.Rotate(mgl32.Vec3{1, 0, 0}))
}

func TestOrbitAxes(t *testing.T) {
	o := newOrbit(mgl32.Vec2{})
	o.update(mgl32.Vec2{90, 0}, true)
	assertVec3(t, mgl32.Vec3{0, 1, 0}, o.rot.Rotate(mgl32.Vec3{1, 0, 0}))

	o = newOrbit(mgl32.Vec2{})
	o.update(mgl32.Vec2{0, 90}, true)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, o.rot.Rotate(mgl32.Vec3{1, 0, 0}))
}

func TestOrbitAppliesPitchBeforeYaw(t *testing.T) {
	o := newOrbit(mgl32.Vec2{})
	o.update(mgl32.Vec2{90, 90}, true)

	// +Z turns to +X around Y, then to +Y around Z.
	assertVec3(t, mgl32.Vec3{0, 1, 0}, o.rot.Rotate(mgl32.Vec3{0, 0, 1}))

	m := o.model().Mul4x1(mgl32.Vec4{0, 0, 1, 0})
	assertVec3(t, mgl32.Vec3{0, 1, 0}, m.Vec3())
}

func TestOrbitStaysNormalized(t *testing.T) {
	o := newOrbit(mgl32.Vec2{})
	pos := mgl32.Vec2{}
	for i := 0; i < 1000; i++ {
		pos = pos.Add(mgl32.Vec2{3.7, -1.3})
		o.update(pos, true)
	}
	assert.InDelta(t, 1, o.rot.Len(), 1e-5)
}
