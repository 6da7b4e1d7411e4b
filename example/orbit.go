package main

import "github.com/go-gl/mathgl/mgl32"

// orbit turns mouse drags into a model rotation: horizontal motion spins
// around Z, vertical motion around Y, one degree per pixel.
type orbit struct {
	rot  mgl32.Quat
	last mgl32.Vec2
}

func newOrbit(start mgl32.Vec2) orbit {
	return orbit{rot: mgl32.QuatIdent(), last: start}
}

// update consumes the cursor position of a frame. The delta is tracked
// even while the button is up so a new drag does not jump.
func (o *orbit) update(pos mgl32.Vec2, down bool) {
	delta := pos.Sub(o.last)
	o.last = pos
	if !down {
		return
	}

	o.rot = mgl32.QuatRotate(mgl32.DegToRad(delta.Y()), mgl32.Vec3{0, 1, 0}).Mul(o.rot)
	o.rot = mgl32.QuatRotate(mgl32.DegToRad(delta.X()), mgl32.Vec3{0, 0, 1}).Mul(o.rot)
	o.rot = o.rot.Normalize()
}

func (o *orbit) model() mgl32.Mat4 {
	return o.rot.Mat4()
}
