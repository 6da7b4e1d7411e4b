/*
Package pbr provides reference-counted wrappers around the graphics objects
needed to draw a lit, textured mesh: vertex buffers, textures, shader
programs and vertex array objects, plus procedural cube and sphere meshes.

# Overview

Every resource talks to the driver through a Device. The OpenGL 4.1
implementation lives in backend/opengl; package pbrtest provides an
in-memory Device for tests.

# Ownership

Each resource starts with one owner. Anything that stores a resource takes
an extra reference with AddRef and gives it back with Release; the Release
that finds no extra references left frees the driver object. A VAO, for
example, holds a reference to its shader and to every buffer it binds, so
the caller may release its own references as soon as the VAO is built.

Release must be called exactly once per owner and once per AddRef. Extra
calls are not caught; they are only logged.

ResourceStack collects owners and releases them in reverse order, which is
safe as long as resources are added in the order they were created:

	var stack pbr.ResourceStack
	defer stack.Release()

	mesh, err := pbr.NewCube(dev, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, pbr.WithNormals(), pbr.WithTexCoords())
	if err != nil {
	    return err
	}
	stack.Add(mesh)

	shader, err := pbr.NewShader(dev, vertSrc, fragSrc)
	if err != nil {
	    return err
	}
	stack.Add(shader)

	vao := pbr.NewVAO(dev, shader)
	stack.Add(vao)
	mesh.BindPosition(vao, "inPos")
	mesh.BindNormal(vao, "inNormal")
	mesh.BindTexCoord(vao, "inTexCoord")

	// Frame
	vao.Draw(pbr.Triangles, 0, int32(mesh.NumVertices()))

# Threading

Resources are not safe for concurrent use. Create, use and release them on
the thread that owns the graphics context.
*/
package pbr
