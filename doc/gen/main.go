// Command gen renders the built-in meshes with a few flat materials,
// captures framebuffer pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/pbr"
	"github.com/go-theft-auto/pbr/backend/opengl"
	"github.com/go-theft-auto/pbr/shaders"
)

const (
	shotWidth  = 480
	shotHeight = 360
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// material is a set of flat 1x1 maps.
type material struct {
	albedo    [4]byte
	metallic  byte
	roughness byte
}

// screenshot defines a single capture.
type screenshot struct {
	name     string  // filename without extension
	mesh     string  // "cube" or "sphere"
	yaw      float32 // degrees around Z
	pitch    float32 // degrees around Y
	material material
}

var (
	plastic = material{albedo: [4]byte{200, 40, 40, 255}, metallic: 0, roughness: 100}
	gold    = material{albedo: [4]byte{255, 200, 80, 255}, metallic: 255, roughness: 60}
	chalk   = material{albedo: [4]byte{230, 230, 230, 255}, metallic: 0, roughness: 250}
)

func buildScreenshots() []screenshot {
	return []screenshot{
		{name: "cube-plastic", mesh: "cube", yaw: 30, pitch: 20, material: plastic},
		{name: "cube-gold", mesh: "cube", yaw: 30, pitch: 20, material: gold},
		{name: "sphere-plastic", mesh: "sphere", material: plastic},
		{name: "sphere-gold", mesh: "sphere", material: gold},
		{name: "sphere-chalk", mesh: "sphere", yaw: 90, material: chalk},
	}
}

// renderer draws screenshots with one shader and one VAO per mesh.
type renderer struct {
	dev    *opengl.Device
	stack  pbr.ResourceStack
	shader *pbr.Shader
	meshes map[string]pbr.Mesh
	vaos   map[string]*pbr.VAO
	normal *pbr.Texture
}

func run() error {
	win, err := opengl.NewWindow(shotWidth, shotHeight, "screenshot-gen", opengl.Hidden(), opengl.WithSamples(4))
	if err != nil {
		return err
	}
	defer win.Release()
	win.MakeCurrent()

	r, err := newRenderer(opengl.NewDevice())
	if err != nil {
		return err
	}
	defer r.stack.Release()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(err, "mkdir")
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := r.capture(s, outDir); err != nil {
			return errors.Wrapf(err, "capture %s", s.name)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, shotWidth, shotHeight)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func newRenderer(dev *opengl.Device) (*renderer, error) {
	r := &renderer{
		dev:    dev,
		meshes: make(map[string]pbr.Mesh),
		vaos:   make(map[string]*pbr.VAO),
	}

	r.normal = pbr.NewTexture(dev)
	r.stack.Add(r.normal)
	if err := r.normal.LoadRaw([]byte{128, 128, 255, 255}, 1, 1); err != nil {
		r.stack.Release()
		return nil, err
	}

	cube, err := pbr.NewCube(dev, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, pbr.WithNormals(), pbr.WithTexCoords())
	if err != nil {
		r.stack.Release()
		return nil, err
	}
	r.stack.Add(cube)
	r.meshes["cube"] = cube

	sphere, err := pbr.NewSphere(dev, mgl32.Vec3{}, mgl32.Vec3{1.3, 1.3, 1.3}, 64, pbr.WithNormals(), pbr.WithTexCoords())
	if err != nil {
		r.stack.Release()
		return nil, err
	}
	r.stack.Add(sphere)
	r.meshes["sphere"] = sphere

	r.shader, err = pbr.NewShader(dev, shaders.Vertex, shaders.Fragment)
	if err != nil {
		r.stack.Release()
		return nil, err
	}
	r.stack.Add(r.shader)
	r.shader.SetVec3("uLightDir", mgl32.Vec3{-1, -0.5, -1}.Normalize())
	r.shader.SetVec3("uLightColor", mgl32.Vec3{3, 3, 3})

	for name, mesh := range r.meshes {
		vao := pbr.NewVAO(dev, r.shader)
		r.stack.Add(vao)
		mesh.BindPosition(vao, "inPos")
		mesh.BindNormal(vao, "inNormal")
		mesh.BindTexCoord(vao, "inTexCoord")
		r.vaos[name] = vao
	}

	dev.Enable(pbr.DepthTest)
	return r, nil
}

func flatTexture(dev pbr.Device, stack *pbr.ResourceStack, rgba [4]byte) (*pbr.Texture, error) {
	tex := pbr.NewTexture(dev)
	stack.Add(tex)
	return tex, tex.LoadRaw(rgba[:], 1, 1)
}

func (r *renderer) capture(s screenshot, outDir string) error {
	// Material textures live for one capture; the shader only borrows them.
	var textures pbr.ResourceStack
	defer textures.Release()

	albedo, err := flatTexture(r.dev, &textures, s.material.albedo)
	if err != nil {
		return err
	}
	metallic, err := flatTexture(r.dev, &textures, [4]byte{s.material.metallic, s.material.metallic, s.material.metallic, 255})
	if err != nil {
		return err
	}
	roughness, err := flatTexture(r.dev, &textures, [4]byte{s.material.roughness, s.material.roughness, s.material.roughness, 255})
	if err != nil {
		return err
	}

	for _, t := range []struct {
		sampler string
		tex     *pbr.Texture
	}{
		{"uAlbedo", albedo},
		{"uNormalMap", r.normal},
		{"uMetallicMap", metallic},
		{"uRoughnessMap", roughness},
	} {
		if err := r.shader.SetTexture(t.sampler, t.tex); err != nil {
			return err
		}
	}

	camera := mgl32.Vec3{5, 0, 0}
	model := mgl32.QuatRotate(mgl32.DegToRad(s.yaw), mgl32.Vec3{0, 0, 1}).
		Mul(mgl32.QuatRotate(mgl32.DegToRad(s.pitch), mgl32.Vec3{0, 1, 0})).
		Mat4()
	viewProj := mgl32.Perspective(mgl32.DegToRad(45), float32(shotWidth)/float32(shotHeight), 0.01, 100).
		Mul4(mgl32.LookAtV(camera, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}))

	r.dev.Viewport(0, 0, shotWidth, shotHeight)
	r.dev.ClearColor(0.8, 0.8, 0.8, 1)
	r.dev.Clear(pbr.ColorBufferBit | pbr.DepthBufferBit)

	r.shader.SetMat4("uViewProjection", viewProj)
	r.shader.SetMat4("uModel", model)
	r.shader.SetMat3("uNormalMat", model.Mat3())
	r.shader.SetVec3("uCamPos", camera)

	mesh := r.meshes[s.mesh]
	r.vaos[s.mesh].Draw(pbr.Triangles, 0, int32(mesh.NumVertices()))

	img := r.dev.ReadPixels(shotWidth, shotHeight)

	return writeJPEG(filepath.Join(outDir, s.name+".jpg"), img)
}

func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create screenshot")
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	return nil
}
