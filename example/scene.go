package main

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/pbr"
	"github.com/go-theft-auto/pbr/shaders"
)

// window is what the render loop needs from the platform window.
type window interface {
	PollEvents() bool
	Swap()
	MousePosition() mgl32.Vec2
	MouseDown() bool
	FramebufferSize() (int, int)
	pbr.Releaser
}

// material binds one sampler uniform to its texture source.
type material struct {
	sampler string
	path    string
	flat    [4]byte
}

// materials in texture creation order.
func (c Config) materials() []material {
	return []material{
		{sampler: "uAlbedo", path: c.Textures.Albedo, flat: [4]byte{200, 200, 200, 255}},
		{sampler: "uMetallicMap", path: c.Textures.Metallic, flat: [4]byte{0, 0, 0, 255}},
		{sampler: "uNormalMap", path: c.Textures.Normal, flat: [4]byte{128, 128, 255, 255}},
		{sampler: "uRoughnessMap", path: c.Textures.Roughness, flat: [4]byte{128, 128, 128, 255}},
	}
}

// samplers in texture unit order.
var samplers = []string{"uAlbedo", "uNormalMap", "uMetallicMap", "uRoughnessMap"}

// pipeline is the shader and VAO being drawn. Reloading swaps both.
type pipeline struct {
	shader *pbr.Shader
	vao    *pbr.VAO
}

func (p *pipeline) Release() {
	if p.vao != nil {
		p.vao.Release()
	}
	if p.shader != nil {
		p.shader.Release()
	}
}

// scene owns every resource of the demo and draws one frame at a time.
type scene struct {
	cfg Config
	dev pbr.Device
	win window

	stack    pbr.ResourceStack
	textures map[string]*pbr.Texture
	mesh     pbr.Mesh
	pipe     pipeline

	orbit  orbit
	camera mgl32.Vec3
}

// newScene builds the scene on win's current context. The scene takes
// ownership of win; on error everything created so far, win included, is
// released.
func newScene(dev pbr.Device, win window, cfg Config, vert, frag string) (*scene, error) {
	s := &scene{
		cfg:      cfg,
		dev:      dev,
		win:      win,
		textures: make(map[string]*pbr.Texture),
		camera:   cfg.cameraPos(),
	}
	s.stack.Add(win)

	if err := s.build(vert, frag); err != nil {
		s.stack.Release()
		return nil, err
	}

	dev.Enable(pbr.DepthTest)
	s.orbit = newOrbit(win.MousePosition())
	return s, nil
}

func (s *scene) build(vert, frag string) error {
	for _, m := range s.cfg.materials() {
		tex, err := loadMaterial(s.dev, m)
		if err != nil {
			return errors.Wrapf(err, "load %s", m.sampler)
		}
		s.stack.Add(tex)
		s.textures[m.sampler] = tex
	}

	mesh, err := newMesh(s.dev, s.cfg.Mesh)
	if err != nil {
		return err
	}
	s.stack.Add(mesh)
	s.mesh = mesh

	pipe, err := s.newPipeline(vert, frag)
	if err != nil {
		return err
	}
	s.pipe = pipe
	s.stack.Add(&s.pipe)
	return nil
}

func loadMaterial(dev pbr.Device, m material) (*pbr.Texture, error) {
	if m.path != "" {
		return pbr.NewTextureFromFile(dev, m.path)
	}
	tex := pbr.NewTexture(dev)
	if err := tex.LoadRaw(m.flat[:], 1, 1); err != nil {
		tex.Release()
		return nil, err
	}
	return tex, nil
}

func newMesh(dev pbr.Device, cfg MeshConfig) (pbr.Mesh, error) {
	radius := mgl32.Vec3{cfg.Radius, cfg.Radius, cfg.Radius}
	if cfg.Kind == "sphere" {
		sphere, err := pbr.NewSphere(dev, mgl32.Vec3{}, radius, cfg.Steps, pbr.WithNormals(), pbr.WithTexCoords())
		if err != nil {
			return nil, err
		}
		return sphere, nil
	}
	cube, err := pbr.NewCube(dev, mgl32.Vec3{}, radius, pbr.WithNormals(), pbr.WithTexCoords())
	if err != nil {
		return nil, err
	}
	return cube, nil
}

// newPipeline compiles a shader, applies the static uniforms and samplers
// and binds the mesh to a new VAO.
func (s *scene) newPipeline(vert, frag string) (pipeline, error) {
	shader, err := pbr.NewShader(s.dev, vert, frag)
	if err != nil {
		return pipeline{}, err
	}

	shader.SetVec3("uLightDir", mgl32.Vec3(s.cfg.Light.Dir))
	shader.SetVec3("uLightColor", mgl32.Vec3(s.cfg.Light.Color))
	for _, name := range samplers {
		if err := shader.SetTexture(name, s.textures[name]); err != nil {
			shader.Release()
			return pipeline{}, err
		}
	}

	vao := pbr.NewVAO(s.dev, shader)
	s.mesh.BindPosition(vao, "inPos")
	s.mesh.BindNormal(vao, "inNormal")
	s.mesh.BindTexCoord(vao, "inTexCoord")

	return pipeline{shader: shader, vao: vao}, nil
}

// reload swaps in a pipeline built from new sources. On error the current
// pipeline stays in place.
func (s *scene) reload(vert, frag string) error {
	pipe, err := s.newPipeline(vert, frag)
	if err != nil {
		return err
	}
	old := s.pipe
	s.pipe = pipe
	old.Release()
	return nil
}

// frame draws one frame. It does not poll events or swap buffers.
func (s *scene) frame() {
	w, h := s.win.FramebufferSize()
	if w <= 0 || h <= 0 {
		w, h = s.cfg.Window.Width, s.cfg.Window.Height
	}
	s.dev.Viewport(0, 0, int32(w), int32(h))

	s.dev.ClearColor(0.8, 0.8, 0.8, 1)
	s.dev.Clear(pbr.ColorBufferBit | pbr.DepthBufferBit)

	s.orbit.update(s.win.MousePosition(), s.win.MouseDown())

	viewProj := mgl32.Perspective(mgl32.DegToRad(45), float32(w)/float32(h), 0.01, 100).
		Mul4(mgl32.LookAtV(s.camera, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}))
	model := s.orbit.model()

	shader := s.pipe.shader
	shader.SetMat4("uViewProjection", viewProj)
	shader.SetMat4("uModel", model)
	shader.SetMat3("uNormalMat", model.Mat3())
	shader.SetVec3("uCamPos", s.camera)

	s.pipe.vao.Draw(pbr.Triangles, 0, int32(s.mesh.NumVertices()))
}

// Release releases every resource in reverse creation order.
func (s *scene) Release() {
	s.stack.Release()
}

// shaderSources returns the vertex and fragment sources from dir, or the
// built-in ones when dir is empty.
func shaderSources(dir string) (string, string, error) {
	if dir == "" {
		return shaders.Vertex, shaders.Fragment, nil
	}

	vert, err := os.ReadFile(filepath.Join(dir, shaders.VertexFile))
	if err != nil {
		return "", "", errors.Wrap(err, "read vertex shader")
	}
	frag, err := os.ReadFile(filepath.Join(dir, shaders.FragmentFile))
	if err != nil {
		return "", "", errors.Wrap(err, "read fragment shader")
	}
	return string(vert), string(frag), nil
}
