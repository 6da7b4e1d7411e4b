package opengl

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// GLFW is initialised with the first window and terminated with the last.
var (
	glfwMu      sync.Mutex
	glfwWindows int
)

func acquireGLFW() error {
	glfwMu.Lock()
	defer glfwMu.Unlock()

	if glfwWindows == 0 {
		if err := glfw.Init(); err != nil {
			return errors.Wrap(err, "glfw init")
		}
	}
	glfwWindows++
	return nil
}

func releaseGLFW() {
	glfwMu.Lock()
	defer glfwMu.Unlock()

	glfwWindows--
	if glfwWindows == 0 {
		glfw.Terminate()
	}
}

// Window is a fixed-size GLFW window with an OpenGL 4.1 core context. It
// tracks the cursor position and the left mouse button.
//
// All methods must be called from the main thread.
type Window struct {
	window *glfw.Window
	mouse  mouseState
}

// WindowOption configures NewWindow.
type WindowOption func(*windowOptions)

type windowOptions struct {
	hidden  bool
	samples int
}

// Hidden creates the window without showing it, for offscreen rendering.
func Hidden() WindowOption {
	return func(o *windowOptions) { o.hidden = true }
}

// WithSamples sets the number of multisample samples. The default is 2.
func WithSamples(n int) WindowOption {
	return func(o *windowOptions) { o.samples = n }
}

// NewWindow opens a window and loads the OpenGL entry points for its
// context. The context current before the call stays current; call
// MakeCurrent before issuing GL calls for this window.
func NewWindow(width, height int, title string, opts ...WindowOption) (*Window, error) {
	o := windowOptions{samples: 2}
	for _, opt := range opts {
		opt(&o)
	}

	if err := acquireGLFW(); err != nil {
		return nil, err
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Samples, o.samples)
	if o.hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		releaseGLFW()
		return nil, errors.Wrap(err, "create window")
	}

	previous := glfw.GetCurrentContext()
	window.MakeContextCurrent()
	err = gl.Init()
	if previous != nil {
		previous.MakeContextCurrent()
	} else {
		glfw.DetachCurrentContext()
	}
	if err != nil {
		window.Destroy()
		releaseGLFW()
		return nil, errors.Wrap(err, "gl init")
	}

	w := &Window{window: window}
	window.SetMouseButtonCallback(w.mouseButtonCallback)
	window.SetCursorPosCallback(w.cursorPosCallback)

	slog.Debug("window created", "width", width, "height", height, "title", title)
	return w, nil
}

// MakeCurrent makes the window's context current on the calling thread.
func (w *Window) MakeCurrent() {
	w.window.MakeContextCurrent()
}

// PollEvents processes pending events and reports whether the window was
// asked to close.
func (w *Window) PollEvents() bool {
	glfw.PollEvents()
	return w.window.ShouldClose()
}

// Swap presents the back buffer.
func (w *Window) Swap() {
	w.window.SwapBuffers()
}

// MousePosition returns the last cursor position in window coordinates.
func (w *Window) MousePosition() mgl32.Vec2 {
	return w.mouse.pos
}

// MouseDown reports whether the left mouse button is held.
func (w *Window) MouseDown() bool {
	return w.mouse.down
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// Release destroys the window. GLFW is terminated with the last window.
func (w *Window) Release() {
	if w.window == nil {
		return
	}
	w.window.Destroy()
	w.window = nil
	releaseGLFW()
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	w.mouse.button(button, action)
}

func (w *Window) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	w.mouse.move(xpos, ypos)
}

type mouseState struct {
	pos  mgl32.Vec2
	down bool
}

func (m *mouseState) button(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		m.down = true
	case glfw.Release:
		m.down = false
	}
}

func (m *mouseState) move(x, y float64) {
	m.pos = mgl32.Vec2{float32(x), float32(y)}
}
