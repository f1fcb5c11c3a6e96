package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/vitrail/engine/core"
)

var startTime float64 = 0

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform owns the application window and its OpenGL context.
type Platform struct {
	Window *glfw.Window

	onResize func(width, height int)
	onKey    func(key glfw.Key, action glfw.Action)
}

func New() (*Platform, error) {
	return &Platform{
		Window: nil,
	}, nil
}

// Startup creates the window with a core-profile OpenGL 4.6 context and
// makes the context current on the calling thread.
func (p *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	startTime = glfw.GetTime()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// OnResize registers the handler called when the framebuffer size changes.
func (p *Platform) OnResize(fn func(width, height int)) {
	p.onResize = fn
}

// OnKey registers the handler called for key presses and releases.
func (p *Platform) OnKey(fn func(key glfw.Key, action glfw.Action)) {
	p.onKey = fn
}

// FramebufferSize reports the drawable size in pixels, which can differ
// from the window size on high-DPI displays.
func (p *Platform) FramebufferSize() (int, int) {
	if p.Window == nil {
		return 0, 0
	}
	return p.Window.GetFramebufferSize()
}

// ShouldClose reports whether the user asked to close the window.
func (p *Platform) ShouldClose() bool {
	return p.Window == nil || p.Window.ShouldClose()
}

// RequestClose flags the window for closing; the run loop picks it up on
// the next ShouldClose check.
func (p *Platform) RequestClose() {
	if p.Window != nil {
		p.Window.SetShouldClose(true)
	}
}

// SwapBuffers presents the backbuffer.
func (p *Platform) SwapBuffers() {
	if p.Window != nil {
		p.Window.SwapBuffers()
	}
}

// PumpMessages processes pending window events, firing callbacks.
func (p *Platform) PumpMessages() {
	glfw.PollEvents()
}

// Time reports seconds since Startup.
func (p *Platform) Time() float64 {
	return glfw.GetTime() - startTime
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if p.onKey != nil {
		p.onKey(key, action)
	}
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	if p.onResize != nil {
		p.onResize(width, height)
	}
}
