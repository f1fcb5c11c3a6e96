package graphics

import "fmt"

// Target is one binding point in the driver's global state machine. At most
// one object name occupies a target at a time; name 0 is the "nothing bound"
// sentinel. The set of targets is closed: buffer kinds, texture targets and
// the three singleton targets below.
type Target interface {
	bindName(d Driver, name uint32)
	boundName(d Driver) uint32
	String() string
}

// Singleton targets for the object kinds that have exactly one binding
// point.
type (
	programTarget     struct{}
	framebufferTarget struct{}
	vertexArrayTarget struct{}
)

// ProgramTarget is the binding point occupied by glUseProgram.
var ProgramTarget Target = programTarget{}

// FramebufferTarget is the GL_FRAMEBUFFER binding point.
var FramebufferTarget Target = framebufferTarget{}

// VertexArrayTarget is the vertex array binding point.
var VertexArrayTarget Target = vertexArrayTarget{}

func (programTarget) bindName(d Driver, name uint32) { d.UseProgram(name) }
func (programTarget) boundName(d Driver) uint32      { return d.CurrentProgram() }
func (programTarget) String() string                 { return "program" }

func (framebufferTarget) bindName(d Driver, name uint32) { d.BindFramebuffer(name) }
func (framebufferTarget) boundName(d Driver) uint32      { return d.BoundFramebuffer() }
func (framebufferTarget) String() string                 { return "framebuffer" }

func (vertexArrayTarget) bindName(d Driver, name uint32) { d.BindVertexArray(name) }
func (vertexArrayTarget) boundName(d Driver) uint32      { return d.BoundVertexArray() }
func (vertexArrayTarget) String() string                 { return "vertex array" }

// ID names a live driver object together with the binding point it occupies.
// The zero name is reserved by the driver to mean "nothing bound", so an ID
// can never hold it.
type ID struct {
	name   uint32
	target Target
}

// NewID wraps a driver-assigned name. It refuses the zero sentinel.
func NewID(name uint32, target Target) (ID, error) {
	if name == 0 {
		return ID{}, fmt.Errorf("graphics: zero name for %s object", target)
	}
	return ID{name: name, target: target}, nil
}

// mustID is for freshly generated names: the driver contract guarantees a
// non-zero name on success, so zero means the environment is broken beyond
// recovery.
func mustID(name uint32, target Target) ID {
	id, err := NewID(name, target)
	if err != nil {
		panic(err)
	}
	return id
}

// Name returns the raw driver name.
func (id ID) Name() uint32 { return id.name }

// Target returns the binding point this object occupies.
func (id ID) Target() Target { return id.target }

func (id ID) String() string {
	return fmt.Sprintf("%s %d", id.target, id.name)
}

// Current reports the identifier occupying the given target, if any. It
// never mutates driver state.
func Current(d Driver, target Target) (ID, bool) {
	name := target.boundName(d)
	if name == 0 {
		return ID{}, false
	}
	return ID{name: name, target: target}, true
}
