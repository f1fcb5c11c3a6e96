package graphics

import (
	"fmt"

	"github.com/spaghettifunk/vitrail/engine/core"
)

// ProgramBuilder collects shader stages before linking. Link consumes the
// builder; a builder is single-use so a half-linked program can never be
// observed. Attached shaders stay owned by the caller.
type ProgramBuilder struct {
	d     Driver
	name  uint32
	label string
	spent bool
}

// NewProgramBuilder creates an empty, unlinked program object.
func NewProgramBuilder(d Driver, label string) (*ProgramBuilder, error) {
	name := d.CreateProgram()
	if name == 0 {
		return nil, fmt.Errorf("graphics: driver failed to create program object %q", label)
	}
	return &ProgramBuilder{d: d, name: name, label: label}, nil
}

// Attach adds a compiled stage. The builder never takes ownership: destroy
// the shader yourself once every program that needs it has linked.
func (b *ProgramBuilder) Attach(s *Shader) error {
	if b.spent {
		return fmt.Errorf("attach to program %q: %w", b.label, core.ErrSpent)
	}
	b.d.AttachShader(b.name, s.name)
	return nil
}

// Link turns the builder into a usable program. On failure the driver
// object is deleted and the info log is returned in the error; either way
// the builder is spent.
func (b *ProgramBuilder) Link() (*Program, error) {
	if b.spent {
		return nil, fmt.Errorf("link program %q: %w", b.label, core.ErrSpent)
	}
	b.spent = true
	core.LogDebug("link program %q", b.label)
	if !b.d.LinkProgram(b.name) {
		log := b.d.ProgramInfoLog(b.name)
		b.d.DeleteProgram(b.name)
		return nil, &CompileError{Name: b.label, Log: log}
	}
	return &Program{
		d:     b.d,
		id:    mustID(b.name, ProgramTarget),
		label: b.label,
	}, nil
}

// Program is a linked shader pipeline. It binds at the program target
// through the usual guard machinery.
type Program struct {
	d     Driver
	id    ID
	label string
}

// FromShaders builds and links a program from already compiled stages in
// one call.
func FromShaders(d Driver, label string, shaders ...*Shader) (*Program, error) {
	b, err := NewProgramBuilder(d, label)
	if err != nil {
		return nil, err
	}
	for _, s := range shaders {
		if err := b.Attach(s); err != nil {
			return nil, err
		}
	}
	return b.Link()
}

// FromSources compiles a vertex and fragment stage and links them. The
// intermediate shaders are destroyed before returning; the caller only
// deals with the program.
func FromSources(d Driver, label, vertex, fragment string) (*Program, error) {
	vs, err := CompileShader(d, VertexShader, label+".vert", vertex)
	if err != nil {
		return nil, err
	}
	defer vs.Destroy()
	fs, err := CompileShader(d, FragmentShader, label+".frag", fragment)
	if err != nil {
		return nil, err
	}
	defer fs.Destroy()
	return FromShaders(d, label, vs, fs)
}

// LoadProgram reads vertex and fragment source files and links them into a
// program, destroying the intermediate shaders.
func LoadProgram(d Driver, label, vertexPath, fragmentPath string) (*Program, error) {
	vs, err := LoadShader(d, VertexShader, vertexPath)
	if err != nil {
		return nil, err
	}
	defer vs.Destroy()
	fs, err := LoadShader(d, FragmentShader, fragmentPath)
	if err != nil {
		return nil, err
	}
	defer fs.Destroy()
	return FromShaders(d, label, vs, fs)
}

func (p *Program) ID() ID        { return p.id }
func (p *Program) Label() string { return p.label }

// Validate asks the driver whether the program would run against the
// current pipeline state. Meant for debugging draw setup, not hot paths.
func (p *Program) Validate() error {
	if !p.d.ValidateProgram(p.id.Name()) {
		return &CompileError{Name: p.label, Log: p.d.ProgramInfoLog(p.id.Name())}
	}
	return nil
}

// Uniform looks up an active uniform by name. Uniforms the linker optimized
// away are reported as missing.
func (p *Program) Uniform(name string) (UniformLocation, error) {
	location := p.d.UniformLocation(p.id.Name(), name)
	if location < 0 {
		return UniformLocation{}, fmt.Errorf("graphics: no active uniform %q in program %q", name, p.label)
	}
	return UniformLocation{program: p.id.Name(), location: location, name: name}, nil
}

// Attribute looks up an active vertex input by name. The returned location
// is scoped to this program; resolve it to a raw slot with AttributeIndex.
func (p *Program) Attribute(name string) (AttributeLocation, error) {
	location := p.d.AttributeLocation(p.id.Name(), name)
	if location < 0 {
		return AttributeLocation{}, fmt.Errorf("graphics: no active attribute %q in program %q", name, p.label)
	}
	return AttributeLocation{program: p.id.Name(), location: uint32(location), name: name}, nil
}

// AttributeIndex resolves a looked-up attribute to the raw slot vertex
// array calls take. The location must belong to this program.
func (p *Program) AttributeIndex(loc AttributeLocation) (uint32, error) {
	if err := loc.inProgram(p); err != nil {
		return 0, err
	}
	return loc.location, nil
}

// Uniforms enumerates every active uniform, including block members.
func (p *Program) Uniforms() []UniformDesc {
	return p.d.ActiveUniforms(p.id.Name())
}

// Attributes enumerates every active vertex input.
func (p *Program) Attributes() []AttributeDesc {
	return p.d.ActiveAttributes(p.id.Name())
}

// SetUniform writes one uniform value. The location must belong to this
// program; the write happens with the program bound and the previous
// program restored after.
func (p *Program) SetUniform(loc UniformLocation, value UniformValue) error {
	if err := loc.inProgram(p); err != nil {
		return err
	}
	return Bound(p.d, p.id, func() error {
		return errGuard(p.d, "glUniform", func() {
			value.writeUniform(p.d, loc.location)
		})
	})
}

// BindUniformBlock routes the named uniform block to a binding index. Pair
// it with BufferSlice.BindTo on the same index.
func (p *Program) BindUniformBlock(name string, binding uint32) error {
	index, ok := p.d.UniformBlockIndex(p.id.Name(), name)
	if !ok {
		return fmt.Errorf("graphics: no uniform block %q in program %q", name, p.label)
	}
	return errGuard(p.d, "glUniformBlockBinding", func() {
		p.d.UniformBlockBinding(p.id.Name(), index, binding)
	})
}

// Destroy deletes the driver object. Shaders that were attached remain
// valid.
func (p *Program) Destroy() {
	core.LogDebug("delete program %q", p.label)
	p.d.DeleteProgram(p.id.Name())
}

// UniformLocation ties a resolved uniform slot to the program it came from,
// so a location cannot be replayed against a different program.
type UniformLocation struct {
	program  uint32
	location int32
	name     string
}

func (l UniformLocation) Name() string { return l.name }

func (l UniformLocation) inProgram(p *Program) error {
	if l.program != p.id.Name() {
		return fmt.Errorf("graphics: uniform %q belongs to program %d, not %q",
			l.name, l.program, p.label)
	}
	return nil
}

func (l UniformLocation) String() string {
	return fmt.Sprintf("uniform %q (location %d)", l.name, l.location)
}

// AttributeLocation ties a resolved vertex input slot to the program it
// came from, so a location cannot be replayed against a different program.
type AttributeLocation struct {
	program  uint32
	location uint32
	name     string
}

func (l AttributeLocation) Name() string { return l.name }

func (l AttributeLocation) inProgram(p *Program) error {
	if l.program != p.id.Name() {
		return fmt.Errorf("graphics: attribute %q belongs to program %d, not %q",
			l.name, l.program, p.label)
	}
	return nil
}

func (l AttributeLocation) String() string {
	return fmt.Sprintf("attribute %q (location %d)", l.name, l.location)
}

// BindTo routes a uniform-kind buffer slice to a binding index, making its
// elements visible to any program whose block is bound to the same index.
func (s *BufferSlice[T]) BindTo(index uint32) error {
	b := s.buffer
	if b.kind != UniformBuffer && b.kind != ShaderStorageBuffer {
		return fmt.Errorf("graphics: cannot bind %s to an indexed binding point", b.id)
	}
	return errGuard(b.d, "glBindBufferRange", func() {
		b.d.BindBufferRange(b.kind, index, b.id.Name(), s.ByteOffset(), s.ByteLen())
	})
}
