package gltest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spaghettifunk/vitrail/engine/graphics"
)

// The fake compiler accepts a small slice of GLSL: it scans declarations
// line by line, rejects sources containing #error the way a real compiler
// honors the directive, and at link time cross-checks vertex outputs
// against fragment inputs. That is enough grammar for tests to provoke
// compile failures, link failures and real introspection results.

type uniformDecl struct {
	name     string
	glslType string
}

type blockDecl struct {
	name    string
	members []uniformDecl
}

type attribDecl struct {
	name     string
	glslType string
	location int32
}

type shaderObject struct {
	stage      graphics.ShaderStage
	compiled   bool
	log        string
	uniforms   []uniformDecl
	blocks     []blockDecl
	attributes []attribDecl
	// Stage interface, name to type. inputs of the fragment stage are
	// matched against outputs of the vertex stage at link time.
	inputs  map[string]string
	outputs map[string]string
}

type programObject struct {
	attached []uint32
	linked   bool
	log      string

	uniforms        []graphics.UniformDesc
	attributes      []graphics.AttributeDesc
	locations       map[string]int32
	attribLocations map[string]int32
	blocks          map[string]uint32
	blockBindings   map[uint32]uint32
	uniformValues   map[int32]any
}

func (d *Driver) CreateShader(stage graphics.ShaderStage) uint32 {
	name := d.shaderNames.acquire()
	d.shaders[name] = &shaderObject{stage: stage}
	return name
}

func (d *Driver) DeleteShader(name uint32) {
	if !d.shaderNames.inUse(name) {
		return
	}
	d.shaderNames.release(name)
	delete(d.shaders, name)
}

var layoutIn = regexp.MustCompile(`^layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s+in\s+(\w+)\s+(\w+)\s*;`)

func (d *Driver) CompileShader(name uint32, sources []string) bool {
	s, ok := d.shaders[name]
	if !ok {
		d.setError(graphics.InvalidOperation)
		return false
	}
	source := strings.Join(sources, "")
	s.uniforms = nil
	s.blocks = nil
	s.attributes = nil
	s.inputs = make(map[string]string)
	s.outputs = make(map[string]string)
	s.log = ""

	var block *blockDecl
	for n, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#error") {
			s.log += fmt.Sprintf("0:%d: error: %s\n", n+1, strings.TrimSpace(strings.TrimPrefix(line, "#error")))
			continue
		}
		if block != nil {
			if strings.HasPrefix(line, "}") {
				s.blocks = append(s.blocks, *block)
				block = nil
				continue
			}
			if typ, memberName, ok := parseDecl(line); ok {
				block.members = append(block.members, uniformDecl{name: memberName, glslType: typ})
			}
			continue
		}
		switch {
		case strings.HasPrefix(line, "uniform "):
			rest := strings.TrimPrefix(line, "uniform ")
			if strings.HasSuffix(strings.TrimSpace(rest), "{") {
				block = &blockDecl{name: strings.Fields(rest)[0]}
				continue
			}
			if typ, uniformName, ok := parseDecl(rest); ok {
				s.uniforms = append(s.uniforms, uniformDecl{name: uniformName, glslType: typ})
			}
		case layoutIn.MatchString(line):
			m := layoutIn.FindStringSubmatch(line)
			loc, _ := strconv.Atoi(m[1])
			s.attributes = append(s.attributes, attribDecl{name: m[3], glslType: m[2], location: int32(loc)})
			s.inputs[m[3]] = m[2]
		case strings.HasPrefix(line, "in "):
			if typ, inName, ok := parseDecl(strings.TrimPrefix(line, "in ")); ok {
				s.attributes = append(s.attributes, attribDecl{name: inName, glslType: typ, location: -1})
				s.inputs[inName] = typ
			}
		case strings.HasPrefix(line, "out "):
			if typ, outName, ok := parseDecl(strings.TrimPrefix(line, "out ")); ok {
				s.outputs[outName] = typ
			}
		}
	}
	s.compiled = s.log == ""
	return s.compiled
}

// parseDecl splits "vec3 name;" into type and name.
func parseDecl(line string) (string, string, bool) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}

func (d *Driver) ShaderInfoLog(name uint32) string {
	if s, ok := d.shaders[name]; ok {
		return s.log
	}
	return ""
}

func (d *Driver) CreateProgram() uint32 {
	name := d.programNames.acquire()
	d.programs[name] = &programObject{
		locations:       make(map[string]int32),
		attribLocations: make(map[string]int32),
		blocks:          make(map[string]uint32),
		blockBindings:   make(map[uint32]uint32),
		uniformValues:   make(map[int32]any),
	}
	return name
}

func (d *Driver) DeleteProgram(name uint32) {
	if !d.programNames.inUse(name) {
		return
	}
	d.programNames.release(name)
	delete(d.programs, name)
	if d.currentProgram == name {
		d.currentProgram = 0
	}
}

func (d *Driver) AttachShader(program, shader uint32) {
	p, ok := d.programs[program]
	if !ok || !d.shaderNames.inUse(shader) {
		d.setError(graphics.InvalidOperation)
		return
	}
	p.attached = append(p.attached, shader)
}

func (d *Driver) LinkProgram(name uint32) bool {
	p, ok := d.programs[name]
	if !ok {
		d.setError(graphics.InvalidOperation)
		return false
	}
	p.log = ""
	if len(p.attached) == 0 {
		p.log = "error: no shader objects attached\n"
		p.linked = false
		return false
	}

	var vertex, fragment *shaderObject
	for _, sn := range p.attached {
		s := d.shaders[sn]
		if s == nil || !s.compiled {
			p.log = "error: attached shader is not compiled\n"
			p.linked = false
			return false
		}
		switch s.stage {
		case graphics.VertexShader:
			vertex = s
		case graphics.FragmentShader:
			fragment = s
		}
	}
	// Vertex outputs must agree with fragment inputs, like a native
	// linker's interface matching.
	if vertex != nil && fragment != nil {
		for inName, inType := range fragment.inputs {
			if outType, ok := vertex.outputs[inName]; ok && outType != inType {
				p.log = fmt.Sprintf("error: type mismatch for varying %q: %s vs %s\n", inName, outType, inType)
				p.linked = false
				return false
			}
		}
	}

	p.uniforms = nil
	p.attributes = nil
	p.locations = make(map[string]int32)
	p.attribLocations = make(map[string]int32)
	p.blocks = make(map[string]uint32)
	p.uniformValues = make(map[int32]any)
	nextLocation := int32(0)
	nextAttrib := int32(0)
	for _, sn := range p.attached {
		s := d.shaders[sn]
		for _, u := range s.uniforms {
			if _, seen := p.locations[u.name]; seen {
				continue
			}
			kind, components := glslShape(u.glslType)
			p.locations[u.name] = nextLocation
			p.uniforms = append(p.uniforms, graphics.UniformDesc{
				Name:       u.name,
				Location:   nextLocation,
				BlockIndex: -1,
				Kind:       kind,
				Components: components,
			})
			nextLocation++
		}
		for _, b := range s.blocks {
			if _, seen := p.blocks[b.name]; seen {
				continue
			}
			blockIndex := uint32(len(p.blocks))
			p.blocks[b.name] = blockIndex
			for _, m := range b.members {
				kind, components := glslShape(m.glslType)
				p.uniforms = append(p.uniforms, graphics.UniformDesc{
					Name:       m.name,
					Location:   -1,
					BlockIndex: int32(blockIndex),
					Kind:       kind,
					Components: components,
				})
			}
		}
		if s.stage != graphics.VertexShader {
			continue
		}
		for _, a := range s.attributes {
			if _, seen := p.attribLocations[a.name]; seen {
				continue
			}
			location := a.location
			if location < 0 {
				location = nextAttrib
			}
			kind, components := glslShape(a.glslType)
			p.attribLocations[a.name] = location
			p.attributes = append(p.attributes, graphics.AttributeDesc{
				Name:       a.name,
				Location:   location,
				Kind:       kind,
				Components: components,
			})
			nextAttrib = location + 1
		}
	}
	p.linked = true
	return true
}

func (d *Driver) ValidateProgram(name uint32) bool {
	p, ok := d.programs[name]
	return ok && p.linked
}

func (d *Driver) ProgramInfoLog(name uint32) string {
	if p, ok := d.programs[name]; ok {
		return p.log
	}
	return ""
}

func (d *Driver) UseProgram(name uint32) {
	if name != 0 {
		p, ok := d.programs[name]
		if !ok || !p.linked {
			d.setError(graphics.InvalidOperation)
			return
		}
	}
	d.currentProgram = name
}

func (d *Driver) CurrentProgram() uint32 { return d.currentProgram }

func (d *Driver) ActiveUniforms(program uint32) []graphics.UniformDesc {
	if p, ok := d.programs[program]; ok {
		return append([]graphics.UniformDesc(nil), p.uniforms...)
	}
	return nil
}

func (d *Driver) ActiveAttributes(program uint32) []graphics.AttributeDesc {
	if p, ok := d.programs[program]; ok {
		return append([]graphics.AttributeDesc(nil), p.attributes...)
	}
	return nil
}

func (d *Driver) UniformLocation(program uint32, name string) int32 {
	if p, ok := d.programs[program]; ok {
		if location, ok := p.locations[name]; ok {
			return location
		}
	}
	return -1
}

func (d *Driver) AttributeLocation(program uint32, name string) int32 {
	if p, ok := d.programs[program]; ok {
		if location, ok := p.attribLocations[name]; ok {
			return location
		}
	}
	return -1
}

func (d *Driver) UniformBlockIndex(program uint32, name string) (uint32, bool) {
	if p, ok := d.programs[program]; ok {
		index, ok := p.blocks[name]
		return index, ok
	}
	return 0, false
}

func (d *Driver) UniformBlockBinding(program uint32, blockIndex, binding uint32) {
	p, ok := d.programs[program]
	if !ok || blockIndex >= uint32(len(p.blocks)) {
		d.setError(graphics.InvalidValue)
		return
	}
	p.blockBindings[blockIndex] = binding
}

// storeUniform records a write against the current program, which is where
// native uniform calls land too.
func (d *Driver) storeUniform(location int32, value any) {
	p, ok := d.programs[d.currentProgram]
	if !ok {
		d.setError(graphics.InvalidOperation)
		return
	}
	if location < 0 {
		d.setError(graphics.InvalidOperation)
		return
	}
	p.uniformValues[location] = value
}

func (d *Driver) UniformFloats(location int32, components int, v []float32) {
	d.storeUniform(location, append([]float32(nil), v...))
}

func (d *Driver) UniformDoubles(location int32, components int, v []float64) {
	d.storeUniform(location, append([]float64(nil), v...))
}

func (d *Driver) UniformInts(location int32, components int, v []int32) {
	d.storeUniform(location, append([]int32(nil), v...))
}

func (d *Driver) UniformUints(location int32, components int, v []uint32) {
	d.storeUniform(location, append([]uint32(nil), v...))
}

func (d *Driver) UniformMatrix(location int32, dim int, v []float32) {
	d.storeUniform(location, append([]float32(nil), v...))
}

func (d *Driver) UniformMatrixDouble(location int32, dim int, v []float64) {
	d.storeUniform(location, append([]float64(nil), v...))
}

// glslShape maps a GLSL type name onto the portable scalar kind and
// component count. Unknown names, samplers included, act as int scalars.
func glslShape(glslType string) (graphics.ScalarKind, int) {
	switch glslType {
	case "float":
		return graphics.Float, 1
	case "vec2":
		return graphics.Float, 2
	case "vec3":
		return graphics.Float, 3
	case "vec4":
		return graphics.Float, 4
	case "mat2":
		return graphics.Float, 4
	case "mat3":
		return graphics.Float, 9
	case "mat4":
		return graphics.Float, 16
	case "double":
		return graphics.Double, 1
	case "dvec2":
		return graphics.Double, 2
	case "dvec3":
		return graphics.Double, 3
	case "dvec4":
		return graphics.Double, 4
	case "dmat4":
		return graphics.Double, 16
	case "int", "bool":
		return graphics.Int, 1
	case "ivec2":
		return graphics.Int, 2
	case "ivec3":
		return graphics.Int, 3
	case "ivec4":
		return graphics.Int, 4
	case "uint":
		return graphics.UnsignedInt, 1
	case "uvec2":
		return graphics.UnsignedInt, 2
	case "uvec3":
		return graphics.UnsignedInt, 3
	case "uvec4":
		return graphics.UnsignedInt, 4
	default:
		return graphics.Int, 1
	}
}

// UniformWritten reports the last value written to a location of a linked
// program, for tests.
func (d *Driver) UniformWritten(program uint32, location int32) (any, bool) {
	p, ok := d.programs[program]
	if !ok {
		return nil, false
	}
	v, ok := p.uniformValues[location]
	return v, ok
}

// BlockBinding reports where a uniform block was routed, for tests.
func (d *Driver) BlockBinding(program uint32, blockIndex uint32) (uint32, bool) {
	p, ok := d.programs[program]
	if !ok {
		return 0, false
	}
	b, ok := p.blockBindings[blockIndex]
	return b, ok
}
