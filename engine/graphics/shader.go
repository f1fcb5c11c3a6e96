package graphics

import (
	"fmt"
	"os"
	"strings"

	"github.com/spaghettifunk/vitrail/engine/core"
)

// ShaderStage is one programmable pipeline stage.
type ShaderStage uint32

const (
	VertexShader ShaderStage = iota
	FragmentShader
	GeometryShader
	TessControlShader
	TessEvaluationShader
	ComputeShader
)

func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex shader"
	case FragmentShader:
		return "fragment shader"
	case GeometryShader:
		return "geometry shader"
	case TessControlShader:
		return "tess control shader"
	case TessEvaluationShader:
		return "tess evaluation shader"
	case ComputeShader:
		return "compute shader"
	}
	return "invalid shader stage"
}

// CompileError carries the driver's info log for a failed shader compile or
// program link. The log is harvested before the failed object is deleted,
// so the error is the only thing a caller needs.
type CompileError struct {
	Name string
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %s", e.Name, strings.TrimSpace(e.Log))
}

// ShaderSource is one named chunk of GLSL. Names show up in compile logs
// through #line directives, so they should be file names or other labels a
// reader can find again.
type ShaderSource struct {
	Name string
	Code string
}

// Shader is one compiled stage, ready to attach to program builders. A
// shader is never owned by the programs it is attached to; destroy it
// explicitly once no more programs need it.
type Shader struct {
	d     Driver
	name  uint32
	stage ShaderStage
	label string
}

// CompileShader compiles a single source.
func CompileShader(d Driver, stage ShaderStage, label, source string) (*Shader, error) {
	return CompileShaderSources(d, stage, label, []ShaderSource{{Name: label, Code: source}})
}

// LoadShader reads a source file and compiles it, labelled with its path.
func LoadShader(d Driver, stage ShaderStage, path string) (*Shader, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", stage, err)
	}
	return CompileShader(d, stage, path, string(code))
}

// CompileShaderSources compiles several sources as one shader. Each chunk
// after the first gets a #line directive so driver log line numbers point
// into the right chunk. The #version directive must come from the first
// chunk.
func CompileShaderSources(d Driver, stage ShaderStage, label string, sources []ShaderSource) (*Shader, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("graphics: no sources for %s %q", stage, label)
	}
	name := d.CreateShader(stage)
	if name == 0 {
		return nil, fmt.Errorf("graphics: driver failed to create %s object", stage)
	}
	core.LogDebug("compile %s %q (%d sources)", stage, label, len(sources))
	if !d.CompileShader(name, assembleSources(sources)) {
		log := d.ShaderInfoLog(name)
		d.DeleteShader(name)
		return nil, &CompileError{Name: label, Log: log}
	}
	return &Shader{d: d, name: name, stage: stage, label: label}, nil
}

// assembleSources stitches chunks together, inserting #line directives at
// chunk boundaries. Source indices start at 1 because index 0 is the
// conventional "main file".
func assembleSources(sources []ShaderSource) []string {
	out := make([]string, 0, len(sources)*2)
	for i, src := range sources {
		if i > 0 {
			out = append(out, fmt.Sprintf("\n#line 1 %d // %s\n", i, src.Name))
		}
		out = append(out, src.Code)
	}
	return out
}

// Stage returns the pipeline stage this shader was compiled for.
func (s *Shader) Stage() ShaderStage { return s.stage }

// Label returns the name the shader was compiled under.
func (s *Shader) Label() string { return s.label }

// Destroy deletes the driver object. Programs already linked against the
// shader keep working; builders holding it must not link afterwards.
func (s *Shader) Destroy() {
	core.LogDebug("delete %s %q", s.stage, s.label)
	s.d.DeleteShader(s.name)
}
