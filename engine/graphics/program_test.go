package graphics_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vitrail/engine/core"
	"github.com/spaghettifunk/vitrail/engine/graphics"
	"github.com/spaghettifunk/vitrail/engine/graphics/gltest"
	"github.com/spaghettifunk/vitrail/engine/math"
)

const vertexSrc = `#version 460 core
layout(location = 0) in vec3 position;
in vec2 texcoord;
uniform mat4 model;
uniform vec4 tint;
out vec2 uv;
void main() {}
`

const fragmentSrc = `#version 460 core
in vec2 uv;
uniform sampler2D albedo;
out vec4 color;
void main() {}
`

func linkTestProgram(t *testing.T, d graphics.Driver) *graphics.Program {
	t.Helper()
	p, err := graphics.FromSources(d, "test", vertexSrc, fragmentSrc)
	require.NoError(t, err)
	return p
}

func TestCompileFailureCarriesLog(t *testing.T) {
	d := gltest.New()
	_, err := graphics.CompileShader(d, graphics.FragmentShader, "broken.frag",
		"#version 460 core\n#error not today\n")
	require.Error(t, err)

	var ce *graphics.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "broken.frag", ce.Name)
	assert.Contains(t, ce.Log, "not today")
	assert.Zero(t, d.LiveObjects(), "failed shader objects must not leak")
}

func TestCompileMultipleSources(t *testing.T) {
	d := gltest.New()
	shared := graphics.ShaderSource{Name: "lighting.glsl", Code: "uniform vec3 lightDir;\n"}
	main := graphics.ShaderSource{Name: "mesh.vert", Code: vertexSrc}
	s, err := graphics.CompileShaderSources(d, graphics.VertexShader, "mesh", []graphics.ShaderSource{main, shared})
	require.NoError(t, err)
	defer s.Destroy()

	p, err := graphics.FromShaders(d, "mesh", s)
	require.NoError(t, err)
	defer p.Destroy()

	_, err = p.Uniform("lightDir")
	assert.NoError(t, err, "uniforms from secondary sources must be visible")
}

func TestLinkFailureOnVaryingMismatch(t *testing.T) {
	d := gltest.New()
	badFragment := `#version 460 core
in vec4 uv;
out vec4 color;
void main() {}
`
	_, err := graphics.FromSources(d, "mismatched", vertexSrc, badFragment)
	require.Error(t, err)

	var ce *graphics.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Log, "mismatch")
	assert.Zero(t, d.LiveObjects(), "failed link must delete the program object")
}

func TestBuilderIsSingleUse(t *testing.T) {
	d := gltest.New()
	vs, err := graphics.CompileShader(d, graphics.VertexShader, "v", vertexSrc)
	require.NoError(t, err)
	defer vs.Destroy()

	b, err := graphics.NewProgramBuilder(d, "once")
	require.NoError(t, err)
	require.NoError(t, b.Attach(vs))
	p, err := b.Link()
	require.NoError(t, err)
	defer p.Destroy()

	_, err = b.Link()
	assert.True(t, errors.Is(err, core.ErrSpent))
	assert.True(t, errors.Is(b.Attach(vs), core.ErrSpent))
}

func TestProgramIntrospection(t *testing.T) {
	d := gltest.New()
	p := linkTestProgram(t, d)
	defer p.Destroy()

	uniforms := p.Uniforms()
	names := make([]string, len(uniforms))
	for i, u := range uniforms {
		names[i] = u.Name
	}
	assert.ElementsMatch(t, []string{"model", "tint", "albedo"}, names)

	position, err := p.Attribute("position")
	require.NoError(t, err)
	index, err := p.AttributeIndex(position)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), index)

	_, err = p.Uniform("missing")
	assert.Error(t, err)
	_, err = p.Attribute("missing")
	assert.Error(t, err)

	attributes := p.Attributes()
	assert.Len(t, attributes, 2)
}

func TestSetUniformWritesThroughBinding(t *testing.T) {
	d := gltest.New()
	p := linkTestProgram(t, d)
	defer p.Destroy()

	tint, err := p.Uniform("tint")
	require.NoError(t, err)
	require.NoError(t, p.SetUniform(tint, graphics.Uniform4f(math.Vec4{X: 1, W: 1})))

	name := p.ID().Name()
	location := d.UniformLocation(name, "tint")
	written, ok := d.UniformWritten(name, location)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 0, 0, 1}, written)

	// The previously current program is restored after the write.
	assert.Zero(t, d.CurrentProgram())
}

func TestUniformLocationIsProgramBound(t *testing.T) {
	d := gltest.New()
	first := linkTestProgram(t, d)
	defer first.Destroy()
	second := linkTestProgram(t, d)
	defer second.Destroy()

	tint, err := first.Uniform("tint")
	require.NoError(t, err)
	err = second.SetUniform(tint, graphics.Uniform1f(1))
	assert.Error(t, err, "locations must not be replayed against other programs")
}

func TestAttributeLocationIsProgramBound(t *testing.T) {
	d := gltest.New()
	first := linkTestProgram(t, d)
	defer first.Destroy()
	second := linkTestProgram(t, d)
	defer second.Destroy()

	position, err := first.Attribute("position")
	require.NoError(t, err)
	_, err = first.AttributeIndex(position)
	assert.NoError(t, err)
	_, err = second.AttributeIndex(position)
	assert.Error(t, err, "locations must not be replayed against other programs")
}

func TestUniformBlockBinding(t *testing.T) {
	d := gltest.New()
	blockVertex := `#version 460 core
uniform Camera {
mat4 view;
mat4 projection;
};
void main() {}
`
	p, err := graphics.FromSources(d, "camera", blockVertex, fragmentSrc)
	require.NoError(t, err)
	defer p.Destroy()

	require.NoError(t, p.BindUniformBlock("Camera", 2))
	index, ok := d.UniformBlockIndex(p.ID().Name(), "Camera")
	require.True(t, ok)
	binding, ok := d.BlockBinding(p.ID().Name(), index)
	require.True(t, ok)
	assert.Equal(t, uint32(2), binding)

	assert.Error(t, p.BindUniformBlock("NoSuchBlock", 0))
}

func TestValidate(t *testing.T) {
	d := gltest.New()
	p := linkTestProgram(t, d)
	defer p.Destroy()
	assert.NoError(t, p.Validate())
}
