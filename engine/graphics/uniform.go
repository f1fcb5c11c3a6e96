package graphics

import "github.com/spaghettifunk/vitrail/engine/math"

// UniformValue is a value that knows how to write itself into a uniform
// slot. The set is closed over the scalar, vector and matrix shapes the
// driver accepts, plus TextureUnit for samplers.
type UniformValue interface {
	writeUniform(d Driver, location int32)
}

type (
	uniformFloats struct {
		components int
		v          []float32
	}
	uniformDoubles struct {
		components int
		v          []float64
	}
	uniformInts struct {
		components int
		v          []int32
	}
	uniformUints struct {
		components int
		v          []uint32
	}
	uniformMatrix struct {
		dim int
		v   []float32
	}
	uniformMatrixDouble struct {
		dim int
		v   []float64
	}
)

func (u uniformFloats) writeUniform(d Driver, location int32) {
	d.UniformFloats(location, u.components, u.v)
}

func (u uniformDoubles) writeUniform(d Driver, location int32) {
	d.UniformDoubles(location, u.components, u.v)
}

func (u uniformInts) writeUniform(d Driver, location int32) {
	d.UniformInts(location, u.components, u.v)
}

func (u uniformUints) writeUniform(d Driver, location int32) {
	d.UniformUints(location, u.components, u.v)
}

func (u uniformMatrix) writeUniform(d Driver, location int32) {
	d.UniformMatrix(location, u.dim, u.v)
}

func (u uniformMatrixDouble) writeUniform(d Driver, location int32) {
	d.UniformMatrixDouble(location, u.dim, u.v)
}

// Uniform1f wraps a float scalar.
func Uniform1f(v float32) UniformValue {
	return uniformFloats{components: 1, v: []float32{v}}
}

// Uniform2f wraps a vec2.
func Uniform2f(v math.Vec2) UniformValue {
	return uniformFloats{components: 2, v: []float32{v.X, v.Y}}
}

// Uniform3f wraps a vec3.
func Uniform3f(v math.Vec3) UniformValue {
	return uniformFloats{components: 3, v: []float32{v.X, v.Y, v.Z}}
}

// Uniform4f wraps a vec4.
func Uniform4f(v math.Vec4) UniformValue {
	return uniformFloats{components: 4, v: []float32{v.X, v.Y, v.Z, v.W}}
}

// Uniform1d wraps a double scalar.
func Uniform1d(v float64) UniformValue {
	return uniformDoubles{components: 1, v: []float64{v}}
}

// Uniform1i wraps an int scalar.
func Uniform1i(v int32) UniformValue {
	return uniformInts{components: 1, v: []int32{v}}
}

// Uniform2i wraps an ivec2.
func Uniform2i(x, y int32) UniformValue {
	return uniformInts{components: 2, v: []int32{x, y}}
}

// Uniform1ui wraps an unsigned scalar.
func Uniform1ui(v uint32) UniformValue {
	return uniformUints{components: 1, v: []uint32{v}}
}

// UniformMat4 wraps a 4x4 float matrix in column-major order.
func UniformMat4(m math.Mat4) UniformValue {
	return uniformMatrix{dim: 4, v: m.Data[:]}
}

// UniformMat4d wraps a 4x4 double matrix in column-major order.
func UniformMat4d(v [16]float64) UniformValue {
	return uniformMatrixDouble{dim: 4, v: v[:]}
}
