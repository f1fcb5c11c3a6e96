package math

import stdmath "math"

// Vec2 is a 2D float vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a 3D float vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a 4D float vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// Mat4 is a 4x4 float matrix stored column-major, matching the layout the
// graphics drivers expect.
type Mat4 struct {
	Data [16]float32
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{Data: [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.Data[k*4+row] * other.Data[col*4+k]
			}
			out.Data[col*4+row] = sum
		}
	}
	return out
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m.Data[12] = v.X
	m.Data[13] = v.Y
	m.Data[14] = v.Z
	return m
}

// Scale returns a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m.Data[0] = v.X
	m.Data[5] = v.Y
	m.Data[10] = v.Z
	return m
}

// RotateZ returns a rotation matrix around the Z axis, angle in radians.
func RotateZ(angle float32) Mat4 {
	sin, cos := stdmath.Sincos(float64(angle))
	m := Identity()
	m.Data[0] = float32(cos)
	m.Data[1] = float32(sin)
	m.Data[4] = float32(-sin)
	m.Data[5] = float32(cos)
	return m
}

// Orthographic returns an orthographic projection matrix mapping the given
// box onto clip space.
func Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	m := Identity()
	m.Data[0] = 2 / (right - left)
	m.Data[5] = 2 / (top - bottom)
	m.Data[10] = -2 / (far - near)
	m.Data[12] = -(right + left) / (right - left)
	m.Data[13] = -(top + bottom) / (top - bottom)
	m.Data[14] = -(far + near) / (far - near)
	return m
}

// Perspective returns a perspective projection matrix. fovY is in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1 / stdmath.Tan(float64(fovY)/2))
	var m Mat4
	m.Data[0] = f / aspect
	m.Data[5] = f
	m.Data[10] = (far + near) / (near - far)
	m.Data[11] = -1
	m.Data[14] = 2 * far * near / (near - far)
	return m
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// MulScalar returns v scaled by s.
func (v Vec3) MulScalar(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the euclidean length.
func (v Vec3) Length() float32 {
	return float32(stdmath.Sqrt(float64(v.Dot(v))))
}

// Normalized returns the unit vector in v's direction. The zero vector
// normalizes to itself.
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return v.MulScalar(1 / length)
}
