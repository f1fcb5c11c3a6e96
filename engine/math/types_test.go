package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(Vec3{X: 1, Y: 2, Z: 3})
	assert.Equal(t, m, m.Mul(Identity()))
	assert.Equal(t, m, Identity().Mul(m))
}

func TestTranslateComposes(t *testing.T) {
	a := Translate(Vec3{X: 1})
	b := Translate(Vec3{Y: 2})
	c := a.Mul(b)
	assert.Equal(t, float32(1), c.Data[12])
	assert.Equal(t, float32(2), c.Data[13])
}

func TestVec3Ops(t *testing.T) {
	v := Vec3{X: 3, Y: 4}
	assert.Equal(t, float32(5), v.Length())
	assert.InDelta(t, 1, float64(v.Normalized().Length()), 1e-6)
	assert.Equal(t, Vec3{}, Vec3{}.Normalized())

	assert.Equal(t, Vec3{Z: 1}, Vec3{X: 1}.Cross(Vec3{Y: 1}))
	assert.Equal(t, float32(0), Vec3{X: 1}.Dot(Vec3{Y: 1}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(7, 0, 5))
	assert.Equal(t, 0, Clamp(-1, 0, 5))
	assert.Equal(t, 3, Clamp(3, 0, 5))
	assert.Equal(t, 2.5, Clamp(2.5, 0.0, 5.0))
}

func TestLerpAndAngles(t *testing.T) {
	assert.Equal(t, float32(5), Lerp(0, 10, 0.5))
	assert.Equal(t, float32(0), Lerp(0, 10, 0))
	assert.InDelta(t, 180, float64(RadToDeg(Pi)), 1e-3)
	assert.InDelta(t, float64(Pi)/2, float64(DegToRad(90)), 1e-6)
}
