package graphics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vitrail/engine/graphics"
	"github.com/spaghettifunk/vitrail/engine/graphics/gltest"
)

func TestBindMakesObjectCurrent(t *testing.T) {
	d := gltest.New()
	b, err := graphics.NewBuffer[float32](d, graphics.ArrayBuffer)
	require.NoError(t, err)

	binding := graphics.Bind(d, b.ID())
	current, ok := graphics.Current(d, graphics.ArrayBuffer)
	require.True(t, ok)
	assert.Equal(t, b.ID(), current)

	require.NoError(t, binding.Close())
	_, ok = graphics.Current(d, graphics.ArrayBuffer)
	assert.False(t, ok, "target should be empty after the guard closes")
}

func TestCloseRestoresPreviousBinding(t *testing.T) {
	d := gltest.New()
	first, err := graphics.NewBuffer[float32](d, graphics.ArrayBuffer)
	require.NoError(t, err)
	second, err := graphics.NewBuffer[float32](d, graphics.ArrayBuffer)
	require.NoError(t, err)

	outer := graphics.Bind(d, first.ID())
	defer outer.Close()

	err = graphics.Bound(d, second.ID(), func() error {
		current, ok := graphics.Current(d, graphics.ArrayBuffer)
		require.True(t, ok)
		assert.Equal(t, second.ID(), current)
		return nil
	})
	require.NoError(t, err)

	current, ok := graphics.Current(d, graphics.ArrayBuffer)
	require.True(t, ok)
	assert.Equal(t, first.ID(), current, "inner guard must restore the outer binding")
}

func TestCloseIsIdempotent(t *testing.T) {
	d := gltest.New()
	first, err := graphics.NewBuffer[float32](d, graphics.ArrayBuffer)
	require.NoError(t, err)
	second, err := graphics.NewBuffer[float32](d, graphics.ArrayBuffer)
	require.NoError(t, err)

	binding := graphics.Bind(d, first.ID())
	require.NoError(t, binding.Close())

	// Rebind something else, then close the stale guard again: the second
	// close must not clobber the new binding.
	replacement := graphics.Bind(d, second.ID())
	defer replacement.Close()
	require.NoError(t, binding.Close())

	current, ok := graphics.Current(d, graphics.ArrayBuffer)
	require.True(t, ok)
	assert.Equal(t, second.ID(), current)
}

func TestBindingsAreIndependentPerTarget(t *testing.T) {
	d := gltest.New()
	array, err := graphics.NewBuffer[float32](d, graphics.ArrayBuffer)
	require.NoError(t, err)
	uniform, err := graphics.NewBuffer[float32](d, graphics.UniformBuffer)
	require.NoError(t, err)

	ab := graphics.Bind(d, array.ID())
	ub := graphics.Bind(d, uniform.ID())
	defer ab.Close()
	defer ub.Close()

	current, ok := graphics.Current(d, graphics.ArrayBuffer)
	require.True(t, ok)
	assert.Equal(t, array.ID(), current)
	current, ok = graphics.Current(d, graphics.UniformBuffer)
	require.True(t, ok)
	assert.Equal(t, uniform.ID(), current)
}

func TestNewIDRejectsZero(t *testing.T) {
	_, err := graphics.NewID(0, graphics.ArrayBuffer)
	assert.Error(t, err)

	id, err := graphics.NewID(7, graphics.ProgramTarget)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), id.Name())
	assert.Equal(t, graphics.ProgramTarget, id.Target())
}

func TestOpenRegisteredDriver(t *testing.T) {
	d, err := graphics.Open("gltest")
	require.NoError(t, err)
	assert.NotNil(t, d)

	_, err = graphics.Open("no-such-backend")
	assert.Error(t, err)

	assert.Contains(t, graphics.Available(), "gltest")
}
