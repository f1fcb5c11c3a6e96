package graphics_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vitrail/engine/core"
	"github.com/spaghettifunk/vitrail/engine/graphics"
	"github.com/spaghettifunk/vitrail/engine/graphics/gltest"
)

func TestCheckErrorWrapsCode(t *testing.T) {
	d := gltest.New()
	assert.NoError(t, graphics.CheckError(d, "glNothing"))

	d.InjectError(graphics.InvalidValue)
	err := graphics.CheckError(d, "glBufferData")
	require.Error(t, err)

	var glErr *graphics.GLError
	require.ErrorAs(t, err, &glErr)
	assert.Equal(t, "glBufferData", glErr.Op)
	assert.Equal(t, graphics.InvalidValue, glErr.Code)
	assert.Contains(t, err.Error(), "invalid value")

	// The flag pops, like the native sticky error.
	assert.NoError(t, graphics.CheckError(d, "glBufferData"))
}

func TestLostContextIsRecognizable(t *testing.T) {
	d := gltest.New()
	d.LoseContext()
	err := graphics.CheckError(d, "glDrawArrays")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrContextLost))

	d2 := gltest.New()
	d2.InjectError(graphics.OutOfMemory)
	err = graphics.CheckError(d2, "glTexImage2D")
	require.Error(t, err)
	assert.False(t, errors.Is(err, core.ErrContextLost))
}

func TestDriverErrorsSurfaceThroughOperations(t *testing.T) {
	d := gltest.New()
	b, err := graphics.NewBuffer[float32](d, graphics.ArrayBuffer)
	require.NoError(t, err)
	defer b.Destroy()

	d.InjectError(graphics.OutOfMemory)
	err = b.Upload([]float32{1, 2, 3}, graphics.StaticDraw)
	require.Error(t, err)
	var glErr *graphics.GLError
	assert.ErrorAs(t, err, &glErr)
}

func TestDebugMessagesReachTheLog(t *testing.T) {
	d := gltest.New()
	require.True(t, graphics.LogDebugMessages(d))
	assert.True(t, d.IsEnabled(graphics.CapDebugOutput))

	// The callback route must not panic on any severity.
	for _, severity := range []graphics.DebugSeverity{
		graphics.SeverityNotification,
		graphics.SeverityLow,
		graphics.SeverityMedium,
		graphics.SeverityHigh,
	} {
		d.Emit(graphics.DebugMessage{
			Source:   "api",
			Type:     "error",
			Severity: severity,
			Message:  "synthetic message",
		})
	}
}
