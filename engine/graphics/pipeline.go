package graphics

// BlendFactor scales one side of the blend equation.
type BlendFactor uint32

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
)

// BlendEquation combines the scaled source and destination values.
type BlendEquation uint32

const (
	BlendAdd BlendEquation = iota
	BlendSubtract
	BlendReverseSubtract
	BlendMin
	BlendMax
)

// DepthFunction decides when an incoming fragment passes the depth test.
type DepthFunction uint32

const (
	DepthNever DepthFunction = iota
	DepthLess
	DepthEqual
	DepthLessOrEqual
	DepthGreater
	DepthNotEqual
	DepthGreaterOrEqual
	DepthAlways
)

// Pipeline state is global per context, not per resource, so it is exposed
// as plain functions over the driver rather than methods on an object.

// SetViewport maps clip space onto the given window rectangle.
func SetViewport(d Driver, x, y, width, height int32) {
	d.Viewport(x, y, width, height)
}

// GetViewport returns the current viewport as x, y, width, height.
func GetViewport(d Driver) [4]int32 {
	return d.GetViewport()
}

// SetClearColor sets the value written by color clears.
func SetClearColor(d Driver, r, g, b, a float32) {
	d.ClearColor(r, g, b, a)
}

// SetClearDepth sets the value written by depth clears.
func SetClearDepth(d Driver, depth float64) {
	d.ClearDepth(depth)
}

// Enable switches a capability on.
func Enable(d Driver, cap Capability) {
	d.SetCapability(cap, true)
}

// Disable switches a capability off.
func Disable(d Driver, cap Capability) {
	d.SetCapability(cap, false)
}

// SetBlendFunc sets the source and destination blend factors. Takes effect
// once CapBlend is enabled.
func SetBlendFunc(d Driver, src, dst BlendFactor) {
	d.BlendFunc(src, dst)
}

// SetBlendEquation sets how the scaled terms combine.
func SetBlendEquation(d Driver, eq BlendEquation) {
	d.BlendEquation(eq)
}

// SetDepthFunc sets the depth test predicate. Takes effect once CapDepthTest
// is enabled.
func SetDepthFunc(d Driver, fn DepthFunction) {
	d.DepthFunc(fn)
}

// SetScissor restricts draws and clears to the given rectangle. Takes
// effect once CapScissorTest is enabled.
func SetScissor(d Driver, x, y, width, height int32) {
	d.Scissor(x, y, width, height)
}
