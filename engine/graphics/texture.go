package graphics

import (
	"fmt"
	"math"

	"github.com/spaghettifunk/vitrail/engine/core"
)

// Dimension is the shape class of a texture.
type Dimension uint32

const (
	D1 Dimension = iota
	D1Array
	D2
	D2Array
	D3
)

func (d Dimension) String() string {
	switch d {
	case D1:
		return "1D"
	case D1Array:
		return "1D array"
	case D2:
		return "2D"
	case D2Array:
		return "2D array"
	case D3:
		return "3D"
	}
	return "invalid dimension"
}

// Flat reports whether the dimension is plain 1D, 2D or 3D, the only
// shapes the framebuffer depth slot accepts.
func (d Dimension) Flat() bool {
	return d == D1 || d == D2 || d == D3
}

// TextureTarget is the binding point a texture occupies: dimension crossed
// with multisampling. Each combination is a distinct slot in the driver.
type TextureTarget struct {
	Dim     Dimension
	Samples int
}

func (t TextureTarget) Multisample() bool { return t.Samples > 1 }

func (t TextureTarget) bindName(d Driver, name uint32) { d.BindTexture(t, name) }
func (t TextureTarget) boundName(d Driver) uint32      { return d.BoundTexture(t) }

func (t TextureTarget) String() string {
	if t.Multisample() {
		return fmt.Sprintf("texture %s x%d", t.Dim, t.Samples)
	}
	return fmt.Sprintf("texture %s", t.Dim)
}

// PixelFormat fixes a texture's channel layout and subpixel type. It is a
// closed tag: upload and download calls derive the native format/type pair
// from it, so a mismatch between requested and actual layout cannot happen
// per call.
type PixelFormat uint8

const (
	R8 PixelFormat = iota
	R8I
	R16
	R16I
	R16UI
	R32I
	R32UI
	R32F
	RG8
	RG32F
	RGB8
	RGB32F
	RGBA8
	RGBA8I
	RGBA16
	RGBA32F
	Depth32F
	Depth24Stencil8
	Depth32FStencil8
)

type formatInfo struct {
	name     string
	channels int
	subpixel ScalarKind
	depth    bool
	stencil  bool
}

var formatTable = map[PixelFormat]formatInfo{
	R8:               {"R8", 1, UnsignedByte, false, false},
	R8I:              {"R8I", 1, Byte, false, false},
	R16:              {"R16", 1, UnsignedShort, false, false},
	R16I:             {"R16I", 1, Short, false, false},
	R16UI:            {"R16UI", 1, UnsignedShort, false, false},
	R32I:             {"R32I", 1, Int, false, false},
	R32UI:            {"R32UI", 1, UnsignedInt, false, false},
	R32F:             {"R32F", 1, Float, false, false},
	RG8:              {"RG8", 2, UnsignedByte, false, false},
	RG32F:            {"RG32F", 2, Float, false, false},
	RGB8:             {"RGB8", 3, UnsignedByte, false, false},
	RGB32F:           {"RGB32F", 3, Float, false, false},
	RGBA8:            {"RGBA8", 4, UnsignedByte, false, false},
	RGBA8I:           {"RGBA8I", 4, Byte, false, false},
	RGBA16:           {"RGBA16", 4, UnsignedShort, false, false},
	RGBA32F:          {"RGBA32F", 4, Float, false, false},
	Depth32F:         {"Depth32F", 1, Float, true, false},
	Depth24Stencil8:  {"Depth24Stencil8", 1, UnsignedInt, true, true},
	Depth32FStencil8: {"Depth32FStencil8", 1, Float, true, true},
}

// Channels is the number of color channels per pixel.
func (f PixelFormat) Channels() int { return formatTable[f].channels }

// Subpixel is the native type of one channel value.
func (f PixelFormat) Subpixel() ScalarKind { return formatTable[f].subpixel }

// PixelSize is the byte size of one whole pixel.
func (f PixelFormat) PixelSize() int {
	info := formatTable[f]
	return info.channels * info.subpixel.Size()
}

// IsDepth reports whether the format is attachable to the depth slot.
func (f PixelFormat) IsDepth() bool { return formatTable[f].depth }

// HasStencil reports whether the format carries stencil bits.
func (f PixelFormat) HasStencil() bool { return formatTable[f].stencil }

func (f PixelFormat) String() string { return formatTable[f].name }

// TextureWrap selects the sampling behavior outside [0,1] per axis.
type TextureWrap uint32

const (
	Repeat TextureWrap = iota
	MirroredRepeat
	ClampToEdge
	ClampToBorder
)

// SampleMode selects between nearest and linear filtering.
type SampleMode uint32

const (
	Nearest SampleMode = iota
	Linear
)

// TextureFilter is the resolved filter value handed to the driver: the
// mip/texel combinations each map to a distinct driver constant.
type TextureFilter uint32

const (
	FilterNearest TextureFilter = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapNearest
	FilterLinearMipmapLinear
)

// Texture owns a driver-side image allocation with fixed extents, a sample
// count and a dimensionality. The pixel format is fixed at construction.
type Texture struct {
	d          Driver
	id         ID
	target     TextureTarget
	format     PixelFormat
	width      int
	height     int
	depth      int
	hasMipmaps bool
}

// NewTexture allocates a texture object with the given extents. All extents
// must be at least 1.
func NewTexture(d Driver, format PixelFormat, width, height, depth int, dim Dimension) (*Texture, error) {
	return NewMultisampleTexture(d, format, width, height, depth, dim, 1)
}

// NewMultisampleTexture is NewTexture with an explicit sample count.
func NewMultisampleTexture(d Driver, format PixelFormat, width, height, depth int, dim Dimension, samples int) (*Texture, error) {
	if width < 1 || height < 1 || depth < 1 {
		return nil, fmt.Errorf("graphics: texture extents %dx%dx%d must all be positive", width, height, depth)
	}
	if samples < 1 {
		return nil, fmt.Errorf("graphics: sample count %d must be positive", samples)
	}
	target := TextureTarget{Dim: dim, Samples: samples}
	id := mustID(d.CreateTexture(), target)
	core.LogDebug("create %s (%s, %dx%dx%d)", id, format, width, height, depth)
	return &Texture{
		d:      d,
		id:     id,
		target: target,
		format: format,
		width:  width,
		height: height,
		depth:  depth,
	}, nil
}

func (t *Texture) ID() ID                { return t.id }
func (t *Texture) Target() TextureTarget { return t.target }
func (t *Texture) Format() PixelFormat   { return t.format }
func (t *Texture) Dimension() Dimension  { return t.target.Dim }
func (t *Texture) Samples() int          { return t.target.Samples }

// Size returns width, height and depth.
func (t *Texture) Size() (int, int, int) { return t.width, t.height, t.depth }

// Reserve allocates backing memory without uploading contents. The previous
// contents, if any, are discarded.
func (t *Texture) Reserve() error {
	return t.allocate(nil)
}

func (t *Texture) allocate(data []byte) error {
	return Bound(t.d, t.id, func() error {
		switch {
		case t.target.Dim == D2 && !t.target.Multisample():
			return errGuard(t.d, "glTexImage2D", func() {
				t.d.TexImage2D(t.target, 0, t.format, t.width, t.height, data)
			})
		case t.target.Dim == D2 && t.target.Multisample():
			return errGuard(t.d, "glTexImage2DMultisample", func() {
				t.d.TexImage2DMultisample(t.target, t.target.Samples, t.format, t.width, t.height)
			})
		case t.target.Dim == D3 || t.target.Dim == D2Array:
			return errGuard(t.d, "glTexImage3D", func() {
				t.d.TexImage3D(t.target, 0, t.format, t.width, t.height, t.depth, data)
			})
		case t.target.Dim == D1:
			return errGuard(t.d, "glTexImage2D", func() {
				t.d.TexImage2D(t.target, 0, t.format, t.width, 1, data)
			})
		default:
			return fmt.Errorf("graphics: allocation for %s is not supported", t.target)
		}
	})
}

// SetData uploads the full image. The data length must exactly match
// width x height x depth x pixel size.
func (t *Texture) SetData(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("graphics: cannot upload empty data to %s", t.id)
	}
	want := t.width * t.height * t.depth * t.format.PixelSize()
	if len(data) != want {
		return fmt.Errorf("graphics: %d bytes do not match %s extents %dx%dx%d (%s, want %d)",
			len(data), t.id, t.width, t.height, t.depth, t.format, want)
	}
	if err := t.allocate(data); err != nil {
		return err
	}
	return nil
}

// SetSubData2D updates a sub-rectangle of the given mip level.
func (t *Texture) SetSubData2D(level, x, y, width, height int, data []byte) error {
	if level >= t.NumMipmaps() {
		return fmt.Errorf("graphics: level %d out of range of %s with %d mipmaps", level, t.id, t.NumMipmaps())
	}
	if x < 0 || y < 0 || width < 0 || height < 0 || x+width > t.width || y+height > t.height {
		return fmt.Errorf("graphics: rectangle %d,%d %dx%d exceeds %s bounds %dx%d",
			x, y, width, height, t.id, t.width, t.height)
	}
	want := width * height * t.format.PixelSize()
	if len(data) != want {
		return fmt.Errorf("graphics: %d bytes do not fill %dx%d rectangle (%s, want %d)",
			len(data), width, height, t.format, want)
	}
	return Bound(t.d, t.id, func() error {
		return errGuard(t.d, "glTexSubImage2D", func() {
			t.d.TexSubImage2D(t.target, level, x, y, width, height, t.format, data)
		})
	})
}

// Download reads back the full contents of one mip level.
func (t *Texture) Download(level int) ([]byte, error) {
	if level >= t.NumMipmaps() {
		return nil, fmt.Errorf("graphics: level %d out of range of %s with %d mipmaps", level, t.id, t.NumMipmaps())
	}
	var data []byte
	err := Bound(t.d, t.id, func() error {
		width, height, err := t.MipmapSize(level)
		if err != nil {
			return err
		}
		data = make([]byte, width*height*t.depth*t.format.PixelSize())
		return errGuard(t.d, "glGetTexImage", func() {
			t.d.GetTexImage(t.target, level, t.format, data)
		})
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ReadPixel reads one pixel of the currently attached read target at the
// texture's format.
func (t *Texture) ReadPixel(x, y int) ([]byte, error) {
	data := make([]byte, t.format.PixelSize())
	err := Bound(t.d, t.id, func() error {
		return errGuard(t.d, "glReadPixels", func() {
			t.d.ReadPixels(x, y, 1, 1, t.format, data)
		})
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// GenerateMipmaps computes the full mip chain. Afterwards NumMipmaps
// reflects 1 + floor(log2(max extent)).
func (t *Texture) GenerateMipmaps() error {
	err := Bound(t.d, t.id, func() error {
		return errGuard(t.d, "glGenerateMipmap", func() {
			t.d.GenerateMipmap(t.target)
		})
	})
	if err != nil {
		return err
	}
	t.hasMipmaps = true
	return nil
}

// NumMipmaps is the number of levels addressable right now: 1 until
// mipmaps have been generated.
func (t *Texture) NumMipmaps() int {
	if !t.hasMipmaps {
		return 1
	}
	extent := t.width
	if t.height > extent {
		extent = t.height
	}
	if t.depth > extent {
		extent = t.depth
	}
	return 1 + int(math.Floor(math.Log2(float64(extent))))
}

// MipmapSize queries the driver for the extents of one level.
func (t *Texture) MipmapSize(level int) (int, int, error) {
	if level >= t.NumMipmaps() {
		return 0, 0, fmt.Errorf("graphics: level %d out of range of %s with %d mipmaps", level, t.id, t.NumMipmaps())
	}
	var width, height int
	err := Bound(t.d, t.id, func() error {
		return errGuard(t.d, "glGetTexLevelParameteriv", func() {
			width, height = t.d.TexLevelSize(t.target, level)
		})
	})
	if err != nil {
		return 0, 0, err
	}
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("graphics: %s reports zero size at level %d", t.id, level)
	}
	return width, height, nil
}

// ClearResize reallocates the texture at new extents. Prior contents and
// mipmaps are invalidated.
func (t *Texture) ClearResize(width, height, depth int) error {
	if width < 1 || height < 1 || depth < 1 {
		return fmt.Errorf("graphics: texture extents %dx%dx%d must all be positive", width, height, depth)
	}
	t.width, t.height, t.depth = width, height, depth
	t.hasMipmaps = false
	if err := t.Reserve(); err != nil {
		return fmt.Errorf("reserve after resize of %s: %w", t.id, err)
	}
	return nil
}

// WrapS sets the wrap mode along the first axis.
func (t *Texture) WrapS(wrap TextureWrap) error { return t.parameter(ParamWrapS, int32(wrap)) }

// WrapT sets the wrap mode along the second axis.
func (t *Texture) WrapT(wrap TextureWrap) error { return t.parameter(ParamWrapT, int32(wrap)) }

// WrapR sets the wrap mode along the third axis.
func (t *Texture) WrapR(wrap TextureWrap) error { return t.parameter(ParamWrapR, int32(wrap)) }

// FilterMin sets minification filtering without mipmap interpolation.
func (t *Texture) FilterMin(mode SampleMode) error {
	return t.parameter(ParamMinFilter, int32(plainFilter(mode)))
}

// FilterMinMipmap sets minification filtering across mip levels. The mip
// and texel modes combine into one of four driver constants.
func (t *Texture) FilterMinMipmap(mipmap, texel SampleMode) error {
	var mode TextureFilter
	switch {
	case mipmap == Nearest && texel == Nearest:
		mode = FilterNearestMipmapNearest
	case mipmap == Nearest && texel == Linear:
		mode = FilterNearestMipmapLinear
	case mipmap == Linear && texel == Nearest:
		mode = FilterLinearMipmapNearest
	default:
		mode = FilterLinearMipmapLinear
	}
	return t.parameter(ParamMinFilter, int32(mode))
}

// FilterMag sets magnification filtering.
func (t *Texture) FilterMag(mode SampleMode) error {
	return t.parameter(ParamMagFilter, int32(plainFilter(mode)))
}

func plainFilter(mode SampleMode) TextureFilter {
	if mode == Nearest {
		return FilterNearest
	}
	return FilterLinear
}

func (t *Texture) parameter(param TexParam, value int32) error {
	return Bound(t.d, t.id, func() error {
		return errGuard(t.d, "glTexParameteri", func() {
			t.d.TexParameter(t.target, param, value)
		})
	})
}

// TextureUnit is the sampler uniform value produced by binding a texture to
// a numbered unit.
type TextureUnit uint32

func (u TextureUnit) writeUniform(d Driver, location int32) {
	d.UniformInts(location, 1, []int32{int32(u)})
}

// Unit activates the numbered texture unit and binds the texture to it,
// returning the uniform value that selects it from a shader sampler.
func (t *Texture) Unit(unit uint32) (TextureUnit, error) {
	if int(unit) >= t.d.MaxCombinedTextureUnits() {
		return 0, fmt.Errorf("graphics: texture unit %d above the supported maximum of %d",
			unit, t.d.MaxCombinedTextureUnits())
	}
	t.d.ActiveTexture(unit)
	t.target.bindName(t.d, t.id.Name())
	return TextureUnit(unit), nil
}

// Destroy deletes the driver object.
func (t *Texture) Destroy() {
	core.LogDebug("delete %s", t.id)
	t.d.DeleteTexture(t.id.Name())
}
