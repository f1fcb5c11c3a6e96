package gltest

import (
	"github.com/spaghettifunk/vitrail/engine/graphics"
)

type textureObject struct {
	target graphics.TextureTarget
	format graphics.PixelFormat
	width  int
	height int
	depth  int
	// Per-level pixel storage, level 0 filled by the upload calls and the
	// rest by GenerateMipmap.
	levels map[int][]byte
	params map[graphics.TexParam]int32
}

func (d *Driver) CreateTexture() uint32 {
	name := d.textureNames.acquire()
	d.textures[name] = &textureObject{
		levels: make(map[int][]byte),
		params: make(map[graphics.TexParam]int32),
	}
	return name
}

func (d *Driver) DeleteTexture(name uint32) {
	if !d.textureNames.inUse(name) {
		return
	}
	d.textureNames.release(name)
	delete(d.textures, name)
	for target, bound := range d.boundTextures {
		if bound == name {
			d.boundTextures[target] = 0
		}
	}
}

func (d *Driver) BindTexture(target graphics.TextureTarget, name uint32) {
	if name != 0 && !d.textureNames.inUse(name) {
		d.setError(graphics.InvalidOperation)
		return
	}
	d.boundTextures[target] = name
}

func (d *Driver) BoundTexture(target graphics.TextureTarget) uint32 {
	return d.boundTextures[target]
}

func (d *Driver) ActiveTexture(unit uint32) {
	if int(unit) >= textureUnits {
		d.setError(graphics.InvalidEnum)
		return
	}
	d.activeUnit = unit
}

func (d *Driver) MaxCombinedTextureUnits() int { return textureUnits }

func (d *Driver) targetTexture(target graphics.TextureTarget) *textureObject {
	name := d.boundTextures[target]
	if name == 0 {
		d.setError(graphics.InvalidOperation)
		return nil
	}
	return d.textures[name]
}

func (d *Driver) TexImage2D(target graphics.TextureTarget, level int, format graphics.PixelFormat, width, height int, data []byte) {
	d.texImage(target, level, format, width, height, 1, data)
}

func (d *Driver) TexImage2DMultisample(target graphics.TextureTarget, samples int, format graphics.PixelFormat, width, height int) {
	d.texImage(target, 0, format, width, height, 1, nil)
}

func (d *Driver) TexImage3D(target graphics.TextureTarget, level int, format graphics.PixelFormat, width, height, depth int, data []byte) {
	d.texImage(target, level, format, width, height, depth, data)
}

func (d *Driver) texImage(target graphics.TextureTarget, level int, format graphics.PixelFormat, width, height, depth int, data []byte) {
	t := d.targetTexture(target)
	if t == nil {
		return
	}
	size := width * height * depth * format.PixelSize()
	if data != nil && len(data) != size {
		d.setError(graphics.InvalidValue)
		return
	}
	store := make([]byte, size)
	copy(store, data)
	t.target = target
	t.format = format
	t.width, t.height, t.depth = width, height, depth
	t.levels = map[int][]byte{level: store}
}

func (d *Driver) TexSubImage2D(target graphics.TextureTarget, level, x, y, width, height int, format graphics.PixelFormat, data []byte) {
	t := d.targetTexture(target)
	if t == nil {
		return
	}
	store, ok := t.levels[level]
	if !ok || format != t.format {
		d.setError(graphics.InvalidOperation)
		return
	}
	levelWidth, levelHeight := levelExtent(t.width, level), levelExtent(t.height, level)
	if x < 0 || y < 0 || x+width > levelWidth || y+height > levelHeight {
		d.setError(graphics.InvalidValue)
		return
	}
	px := t.format.PixelSize()
	for row := 0; row < height; row++ {
		dst := ((y+row)*levelWidth + x) * px
		src := row * width * px
		copy(store[dst:dst+width*px], data[src:src+width*px])
	}
}

func (d *Driver) GetTexImage(target graphics.TextureTarget, level int, format graphics.PixelFormat, dst []byte) {
	t := d.targetTexture(target)
	if t == nil {
		return
	}
	store, ok := t.levels[level]
	if !ok || format != t.format {
		d.setError(graphics.InvalidOperation)
		return
	}
	copy(dst, store)
}

func (d *Driver) GenerateMipmap(target graphics.TextureTarget) {
	t := d.targetTexture(target)
	if t == nil {
		return
	}
	if _, ok := t.levels[0]; !ok {
		d.setError(graphics.InvalidOperation)
		return
	}
	px := t.format.PixelSize()
	for level := 1; ; level++ {
		width, height := levelExtent(t.width, level), levelExtent(t.height, level)
		depth := levelExtent(t.depth, level)
		t.levels[level] = make([]byte, width*height*depth*px)
		if width == 1 && height == 1 && depth == 1 {
			break
		}
	}
}

func (d *Driver) TexParameter(target graphics.TextureTarget, param graphics.TexParam, value int32) {
	t := d.targetTexture(target)
	if t == nil {
		return
	}
	t.params[param] = value
}

func (d *Driver) TexLevelSize(target graphics.TextureTarget, level int) (int, int) {
	t := d.targetTexture(target)
	if t == nil {
		return 0, 0
	}
	if _, ok := t.levels[level]; !ok {
		return 0, 0
	}
	return levelExtent(t.width, level), levelExtent(t.height, level)
}

// levelExtent halves an extent per level, clamping at 1 the way mip chains
// do.
func levelExtent(extent, level int) int {
	for ; level > 0 && extent > 1; level-- {
		extent /= 2
	}
	if extent < 1 {
		return 1
	}
	return extent
}

// TextureParam reports a texture's last-set parameter value, for tests.
func (d *Driver) TextureParam(name uint32, param graphics.TexParam) (int32, bool) {
	t, ok := d.textures[name]
	if !ok {
		return 0, false
	}
	v, ok := t.params[param]
	return v, ok
}

// ActiveUnit reports the currently active texture unit, for tests.
func (d *Driver) ActiveUnit() uint32 { return d.activeUnit }
