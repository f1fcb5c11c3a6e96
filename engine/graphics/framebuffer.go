package graphics

import (
	"fmt"

	"github.com/spaghettifunk/vitrail/engine/core"
)

type attachmentKind uint8

const (
	attachColor attachmentKind = iota
	attachDepth
	attachStencil
	attachDepthStencil
)

// Attachment is one slot of a framebuffer: a numbered color slot or one of
// the depth/stencil slots.
type Attachment struct {
	kind  attachmentKind
	index uint32
}

// ColorAttachment addresses the numbered color slot.
func ColorAttachment(index uint32) Attachment {
	return Attachment{kind: attachColor, index: index}
}

var (
	DepthAttachment        = Attachment{kind: attachDepth}
	StencilAttachment      = Attachment{kind: attachStencil}
	DepthStencilAttachment = Attachment{kind: attachDepthStencil}
)

// IsColor reports whether the attachment is a color slot.
func (a Attachment) IsColor() bool { return a.kind == attachColor }

// ColorIndex is the slot number of a color attachment.
func (a Attachment) ColorIndex() uint32 { return a.index }

func (a Attachment) String() string {
	switch a.kind {
	case attachColor:
		return fmt.Sprintf("color attachment %d", a.index)
	case attachDepth:
		return "depth attachment"
	case attachStencil:
		return "stencil attachment"
	case attachDepthStencil:
		return "depth-stencil attachment"
	}
	return "invalid attachment"
}

// FramebufferStatus is the driver's completeness verdict, queried on demand
// rather than cached: it depends on attachment state that can change at any
// time.
type FramebufferStatus uint32

const (
	FramebufferComplete FramebufferStatus = iota
	FramebufferUndefined
	FramebufferIncompleteAttachment
	FramebufferIncompleteMissingAttachment
	FramebufferIncompleteDrawBuffer
	FramebufferIncompleteReadBuffer
	FramebufferUnsupported
	FramebufferIncompleteMultisample
	FramebufferIncompleteLayerTargets
)

func (s FramebufferStatus) String() string {
	switch s {
	case FramebufferComplete:
		return "complete"
	case FramebufferUndefined:
		return "undefined"
	case FramebufferIncompleteAttachment:
		return "incomplete attachment"
	case FramebufferIncompleteMissingAttachment:
		return "no attachments"
	case FramebufferIncompleteDrawBuffer:
		return "incomplete draw buffer"
	case FramebufferIncompleteReadBuffer:
		return "incomplete read buffer"
	case FramebufferUnsupported:
		return "unsupported attachment combination"
	case FramebufferIncompleteMultisample:
		return "inconsistent sample counts"
	case FramebufferIncompleteLayerTargets:
		return "inconsistent layer targets"
	}
	return "unknown status"
}

// Framebuffer is a render target. The backbuffer is the one special case:
// it carries the driver's reserved name 0, cannot take attachments and is
// never deleted.
type Framebuffer struct {
	d          Driver
	id         ID
	backbuffer bool
}

// NewFramebuffer creates an empty framebuffer with no attachments.
func NewFramebuffer(d Driver) (*Framebuffer, error) {
	id := mustID(d.CreateFramebuffer(), FramebufferTarget)
	core.LogDebug("create %s", id)
	return &Framebuffer{d: d, id: id}, nil
}

// Backbuffer returns the window-system-provided framebuffer.
func Backbuffer(d Driver) *Framebuffer {
	return &Framebuffer{d: d, backbuffer: true}
}

func (f *Framebuffer) IsBackbuffer() bool { return f.backbuffer }

// ID returns the framebuffer's identifier. The backbuffer has none; the
// second return is false for it.
func (f *Framebuffer) ID() (ID, bool) {
	if f.backbuffer {
		return ID{}, false
	}
	return f.id, true
}

func (f *Framebuffer) String() string {
	if f.backbuffer {
		return "backbuffer"
	}
	return f.id.String()
}

// bound runs fn with the framebuffer bound, going through the raw name path
// so the backbuffer's reserved 0 works like any other binding.
func (f *Framebuffer) bound(fn func() error) error {
	name := uint32(0)
	if !f.backbuffer {
		name = f.id.Name()
	}
	return boundName(f.d, FramebufferTarget, name, fn)
}

// AttachTexture attaches a mip level of a flat (non-array, non-3D) texture.
// The slot and the texture's format must agree: depth formats go to depth
// slots, color formats to color slots.
func (f *Framebuffer) AttachTexture(att Attachment, t *Texture, level int) error {
	if err := f.checkAttachment(att, t); err != nil {
		return err
	}
	if !t.Dimension().Flat() {
		return fmt.Errorf("graphics: %s is layered, attach a single layer instead", t.ID())
	}
	return f.bound(func() error {
		return errGuard(f.d, "glFramebufferTexture", func() {
			if t.Dimension() == D2 {
				f.d.FramebufferTexture2D(att, t.Target(), t.ID().Name(), level)
			} else {
				f.d.FramebufferTexture(att, t.ID().Name(), level)
			}
		})
	})
}

// AttachTextureLayer attaches one layer of an array or 3D texture.
func (f *Framebuffer) AttachTextureLayer(att Attachment, t *Texture, level, layer int) error {
	if err := f.checkAttachment(att, t); err != nil {
		return err
	}
	if t.Dimension().Flat() && t.Dimension() != D3 {
		return fmt.Errorf("graphics: %s has no layers", t.ID())
	}
	_, _, depth := t.Size()
	if layer < 0 || layer >= depth {
		return fmt.Errorf("graphics: layer %d out of range of %s with depth %d", layer, t.ID(), depth)
	}
	return f.bound(func() error {
		return errGuard(f.d, "glFramebufferTexture3D", func() {
			f.d.FramebufferTexture3D(att, t.ID().Name(), level, layer)
		})
	})
}

// AttachColor attaches mip level 0 of a color texture to the numbered slot.
func (f *Framebuffer) AttachColor(index uint32, t *Texture) error {
	return f.AttachTexture(ColorAttachment(index), t, 0)
}

// AttachDepth attaches mip level 0 of a depth texture.
func (f *Framebuffer) AttachDepth(t *Texture) error {
	return f.AttachTexture(DepthAttachment, t, 0)
}

// AttachDepthStencil attaches mip level 0 of a combined depth-stencil
// texture.
func (f *Framebuffer) AttachDepthStencil(t *Texture) error {
	return f.AttachTexture(DepthStencilAttachment, t, 0)
}

func (f *Framebuffer) checkAttachment(att Attachment, t *Texture) error {
	if f.backbuffer {
		return fmt.Errorf("graphics: the backbuffer cannot take attachments")
	}
	switch att.kind {
	case attachColor:
		if t.Format().IsDepth() {
			return fmt.Errorf("graphics: %s format %s cannot fill a color slot", t.ID(), t.Format())
		}
	case attachDepth:
		if !t.Format().IsDepth() {
			return fmt.Errorf("graphics: %s format %s cannot fill the depth slot", t.ID(), t.Format())
		}
	case attachStencil, attachDepthStencil:
		if !t.Format().HasStencil() {
			return fmt.Errorf("graphics: %s format %s carries no stencil bits", t.ID(), t.Format())
		}
	}
	return nil
}

// SetDrawBuffers routes fragment shader outputs to color slots, by output
// index. Only color attachments may appear.
func (f *Framebuffer) SetDrawBuffers(attachments []Attachment) error {
	if f.backbuffer {
		return fmt.Errorf("graphics: the backbuffer's draw buffers are fixed")
	}
	for _, a := range attachments {
		if !a.IsColor() {
			return fmt.Errorf("graphics: %s cannot be a draw buffer", a)
		}
	}
	return f.bound(func() error {
		return errGuard(f.d, "glDrawBuffers", func() {
			f.d.DrawBuffers(attachments)
		})
	})
}

// Status asks the driver for the current completeness verdict.
func (f *Framebuffer) Status() FramebufferStatus {
	var status FramebufferStatus
	f.bound(func() error { //nolint:errcheck
		status = f.d.CheckFramebufferStatus()
		return nil
	})
	return status
}

// AssertComplete turns an incomplete status into an error.
func (f *Framebuffer) AssertComplete() error {
	if status := f.Status(); status != FramebufferComplete {
		return fmt.Errorf("graphics: %s is not complete: %s", f, status)
	}
	return nil
}

// Clear clears the selected backing stores using the clear values set
// through the pipeline state calls.
func (f *Framebuffer) Clear(mask ClearMask) error {
	return f.bound(func() error {
		return errGuard(f.d, "glClear", func() {
			f.d.Clear(mask)
		})
	})
}

// ReadPixel reads one pixel from the framebuffer at the given format.
func (f *Framebuffer) ReadPixel(x, y int, format PixelFormat) ([]byte, error) {
	data := make([]byte, format.PixelSize())
	err := f.bound(func() error {
		return errGuard(f.d, "glReadPixels", func() {
			f.d.ReadPixels(x, y, 1, 1, format, data)
		})
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Draw issues a non-indexed draw into this framebuffer: the program, the
// vertex array and the framebuffer are bound for the duration of the call
// and restored afterwards.
func (f *Framebuffer) Draw(p *Program, va *VertexArray, mode DrawMode, first, count int) error {
	return f.bound(func() error {
		return Bound(f.d, p.id, func() error {
			return Bound(f.d, va.id, func() error {
				return errGuard(f.d, "glDrawArrays", func() {
					f.d.DrawArrays(mode, first, count)
				})
			})
		})
	})
}

// DrawElements issues an indexed draw. The vertex array must have an
// element buffer attached; its index type was recorded at attach time.
func (f *Framebuffer) DrawElements(p *Program, va *VertexArray, mode DrawMode, count, offset int) error {
	kind, ok := va.IndexKind()
	if !ok {
		return fmt.Errorf("graphics: %s has no element buffer attached", va.id)
	}
	return f.bound(func() error {
		return Bound(f.d, p.id, func() error {
			return Bound(f.d, va.id, func() error {
				return errGuard(f.d, "glDrawElements", func() {
					f.d.DrawElements(mode, count, kind, offset*kind.Size())
				})
			})
		})
	})
}

// Destroy deletes the driver object. Deleting the backbuffer is a no-op.
func (f *Framebuffer) Destroy() {
	if f.backbuffer {
		return
	}
	core.LogDebug("delete %s", f.id)
	f.d.DeleteFramebuffer(f.id.Name())
}
