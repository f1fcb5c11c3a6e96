package graphics

import "github.com/spaghettifunk/vitrail/engine/core"

// Binding is the guard produced by binding a resource. While it is open the
// resource is current for its target; Close restores whatever was bound
// before. Bindings follow stack discipline: close a guard before binding an
// unrelated object to the same target, or the restore will clobber it.
type Binding struct {
	d      Driver
	target Target
	name   uint32
	// Previous occupant, 0 when the target was empty.
	previous uint32
	closed   bool
}

// Bind makes the identified object current for its target and returns the
// guard that undoes it.
func Bind(d Driver, id ID) *Binding {
	return bindName(d, id.target, id.name)
}

// bindName is the raw variant; it also serves the zero-named backbuffer,
// which is the one object allowed to occupy a target with name 0.
func bindName(d Driver, target Target, name uint32) *Binding {
	previous := target.boundName(d)
	core.LogDebug("bind %s %d (previous %d)", target, name, previous)
	target.bindName(d, name)
	return &Binding{d: d, target: target, name: name, previous: previous}
}

// Close restores the previously bound object (or the zero sentinel). It is
// idempotent; only the first call touches the driver. Under the fastbind
// build tag the restore is skipped entirely.
func (b *Binding) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if !restoreOnClose {
		return nil
	}
	core.LogDebug("unbind %s %d (restore %d)", b.target, b.name, b.previous)
	b.target.bindName(b.d, b.previous)
	return nil
}

// Bound runs fn with the identified object bound, restoring the previous
// binding on every exit path.
func Bound(d Driver, id ID, fn func() error) error {
	b := Bind(d, id)
	defer b.Close()
	return fn()
}

func boundName(d Driver, target Target, name uint32, fn func() error) error {
	b := bindName(d, target, name)
	defer b.Close()
	return fn()
}
