package gltest

// nameAllocator hands out driver object names for one object class. Slot i
// holds name i+1 so that 0 stays free to mean "nothing bound", matching the
// native drivers. Released names are reused lowest-first.
type nameAllocator struct {
	live []bool
}

func (a *nameAllocator) acquire() uint32 {
	for i := range a.live {
		if !a.live[i] {
			a.live[i] = true
			return uint32(i) + 1
		}
	}
	a.live = append(a.live, true)
	return uint32(len(a.live))
}

func (a *nameAllocator) release(name uint32) {
	if name == 0 || int(name) > len(a.live) {
		return
	}
	a.live[name-1] = false
}

func (a *nameAllocator) inUse(name uint32) bool {
	return name != 0 && int(name) <= len(a.live) && a.live[name-1]
}

// count reports how many names are currently live, for leak assertions.
func (a *nameAllocator) count() int {
	n := 0
	for _, l := range a.live {
		if l {
			n++
		}
	}
	return n
}
