//go:build !fastbind

package graphics

// Guards restore the previous binding when closed. Build with -tags fastbind
// to skip the restore calls when the caller guarantees rebind discipline.
const restoreOnClose = true
