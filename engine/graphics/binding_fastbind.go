//go:build fastbind

package graphics

// fastbind trades binding-state correctness between calls for fewer driver
// round trips. Only valid when the caller rebinds before every operation.
const restoreOnClose = false
