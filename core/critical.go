package core

// critical runs fn with interrupt delivery masked. It is the only
// synchronization primitive in the firmware: there is no scheduler to block
// against, so the tick interrupt and the bus interrupt are serialized by
// masking rather than by locks. Sections nest safely because the saved state
// is restored, not unconditionally re-enabled.
func critical(fn func()) {
	state := irqDisable()
	defer irqRestore(state)
	fn()
}
