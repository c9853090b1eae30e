package core

// Tick runs the per-tick countdown work. It is the tick interrupt handler
// body and the sole mutator of the countdown besides Refresh. The whole body
// runs with interrupts masked, mirroring the MCU's no-nesting interrupt
// model: a bus access cannot observe the decrement separately from the
// expiration bookkeeping, and a refresh cannot slip in between an expiration
// and its escalation action.
//
// The countdown wraps 0 -> 255 after an expiration. That is expected: the
// expiration event is the decrement that produced zero, not the wrapped
// value, so a host that never refreshes sees one event every 256 ticks.
func (w *Watchdog) Tick() {
	critical(func() {
		w.countdown--
		if w.countdown != 0 {
			return
		}
		if w.expirations < expirationCeiling {
			w.expirations++
		}
		w.escalate(w.expirations)
	})
}
