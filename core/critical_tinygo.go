//go:build tinygo

package core

import "runtime/interrupt"

type irqState = interrupt.State

// irqDisable masks interrupt delivery and returns the previous state.
func irqDisable() irqState {
	return interrupt.Disable()
}

// irqRestore restores a previously saved interrupt state.
func irqRestore(state irqState) {
	interrupt.Restore(state)
}
