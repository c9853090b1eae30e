//go:build !tinygo

package core

// irqState is a placeholder for saved interrupt state on regular Go.
type irqState uintptr

// irqDisable is a no-op on regular Go so the core can be tested with go test.
func irqDisable() irqState {
	return 0
}

// irqRestore is a no-op on regular Go.
func irqRestore(state irqState) {
}
