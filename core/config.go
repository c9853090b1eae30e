package core

// CONTROL register bit positions. Fixed by the wire protocol; the host
// driver writes these verbatim.
const (
	CtrlEnableReset      = 1 << 0
	CtrlEnablePowerCycle = 1 << 1
	CtrlEnableAlert      = 1 << 2

	ctrlKnownMask = CtrlEnableReset | CtrlEnablePowerCycle | CtrlEnableAlert
)

// Config is the watchdog capability set. It is stored as named booleans so
// the escalation logic never tests raw masks, but unrecognized bits written
// by the host are preserved so a CONTROL read-back is always verbatim.
type Config struct {
	EnableReset      bool // pulse the reset line on second expiration
	EnablePowerCycle bool // pulse the power-cycle line on second expiration
	EnableAlert      bool // latch the alert line on first expiration

	reserved uint8 // bits outside the known mask, kept for read-back
}

// DefaultConfig is the power-on capability set: alert and power-cycle
// enabled, reset disabled.
func DefaultConfig() Config {
	return Config{EnablePowerCycle: true, EnableAlert: true}
}

// ConfigFromBits decodes a CONTROL register byte.
func ConfigFromBits(b uint8) Config {
	return Config{
		EnableReset:      b&CtrlEnableReset != 0,
		EnablePowerCycle: b&CtrlEnablePowerCycle != 0,
		EnableAlert:      b&CtrlEnableAlert != 0,
		reserved:         b &^ ctrlKnownMask,
	}
}

// Bits encodes the capability set back into its CONTROL register byte.
func (c Config) Bits() uint8 {
	b := c.reserved
	if c.EnableReset {
		b |= CtrlEnableReset
	}
	if c.EnablePowerCycle {
		b |= CtrlEnablePowerCycle
	}
	if c.EnableAlert {
		b |= CtrlEnableAlert
	}
	return b
}
