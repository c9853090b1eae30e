// Two-stage watchdog core. A periodic tick interrupt decrements a countdown;
// the first decrement-to-zero latches the alert line, the second pulses the
// reset and/or power-cycle lines. A host write to the TIMER register rearms
// everything. The core is hardware-independent: bus framing and pin control
// are delegated to the target through the event entry points and GPIODriver.
package core

import (
	"errors"
	"time"
)

const (
	// TickPeriod is the fixed countdown granularity. With the power-on
	// reload of 255 the first stage trips after roughly 64 seconds,
	// matching the host driver's WATCHDOG_TIMEOUT.
	TickPeriod = 250 * time.Millisecond

	// MaxTimeoutTicks is the longest programmable first-stage timeout.
	MaxTimeoutTicks = 256

	// PulseWidth is how long the reset and power-cycle lines are held
	// asserted, mimicking a momentary button press. The busy-wait runs in
	// tick-handler context with interrupts masked, so ticks and bus
	// traffic arriving inside this window are deferred until the pulse
	// completes. They are not lost.
	PulseWidth = 50 * time.Millisecond

	// PowerOnCountdown is the countdown value after reset.
	PowerOnCountdown = 0xFF
)

// expirationCeiling keeps the expiration counter from wrapping back through
// the alert stage when no escalation action is enabled.
const expirationCeiling = 0xFF

// DelayFunc busy-waits for at least d. Injected by the target so the pulse
// hold works with interrupts masked; tests substitute a recorder.
type DelayFunc func(d time.Duration)

// Watchdog owns all cross-interrupt state. The tick entry point and the bus
// entry points may preempt each other on hardware, so every multi-step
// access to the fields below goes through critical().
type Watchdog struct {
	gpio  GPIODriver
	delay DelayFunc

	// Shared between the tick interrupt and the bus interrupt.
	countdown    uint8
	expirations  uint8
	config       Config
	alertLatched bool

	// Bus transaction state, touched only from the bus interrupt.
	regPointer uint8
	addressed  bool
	rxCount    uint8
}

// New builds a watchdog with power-on defaults and configures its three
// output lines deasserted.
func New(gpio GPIODriver, delay DelayFunc) (*Watchdog, error) {
	if gpio == nil {
		return nil, errors.New("watchdog: nil GPIO driver")
	}
	if delay == nil {
		return nil, errors.New("watchdog: nil delay function")
	}

	w := &Watchdog{
		gpio:      gpio,
		delay:     delay,
		countdown: PowerOnCountdown,
		config:    DefaultConfig(),
	}

	for _, line := range []Line{LineAlert, LineReset, LinePowerCycle} {
		if err := gpio.ConfigureOutput(line); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Refresh is the pet operation: reload the countdown, drop back to NORMAL
// and clear the alert line. Called from the bus interrupt on a TIMER write,
// and idempotent under repetition.
func (w *Watchdog) Refresh(value uint8) {
	critical(func() {
		w.countdown = value
		w.expirations = 0
		w.alertLatched = false
		_ = w.gpio.SetLine(LineAlert, false)
	})
}

// SetConfig replaces the capability set wholesale.
func (w *Watchdog) SetConfig(c Config) {
	critical(func() {
		w.config = c
	})
}

// Countdown returns the raw countdown value.
func (w *Watchdog) Countdown() uint8 {
	var v uint8
	critical(func() { v = w.countdown })
	return v
}

// Expirations returns the current expiration count.
func (w *Watchdog) Expirations() uint8 {
	var v uint8
	critical(func() { v = w.expirations })
	return v
}

// Config returns the current capability set.
func (w *Watchdog) Config() Config {
	var c Config
	critical(func() { c = w.config })
	return c
}

// statusByte composes the STATUS register: alert latch in bit 0, expiration
// count saturated into the high nibble. Caller must hold the critical
// section.
func (w *Watchdog) statusByte() uint8 {
	var b uint8
	if w.alertLatched {
		b |= StatusAlertLatched
	}
	count := w.expirations
	if count > statusCountMax {
		count = statusCountMax
	}
	b |= count << statusCountShift
	return b
}
