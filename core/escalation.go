package core

// escalate translates an expiration event into output-line actions.
// Called from Tick with interrupts masked.
//
// The ladder: the first missed deadline latches the alert line, the second
// fires the recovery pulses. Reset and power-cycle are evaluated
// independently so supervisory hardware can use either or both. After any
// pulse fires the expiration count is cleared: the watchdog self-rearms on
// the assumption the pulse took effect. If neither recovery line is enabled
// the count keeps growing but nothing further happens; there is no higher
// severity to escalate to.
func (w *Watchdog) escalate(count uint8) {
	switch {
	case count == 1:
		if w.config.EnableAlert {
			w.alertLatched = true
			_ = w.gpio.SetLine(LineAlert, true)
		}
	case count >= 2:
		fired := false
		if w.config.EnableReset {
			w.pulse(LineReset)
			fired = true
		}
		if w.config.EnablePowerCycle {
			w.pulse(LinePowerCycle)
			fired = true
		}
		if fired {
			w.expirations = 0
		}
	}
}

// pulse asserts a line, holds it for PulseWidth and deasserts it. The
// deassert is best-effort: a power-cycle pulse may cut our own supply before
// it executes, which is the intended outcome, not a failure.
func (w *Watchdog) pulse(line Line) {
	_ = w.gpio.SetLine(line, true)
	w.delay(PulseWidth)
	_ = w.gpio.SetLine(line, false)
}
