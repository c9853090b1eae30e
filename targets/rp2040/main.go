//go:build rp2040

package main

import (
	"machine"
	"time"

	"github.com/bkuschak/attiny-watchdog/core"
)

// Board pin assignment. The bus pair is owned by the I2C peripheral; the
// three output lines are driven by the core's decisions.
const (
	pinSDA        = machine.GP0
	pinSCL        = machine.GP1
	pinAlert      = machine.GP2
	pinResetOut   = machine.GP3
	pinPowerCycle = machine.GP4
)

// mcuWatchdogMillis guards our own firmware loop with the RP2040's hardware
// watchdog. It must comfortably exceed TickPeriod plus two PulseWidth holds,
// since ticks are deferred while a recovery pulse is in flight.
const mcuWatchdogMillis = 2000

func main() {
	// Disable the hardware watchdog on boot to clear any state persisting
	// across resets.
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	wd, err := core.New(newPinDriver(), busyWait)
	if err != nil {
		// No diagnostics channel on this board; hold everything quiet.
		select {}
	}

	// Bus slave: the hardware peripheral owns start/stop/ack framing and
	// hands us byte-level events.
	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		SDA:  pinSDA,
		SCL:  pinSCL,
		Mode: machine.I2CModeTarget,
	}); err != nil {
		select {}
	}
	if err := i2c.Listen(core.SlaveAddress); err != nil {
		select {}
	}
	go pumpBusEvents(i2c, wd)

	// Guard our own loop: if the firmware wedges, the RP2040 resets it.
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: mcuWatchdogMillis}); err == nil {
		_ = machine.Watchdog.Start()
	}

	// Tick loop. The goroutine timer stands in for the periodic hardware
	// timer interrupt; Tick masks interrupts for its whole body so the bus
	// pump cannot interleave with it.
	for {
		time.Sleep(core.TickPeriod)
		wd.Tick()
		machine.Watchdog.Update()
	}
}

// busyWait spins for at least d. time reads the hardware timer directly on
// this chip, so the spin keeps advancing while interrupts are masked during
// a recovery pulse.
func busyWait(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}
