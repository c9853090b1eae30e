//go:build rp2040

package main

import (
	"machine"

	"github.com/bkuschak/attiny-watchdog/core"
)

// pumpBusEvents translates target-mode I2C events from the hardware
// peripheral into register-file events. The peripheral delivers a complete
// write burst per I2CReceive event; the core still sees it byte by byte so
// its first-data-byte-wins rule applies unchanged.
func pumpBusEvents(i2c *machine.I2C, wd *core.Watchdog) {
	buf := make([]byte, 8)
	var reply [1]byte

	for {
		evt, n, err := i2c.WaitForEvent(buf)
		if err != nil {
			continue
		}

		switch evt {
		case machine.I2CReceive:
			wd.BusStart()
			for _, b := range buf[:n] {
				wd.BusByteReceived(b)
			}
		case machine.I2CRequest:
			reply[0] = wd.BusByteRequested()
			_ = i2c.Reply(reply[:])
		case machine.I2CFinish:
			wd.BusStop()
		}
	}
}
