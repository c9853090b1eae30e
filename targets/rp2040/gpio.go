//go:build rp2040

package main

import (
	"errors"
	"machine"

	"github.com/bkuschak/attiny-watchdog/core"
)

// pinDriver implements core.GPIODriver on machine pins.
type pinDriver struct {
	pins map[core.Line]machine.Pin
}

func newPinDriver() *pinDriver {
	return &pinDriver{
		pins: map[core.Line]machine.Pin{
			core.LineAlert:      pinAlert,
			core.LineReset:      pinResetOut,
			core.LinePowerCycle: pinPowerCycle,
		},
	}
}

func (d *pinDriver) ConfigureOutput(line core.Line) error {
	pin, ok := d.pins[line]
	if !ok {
		return errors.New("gpio: unmapped line")
	}
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return nil
}

func (d *pinDriver) SetLine(line core.Line, asserted bool) error {
	pin, ok := d.pins[line]
	if !ok {
		return errors.New("gpio: unmapped line")
	}
	pin.Set(asserted)
	return nil
}
