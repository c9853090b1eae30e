// Package wdt is the host-side client for the watchdog's register map. It
// mirrors the semantics of the attiny_wdt kernel driver: start the timer by
// writing CONTROL then reloading TIMER, stop by clearing CONTROL, pet by
// rewriting TIMER.
package wdt

import (
	"fmt"

	"github.com/bkuschak/attiny-watchdog/core"
)

// RegisterBus is a byte-register transport to the watchdog device. The
// i2cbridge package provides one over a USB serial I2C adapter; tests
// provide fakes.
type RegisterBus interface {
	ReadReg(reg uint8) (uint8, error)
	WriteReg(reg uint8, value uint8) error
}

// Reload is the countdown value written on Start and by default on Pet.
// With the 250 ms tick this arms the first stage at roughly 64 seconds.
const Reload = 0xFF

// Client issues watchdog operations over a RegisterBus.
type Client struct {
	bus RegisterBus
}

func NewClient(bus RegisterBus) *Client {
	return &Client{bus: bus}
}

// Start arms the watchdog: capability flags first, then the reload. The
// order matters, since a TIMER write is what rearms the countdown.
func (c *Client) Start(flags uint8) error {
	if err := c.bus.WriteReg(core.RegControl, flags); err != nil {
		return fmt.Errorf("write CONTROL: %w", err)
	}
	if err := c.bus.WriteReg(core.RegTimer, Reload); err != nil {
		return fmt.Errorf("write TIMER: %w", err)
	}
	return nil
}

// StartDefault arms the watchdog with the driver's default capability set:
// power-cycle and alert enabled.
func (c *Client) StartDefault() error {
	return c.Start(core.CtrlEnablePowerCycle | core.CtrlEnableAlert)
}

// Stop clears every capability flag. The countdown keeps running on the
// device but no action fires.
func (c *Client) Stop() error {
	if err := c.bus.WriteReg(core.RegControl, 0); err != nil {
		return fmt.Errorf("write CONTROL: %w", err)
	}
	return nil
}

// Pet refreshes the watchdog, reloading the countdown to value.
func (c *Client) Pet(value uint8) error {
	if err := c.bus.WriteReg(core.RegTimer, value); err != nil {
		return fmt.Errorf("write TIMER: %w", err)
	}
	return nil
}

// Version reads the firmware revision, split into major and minor nibbles.
func (c *Client) Version() (major, minor uint8, err error) {
	v, err := c.bus.ReadReg(core.RegVersion)
	if err != nil {
		return 0, 0, fmt.Errorf("read VERSION: %w", err)
	}
	return v >> 4, v & 0x0F, nil
}

// Control reads back the capability bitset.
func (c *Client) Control() (uint8, error) {
	return c.bus.ReadReg(core.RegControl)
}

// Timer reads the raw countdown value.
func (c *Client) Timer() (uint8, error) {
	return c.bus.ReadReg(core.RegTimer)
}

// Status reads the diagnostics register.
func (c *Client) Status() (uint8, error) {
	return c.bus.ReadReg(core.RegStatus)
}

// Probe checks that a watchdog with a compatible firmware major revision
// answers on the bus.
func (c *Client) Probe() error {
	major, minor, err := c.Version()
	if err != nil {
		return err
	}
	if major != core.VersionMajor {
		return fmt.Errorf("unexpected firmware version %d.%d", major, minor)
	}
	return nil
}
