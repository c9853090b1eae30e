// Package i2cbridge talks to the watchdog through a USB serial I2C bridge
// adapter (see test/serialbridge for a matching bridge firmware). The wire
// protocol is one frame per register operation:
//
//	write: 'W' <i2c addr> <reg> <value>  ->  <status>
//	read:  'R' <i2c addr> <reg>          ->  <status> <value>
//
// where status 0 means the device acknowledged and 1 means it did not.
package i2cbridge

import (
	"errors"
	"fmt"
	"io"

	"github.com/tarm/serial"
)

const (
	cmdWrite = 'W'
	cmdRead  = 'R'

	statusOK = 0x00
)

// ErrNak is returned when the watchdog does not acknowledge a transaction.
var ErrNak = errors.New("i2cbridge: device did not acknowledge")

// Bridge implements wdt.RegisterBus over a serial port.
type Bridge struct {
	port io.ReadWriteCloser
	addr uint8
}

// Open opens the serial device and returns a bridge bound to the given
// 7-bit slave address.
func Open(device string, baud int, addr uint8) (*Bridge, error) {
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("i2cbridge: open %s: %w", device, err)
	}
	return New(port, addr), nil
}

// New wraps an already-open port. Split out from Open so tests can inject
// an in-memory transport.
func New(port io.ReadWriteCloser, addr uint8) *Bridge {
	return &Bridge{port: port, addr: addr}
}

// WriteReg writes one byte to a device register.
func (b *Bridge) WriteReg(reg, value uint8) error {
	if err := b.send(cmdWrite, b.addr, reg, value); err != nil {
		return err
	}
	var resp [1]byte
	if _, err := io.ReadFull(b.port, resp[:]); err != nil {
		return fmt.Errorf("i2cbridge: read status: %w", err)
	}
	if resp[0] != statusOK {
		return ErrNak
	}
	return nil
}

// ReadReg reads one byte from a device register.
func (b *Bridge) ReadReg(reg uint8) (uint8, error) {
	if err := b.send(cmdRead, b.addr, reg); err != nil {
		return 0, err
	}
	var resp [2]byte
	if _, err := io.ReadFull(b.port, resp[:]); err != nil {
		return 0, fmt.Errorf("i2cbridge: read response: %w", err)
	}
	if resp[0] != statusOK {
		return 0, ErrNak
	}
	return resp[1], nil
}

// Close closes the underlying port.
func (b *Bridge) Close() error {
	return b.port.Close()
}

func (b *Bridge) send(frame ...byte) error {
	if _, err := b.port.Write(frame); err != nil {
		return fmt.Errorf("i2cbridge: write frame: %w", err)
	}
	return nil
}
