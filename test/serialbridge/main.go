//go:build tinygo

// serialbridge is a hardware-in-loop helper: flashed onto a second board, it
// turns USB serial frames from the host tools into I2C master transactions
// against the watchdog. The frame format is the one host/i2cbridge speaks:
//
//	'W' <addr> <reg> <value>  ->  <status>
//	'R' <addr> <reg>          ->  <status> <value>
//
// The bus is bit-banged so any two free pins work, and a NAK from an absent
// or wedged watchdog is reported instead of hanging the bridge.
package main

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/i2csoft"
)

const (
	pinSCL = machine.GP27
	pinSDA = machine.GP26

	busFrequency = 100_000
)

const (
	cmdWrite = 'W'
	cmdRead  = 'R'

	statusOK  = 0x00
	statusNak = 0x01
)

func main() {
	i2c := i2csoft.New(pinSCL, pinSDA)
	if err := i2c.Configure(i2csoft.I2CConfig{Frequency: busFrequency}); err != nil {
		return
	}

	for {
		switch readByte() {
		case cmdWrite:
			addr := readByte()
			reg := readByte()
			value := readByte()
			if err := i2c.Tx(uint16(addr), []byte{reg, value}, nil); err != nil {
				writeByte(statusNak)
				continue
			}
			writeByte(statusOK)

		case cmdRead:
			addr := readByte()
			reg := readByte()
			var value [1]byte
			if err := i2c.Tx(uint16(addr), []byte{reg}, value[:]); err != nil {
				writeByte(statusNak)
				writeByte(0)
				continue
			}
			writeByte(statusOK)
			writeByte(value[0])

		default:
			// Unknown command byte: skip it so the stream resynchronizes
			// on the next frame.
		}
	}
}

func readByte() byte {
	for {
		if machine.Serial.Buffered() > 0 {
			b, err := machine.Serial.ReadByte()
			if err == nil {
				return b
			}
		}
		time.Sleep(100 * time.Microsecond)
	}
}

func writeByte(b byte) {
	_ = machine.Serial.WriteByte(b)
}
