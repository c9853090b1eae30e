// Register file: the bus-facing view of the watchdog. The bus peripheral's
// electrical framing is owned by the target; it feeds the core discrete
// events (transaction start, byte received, byte requested, stop), which is
// all the protocol needs.
//
// Write transactions carry an address byte and then zero or more data bytes.
// An address byte alone just primes the register pointer for a following
// read. Only the first data byte is applied; extras are read and discarded
// so a host-side framing error cannot abort the transaction or corrupt
// state. Read requests answer with the byte selected by the latched pointer,
// or 0 when no address phase preceded them.
package core

// BusStart marks the beginning of a write transaction from the host.
func (w *Watchdog) BusStart() {
	w.rxCount = 0
}

// BusByteReceived handles one byte of a write transaction. The first byte is
// the register address, the second the value to apply; anything after that
// is discarded.
func (w *Watchdog) BusByteReceived(b byte) {
	switch w.rxCount {
	case 0:
		w.regPointer = b
		w.addressed = true
	case 1:
		w.writeRegister(w.regPointer, b)
	}
	if w.rxCount < 2 {
		w.rxCount++
	}
}

// BusByteRequested handles a read request, answering with the register
// selected by the most recent address phase. The latch is consumed by the
// read; a request with no prior address phase answers 0 and mutates nothing.
func (w *Watchdog) BusByteRequested() byte {
	if !w.addressed {
		return 0
	}
	w.addressed = false
	return w.readRegister(w.regPointer)
}

// BusStop marks the end of a transaction. The register pointer survives so a
// repeated-start read can consume it; the byte phase does not.
func (w *Watchdog) BusStop() {
	w.rxCount = 0
}

// writeRegister applies one data byte. Writes to read-only or reserved
// addresses are ignored.
func (w *Watchdog) writeRegister(reg, value uint8) {
	switch reg {
	case RegControl:
		w.SetConfig(ConfigFromBits(value))
	case RegTimer:
		w.Refresh(value)
	}
}

// readRegister produces one response byte. Reserved addresses read as 0.
func (w *Watchdog) readRegister(reg uint8) byte {
	var b byte
	critical(func() {
		switch reg {
		case RegVersion:
			b = VersionByte
		case RegControl:
			b = w.config.Bits()
		case RegTimer:
			b = w.countdown
		case RegStatus:
			b = w.statusByte()
		}
	})
	return b
}
