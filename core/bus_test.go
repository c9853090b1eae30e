package core

import "testing"

// busWrite performs a full write transaction: address byte then data bytes.
func busWrite(w *Watchdog, reg uint8, data ...byte) {
	w.BusStart()
	w.BusByteReceived(reg)
	for _, b := range data {
		w.BusByteReceived(b)
	}
	w.BusStop()
}

// busRead performs an address phase followed by a one-byte read.
func busRead(w *Watchdog, reg uint8) byte {
	w.BusStart()
	w.BusByteReceived(reg)
	w.BusStop()
	b := w.BusByteRequested()
	w.BusStop()
	return b
}

func TestControlRoundTripAllValues(t *testing.T) {
	w, _, _ := newTestWatchdog(t)

	for v := 0; v < 256; v++ {
		busWrite(w, RegControl, byte(v))
		if got := busRead(w, RegControl); got != byte(v) {
			t.Fatalf("CONTROL round trip: wrote %#02x, read %#02x", v, got)
		}
	}
}

func TestTimerWriteIsRefresh(t *testing.T) {
	w, gpio, _ := newTestWatchdog(t)

	// Latch an alert first.
	w.Refresh(1)
	w.Tick()
	if !gpio.state[LineAlert] {
		t.Fatal("alert not asserted")
	}

	busWrite(w, RegTimer, 200)
	if got := w.Countdown(); got != 200 {
		t.Errorf("countdown = %d, want 200", got)
	}
	if got := w.Expirations(); got != 0 {
		t.Errorf("expirations = %d, want 0", got)
	}
	if gpio.state[LineAlert] {
		t.Error("alert still asserted after TIMER write")
	}
}

func TestTimerReadReturnsRawCountdown(t *testing.T) {
	w, _, _ := newTestWatchdog(t)

	busWrite(w, RegTimer, 10)
	tickN(w, 4)
	if got := busRead(w, RegTimer); got != 6 {
		t.Errorf("TIMER read = %d, want 6", got)
	}
}

func TestExtraDataBytesDiscarded(t *testing.T) {
	w, _, _ := newTestWatchdog(t)

	// Only the first data byte applies; the rest protect against host
	// framing errors and must not disturb anything.
	busWrite(w, RegTimer, 77, 1, 2, 3)
	if got := w.Countdown(); got != 77 {
		t.Errorf("countdown = %d, want 77", got)
	}
	if got := w.Config().Bits(); got != CtrlEnablePowerCycle|CtrlEnableAlert {
		t.Errorf("control bits disturbed: %#02x", got)
	}
}

func TestAddressOnlyWritePrimesRead(t *testing.T) {
	w, _, _ := newTestWatchdog(t)

	busWrite(w, RegControl, 0x05)
	before := w.Countdown()

	// Address phase with no data byte: no state change beyond the pointer.
	busWrite(w, RegVersion)
	if got := w.Countdown(); got != before {
		t.Errorf("countdown changed by address-only write: %d", got)
	}
	if got := w.BusByteRequested(); got != VersionByte {
		t.Errorf("primed read = %#02x, want %#02x", got, VersionByte)
	}
}

func TestReadWithoutAddressPhase(t *testing.T) {
	w, _, _ := newTestWatchdog(t)

	if got := w.BusByteRequested(); got != 0 {
		t.Errorf("addressless read = %#02x, want 0", got)
	}
	if got := w.Countdown(); got != PowerOnCountdown {
		t.Errorf("addressless read mutated countdown: %d", got)
	}

	// The latch is consumed by a read: a second request without a fresh
	// address phase answers 0 again.
	busWrite(w, RegVersion)
	if got := w.BusByteRequested(); got != VersionByte {
		t.Fatalf("primed read = %#02x, want %#02x", got, VersionByte)
	}
	if got := w.BusByteRequested(); got != 0 {
		t.Errorf("second read = %#02x, want 0", got)
	}
}

func TestVersionReadConstant(t *testing.T) {
	w, _, _ := newTestWatchdog(t)

	if got := busRead(w, RegVersion); got != VersionByte {
		t.Fatalf("VERSION = %#02x, want %#02x", got, VersionByte)
	}

	// Unaffected by traffic to other registers.
	busWrite(w, RegControl, 0xFF)
	busWrite(w, RegTimer, 1)
	tickN(w, 1)
	if got := busRead(w, RegVersion); got != VersionByte {
		t.Errorf("VERSION after traffic = %#02x, want %#02x", got, VersionByte)
	}
}

func TestWritesToReadOnlyRegistersIgnored(t *testing.T) {
	w, _, _ := newTestWatchdog(t)

	busWrite(w, RegVersion, 0xAA)
	busWrite(w, RegStatus, 0xAA)
	busWrite(w, 0x7F, 0xAA)

	if got := busRead(w, RegVersion); got != VersionByte {
		t.Errorf("VERSION = %#02x, want %#02x", got, VersionByte)
	}
	if got := w.Countdown(); got != PowerOnCountdown {
		t.Errorf("countdown disturbed: %d", got)
	}
	if got := w.Config().Bits(); got != CtrlEnablePowerCycle|CtrlEnableAlert {
		t.Errorf("control bits disturbed: %#02x", got)
	}
}

func TestReservedAddressReadsZero(t *testing.T) {
	w, _, _ := newTestWatchdog(t)

	for _, reg := range []uint8{0x04, 0x10, 0xFF} {
		if got := busRead(w, reg); got != 0 {
			t.Errorf("register %#02x read = %#02x, want 0", reg, got)
		}
	}
}

func TestStatusRegister(t *testing.T) {
	w, _, _ := newTestWatchdog(t)

	if got := busRead(w, RegStatus); got != 0 {
		t.Fatalf("STATUS at power-on = %#02x, want 0", got)
	}

	// First expiration: alert latched, count 1.
	busWrite(w, RegTimer, 1)
	w.Tick()
	want := byte(StatusAlertLatched | 1<<statusCountShift)
	if got := busRead(w, RegStatus); got != want {
		t.Errorf("STATUS after alert = %#02x, want %#02x", got, want)
	}

	// Refresh clears it.
	busWrite(w, RegTimer, 1)
	if got := busRead(w, RegStatus); got != 0 {
		t.Errorf("STATUS after refresh = %#02x, want 0", got)
	}
}

func TestStatusCountSaturates(t *testing.T) {
	w, _, _ := newTestWatchdog(t)
	w.SetConfig(ConfigFromBits(0)) // nothing fires, the count just climbs

	busWrite(w, RegTimer, 1)
	tickN(w, 1+20*256) // 21 expirations

	if got := w.Expirations(); got != 21 {
		t.Fatalf("expirations = %d, want 21", got)
	}
	want := byte(statusCountMax << statusCountShift)
	if got := busRead(w, RegStatus); got != want {
		t.Errorf("STATUS = %#02x, want saturated %#02x", got, want)
	}
}
