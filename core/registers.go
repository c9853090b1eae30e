// Register map exposed to the host over the I2C bus.
// Addresses and bit assignments match the attiny_wdt Linux driver.
package core

// SlaveAddress is the fixed 7-bit bus address the watchdog answers on.
const SlaveAddress = 0x3D

// Register addresses.
const (
	RegVersion = 0x00 // read-only firmware revision
	RegControl = 0x01 // capability bitset, read/write
	RegTimer   = 0x02 // write = reload + refresh, read = raw countdown
	RegStatus  = 0x03 // read-only diagnostics
)

// Firmware revision, packed major<<4|minor in the VERSION register.
const (
	VersionMajor = 1
	VersionMinor = 0
	VersionByte  = VersionMajor<<4 | VersionMinor
)

// STATUS register layout. The expiration count is saturated into the high
// nibble so the host can tell NORMAL, ALERTED and ESCALATED apart without a
// second read.
const (
	StatusAlertLatched = 1 << 0
	statusCountShift   = 4
	statusCountMax     = 0x0F
)
