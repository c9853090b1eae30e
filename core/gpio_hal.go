package core

// Line identifies one of the watchdog's output lines. All lines are
// active-high digital outputs; the mapping to physical pins lives in the
// target code.
type Line uint8

const (
	LineAlert Line = iota
	LineReset
	LinePowerCycle
)

// GPIODriver is the abstract output-line interface the core uses.
// Target-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a line as a digital output, deasserted.
	ConfigureOutput(line Line) error

	// SetLine asserts (true) or deasserts (false) a line.
	SetLine(line Line, asserted bool) error
}
