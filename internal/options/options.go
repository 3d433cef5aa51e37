// Package options contains the program options.
package options

// DefaultTickRate is the default number of interpreter ticks per second.
// The original interpreter hardcoded this value; it is user adjustable
// here because games are tuned for widely different speeds.
const DefaultTickRate = 500

// Program contains the command line options of the emulator frontend.
type Program struct {
	Input string

	Scale    int
	Headless bool
	Frames   int

	Debug bool
	Quiet bool
}

// Emulator contains the options of the emulation core.
type Emulator struct {
	// TickRate is the number of interpreter ticks per second.
	TickRate int

	// Trace enables per-instruction debug logging.
	Trace bool
}

// NewEmulator returns emulator options with default values.
func NewEmulator() Emulator {
	return Emulator{
		TickRate: DefaultTickRate,
	}
}
