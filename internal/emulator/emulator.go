// Package emulator combines memory, screen, CPU and buzzer into a
// complete CHIP-8 machine and drives it one video frame at a time.
package emulator

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8go/internal/audio"
	"github.com/retroenv/chip8go/internal/cpu"
	"github.com/retroenv/chip8go/internal/memory"
	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/chip8go/internal/screen"
	"github.com/retroenv/retrogolib/log"
)

// Fixed rates of the emulated machine. The tick rate of the interpreter
// is configurable, everything else is part of the machine definition.
const (
	// FrameRate is the video frame rate in frames per second.
	FrameRate = 30

	// TimerRate is the delay and sound timer countdown rate. CHIP-8
	// timers always run at 60 Hz.
	TimerRate = 60

	// SampleRate is the audio sample rate in samples per second.
	SampleRate = 18000

	// BuzzerFrequency is the tone frequency of the buzzer in Hz.
	BuzzerFrequency = 400
)

// ErrFaulted is returned by RunFrame once the machine has entered the
// terminal fault state. Execution never resumes from a fault; the host
// is expected to end the emulation session.
var ErrFaulted = errors.New("machine is in terminal fault state")

// Emulator is a single machine instance. It owns all mutable machine
// state exclusively; multiple instances do not share anything. It is
// driven synchronously, one frame at a time, by the host and never
// starts goroutines of its own.
type Emulator struct {
	logger *log.Logger
	opts   options.Emulator

	mem    *memory.Memory
	screen *screen.Screen
	cpu    *cpu.CPU
	buzzer *audio.Buzzer

	video VideoSink
	audio AudioSink
	input InputSource

	ticksPerTimerCycle int

	fault error
}

// New creates a machine connected to the given host sinks. The rate
// relationships of the machine definition and the configured tick rate
// are validated; violations are construction errors.
func New(logger *log.Logger, video VideoSink, audioSink AudioSink,
	input InputSource, opts options.Emulator) (*Emulator, error) {

	if err := validateRates(opts); err != nil {
		return nil, fmt.Errorf("validating rates: %w", err)
	}

	mem := memory.New()
	scr := screen.New()

	e := &Emulator{
		logger: logger,
		opts:   opts,
		mem:    mem,
		screen: scr,
		cpu:    cpu.New(logger, mem, scr),
		buzzer: audio.NewBuzzer(SampleRate, FrameRate, BuzzerFrequency),
		video:  video,
		audio:  audioSink,
		input:  input,

		// Integer division: for tick rates that are not a multiple of
		// the timer rate the effective speed is rounded down to the
		// nearest multiple. Close enough, and documented behavior.
		ticksPerTimerCycle: opts.TickRate / TimerRate,
	}
	e.cpu.SetTrace(opts.Trace)

	logger.Debug("machine created",
		log.Int("tickRate", opts.TickRate),
		log.Int("ticksPerTimerCycle", e.ticksPerTimerCycle),
	)
	return e, nil
}

// validateRates checks the rate relationships that frame-exact timer
// and audio synthesis depend on. The machine rates are constants, so
// most checks guard against careless constant edits; the tick rate is
// user input.
func validateRates(opts options.Emulator) error {
	switch {
	case TimerRate%FrameRate != 0:
		return errors.New("timer rate must be divisible by frame rate")
	case SampleRate%FrameRate != 0:
		return errors.New("sample rate must be divisible by frame rate")
	case SampleRate%TimerRate != 0:
		return errors.New("sample rate must be divisible by timer rate")
	case SampleRate%BuzzerFrequency != 0:
		return errors.New("sample rate must be divisible by buzzer frequency")
	case opts.TickRate < TimerRate:
		return fmt.Errorf("tick rate %d is below the timer rate %d", opts.TickRate, TimerRate)
	}
	return nil
}

// LoadProgram copies a program image into the program region. Load
// failures are ordinary errors, loading can be retried.
func (e *Emulator) LoadProgram(data []byte) error {
	if err := e.mem.LoadProgram(data); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	e.logger.Info("program loaded", log.Int("size", len(data)))
	return nil
}

// UnloadProgram clears the program region and resets the machine to
// power-on state.
func (e *Emulator) UnloadProgram() {
	e.mem.ClearProgram()
	e.Reset()
}

// Reset returns the machine to power-on state with the loaded program
// and the glyph table intact. A fault is cleared; the program counter
// restarts at the program region.
func (e *Emulator) Reset() {
	e.cpu.Reset()
	e.screen.Clear()
	e.fault = nil
}

// Fault returns the fatal machine fault, or nil if the machine is
// operational.
func (e *Emulator) Fault() error {
	return e.fault
}
