package emulator

import (
	"context"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// RunFrame emulates one video frame: it polls input once, produces one
// frame of audio, runs the interpreter interleaved with the 60 Hz timer
// decrements and pushes exactly one display refresh to the video sink.
// It runs to completion on the calling goroutine.
//
// A fatal machine fault aborts the frame and puts the machine into a
// terminal fault state; every subsequent call fails with ErrFaulted.
// Context cancellation between timer cycles aborts the frame without
// faulting the machine.
func (e *Emulator) RunFrame(ctx context.Context) error {
	if e.fault != nil {
		return fmt.Errorf("%w: %w", ErrFaulted, e.fault)
	}

	e.input.Poll()
	e.cpu.SetKeys(keyBitmap(e.input))

	// The sound timer state at the frame start decides for the whole
	// frame whether the buzzer is audible.
	if e.cpu.ST > 0 {
		e.audio.QueueSamples(e.buzzer.ToneBatch())
	} else {
		e.audio.QueueSamples(e.buzzer.SilenceBatch())
	}

	timerCycles := TimerRate / FrameRate
	for range timerCycles {
		if err := ctx.Err(); err != nil {
			return err
		}

		for range e.ticksPerTimerCycle {
			if err := e.cpu.Step(); err != nil {
				return e.enterFault(err)
			}
		}

		// countdown timers saturate at zero
		if e.cpu.DT > 0 {
			e.cpu.DT--
		}
		if e.cpu.ST > 0 {
			e.cpu.ST--
		}
	}

	e.video.RenderFrame(e.screen.Frame())
	return nil
}

// enterFault records a fatal machine fault. Execution never resumes
// from a fault; the host observes the returned error and ends the
// session.
func (e *Emulator) enterFault(err error) error {
	e.fault = err
	e.logger.Error("machine fault, halting emulation", log.Err(err))
	return err
}

// keyBitmap snapshots the input source into a 16 bit key state bitmap,
// bit n set when key n is pressed.
func keyBitmap(input InputSource) uint16 {
	var keys uint16
	for key := uint8(0); key < NumKeys; key++ {
		if input.KeyPressed(key) {
			keys |= 1 << key
		}
	}
	return keys
}
