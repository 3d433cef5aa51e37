package frontend

import (
	"context"
	"fmt"

	"github.com/retroenv/chip8go/internal/emulator"
	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// RunHeadless runs the machine without any I/O devices attached, useful
// for testing programs and timing on machines without a display. With a
// frame count of 0 it runs until the context is canceled.
func RunHeadless(ctx context.Context, logger *log.Logger, opts options.Program,
	emuOpts options.Emulator, program []byte) error {

	sink := &nullSink{}
	emu, err := emulator.New(logger, sink, sink, sink, emuOpts)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}
	if err := emu.LoadProgram(program); err != nil {
		return err
	}

	for frame := 0; opts.Frames == 0 || frame < opts.Frames; frame++ {
		if err := emu.RunFrame(ctx); err != nil {
			return fmt.Errorf("emulating frame %d: %w", frame, err)
		}
	}

	logger.Info("headless run finished", log.Int("frames", opts.Frames))
	return nil
}

// nullSink discards video and audio and reports no pressed keys.
type nullSink struct{}

func (n *nullSink) RenderFrame(_ []uint16) {}

func (n *nullSink) QueueSamples(_ []int16) {}

func (n *nullSink) Poll() {}

func (n *nullSink) KeyPressed(_ uint8) bool { return false }
