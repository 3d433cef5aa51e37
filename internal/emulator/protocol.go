package emulator

import (
	"github.com/retroenv/chip8go/internal/screen"
)

// Description identifies the emulated system for host display.
const Description = "CHIP-8 virtual machine"

// NumKeys is the number of symbolic keys on the CHIP-8 keypad.
const NumKeys = 16

// VideoSink receives one fixed-resolution pixel buffer per frame from
// the frame driver. Pixels are RGB565, screen.Width*screen.Height of
// them, and only valid for the duration of the call.
type VideoSink interface {
	RenderFrame(pixels []uint16)
}

// AudioSink receives interleaved left/right 16 bit sample pairs in
// frame-sized batches. The slice is only valid for the duration of the
// call.
type AudioSink interface {
	QueueSamples(samples []int16)
}

// InputSource supplies the pressed state of the 16 symbolic keypad
// keys. Poll is called exactly once per frame before any key state is
// read.
type InputSource interface {
	Poll()
	KeyPressed(key uint8) bool
}

// AVInfo describes the audio/video geometry of the machine for host
// setup.
type AVInfo struct {
	ScreenWidth  int
	ScreenHeight int
	FrameRate    int
	SampleRate   int
}

// AVInfo returns the audio/video geometry of the machine.
func (e *Emulator) AVInfo() AVInfo {
	return AVInfo{
		ScreenWidth:  screen.Width,
		ScreenHeight: screen.Height,
		FrameRate:    FrameRate,
		SampleRate:   SampleRate,
	}
}
