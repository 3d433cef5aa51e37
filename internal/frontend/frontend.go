// Package frontend provides the desktop host for the emulator core: an
// ebiten window for video and keypad input, an oto stream for audio and
// a headless mode for running without any I/O devices.
package frontend

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/chip8go/internal/emulator"
	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Desktop runs the machine inside an ebiten game loop, one emulated
// frame per game update. It implements the emulator's video sink and
// input source; audio goes through a separate oto stream.
type Desktop struct {
	logger *log.Logger
	emu    *emulator.Emulator
	audio  *AudioStream
	ctx    context.Context

	width  int
	height int
	rgba   []byte
}

// Run creates a machine wired to a desktop window and audio device,
// loads the program and runs it until the window is closed, the context
// is canceled or the machine faults.
func Run(ctx context.Context, logger *log.Logger, opts options.Program,
	emuOpts options.Emulator, program []byte) error {

	audioStream, err := NewAudioStream(emulator.SampleRate)
	if err != nil {
		return fmt.Errorf("creating audio stream: %w", err)
	}
	defer audioStream.Close()

	d := &Desktop{
		logger: logger,
		audio:  audioStream,
		ctx:    ctx,
	}

	emu, err := emulator.New(logger, d, audioStream, d, emuOpts)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}
	if err := emu.LoadProgram(program); err != nil {
		return err
	}
	d.emu = emu

	info := emu.AVInfo()
	d.width = info.ScreenWidth
	d.height = info.ScreenHeight
	d.rgba = make([]byte, 4*info.ScreenWidth*info.ScreenHeight)

	ebiten.SetWindowSize(info.ScreenWidth*opts.Scale, info.ScreenHeight*opts.Scale)
	ebiten.SetWindowTitle("chip8go")
	ebiten.SetTPS(info.FrameRate)

	if err := ebiten.RunGame(d); err != nil {
		return fmt.Errorf("running game loop: %w", err)
	}
	return nil
}

// Update emulates one frame.
func (d *Desktop) Update() error {
	err := d.emu.RunFrame(d.ctx)
	switch {
	case errors.Is(err, context.Canceled):
		return ebiten.Termination
	case err != nil:
		return fmt.Errorf("emulating frame: %w", err)
	}
	return nil
}

// Draw presents the frame rendered by the last RenderFrame call.
func (d *Desktop) Draw(screen *ebiten.Image) {
	screen.WritePixels(d.rgba)
}

// Layout fixes the logical screen to the machine resolution; ebiten
// scales it to the window size.
func (d *Desktop) Layout(_, _ int) (int, int) {
	return d.width, d.height
}

// RenderFrame converts the RGB565 frame of the machine into the RGBA
// pixels that ebiten presents.
func (d *Desktop) RenderFrame(pixels []uint16) {
	for i, pixel := range pixels {
		r := byte((pixel >> 11 & 0x1F) << 3)
		g := byte((pixel >> 5 & 0x3F) << 2)
		b := byte((pixel & 0x1F) << 3)

		d.rgba[4*i] = r
		d.rgba[4*i+1] = g
		d.rgba[4*i+2] = b
		d.rgba[4*i+3] = 0xFF
	}
}

// Poll implements the input source. Ebiten refreshes its key states
// once per game update, polling is implicit.
func (d *Desktop) Poll() {}

// keypadKeys maps the 16 symbolic keypad keys to the conventional
// keyboard layout: the 4x4 block 1234 / QWER / ASDF / ZXCV mirrors the
// original COSMAC VIP keypad.
var keypadKeys = [emulator.NumKeys]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.Key1,
	0x2: ebiten.Key2,
	0x3: ebiten.Key3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.Key4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

// KeyPressed reports whether the keyboard key mapped to a symbolic
// keypad key is held down.
func (d *Desktop) KeyPressed(key uint8) bool {
	if int(key) >= len(keypadKeys) {
		return false
	}
	return ebiten.IsKeyPressed(keypadKeys[key])
}
