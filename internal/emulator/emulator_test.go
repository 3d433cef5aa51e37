package emulator

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/chip8go/internal/cpu"
	"github.com/retroenv/chip8go/internal/memory"
	"github.com/retroenv/chip8go/internal/options"
	"github.com/retroenv/chip8go/internal/screen"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type fakeVideo struct {
	frames [][]uint16
}

func (f *fakeVideo) RenderFrame(pixels []uint16) {
	frame := make([]uint16, len(pixels))
	copy(frame, pixels)
	f.frames = append(f.frames, frame)
}

type fakeAudio struct {
	batches [][]int16
}

func (f *fakeAudio) QueueSamples(samples []int16) {
	batch := make([]int16, len(samples))
	copy(batch, samples)
	f.batches = append(f.batches, batch)
}

type fakeInput struct {
	polls int
	keys  uint16
}

func (f *fakeInput) Poll() {
	f.polls++
}

func (f *fakeInput) KeyPressed(key uint8) bool {
	return f.keys&(1<<key) != 0
}

type testMachine struct {
	emu   *Emulator
	video *fakeVideo
	audio *fakeAudio
	input *fakeInput
}

func newTestMachine(t *testing.T, program ...uint16) *testMachine {
	t.Helper()

	m := &testMachine{
		video: &fakeVideo{},
		audio: &fakeAudio{},
		input: &fakeInput{},
	}

	emu, err := New(log.NewTestLogger(t), m.video, m.audio, m.input,
		options.NewEmulator())
	assert.NoError(t, err)
	m.emu = emu

	data := make([]byte, 0, 2*len(program))
	for _, word := range program {
		data = append(data, byte(word>>8), byte(word))
	}
	assert.NoError(t, emu.LoadProgram(data))
	return m
}

func TestRunFrame(t *testing.T) {
	m := newTestMachine(t, 0x1200) // jump to self

	assert.NoError(t, m.emu.RunFrame(context.Background()))

	// one poll, one audio batch, one display refresh per frame
	assert.Equal(t, 1, m.input.polls)
	assert.Len(t, m.video.frames, 1)
	assert.Len(t, m.video.frames[0], screen.NumPixels)
	assert.Len(t, m.audio.batches, 1)
	assert.Len(t, m.audio.batches[0], 2*SampleRate/FrameRate)
}

func TestTimerCountdown(t *testing.T) {
	m := newTestMachine(t,
		0x6005, // V0 = 5
		0xF015, // DT = V0
		0x1204, // loop
	)

	// two timer decrements per video frame
	assert.NoError(t, m.emu.RunFrame(context.Background()))
	assert.Equal(t, 3, m.emu.cpu.DT)

	assert.NoError(t, m.emu.RunFrame(context.Background()))
	assert.Equal(t, 1, m.emu.cpu.DT)
}

func TestTimerSaturation(t *testing.T) {
	m := newTestMachine(t,
		0x6001, // V0 = 1
		0xF015, // DT = V0
		0x1204, // loop
	)

	for range 3 {
		assert.NoError(t, m.emu.RunFrame(context.Background()))
	}
	assert.Equal(t, 0, m.emu.cpu.DT)
}

func TestSoundTimerControlsAudio(t *testing.T) {
	m := newTestMachine(t,
		0x60FF, // V0 = 255
		0xF018, // ST = V0
		0x1204, // loop
	)

	// the sound timer is zero at the first frame start, so the first
	// batch is silence; the second frame sees the running timer
	assert.NoError(t, m.emu.RunFrame(context.Background()))
	assert.NoError(t, m.emu.RunFrame(context.Background()))

	for _, sample := range m.audio.batches[0] {
		if sample != 0 {
			t.Fatal("first batch should be silence")
		}
	}
	tone := false
	for _, sample := range m.audio.batches[1] {
		if sample != 0 {
			tone = true
			break
		}
	}
	assert.True(t, tone, "second batch should carry the buzzer tone")
}

func TestKeyStateReachesInterpreter(t *testing.T) {
	m := newTestMachine(t,
		0x610A, // V1 = 10
		0xF20A, // wait for key, store in V2
		0x1204, // loop
	)
	m.input.keys = 1 << 10

	assert.NoError(t, m.emu.RunFrame(context.Background()))
	assert.Equal(t, 10, m.emu.cpu.V[2])
}

func TestFaultLatches(t *testing.T) {
	m := newTestMachine(t, 0x00EE) // return with empty stack

	err := m.emu.RunFrame(context.Background())
	assert.True(t, errors.Is(err, cpu.ErrStackUnderflow))
	assert.NotNil(t, m.emu.Fault())

	// no display refresh for an aborted frame
	assert.Empty(t, m.video.frames)

	err = m.emu.RunFrame(context.Background())
	assert.True(t, errors.Is(err, ErrFaulted))
	assert.True(t, errors.Is(err, cpu.ErrStackUnderflow))
}

func TestContextCancellation(t *testing.T) {
	m := newTestMachine(t, 0x1200)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.emu.RunFrame(ctx)
	assert.True(t, errors.Is(err, context.Canceled))

	// cancellation is not a machine fault
	assert.NoError(t, m.emu.Fault())
	assert.NoError(t, m.emu.RunFrame(context.Background()))
}

func TestResetClearsFault(t *testing.T) {
	m := newTestMachine(t, 0x00EE)

	err := m.emu.RunFrame(context.Background())
	assert.Error(t, err)

	m.emu.Reset()
	assert.NoError(t, m.emu.Fault())
	assert.Equal(t, memory.ProgramStart, m.emu.cpu.PC)
}

func TestUnloadProgram(t *testing.T) {
	m := newTestMachine(t, 0x1200)
	assert.NoError(t, m.emu.RunFrame(context.Background()))

	m.emu.UnloadProgram()

	value, err := m.emu.mem.ReadByte(memory.ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, 0, value)
	assert.Equal(t, memory.ProgramStart, m.emu.cpu.PC)
}

func TestLoadProgramErrors(t *testing.T) {
	m := newTestMachine(t, 0x1200)

	err := m.emu.LoadProgram(nil)
	assert.True(t, errors.Is(err, memory.ErrEmptyProgram))

	err = m.emu.LoadProgram(make([]byte, memory.MaxProgramSize+1))
	assert.True(t, errors.Is(err, memory.ErrProgramTooLarge))
}

func TestTickRateValidation(t *testing.T) {
	opts := options.NewEmulator()
	opts.TickRate = TimerRate - 1

	_, err := New(log.NewTestLogger(t), &fakeVideo{}, &fakeAudio{},
		&fakeInput{}, opts)
	assert.Error(t, err)
}

func TestAVInfo(t *testing.T) {
	m := newTestMachine(t, 0x1200)

	info := m.emu.AVInfo()
	assert.Equal(t, screen.Width, info.ScreenWidth)
	assert.Equal(t, screen.Height, info.ScreenHeight)
	assert.Equal(t, FrameRate, info.FrameRate)
	assert.Equal(t, SampleRate, info.SampleRate)
}
