// Package audio synthesizes the buzzer tone of the CHIP-8 machine as
// frame-sized batches of interleaved stereo samples.
package audio

import (
	"math"
)

// amplitude scales the sine wave to half of the int16 range.
const amplitude = 0.5 * math.MaxInt16

// Buzzer generates a continuous sine tone at a fixed frequency. The
// phase accumulator persists across frames so that successive tone
// batches form a phase-continuous waveform with no discontinuity at
// frame boundaries.
type Buzzer struct {
	sampleRate      int
	frequency       int
	samplesPerFrame int

	phase int // wrapping sample counter, modulo sampleRate
	batch []int16
}

// NewBuzzer creates a buzzer for the given audio sample rate, video
// frame rate and tone frequency. The rates must divide evenly; the
// emulator validates this at construction.
func NewBuzzer(sampleRate, frameRate, frequency int) *Buzzer {
	samplesPerFrame := sampleRate / frameRate
	return &Buzzer{
		sampleRate:      sampleRate,
		frequency:       frequency,
		samplesPerFrame: samplesPerFrame,
		batch:           make([]int16, 2*samplesPerFrame),
	}
}

// SamplesPerFrame returns the number of sample pairs in one batch.
func (b *Buzzer) SamplesPerFrame() int {
	return b.samplesPerFrame
}

// ToneBatch synthesizes one frame worth of tone samples, interleaved
// left/right, advancing the phase accumulator. The returned slice is
// reused by subsequent calls.
func (b *Buzzer) ToneBatch() []int16 {
	omega := 2 * math.Pi * float64(b.frequency)

	for i := 0; i < len(b.batch); i += 2 {
		t := float64(b.phase) / float64(b.sampleRate)
		sample := int16(math.Round(amplitude * math.Sin(omega*t)))

		b.batch[i] = sample
		b.batch[i+1] = sample
		b.phase++
	}
	b.phase %= b.sampleRate

	return b.batch
}

// SilenceBatch returns one frame worth of silence. The phase
// accumulator is left untouched, so a tone resuming after silence
// continues from where it stopped.
func (b *Buzzer) SilenceBatch() []int16 {
	clear(b.batch)
	return b.batch
}
