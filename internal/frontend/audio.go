package frontend

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// maxBacklog caps the buffered audio at one second; anything beyond
// that means the playback device stalled and old samples are dropped.
const maxBacklog = 4 // bytes per stereo int16 sample pair, times sample rate

// AudioStream implements the emulator's audio sink on top of an oto
// playback device. The frame driver queues frame-sized sample batches;
// oto's playback goroutine pulls them through the io.Reader side of the
// ring buffer. Missing samples are played as silence.
type AudioStream struct {
	mutex  sync.Mutex
	buffer []byte

	player *oto.Player
}

// NewAudioStream opens the playback device for interleaved stereo
// 16 bit samples at the given sample rate and starts playback.
func NewAudioStream(sampleRate int) (*AudioStream, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	s := &AudioStream{
		buffer: make([]byte, 0, maxBacklog*sampleRate),
	}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// QueueSamples implements the audio sink. Samples are interleaved
// left/right int16 pairs.
func (s *AudioStream) QueueSamples(samples []int16) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.buffer)+2*len(samples) > cap(s.buffer) {
		s.buffer = s.buffer[:0]
	}
	for _, sample := range samples {
		s.buffer = append(s.buffer, byte(sample), byte(sample>>8))
	}
}

// Read hands queued samples to the playback device, padding with
// silence when the emulator has not produced enough yet.
func (s *AudioStream) Read(p []byte) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	n := copy(p, s.buffer)
	s.buffer = s.buffer[:copy(s.buffer, s.buffer[n:])]

	for i := n; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

// Close stops playback.
func (s *AudioStream) Close() {
	_ = s.player.Close()
}
