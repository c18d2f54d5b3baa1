// Package audio connects a block renderer to the system audio output.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/cwbudde/algo-fxchain/dsp/core"
)

// Channels is the output layout: interleaved stereo float32.
const Channels = 2

const bytesPerFrame = Channels * 4

// Source fills a planar stereo block of fixed length. It runs on the
// audio goroutine.
type Source interface {
	Render(block [][]float64)
}

// StreamReader pulls fixed-size blocks from a Source and serves them as
// little-endian float32 frames. Read must be called from a single
// goroutine.
type StreamReader struct {
	source  Source
	block   [][]float64
	pending []float32
	pos     int
}

// NewStreamReader renders blockSize frames per Source call.
func NewStreamReader(source Source, blockSize int) (*StreamReader, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("audio: block size must be > 0: %d", blockSize)
	}

	return &StreamReader{
		source:  source,
		block:   core.NewBlock(Channels, blockSize),
		pending: make([]float32, Channels*blockSize),
		pos:     Channels * blockSize,
	}, nil
}

func (r *StreamReader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	n := 0

	for i := 0; i < frames*Channels; i++ {
		if r.pos == len(r.pending) {
			r.render()
		}

		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(r.pending[r.pos]))
		r.pos++
		n += 4
	}

	return n, nil
}

func (r *StreamReader) render() {
	for _, ch := range r.block {
		core.Zero(ch)
	}

	r.source.Render(r.block)
	core.Interleave(r.pending, r.block)
	r.pos = 0
}

func (r *StreamReader) Close() error { return nil }

// Player streams a Source to the default output device.
type Player struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})

	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio: context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}

	return audioContext, nil
}

// NewPlayer opens the shared audio context at sampleRate and binds source.
func NewPlayer(sampleRate, blockSize int, source Source) (*Player, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}

	reader, err := NewStreamReader(source, blockSize)
	if err != nil {
		return nil, err
	}

	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, fmt.Errorf("audio: new player: %w", err)
	}

	return &Player{player: pl, reader: reader}, nil
}

func (p *Player) Play()  { p.player.Play() }
func (p *Player) Pause() { p.player.Pause() }

// Position returns what the listener hears right now.
func (p *Player) Position() time.Duration {
	return p.player.Position()
}

func (p *Player) Stop() error {
	p.player.Pause()

	if err := p.player.Close(); err != nil {
		return err
	}

	return p.reader.Close()
}
