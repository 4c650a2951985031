package audio

import (
	"fmt"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate = 48000
	toneHz     = 440
	amplitude  = 25

	halfPeriod = sampleRate / (2 * toneHz)
)

// squareWave is an endless sample stream for the player to pull from.
// While the gate is closed it emits the midline, so the buzzer is silent
// without stopping the stream.
type squareWave struct {
	playing atomic.Bool
	phase   int
}

func (w *squareWave) Read(p []byte) (int, error) {
	on := w.playing.Load()
	for i := range p {
		sample := uint8(0x80)
		if on {
			if w.phase < halfPeriod {
				sample += amplitude
			} else {
				sample -= amplitude
			}
		}
		p[i] = sample

		w.phase++
		if w.phase >= 2*halfPeriod {
			w.phase = 0
		}
	}
	return len(p), nil
}

// Beeper plays the single fixed tone of the CHIP-8 buzzer. A nil Beeper is
// valid and silent, hosts without an audio device keep working.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
	wave   *squareWave
}

func NewBeeper() (*Beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatUnsignedInt8,
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't open the audio device: %w", err)
	}
	<-ready

	b := &Beeper{
		ctx:  ctx,
		wave: &squareWave{},
	}
	b.player = ctx.NewPlayer(b.wave)
	b.player.Play()
	return b, nil
}

// SetPlaying opens or closes the tone gate.
func (b *Beeper) SetPlaying(on bool) {
	if b == nil {
		return
	}
	b.wave.playing.Store(on)
}

func (b *Beeper) Close() error {
	if b == nil {
		return nil
	}
	return b.player.Close()
}
