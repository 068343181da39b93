// Package audio plays the sounds of the game effects.
package audio

import (
	"fmt"
	"io"
	"log/slog"
	"lollypop/tetris"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

type note struct {
	freq     float64
	duration time.Duration
}

var sounds = map[tetris.Effect][]note{
	// short rising hit, played once per cleared row.
	tetris.LineClear: {{660, 60 * time.Millisecond}, {990, 90 * time.Millisecond}},
	tetris.GameOver:  {{440, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {220, 300 * time.Millisecond}},
	tetris.Start:     {{523.25, 80 * time.Millisecond}, {659.25, 80 * time.Millisecond}, {783.99, 80 * time.Millisecond}, {1046.5, 160 * time.Millisecond}},
}

// Sink plays streamers. The speaker is the default one.
type Sink interface {
	Play(s ...beep.Streamer)
}

type speakerSink struct{}

func (speakerSink) Play(s ...beep.Streamer) { speaker.Play(s...) }

type Options struct {
	SampleRate int
	Volume     float64
	Logger     *slog.Logger
	Sink       Sink
}

type Player struct {
	sink   Sink
	rate   beep.SampleRate
	volume float64
	logger *slog.Logger
}

// New returns a player for o.Sink or, when it's nil, for the speaker
// which gets initialized.
func New(o *Options) (*Player, error) {
	rate := beep.SampleRate(o.SampleRate)
	sink := o.Sink
	if sink == nil {
		if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
			return nil, fmt.Errorf("failed to init speaker: %w", err)
		}
		sink = speakerSink{}
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Player{
		sink:   sink,
		rate:   rate,
		volume: o.Volume,
		logger: logger,
	}, nil
}

// Dispatch plays the sound of the effect, if it has one.
func (p *Player) Dispatch(e tetris.Effect) {
	s, err := p.streamer(e)
	if err != nil {
		p.logger.Error("unable to build sound", slog.String("effect", string(e)), slog.String("error", err.Error()))
		return
	}
	if s == nil {
		return
	}
	p.sink.Play(s)
}

func (p *Player) Close() {
	if _, ok := p.sink.(speakerSink); ok {
		speaker.Close()
	}
}

func (p *Player) streamer(e tetris.Effect) (beep.Streamer, error) {
	notes, ok := sounds[e]
	if !ok {
		return nil, nil
	}
	seq := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := p.tone(n)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s sound: %w", e, err)
		}
		seq = append(seq, s)
	}
	return newVolume(beep.Seq(seq...), p.volume), nil
}

func (p *Player) tone(n note) (beep.Streamer, error) {
	sine, err := generators.SineTone(p.rate, n.freq)
	if err != nil {
		return nil, err
	}
	total := p.rate.N(n.duration)
	return &fade{
		streamer: beep.Take(total, sine),
		total:    total,
		ramp:     p.rate.N(5 * time.Millisecond),
	}, nil
}

// fade ramps a note in and out to avoid clicks.
type fade struct {
	streamer beep.Streamer
	position int
	total    int
	ramp     int
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := range n {
		vol := 1.0
		if f.ramp > 0 {
			if f.position < f.ramp {
				vol = float64(f.position) / float64(f.ramp)
			}
			if remaining := f.total - f.position; remaining < f.ramp {
				vol = math.Min(vol, float64(remaining)/float64(f.ramp))
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// math.Log2(0) is -Inf, 0 volume is handled as silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
