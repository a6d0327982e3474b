// Package audio is the voice and sound collaborator for playtime screens.
// Effects and fallback speech are synthesized with beep and rendered to PCM;
// playback goes through an ebiten audio context.
package audio

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the rate every effect is synthesized at and the rate the
// ebiten audio context must be created with.
const SampleRate beep.SampleRate = 44100

// envelope applies a linear attack and release to a finite stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   SampleRate.N(attack),
		release:  SampleRate.N(release),
		total:    SampleRate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, false
		}
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.position >= start && e.release > 0 {
			vol = math.Max(float64(e.total-e.position)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// volume scales s linearly by v. Zero or negative is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

type wave int

const (
	waveSine wave = iota
	waveTriangle
)

// tone is one enveloped note.
func tone(w wave, freq float64, d time.Duration, vol float64) beep.Streamer {
	var (
		osc beep.Streamer
		err error
	)
	switch w {
	case waveTriangle:
		osc, err = generators.TriangleTone(SampleRate, freq)
	default:
		osc, err = generators.SineTone(SampleRate, freq)
	}
	if err != nil {
		// Frequencies above Nyquist; render silence of the same length.
		return beep.Silence(SampleRate.N(d))
	}
	attack := min(d/8, 10*time.Millisecond)
	shaped := newEnvelope(beep.Take(SampleRate.N(d), osc), d, attack, d/2)
	return volume(shaped, vol)
}

// Effect ids understood by Effect.
const (
	EffectPop    = "pop"
	EffectBoing  = "boing"
	EffectCheer  = "cheer"
	EffectEngage = "engage"
	EffectChime  = "chime"
	EffectHint   = "hint"
)

// Effect returns a fresh streamer for the named sound effect.
func Effect(id string) (beep.Streamer, error) {
	ms := time.Millisecond
	switch id {
	case EffectPop:
		return beep.Seq(
			tone(waveSine, 660, 45*ms, 0.6),
			tone(waveSine, 990, 70*ms, 0.6),
		), nil
	case EffectBoing:
		return beep.Seq(
			tone(waveTriangle, 330, 90*ms, 0.5),
			tone(waveTriangle, 247, 90*ms, 0.5),
			tone(waveTriangle, 196, 160*ms, 0.5),
		), nil
	case EffectCheer:
		notes := []float64{523.25, 659.25, 783.99, 1046.5}
		seq := make([]beep.Streamer, 0, len(notes))
		for _, f := range notes {
			seq = append(seq, tone(waveSine, f, 110*ms, 0.5))
		}
		return beep.Mix(
			beep.Seq(seq...),
			beep.Seq(beep.Silence(SampleRate.N(330*ms)), tone(waveSine, 1568, 400*ms, 0.25)),
		), nil
	case EffectEngage:
		return beep.Seq(
			tone(waveSine, 392, 120*ms, 0.5),
			tone(waveSine, 587.33, 180*ms, 0.5),
		), nil
	case EffectChime:
		return beep.Mix(
			tone(waveSine, 880, 600*ms, 0.45),
			tone(waveSine, 1760, 300*ms, 0.15),
		), nil
	case EffectHint:
		return beep.Seq(
			tone(waveSine, 784, 90*ms, 0.35),
			tone(waveSine, 659.25, 140*ms, 0.35),
		), nil
	default:
		return nil, fmt.Errorf("unknown effect %q", id)
	}
}

// Chirp is the stand-in for a missing voice file: one short sung syllable
// per word, pitched from the word so the same line always sounds the same.
func Chirp(text string) beep.Streamer {
	words := strings.Fields(text)
	if len(words) == 0 {
		return beep.Silence(0)
	}
	seq := make([]beep.Streamer, 0, 2*len(words))
	for _, w := range words {
		h := fnv.New32a()
		_, _ = h.Write([]byte(strings.ToLower(w)))
		semis := float64(h.Sum32() % 12)
		freq := 330 * math.Pow(2, semis/12)
		d := time.Duration(90+25*min(len(w), 8)) * time.Millisecond
		seq = append(seq, tone(waveTriangle, freq, d, 0.4), beep.Silence(SampleRate.N(40*time.Millisecond)))
	}
	return beep.Seq(seq...)
}

// Render drains s into 16-bit little-endian stereo PCM, the format ebiten's
// audio players read. Streams longer than maxLen are truncated.
func Render(s beep.Streamer, maxLen time.Duration) ([]byte, error) {
	limit := SampleRate.N(maxLen)
	buf := make([][2]float64, 512)
	out := make([]byte, 0, 4*min(limit, SampleRate.N(time.Second)))
	total := 0
	for total < limit {
		want := min(len(buf), limit-total)
		n, ok := s.Stream(buf[:want])
		for _, smp := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(smp[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(smp[1])))
		}
		total += n
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("render stream: %w", err)
	}
	return out, nil
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
