package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// maxClip bounds any single rendered sound.
const maxClip = 8 * time.Second

// VoiceID maps a spoken line to its voice file name (without extension):
// lower case, words joined by dashes, punctuation dropped. "Find the 3!"
// becomes "find-the-3".
func VoiceID(text string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			dash = true
		}
	}
	return b.String()
}

// Player implements playtime.Voice. Effects are synthesized once and cached;
// speech is read from voices/<VoiceID>.wav and falls back to a Chirp when the
// file is missing or unreadable. A nil audio context makes every call a
// no-op apart from PCM preparation, which keeps the Player usable headless.
type Player struct {
	// Muted silences playback without discarding caches.
	Muted bool

	ctx    *audio.Context
	voices fs.FS
	pcm    map[string][]byte

	effects []*audio.Player
	speech  *audio.Player
}

// NewPlayer creates a player on ctx reading voice files from voices. Either
// may be nil. ctx must run at SampleRate.
func NewPlayer(ctx *audio.Context, voices fs.FS) *Player {
	return &Player{
		ctx:    ctx,
		voices: voices,
		pcm:    make(map[string][]byte),
	}
}

// PlaySound plays a synthesized effect. Unknown ids are logged and ignored.
func (p *Player) PlaySound(id string) {
	pcm, err := p.effectPCM(id)
	if err != nil {
		warnf("sound %s: %v", id, err)
		return
	}
	if pl := p.play(pcm); pl != nil {
		p.effects = append(p.effects, pl)
	}
	p.prune()
}

// Speak plays the voice line for text, cutting off any line still playing.
func (p *Player) Speak(text string) {
	pcm, err := p.voicePCM(text)
	if err != nil {
		warnf("speak %q: %v", text, err)
		return
	}
	if p.speech != nil {
		p.speech.Pause()
		_ = p.speech.Close()
		p.speech = nil
	}
	p.speech = p.play(pcm)
}

func (p *Player) play(pcm []byte) *audio.Player {
	if p.ctx == nil || p.Muted || len(pcm) == 0 {
		return nil
	}
	pl := p.ctx.NewPlayerFromBytes(pcm)
	pl.Play()
	return pl
}

// prune drops finished effect players so the slice stays small.
func (p *Player) prune() {
	live := p.effects[:0]
	for _, pl := range p.effects {
		if pl.IsPlaying() {
			live = append(live, pl)
			continue
		}
		_ = pl.Close()
	}
	for i := len(live); i < len(p.effects); i++ {
		p.effects[i] = nil
	}
	p.effects = live
}

func (p *Player) effectPCM(id string) ([]byte, error) {
	key := "fx:" + id
	if pcm, ok := p.pcm[key]; ok {
		return pcm, nil
	}
	s, err := Effect(id)
	if err != nil {
		return nil, err
	}
	pcm, err := Render(s, maxClip)
	if err != nil {
		return nil, err
	}
	p.pcm[key] = pcm
	return pcm, nil
}

// voicePCM returns decoded speech for text, synthesizing a chirp when no
// voice file can be used.
func (p *Player) voicePCM(text string) ([]byte, error) {
	id := VoiceID(text)
	if id == "" {
		return nil, nil
	}
	key := "voice:" + id
	if pcm, ok := p.pcm[key]; ok {
		return pcm, nil
	}
	pcm, err := p.loadVoice(id)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			warnf("voice %s: %v; using chirp", id, err)
		}
		pcm, err = Render(Chirp(text), maxClip)
		if err != nil {
			return nil, err
		}
	}
	p.pcm[key] = pcm
	return pcm, nil
}

func (p *Player) loadVoice(id string) ([]byte, error) {
	if p.voices == nil {
		return nil, fs.ErrNotExist
	}
	data, err := fs.ReadFile(p.voices, id+".wav")
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(int(SampleRate), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s.wav: %w", id, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read %s.wav: %w", id, err)
	}
	return pcm, nil
}

func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[playtime] audio: "+format+"\n", args...)
}
