package games

import (
	"errors"

	"github.com/phanxgames/playtime"
)

// Playlist rotates through the registered activity rounds. Difficulty rises
// by one tier each time every activity has been completed once.
type Playlist struct {
	m          *playtime.ScreenManager
	names      []string
	activities map[string]playtime.Activity
	pos        int
}

// NewPlaylist returns an empty playlist driving m.
func NewPlaylist(m *playtime.ScreenManager) *Playlist {
	return &Playlist{m: m, activities: make(map[string]playtime.Activity)}
}

// Add appends an activity whose round is registered under its Name.
func (p *Playlist) Add(a playtime.Activity) {
	p.names = append(p.names, a.Name())
	p.activities[a.Name()] = a
}

// Names returns the rotation order.
func (p *Playlist) Names() []string { return p.names }

// Current returns the activity the playlist points at.
func (p *Playlist) Current() string {
	if len(p.names) == 0 {
		return ""
	}
	return p.names[p.pos]
}

// Start jumps to the first activity.
func (p *Playlist) Start() error {
	p.pos = 0
	return p.enter()
}

// Next moves to the following activity, wrapping around.
func (p *Playlist) Next() error {
	if len(p.names) == 0 {
		return errors.New("playlist is empty")
	}
	p.pos = (p.pos + 1) % len(p.names)
	return p.enter()
}

// Tier returns the difficulty for the next round.
func (p *Playlist) Tier() int {
	if len(p.names) == 0 {
		return TierEasy
	}
	done := p.m.Context().Session.ActivitiesCompleted
	return min(done/len(p.names)+1, TierHard)
}

func (p *Playlist) enter() error {
	name := p.Current()
	if name == "" {
		return errors.New("playlist is empty")
	}
	if t, ok := p.activities[name].(Tiered); ok {
		t.SetTier(p.Tier())
	}
	return p.m.GoTo(name)
}

// Register builds the stock activities, wraps each in a Round and registers
// them with the title and calm screens. The returned playlist is in the
// order counting, colors, shapes, letters, sorting.
func Register(m *playtime.ScreenManager, cfg playtime.Config) *Playlist {
	p := NewPlaylist(m)
	lines := Lines()
	for _, a := range []playtime.Activity{
		NewCounting(),
		NewColorMatch(),
		NewShapeSize(),
		NewLetterHunt(),
		NewSorting(),
	} {
		r := playtime.NewRound(a, cfg)
		r.Lines = lines
		m.Register(a.Name(), r)
		p.Add(a)
	}
	m.Register(ScreenTitle, NewTitle(p))
	calm := cfg.CalmScreen
	if calm == "" {
		calm = playtime.DefaultConfig().CalmScreen
	}
	m.Register(calm, NewCalm(p))
	return p
}
