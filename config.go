package playtime

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// Config holds every timing and threshold the engine uses. Start from
// DefaultConfig and override fields, or load an INI file with LoadConfig.
type Config struct {
	// Width and Height are the logical resolution all coordinates use.
	Width, Height float64

	// MaxFrameDT caps the per-tick delta in seconds so a stalled frame cannot
	// fling particles or skip phases.
	MaxFrameDT float64
	// GovernorWindow is the frame-rate sampling window in seconds.
	GovernorWindow float64
	// HighFPS and LowFPS split the spawn-rate tiers: at or above HighFPS the
	// multiplier is 1, at or above LowFPS 0.5, below that 0.25.
	HighFPS, LowFPS float64

	// ParticleCapacity is the per-round particle pool size.
	ParticleCapacity int
	// AmbientRate is the ambient emission probability per second.
	AmbientRate float64

	// Phase durations in seconds.
	BannerDuration    float64
	EngageDuration    float64
	PromptDuration    float64
	CelebrateDuration float64
	CompleteDuration  float64
	// SettleDelay is how long input stays locked after a miss.
	SettleDelay float64
	// SubtitleDuration is how long a spoken line stays captioned.
	SubtitleDuration float64

	// HintTimeouts and MissCeiling configure every prompt's HintLadder.
	HintTimeouts [4]float64
	MissCeiling  int

	// CalmScreen is where finished rounds go by default.
	CalmScreen string

	// Debug enables debug logging and the FPS meter.
	Debug bool
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	h := DefaultHintConfig()
	return Config{
		Width:             1280,
		Height:            800,
		MaxFrameDT:        0.05,
		GovernorWindow:    1,
		HighFPS:           50,
		LowFPS:            30,
		ParticleCapacity:  600,
		AmbientRate:       6,
		BannerDuration:    2.5,
		EngageDuration:    1.5,
		PromptDuration:    1.2,
		CelebrateDuration: 2.2,
		CompleteDuration:  3,
		SettleDelay:       0.6,
		SubtitleDuration:  2.5,
		HintTimeouts:      h.Timeouts,
		MissCeiling:       h.MissCeiling,
		CalmScreen:        "calm",
	}
}

// Hints returns the hint ladder configuration.
func (c Config) Hints() HintConfig {
	return HintConfig{Timeouts: c.HintTimeouts, MissCeiling: c.MissCeiling}
}

// Validate reports settings the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: resolution %gx%g must be positive", c.Width, c.Height)
	case c.MaxFrameDT <= 0:
		return fmt.Errorf("config: max_frame_dt %g must be positive", c.MaxFrameDT)
	case c.GovernorWindow <= 0:
		return fmt.Errorf("config: fps_window %g must be positive", c.GovernorWindow)
	case c.LowFPS > c.HighFPS:
		return fmt.Errorf("config: low_fps %g above high_fps %g", c.LowFPS, c.HighFPS)
	case c.BannerDuration <= 0 || c.EngageDuration <= 0 || c.PromptDuration <= 0 || c.CelebrateDuration <= 0:
		return fmt.Errorf("config: phase durations %g/%g/%g/%g must be positive",
			c.BannerDuration, c.EngageDuration, c.PromptDuration, c.CelebrateDuration)
	case c.CompleteDuration < 0:
		return fmt.Errorf("config: complete duration %g is negative", c.CompleteDuration)
	case c.SettleDelay < 0:
		return fmt.Errorf("config: settle_delay %g is negative", c.SettleDelay)
	case c.MissCeiling < 1:
		return fmt.Errorf("config: miss_ceiling %d must be at least 1", c.MissCeiling)
	case c.CalmScreen == "":
		return fmt.Errorf("config: calm screen name is empty")
	}
	for i, t := range c.HintTimeouts {
		if t <= 0 {
			return fmt.Errorf("config: hint timeout %d is %g, must be positive", i, t)
		}
	}
	return nil
}

// LoadConfig reads an INI file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig reads INI data over DefaultConfig. Absent keys keep their
// defaults; malformed values are errors.
//
//	[display]
//	width = 1280
//	height = 800
//
//	[loop]
//	max_frame_dt = 0.05
//	fps_window = 1
//	high_fps = 50
//	low_fps = 30
//
//	[particles]
//	capacity = 600
//	ambient_rate = 6
//
//	[phases]
//	banner = 2.5
//	engage = 1.5
//	prompt = 1.2
//	celebrate = 2.2
//	complete = 3
//	settle_delay = 0.6
//	subtitle = 2.5
//
//	[hints]
//	timeouts = 4, 5, 6, 6
//	miss_ceiling = 3
//
//	[screens]
//	calm = calm
//
//	[debug]
//	enabled = false
func ParseConfig(data []byte) (Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveSections:     true,
		InsensitiveKeys:         true,
		SkipUnrecognizableLines: false,
	}, data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := DefaultConfig()
	r := iniReader{f: f}

	r.float("display", "width", &cfg.Width)
	r.float("display", "height", &cfg.Height)

	r.float("loop", "max_frame_dt", &cfg.MaxFrameDT)
	r.float("loop", "fps_window", &cfg.GovernorWindow)
	r.float("loop", "high_fps", &cfg.HighFPS)
	r.float("loop", "low_fps", &cfg.LowFPS)

	r.int("particles", "capacity", &cfg.ParticleCapacity)
	r.float("particles", "ambient_rate", &cfg.AmbientRate)

	r.float("phases", "banner", &cfg.BannerDuration)
	r.float("phases", "engage", &cfg.EngageDuration)
	r.float("phases", "prompt", &cfg.PromptDuration)
	r.float("phases", "celebrate", &cfg.CelebrateDuration)
	r.float("phases", "complete", &cfg.CompleteDuration)
	r.float("phases", "settle_delay", &cfg.SettleDelay)
	r.float("phases", "subtitle", &cfg.SubtitleDuration)

	r.floats("hints", "timeouts", cfg.HintTimeouts[:])
	r.int("hints", "miss_ceiling", &cfg.MissCeiling)

	r.string("screens", "calm", &cfg.CalmScreen)
	r.bool("debug", "enabled", &cfg.Debug)

	if r.err != nil {
		return Config{}, r.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// iniReader copies present keys into config fields, keeping the first error.
type iniReader struct {
	f   *ini.File
	err error
}

func (r *iniReader) key(section, name string) *ini.Key {
	if r.err != nil || !r.f.HasSection(section) {
		return nil
	}
	sec := r.f.Section(section)
	if !sec.HasKey(name) {
		return nil
	}
	return sec.Key(name)
}

func (r *iniReader) fail(section, name string, err error) {
	r.err = fmt.Errorf("parse config: [%s] %s: %w", section, name, err)
}

func (r *iniReader) float(section, name string, dst *float64) {
	k := r.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Float64()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}

func (r *iniReader) int(section, name string, dst *int) {
	k := r.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Int()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}

func (r *iniReader) bool(section, name string, dst *bool) {
	k := r.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Bool()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}

func (r *iniReader) string(section, name string, dst *string) {
	if k := r.key(section, name); k != nil {
		*dst = k.String()
	}
}

func (r *iniReader) floats(section, name string, dst []float64) {
	k := r.key(section, name)
	if k == nil {
		return
	}
	vals, err := k.StrictFloat64s(",")
	if err != nil {
		r.fail(section, name, err)
		return
	}
	if len(vals) != len(dst) {
		r.fail(section, name, fmt.Errorf("want %d values, got %d", len(dst), len(vals)))
		return
	}
	copy(dst, vals)
}
