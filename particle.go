package playtime

import (
	"math"
	"math/rand/v2"
)

// Particle is one short-lived, physics-integrated visual point. The exported
// fields are the initial state passed to Spawn and the live state afterwards.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Color  Color
	Size   float64
	// Age and Lifetime are in seconds. The particle is removed once Age
	// reaches Lifetime.
	Age, Lifetime float64
	// Drag is the fraction of velocity kept per 1/60 s. 1 means no damping.
	// Values outside [0, 1] are not clamped.
	Drag float64
	// Gravity is the downward acceleration in px/s². Negative values rise.
	Gravity float64
	// FadeOut scales alpha by remaining life; Shrink scales size.
	FadeOut bool
	Shrink  bool
}

// Life returns the remaining fraction of the particle's lifetime in [0, 1].
func (p *Particle) Life() float64 {
	if p.Lifetime <= 0 {
		return 0
	}
	return clamp01(1 - p.Age/p.Lifetime)
}

// RenderSize is the drawn radius, shrunk with remaining life when Shrink is set.
func (p *Particle) RenderSize() float64 {
	s := max(p.Size, 0)
	if p.Shrink {
		s *= p.Life()
	}
	return s
}

// Alpha is the drawn opacity, faded with remaining life when FadeOut is set.
func (p *Particle) Alpha() float64 {
	a := clamp01(p.Color.A)
	if p.FadeOut {
		a *= p.Life()
	}
	return a
}

// SpawnRate is the shared particle density multiplier. The Governor is its
// only writer; every probabilistic spawn site reads it through MaybeSpawn.
// Pools share one SpawnRate by injection so separate pools (in tests, say)
// never interfere.
type SpawnRate struct {
	mult float64
}

// NewSpawnRate returns a multiplier at full density.
func NewSpawnRate() *SpawnRate {
	return &SpawnRate{mult: 1}
}

// Multiplier returns the current multiplier. A nil SpawnRate reads as 1.
func (r *SpawnRate) Multiplier() float64 {
	if r == nil {
		return 1
	}
	return r.mult
}

// Set stores a new multiplier.
func (r *SpawnRate) Set(m float64) {
	r.mult = m
}

const defaultParticleCapacity = 512

// ParticlePool is a fixed-capacity ring of particles. When full, spawning
// evicts the oldest particle so the newest request is always visible.
type ParticlePool struct {
	buf     []Particle
	head    int // index of the oldest particle
	n       int // live particles
	evicted int
	rate    *SpawnRate
	rng     *rand.Rand
}

// NewParticlePool creates a pool with room for capacity particles reading the
// given spawn rate. Capacity <= 0 uses a default of 512; a nil rate creates a
// private one at full density.
func NewParticlePool(capacity int, rate *SpawnRate) *ParticlePool {
	if capacity <= 0 {
		capacity = defaultParticleCapacity
	}
	if rate == nil {
		rate = NewSpawnRate()
	}
	return &ParticlePool{
		buf:  make([]Particle, capacity),
		rate: rate,
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Seed makes the pool's randomness reproducible.
func (pp *ParticlePool) Seed(seed uint64) {
	pp.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Rate returns the pool's spawn rate.
func (pp *ParticlePool) Rate() *SpawnRate { return pp.rate }

// Len returns the number of live particles.
func (pp *ParticlePool) Len() int { return pp.n }

// Capacity returns the maximum number of live particles.
func (pp *ParticlePool) Capacity() int { return len(pp.buf) }

// Evicted returns how many particles have been evicted to make room since the
// pool was created.
func (pp *ParticlePool) Evicted() int { return pp.evicted }

func (pp *ParticlePool) at(i int) *Particle {
	return &pp.buf[(pp.head+i)%len(pp.buf)]
}

// Spawn adds p to the pool and returns a pointer to the stored particle,
// valid until the next Spawn or Update.
func (pp *ParticlePool) Spawn(p Particle) *Particle {
	if pp.n == len(pp.buf) {
		pp.head = (pp.head + 1) % len(pp.buf)
		pp.n--
		pp.evicted++
	}
	slot := pp.at(pp.n)
	*slot = p
	pp.n++
	return slot
}

// Burst spawns count particles radiating from (x, y) in random directions
// with speeds up to speed px/s.
func (pp *ParticlePool) Burst(x, y float64, count int, c Color, speed, lifetime float64) {
	for i := 0; i < count; i++ {
		angle := pp.rng.Float64() * 2 * math.Pi
		mag := speed * (0.3 + 0.7*pp.rng.Float64())
		pp.Spawn(Particle{
			X:        x,
			Y:        y,
			VX:       math.Cos(angle) * mag,
			VY:       math.Sin(angle) * mag,
			Color:    c,
			Size:     3 + pp.rng.Float64()*5,
			Lifetime: lifetime * (0.7 + 0.3*pp.rng.Float64()),
			Drag:     0.95,
			Gravity:  220,
			FadeOut:  true,
			Shrink:   true,
		})
	}
}

// Flame spawns a small upward stream at (x, y) colored from palette. It is
// meant to be called repeatedly (usually through MaybeSpawn), not once.
func (pp *ParticlePool) Flame(x, y float64, count int, palette []Color, spread float64) {
	for i := 0; i < count; i++ {
		c := ColorWhite
		if len(palette) > 0 {
			c = palette[pp.rng.IntN(len(palette))]
		}
		pp.Spawn(Particle{
			X:        x + (pp.rng.Float64()*2-1)*spread*0.25,
			Y:        y,
			VX:       (pp.rng.Float64()*2 - 1) * spread,
			VY:       -60 - pp.rng.Float64()*60,
			Color:    c,
			Size:     2 + pp.rng.Float64()*4,
			Lifetime: 0.4 + pp.rng.Float64()*0.4,
			Drag:     0.97,
			Gravity:  -40,
			FadeOut:  true,
			Shrink:   true,
		})
	}
}

// MaybeSpawn calls fn with probability perSecond*dt scaled by the spawn rate
// multiplier, and reports whether it did.
func (pp *ParticlePool) MaybeSpawn(perSecond, dt float64, fn func()) bool {
	chance := perSecond * dt * pp.rate.Multiplier()
	if chance <= 0 || pp.rng.Float64() >= chance {
		return false
	}
	fn()
	return true
}

// Update integrates every particle by dt seconds and removes expired ones,
// keeping spawn order.
func (pp *ParticlePool) Update(dt float64) {
	w := 0
	for i := 0; i < pp.n; i++ {
		p := *pp.at(i)
		p.VY += p.Gravity * dt
		if p.Drag != 1 {
			damp := math.Pow(p.Drag, dt*60)
			p.VX *= damp
			p.VY *= damp
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Age += dt
		if p.Age >= p.Lifetime {
			continue
		}
		*pp.at(w) = p
		w++
	}
	pp.n = w
}

// Render draws every live particle as a filled circle.
func (pp *ParticlePool) Render(s Surface) {
	for i := 0; i < pp.n; i++ {
		p := pp.at(i)
		if p.Age >= p.Lifetime {
			continue
		}
		r := p.RenderSize()
		a := p.Alpha()
		if r <= 0 || a <= 0 {
			continue
		}
		c := p.Color
		c.A = a
		s.FillCircle(p.X, p.Y, r, c)
	}
}

// Each calls fn for every live particle from oldest to newest.
func (pp *ParticlePool) Each(fn func(p *Particle)) {
	for i := 0; i < pp.n; i++ {
		fn(pp.at(i))
	}
}

// Clear removes all particles.
func (pp *ParticlePool) Clear() {
	pp.head = 0
	pp.n = 0
}
