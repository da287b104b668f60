package game

import "math"

type star struct {
	X, Y  float64 // screen fractions 0..1
	Size  float64
	Layer float64 // 0 = far, 1 = near; scales parallax and brightness
	Phase float64 // twinkle offset
}

type rainDrop struct {
	X, Y  float64 // screen fractions
	Speed float64 // fractions/sec
	Tail  float64 // trail length in pixels
}

type skyBldg struct {
	X, W, H float64 // screen fractions of width/height
}

// Background owns the decorative layers: starfield, data rain, skyline
// parallax and the scrolling horizon grid. It consumes the audio intensity
// signal but never touches gameplay state.
type Background struct {
	seed uint64
	w, h int

	stars   []star
	rain    []rainDrop
	skyline [SkylineLayers][]skyBldg

	t          float64
	gridScroll float64 // world depth units, wraps at the grid spacing
	pulse      float64 // beat flash, decays to 0
}

const gridSpacingZ = 100.0

func NewBackground(seed uint64, w, h int) *Background {
	bg := &Background{seed: seed}
	bg.Resize(w, h)
	return bg
}

// Resize re-seeds all decorative state for the new surface size.
func (bg *Background) Resize(w, h int) {
	bg.w, bg.h = w, h
	r := NewRand(bg.seed ^ uint64(w)<<20 ^ uint64(h))

	bg.stars = bg.stars[:0]
	for i := 0; i < StarCount; i++ {
		bg.stars = append(bg.stars, star{
			X:     r.Float64(),
			Y:     r.RangeF(0, 0.55), // above the horizon only
			Size:  r.RangeF(1.0, 2.6),
			Layer: r.Float64(),
			Phase: r.RangeF(0, 2*math.Pi),
		})
	}

	bg.rain = bg.rain[:0]
	for i := 0; i < RainColumns; i++ {
		bg.rain = append(bg.rain, rainDrop{
			X:     r.Float64(),
			Y:     r.Float64(),
			Speed: r.RangeF(0.25, 0.8),
			Tail:  r.RangeF(14, 40),
		})
	}

	for l := 0; l < SkylineLayers; l++ {
		bg.skyline[l] = bg.skyline[l][:0]
		x := -0.05
		for i := 0; i < SkylinePerLayer && x < 1.05; i++ {
			w := r.RangeF(0.02, 0.06)
			bg.skyline[l] = append(bg.skyline[l], skyBldg{
				X: x,
				W: w,
				H: r.RangeF(0.04, 0.13+0.05*float64(l)),
			})
			x += w + r.RangeF(0.0, 0.02)
		}
	}
}

// Update advances the decorative layers. speed is the simulation's depth
// speed so the grid scrolls in lockstep with the buildings; intensity is
// the shared audio-derived signal.
func (bg *Background) Update(dt, speed, intensity float64) {
	bg.t += dt
	bg.gridScroll = math.Mod(bg.gridScroll+speed*dt, gridSpacingZ)
	bg.pulse = approach(bg.pulse, 0, dt*2.2)

	for i := range bg.rain {
		d := &bg.rain[i]
		d.Y += d.Speed * (0.6 + 0.9*intensity) * dt
		if d.Y > 1.05 {
			d.Y = -0.05
			r := NewRand(bg.seed ^ uint64(i*7919) ^ uint64(bg.t*1000))
			d.X = r.Float64()
			d.Speed = r.RangeF(0.25, 0.8)
		}
	}
}

// OnBeat kicks the grid pulse.
func (bg *Background) OnBeat() {
	bg.pulse = 1.0
}
