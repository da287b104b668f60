package game

import "math"

const (
	sparkGravity = 540.0
	sparkAirDrag = 2.8
	sparkFloorY  = 0.0
)

// Spark is one burst particle in world space: lane x, height y, depth z.
type Spark struct {
	X, Y, Z float64
	VX, VY  float64
	Size    float64
	Life    float64
	MaxLife float64
	Col     RGB
}

// ParticleSystem owns the lock-burst sparks. Bursts spawn at the judged
// building, ride the depth scroll with the rest of the field, fall under
// gravity and fade out.
type ParticleSystem struct {
	P    []Spark
	seed uint64
}

func NewParticleSystem(seed uint64) *ParticleSystem {
	return &ParticleSystem{seed: seed}
}

// SpawnBurst emits a radial shower at (x, y, z). intensity scales spread
// and speed so PERFECT bursts read bigger than GOOD ones.
func (ps *ParticleSystem) SpawnBurst(x, y, z float64, col RGB, count int, intensity float64) {
	if count <= 0 || intensity <= 0 {
		return
	}
	r := NewRand(splitmix64(ps.seed ^ math.Float64bits(x) ^ math.Float64bits(z)))
	for i := 0; i < count; i++ {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(60, 260) * intensity
		ps.P = append(ps.P, Spark{
			X:       x + r.RangeF(-6, 6),
			Y:       y + r.RangeF(-6, 6),
			Z:       z,
			VX:      math.Cos(ang) * spd,
			VY:      math.Abs(math.Sin(ang))*spd + r.RangeF(40, 140)*intensity,
			Size:    r.RangeF(1.5, 3.5),
			MaxLife: r.RangeF(0.35, 0.9),
			Col:     col,
		})
	}
}

// Update advances all sparks. speed is the simulation depth speed so sparks
// stay anchored to the building field as it scrolls past.
func (ps *ParticleSystem) Update(dt, speed float64) {
	if dt <= 0 {
		return
	}
	decay := math.Exp(-sparkAirDrag * dt)

	for i := 0; i < len(ps.P); {
		p := &ps.P[i]
		p.Life += dt
		if p.Life >= p.MaxLife {
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}

		p.VX *= decay
		p.VY -= sparkGravity * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Z -= speed * dt

		if p.Y < sparkFloorY {
			p.Y = sparkFloorY
			p.VY = -p.VY * 0.25
			p.VX *= 0.6
		}
		i++
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
}

// Sprites appends point verts [x y size r g b a] for every live spark.
// Sparks behind the camera are skipped.
func (ps *ParticleSystem) Sprites(cam *Camera, fbW, fbH int, buf []float32) []float32 {
	for i := range ps.P {
		p := &ps.P[i]
		sx, sy, ok := cam.Project(p.X, p.Y, p.Z, fbW, fbH)
		if !ok {
			continue
		}
		fade := 1 - p.Life/p.MaxLife
		scale := cam.Fov / p.Z
		buf = append(buf,
			float32(sx), float32(sy), float32(p.Size*scale),
			float32(p.Col.R)/255, float32(p.Col.G)/255, float32(p.Col.B)/255,
			float32(fade))
	}
	return buf
}
