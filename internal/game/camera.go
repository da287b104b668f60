package game

type Camera struct {
	Fov    float64 // focal length in screen pixels at depth 1
	Height float64 // eye height above the ground plane

	// Screen shake.
	ShakeX, ShakeY float64
	ShakeTimer     float64
	ShakeIntensity float64
}

func NewCamera() *Camera {
	return &Camera{Fov: CameraFov, Height: CameraHeight}
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	t := c.ShakeTimer
	rr := NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = rr.RangeF(-mag, mag)
	c.ShakeY = rr.RangeF(-mag, mag)
}

// Project maps a world point to screen space through a pinhole at the
// origin: screen = world.xy * (fov/z) + center, y up in world, down on
// screen, with a fixed downward horizon bias. Points at or behind the
// camera (z <= 0) are unprojectable and must be skipped by callers.
func (c *Camera) Project(x, y, z float64, fbW, fbH int) (sx, sy float64, ok bool) {
	if z <= 0 {
		return 0, 0, false
	}
	scale := c.Fov / z
	sx = float64(fbW)*0.5 + (x+c.ShakeX)*scale
	sy = float64(fbH)*0.5 + ScreenVertBias - (y-c.Height+c.ShakeY)*scale
	return sx, sy, true
}
