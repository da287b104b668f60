package game

import "math"

const buildingHalfD = 40.0

func pushLine(buf []float32, x0, y0, x1, y1 float64, col RGB, alpha float64) []float32 {
	r := float32(col.R) / 255.0
	g := float32(col.G) / 255.0
	b := float32(col.B) / 255.0
	a := float32(alpha)
	return append(buf,
		float32(x0), float32(y0), r, g, b, a,
		float32(x1), float32(y1), r, g, b, a,
	)
}

// horizonY is the vanishing height of the ground plane for the current
// framebuffer: the limit of projected ground points as depth goes to
// infinity.
func horizonY(fbH int) float64 {
	return float64(fbH)*0.5 + ScreenVertBias
}

// GridLines builds the scrolling perspective floor grid. Horizontal rungs
// advance with the simulation; the whole grid blends toward the pulse
// colour on each beat.
func GridLines(cam *Camera, bg *Background, fbW, fbH int, buf []float32) []float32 {
	col := lerpRGB(Palette.Grid, Palette.GridPulse, bg.pulse)
	const gridHalfW = 900.0

	for k := 1; k <= GridRungs; k++ {
		z := float64(k)*gridSpacingZ - bg.gridScroll
		if z <= 0 {
			continue
		}
		x0, y0, ok0 := cam.Project(-gridHalfW, 0, z, fbW, fbH)
		x1, y1, ok1 := cam.Project(gridHalfW, 0, z, fbW, fbH)
		if !ok0 || !ok1 {
			continue
		}
		// Fade rungs out toward the horizon.
		alpha := clampF(1.2-z/(float64(GridRungs)*gridSpacingZ), 0.08, 0.8)
		buf = pushLine(buf, x0, y0, x1, y1, col, alpha)
	}

	farZ := float64(GridRungs) * gridSpacingZ
	for lane := -gridHalfW; lane <= gridHalfW; lane += 150 {
		x0, y0, ok0 := cam.Project(lane, 0, 30, fbW, fbH)
		x1, y1, ok1 := cam.Project(lane, 0, farZ, fbW, fbH)
		if !ok0 || !ok1 {
			continue
		}
		buf = pushLine(buf, x0, y0, x1, y1, col, 0.35)
	}
	return buf
}

// JudgeLineVerts builds the judgment line stretched across the play field,
// flashing with the beat pulse.
func JudgeLineVerts(cam *Camera, bg *Background, fbW, fbH int, buf []float32) []float32 {
	x0, y0, ok0 := cam.Project(-600, 0, JudgeLineZ, fbW, fbH)
	x1, y1, ok1 := cam.Project(600, 0, JudgeLineZ, fbW, fbH)
	if !ok0 || !ok1 {
		return buf
	}
	alpha := 0.5 + 0.5*bg.pulse
	buf = pushLine(buf, x0, y0, x1, y1, Palette.JudgeLine, alpha)
	// End ticks.
	buf = pushLine(buf, x0, y0-8, x0, y0+8, Palette.JudgeLine, alpha)
	buf = pushLine(buf, x1, y1-8, x1, y1+8, Palette.JudgeLine, alpha)
	return buf
}

// buildingColor picks the wireframe colour for a building's state.
func buildingColor(b *Building) (RGB, float64) {
	switch {
	case b.Locked && b.Quality == QualityPerfect:
		return Palette.Perfect, 1.0
	case b.Locked && b.Quality == QualityGood:
		return Palette.Good, 1.0
	case b.Missed:
		return Palette.Miss, 0.45
	}
	// Brighten as the building approaches the judgment line.
	prox := clampF(1.0-math.Abs(b.Z-JudgeLineZ)/800.0, 0, 1)
	return lerpRGB(Palette.Building, Palette.BuildingHi, prox), 0.55 + 0.45*prox
}

// BuildingLines builds the wireframe box for one building. Buildings whose
// near face has crossed the camera plane are skipped entirely.
func BuildingLines(b *Building, cam *Camera, fbW, fbH int, buf []float32) []float32 {
	zNear := b.Z - buildingHalfD
	zFar := b.Z + buildingHalfD
	if zNear <= 0 {
		return buf
	}

	h := b.Height * BuildingMaxH
	xs := [2]float64{b.LaneX - BuildingHalfW, b.LaneX + BuildingHalfW}
	ys := [2]float64{0, h}
	zs := [2]float64{zNear, zFar}

	// Project the 8 corners; corner[i][j][k] = (xs[i], ys[j], zs[k]).
	var px, py [2][2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				sx, sy, ok := cam.Project(xs[i], ys[j], zs[k], fbW, fbH)
				if !ok {
					return buf
				}
				px[i][j][k] = sx
				py[i][j][k] = sy
			}
		}
	}

	col, alpha := buildingColor(b)
	edge := func(i0, j0, k0, i1, j1, k1 int) {
		buf = pushLine(buf, px[i0][j0][k0], py[i0][j0][k0], px[i1][j1][k1], py[i1][j1][k1], col, alpha)
	}

	// Verticals.
	edge(0, 0, 0, 0, 1, 0)
	edge(1, 0, 0, 1, 1, 0)
	edge(0, 0, 1, 0, 1, 1)
	edge(1, 0, 1, 1, 1, 1)
	// Roof.
	edge(0, 1, 0, 1, 1, 0)
	edge(0, 1, 1, 1, 1, 1)
	edge(0, 1, 0, 0, 1, 1)
	edge(1, 1, 0, 1, 1, 1)
	// Base.
	edge(0, 0, 0, 1, 0, 0)
	edge(0, 0, 1, 1, 0, 1)
	edge(0, 0, 0, 0, 0, 1)
	edge(1, 0, 0, 1, 0, 1)
	return buf
}

// SkylineLines builds the far silhouette layers with a small parallax
// response to camera shake.
func SkylineLines(bg *Background, cam *Camera, fbW, fbH int, buf []float32) []float32 {
	hy := horizonY(fbH)
	cols := [SkylineLayers]RGB{Palette.SkylineFar, Palette.SkylineMid, Palette.SkylineNr}
	for l := 0; l < SkylineLayers; l++ {
		parallax := cam.ShakeX * (0.15 + 0.2*float64(l))
		for _, sb := range bg.skyline[l] {
			x0 := sb.X*float64(fbW) + parallax
			x1 := x0 + sb.W*float64(fbW)
			top := hy - sb.H*float64(fbH)
			buf = pushLine(buf, x0, hy, x0, top, cols[l], 0.9)
			buf = pushLine(buf, x0, top, x1, top, cols[l], 0.9)
			buf = pushLine(buf, x1, top, x1, hy, cols[l], 0.9)
		}
	}
	return buf
}

// RainLines builds the data-rain streaks.
func RainLines(bg *Background, fbW, fbH int, buf []float32) []float32 {
	for i := range bg.rain {
		d := &bg.rain[i]
		x := d.X * float64(fbW)
		y := d.Y * float64(fbH)
		buf = pushLine(buf, x, y-d.Tail, x, y, Palette.Rain, 0.25)
	}
	return buf
}

// StarSprites builds the twinkling starfield points.
func StarSprites(bg *Background, cam *Camera, fbW, fbH int, buf []float32) []float32 {
	for i := range bg.stars {
		s := &bg.stars[i]
		tw := 0.55 + 0.45*math.Sin(bg.t*(1.2+s.Layer)+s.Phase)
		x := s.X*float64(fbW) + cam.ShakeX*(0.1+0.15*s.Layer)
		y := s.Y * float64(fbH)
		alpha := tw * (0.3 + 0.7*s.Layer)
		buf = append(buf,
			float32(x), float32(y), float32(s.Size),
			float32(Palette.Star.R)/255.0,
			float32(Palette.Star.G)/255.0,
			float32(Palette.Star.B)/255.0,
			float32(alpha),
		)
	}
	return buf
}
