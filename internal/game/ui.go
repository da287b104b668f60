package game

import (
	"fmt"
	"strings"
)

// RenderHUD draws all screen-space UI: menu and game-over cards, the
// in-game score/combo/health readouts, the spectrum meter and the pilot
// overlay brackets.
func RenderHUD(r *Renderer, session *GameSession, seq *Sequencer, fs *FeedbackSystem, cam *Camera, fbW, fbH int) {
	switch session.State {
	case StateMenu:
		title := "GRIDLOCK"
		titleScale := float32(5.0)
		r.DrawString(title, fbW/2-TextWidth(title, titleScale)/2, fbH/2-130, titleScale, Palette.Horizon)

		sub := "SYNC THE CITY TO THE BEAT"
		r.DrawString(sub, fbW/2-TextWidth(sub, 1.0)/2, fbH/2-55, 1.0, Palette.HUDDim)

		msg := "PRESS SPACE TO START"
		r.DrawString(msg, fbW/2-TextWidth(msg, 1.4)/2, fbH/2+20, 1.4, Palette.HUD)

		if !seq.IsRunning() && seq.CurrentTime() == 0 {
			hint := "LOCK BUILDINGS ON THE BEAT - SPACE / ENTER / J / CLICK"
			r.DrawString(hint, fbW/2-TextWidth(hint, 0.8)/2, fbH/2+60, 0.8, Palette.HUDDim)
		}

	case StatePlaying:
		s := float32(1.1)

		scoreStr := fmt.Sprintf("SCORE %d", session.Score)
		r.DrawString(scoreStr, 14, 12, s, Palette.HUD)

		if session.Combo > 0 {
			comboStr := fmt.Sprintf("COMBO %d X%.1f", session.Combo, session.Multiplier())
			r.DrawString(comboStr, 14, 38, 0.9, Palette.Good)
		}

		bpmStr := fmt.Sprintf("%.0f BPM", seq.BPM())
		r.DrawString(bpmStr, fbW-TextWidth(bpmStr, 0.9)-14, 12, 0.9, Palette.HUDDim)

		// Health bar, bottom left.
		const barChars = 20
		frac := session.HealthFraction()
		fill := int(float64(barChars) * frac)
		bar := fmt.Sprintf("[%-*s]", barChars, strings.Repeat("#", fill))
		r.DrawString("HULL", 14, fbH-58, 0.8, Palette.HUDDim)
		r.DrawString(bar, 14, fbH-38, 1.0, HealthBarColor(frac))

		drawSpectrum(r, seq, fbW, fbH)
		drawPilotOverlay(r, cam, fbW, fbH)
		drawFeedback(r, fs, cam, fbW, fbH)

	case StateGameOver:
		title := "SIGNAL LOST"
		titleScale := float32(3.6)
		r.DrawString(title, fbW/2-TextWidth(title, titleScale)/2, fbH/2-90, titleScale, Palette.Miss)

		scoreStr := fmt.Sprintf("FINAL SCORE %d", session.Score)
		r.DrawString(scoreStr, fbW/2-TextWidth(scoreStr, 1.4)/2, fbH/2-10, 1.4, Palette.HUD)

		msg := "PRESS SPACE TO RETRY"
		r.DrawString(msg, fbW/2-TextWidth(msg, 1.1)/2, fbH/2+45, 1.1, Palette.HUDDim)
	}
}

// drawFeedback renders judgment tokens at their projected world anchor,
// drifting upward as they fade.
func drawFeedback(r *Renderer, fs *FeedbackSystem, cam *Camera, fbW, fbH int) {
	for i := range fs.T {
		t := &fs.T[i]
		sx, sy, ok := cam.Project(t.X, BuildingMaxH*0.7, t.Z, fbW, fbH)
		if !ok {
			continue
		}
		scale := float32(1.5)
		x := int(sx) - TextWidth(t.Text, scale)/2
		y := int(sy - t.YOff)
		r.DrawStringAlpha(t.Text, x, y, scale, t.Col, float32(t.Alpha))
	}
}

// drawSpectrum renders the cosmetic frequency meter along the bottom edge.
func drawSpectrum(r *Renderer, seq *Sequencer, fbW, fbH int) {
	var bins [VizBins]byte
	seq.VisualizationData(bins[:])
	x := fbW - 14 - VizBins*6
	for i, b := range bins {
		h := 3 + int(b)/18
		col := lerpRGB(Palette.Grid, Palette.Horizon, float64(b)/255.0)
		for yy := 0; yy < h; yy += 4 {
			r.DrawChar('-', float32(x+i*6), float32(fbH-30-yy), 0.7, col, 0.8)
		}
	}
}

// drawPilotOverlay renders cockpit corner brackets that jitter with the
// camera shake.
func drawPilotOverlay(r *Renderer, cam *Camera, fbW, fbH int) {
	jx := int(cam.ShakeX * 0.5)
	jy := int(cam.ShakeY * 0.5)
	col := Palette.HUDDim
	r.DrawString("[", 40+jx, 70+jy, 2.0, col)
	r.DrawString("]", fbW-52+jx, 70+jy, 2.0, col)
	r.DrawString("[", 40+jx, fbH-90+jy, 2.0, col)
	r.DrawString("]", fbW-52+jx, fbH-90+jy, 2.0, col)
}
