package game

import "math"

// VoiceKind selects the instrument for a scheduled voice.
type VoiceKind uint8

const (
	VoiceKick VoiceKind = iota
	VoiceSnare
	VoiceHihat
	VoiceBass
	VoiceArp
)

// Voice is one scheduled sound event: an instrument, a pitch where it
// applies, and an absolute start time on the audio clock.
type Voice struct {
	Kind   VoiceKind
	Freq   float64
	At     float64 // audio-clock seconds
	Dur    float64 // seconds, <= MaxVoiceSec
	Vel    float64 // 0..1
}

// Fixed note tables (A minor). Indexed by step/2 within the 16-step bar.
var bassNotes = [8]float64{
	55.00, 55.00, 65.41, 55.00, // A1 A1 C2 A1
	49.00, 49.00, 82.41, 55.00, // G1 G1 E2 A1
}

var arpNotes = [8]float64{
	220.00, 261.63, 329.63, 440.00, // A3 C4 E4 A4
	329.63, 261.63, 220.00, 329.63,
}

// StepVoices returns the fixed drum/bass/arp events for one sixteenth step,
// stamped with their exact start time. Pure function of (step, at).
func StepVoices(step int, at float64) []Voice {
	step = ((step % PatternSteps) + PatternSteps) % PatternSteps
	var out []Voice

	if step%4 == 0 {
		out = append(out, Voice{Kind: VoiceKick, At: at, Dur: 0.25, Vel: 1.0})
	}
	if step == 4 || step == 12 {
		out = append(out, Voice{Kind: VoiceSnare, At: at, Dur: 0.20, Vel: 0.95})
	}
	if step%2 == 0 {
		vel := 0.6
		if step%4 == 2 {
			vel = 1.0 // off-beat accent
		}
		out = append(out, Voice{Kind: VoiceHihat, At: at, Dur: 0.06, Vel: vel})

		seq := (step / 2) % len(bassNotes)
		out = append(out,
			Voice{Kind: VoiceBass, Freq: bassNotes[seq], At: at, Dur: 0.26, Vel: 0.9},
			Voice{Kind: VoiceArp, Freq: arpNotes[seq], At: at, Dur: 0.13, Vel: 0.7},
		)
	}
	return out
}

// ---- Instruments (per-sample, time-since-trigger driven) -----------------

// kickSample: pitch-swept sine body with a transient click and short air tail.
func kickSample(trig float64) float64 {
	if trig > 0.25 {
		return 0
	}
	phase := 2 * math.Pi * 185 / 12.5 * (1 - math.Exp(-trig*12.5))
	body := math.Sin(phase) * math.Exp(-trig*18.0) * 0.80
	click := math.Sin(2*math.Pi*2100*trig) * math.Exp(-trig*250.0) * 0.24
	air := math.Sin(2*math.Pi*330*trig) * math.Exp(-trig*38.0) * 0.12
	return softSat(body + click + air)
}

// snareSample: tonal body plus band-limited noise and a high snap.
func snareSample(trig float64, seed *uint64) float64 {
	if trig > 0.2 {
		return 0
	}
	env := math.Exp(-trig * 26.0)
	body := (math.Sin(2*math.Pi*188*trig)*0.24 + math.Sin(2*math.Pi*356*trig)*0.10) * env
	n1 := lcg(seed)
	n2 := lcg(seed)
	bandNoise := (n1 - n2*0.55) * env * (0.55 + 0.25*math.Exp(-trig*8.0))
	snap := math.Sin(2*math.Pi*2800*trig) * math.Exp(-trig*120.0) * 0.10
	return softSat(body + bandNoise + snap)
}

// hihatSample: metallic partials under fast-decaying noise.
func hihatSample(trig float64, seed *uint64) float64 {
	if trig > 0.06 {
		return 0
	}
	n := lcg(seed)
	metal := math.Sin(2*math.Pi*7300*trig) + math.Sin(2*math.Pi*9200*trig)*0.6
	s := (n*0.8 + metal*0.2) * math.Exp(-trig*42.0) * 0.07
	return softSat(s)
}

// bassSample: warm FM bass, low modRatio keeps the tone smooth.
func bassSample(trig, freq, dur float64) float64 {
	env := adsr(trig/dur, 0.02, 0.45, 0.30, 0.25)
	b := fm(trig, freq, 0.5, 1.25*env) * env * 0.48
	b += math.Sin(2*math.Pi*freq*trig) * env * 0.26
	b += math.Sin(2*math.Pi*freq*0.5*trig) * env * 0.10
	return softSat(b)
}

// arpSample: plucky FM arpeggio note.
func arpSample(trig, freq, dur float64) float64 {
	env := adsr(trig/dur, 0.01, 0.40, 0.12, 0.25)
	s := fm(trig, freq, 2.0, 3.2*env) * env * 0.20
	s += math.Sin(2*math.Pi*freq*2*trig) * env * 0.08
	return softSat(s)
}

// voiceSample dispatches to the instrument for a voice at time-since-start trig.
func voiceSample(v *Voice, trig float64, seed *uint64) float64 {
	switch v.Kind {
	case VoiceKick:
		return kickSample(trig) * v.Vel
	case VoiceSnare:
		return snareSample(trig, seed) * v.Vel
	case VoiceHihat:
		return hihatSample(trig, seed) * v.Vel
	case VoiceBass:
		return bassSample(trig, v.Freq, v.Dur) * v.Vel
	case VoiceArp:
		return arpSample(trig, v.Freq, v.Dur) * v.Vel
	}
	return 0
}
