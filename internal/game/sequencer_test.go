package game

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSecondsPerBeat(t *testing.T) {
	tests := []struct {
		bpm  float64
		spb  float64
		step float64
	}{
		{60, 1.0, 0.25},
		{115, 60.0 / 115.0, 60.0 / 115.0 / 4},
		{120, 0.5, 0.125},
		{174, 60.0 / 174.0, 60.0 / 174.0 / 4},
	}
	for _, tc := range tests {
		s := NewSequencer(nil, tc.bpm)
		if got := s.SecondsPerBeat(); math.Abs(got-tc.spb) > 1e-12 {
			t.Fatalf("bpm=%v: SecondsPerBeat = %v, want %v", tc.bpm, got, tc.spb)
		}
		if got := s.secondsPerStep(); math.Abs(got-tc.step) > 1e-12 {
			t.Fatalf("bpm=%v: secondsPerStep = %v, want %v", tc.bpm, got, tc.step)
		}
	}
}

func hasKind(vs []Voice, k VoiceKind) bool {
	for _, v := range vs {
		if v.Kind == k {
			return true
		}
	}
	return false
}

func TestStepVoicesPattern(t *testing.T) {
	for step := 0; step < PatternSteps; step++ {
		vs := StepVoices(step, 1.5)

		if got, want := hasKind(vs, VoiceKick), step%4 == 0; got != want {
			t.Fatalf("step %d: kick = %v, want %v", step, got, want)
		}
		if got, want := hasKind(vs, VoiceSnare), step == 4 || step == 12; got != want {
			t.Fatalf("step %d: snare = %v, want %v", step, got, want)
		}
		even := step%2 == 0
		if got := hasKind(vs, VoiceHihat); got != even {
			t.Fatalf("step %d: hihat = %v, want %v", step, got, even)
		}
		if got := hasKind(vs, VoiceBass); got != even {
			t.Fatalf("step %d: bass = %v, want %v", step, got, even)
		}
		if got := hasKind(vs, VoiceArp); got != even {
			t.Fatalf("step %d: arp = %v, want %v", step, got, even)
		}

		for _, v := range vs {
			if v.At != 1.5 {
				t.Fatalf("step %d: voice %v stamped At=%v, want 1.5", step, v.Kind, v.At)
			}
			if v.Dur <= 0 || v.Dur > MaxVoiceSec {
				t.Fatalf("step %d: voice %v duration %v outside (0, %v]", step, v.Kind, v.Dur, MaxVoiceSec)
			}
		}
	}
}

func TestStepVoicesAccent(t *testing.T) {
	for step := 0; step < PatternSteps; step += 2 {
		vs := StepVoices(step, 0)
		for _, v := range vs {
			if v.Kind != VoiceHihat {
				continue
			}
			want := 0.6
			if step%4 == 2 {
				want = 1.0
			}
			if v.Vel != want {
				t.Fatalf("step %d: hihat velocity %v, want %v", step, v.Vel, want)
			}
		}
	}
}

func drainBeats(s *Sequencer) []BeatEvent {
	var out []BeatEvent
	for {
		select {
		case b := <-s.Beats():
			out = append(out, b)
		default:
			return out
		}
	}
}

func TestSchedulePendingCatchUp(t *testing.T) {
	s := NewSequencer(nil, 115)
	s.nextStepTime = 0

	// A single late call must schedule every step below now+lookahead.
	s.schedulePending(1.0)

	stepDur := s.secondsPerStep()
	wantSteps := int(math.Ceil((1.0 + LookaheadSec) / stepDur))
	if s.step != wantSteps%PatternSteps {
		t.Fatalf("after catch-up step = %d, want %d", s.step, wantSteps%PatternSteps)
	}
	if s.nextStepTime < 1.0+LookaheadSec {
		t.Fatalf("nextStepTime = %v, still below the horizon %v", s.nextStepTime, 1.0+LookaheadSec)
	}

	beats := drainBeats(s)
	if len(beats) == 0 {
		t.Fatal("no beats published during catch-up")
	}
	spb := s.SecondsPerBeat()
	for i, b := range beats {
		if b.Step%StepsPerBeat != 0 {
			t.Fatalf("beat %d published on step %d, want a multiple of %d", i, b.Step, StepsPerBeat)
		}
		wantTime := float64(i) * spb
		if math.Abs(b.Time-wantTime) > 1e-9 {
			t.Fatalf("beat %d at t=%v, want %v", i, b.Time, wantTime)
		}
	}
}

func TestSchedulePendingIdleHorizon(t *testing.T) {
	s := NewSequencer(nil, 115)
	s.nextStepTime = 0
	s.schedulePending(0.5)

	drainBeats(s)

	stepAfter, timeAfter := s.step, s.nextStepTime
	s.schedulePending(0.5)
	if s.step != stepAfter || s.nextStepTime != timeAfter {
		t.Fatalf("second call at the same clock rescheduled: step %d->%d time %v->%v",
			stepAfter, s.step, timeAfter, s.nextStepTime)
	}
	if extra := drainBeats(s); len(extra) != 0 {
		t.Fatalf("second call at the same clock published %d beats, want 0", len(extra))
	}
}

func TestSchedulePendingNoSkippedBeats(t *testing.T) {
	s := NewSequencer(nil, 115)
	s.nextStepTime = 0

	// Simulate the 25ms ticker over ~3.5 seconds of clock, draining as we go.
	var beats []BeatEvent
	for now := 0.0; now < 3.5; now += float64(SchedulerIntervalMs) / 1000 {
		s.schedulePending(now)
		beats = append(beats, drainBeats(s)...)
	}

	if len(beats) < 5 {
		t.Fatalf("got %d beats over 3.5s at 115bpm, want at least 5", len(beats))
	}
	spb := s.SecondsPerBeat()
	for i := 1; i < len(beats); i++ {
		gap := beats[i].Time - beats[i-1].Time
		if math.Abs(gap-spb) > 1e-9 {
			t.Fatalf("beat gap %d->%d is %v, want %v", i-1, i, gap, spb)
		}
		wantStep := (beats[i-1].Step + StepsPerBeat) % PatternSteps
		if beats[i].Step != wantStep {
			t.Fatalf("beat %d on step %d, want %d", i, beats[i].Step, wantStep)
		}
	}
}

func TestStartWithoutAudioDevice(t *testing.T) {
	s := NewSequencer(nil, TrackBPM)
	s.Start()
	if s.IsRunning() {
		t.Fatal("sequencer reported running with no audio device")
	}
	s.Stop() // must be a safe no-op
	if s.CurrentTime() != 0 {
		t.Fatalf("clock advanced without playback: %v", s.CurrentTime())
	}
}

func frameL(p []byte, frame int) float64 {
	bits := binary.LittleEndian.Uint32(p[frame*8:])
	return float64(math.Float32frombits(bits))
}

func TestMixStreamClock(t *testing.T) {
	m := newMixStream()
	if m.Now() != 0 {
		t.Fatalf("fresh stream clock = %v, want 0", m.Now())
	}
	buf := make([]byte, 441*8)
	if _, err := m.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got, want := m.Now(), 441.0/SampleRate; math.Abs(got-want) > 1e-12 {
		t.Fatalf("clock after 441 frames = %v, want %v", got, want)
	}
}

func TestMixStreamVoiceOffset(t *testing.T) {
	m := newMixStream()
	m.Schedule(Voice{Kind: VoiceKick, At: 0.01, Dur: 0.25, Vel: 1})

	buf := make([]byte, 882*8)
	if _, err := m.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}

	// Silence before the scheduled start sample, signal shortly after.
	for _, f := range []int{0, 100, 440} {
		if v := frameL(buf, f); v != 0 {
			t.Fatalf("frame %d = %v before voice start, want 0", f, v)
		}
	}
	if v := math.Abs(frameL(buf, 450)); v < 1e-4 {
		t.Fatalf("frame 450 = %v after voice start, want audible signal", v)
	}
}

func TestMixStreamIntensityCutoff(t *testing.T) {
	m := newMixStream()
	m.SetIntensity(0)
	if got := math.Float64frombits(m.cutoffTarget.Load()); math.Abs(got-CutoffFloorHz) > 1e-9 {
		t.Fatalf("intensity 0 cutoff = %v, want %v", got, float64(CutoffFloorHz))
	}
	m.SetIntensity(1)
	if got := math.Float64frombits(m.cutoffTarget.Load()); math.Abs(got-nyquistHz) > 1e-6 {
		t.Fatalf("intensity 1 cutoff = %v, want %v", got, float64(nyquistHz))
	}
	// Out-of-range inputs clamp.
	m.SetIntensity(4)
	if got := math.Float64frombits(m.cutoffTarget.Load()); math.Abs(got-nyquistHz) > 1e-6 {
		t.Fatalf("intensity 4 cutoff = %v, want clamp to %v", got, float64(nyquistHz))
	}
}

func TestMixStreamOutputBounded(t *testing.T) {
	m := newMixStream()
	for step := 0; step < PatternSteps; step++ {
		for _, v := range StepVoices(step, 0) {
			m.Schedule(v)
		}
	}
	buf := make([]byte, 4096*8)
	if _, err := m.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	for f := 0; f < 4096; f++ {
		if v := math.Abs(frameL(buf, f)); v > 1.0 {
			t.Fatalf("frame %d = %v, exceeds full scale", f, v)
		}
	}
}
