package game

import (
	"math"
	"testing"
)

func TestBeatErrorOnBoundary(t *testing.T) {
	for _, bpm := range []float64{60, 90, 115, 140, 174} {
		spb := 60.0 / bpm
		for k := 0; k < 8; k++ {
			err := BeatError(float64(k)*spb, spb)
			if err > 1e-9 {
				t.Fatalf("bpm=%v k=%d: error on boundary = %v, want 0", bpm, k, err)
			}
		}
	}
}

func TestBeatErrorPeriodicity(t *testing.T) {
	spb := 60.0 / 115.0
	for i := 0; i < 50; i++ {
		at := float64(i) * 0.0371
		a := BeatError(at, spb)
		b := BeatError(at+spb, spb)
		if math.Abs(a-b) > 1e-9 {
			t.Fatalf("error not periodic at t=%v: %v vs %v", at, a, b)
		}
	}
}

func TestBeatErrorSymmetric(t *testing.T) {
	spb := 60.0 / 115.0
	// Just before a boundary and just after must judge the same.
	a := BeatError(spb-0.02, spb)
	b := BeatError(spb+0.02, spb)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("error not symmetric around the boundary: %v vs %v", a, b)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		err    float64
		want   Quality
		points int
	}{
		{0.0, QualityPerfect, PointsPerfect},
		{0.0799999, QualityPerfect, PointsPerfect},
		{0.08, QualityGood, PointsGood},
		{0.15, QualityGood, PointsGood},
		{0.2199999, QualityGood, PointsGood},
		{0.22, QualityMiss, 0},
		{0.5, QualityMiss, 0},
	}
	for _, tc := range tests {
		q, p := Classify(tc.err)
		if q != tc.want || p != tc.points {
			t.Fatalf("Classify(%v) = %v,%d want %v,%d", tc.err, q, p, tc.want, tc.points)
		}
	}
}

func TestClassifyEndToEnd115(t *testing.T) {
	spb := 60.0 / 115.0 // ~0.5217s

	// Exactly on the kth beat: PERFECT.
	for k := 1; k <= 5; k++ {
		q, _ := Classify(BeatError(float64(k)*spb, spb))
		if q != QualityPerfect {
			t.Fatalf("input on beat %d judged %v, want PERFECT", k, q)
		}
	}

	// 150ms after a beat: progress ~0.2875 -> MISS.
	q, p := Classify(BeatError(3*spb+0.15, spb))
	if q != QualityMiss || p != 0 {
		t.Fatalf("input at beat+150ms judged %v,%d want MISS,0", q, p)
	}
}

func TestNearestUnlocked(t *testing.T) {
	bs := &BuildingSystem{B: []Building{
		{ID: 1, Z: 900},
		{ID: 2, Z: 260},
		{ID: 3, Z: 150, Locked: true},
		{ID: 4, Z: 520},
	}}
	got := bs.NearestUnlocked(JudgeLineZ)
	if got == nil || got.ID != 2 {
		t.Fatalf("NearestUnlocked picked %+v, want ID 2", got)
	}

	empty := &BuildingSystem{}
	if b := empty.NearestUnlocked(JudgeLineZ); b != nil {
		t.Fatalf("empty pool: got %+v, want nil", b)
	}

	allLocked := &BuildingSystem{B: []Building{{ID: 1, Z: 200, Locked: true}}}
	if b := allLocked.NearestUnlocked(JudgeLineZ); b != nil {
		t.Fatalf("all locked: got %+v, want nil", b)
	}
}

func newTestJudge() (*Judge, *BuildingSystem, *FeedbackSystem, *EventBus) {
	seq := NewSequencer(nil, TrackBPM)
	bs := &BuildingSystem{B: []Building{{ID: 1, Z: 230, Height: 0.5}}, rand: NewRand(1)}
	fs := &FeedbackSystem{}
	bus := NewEventBus()
	cam := NewCamera()
	sparks := NewParticleSystem(1)
	return NewJudge(seq, bs, fs, sparks, bus, cam), bs, fs, bus
}

func TestHandleInputPerfectLocksTarget(t *testing.T) {
	j, bs, fs, bus := newTestJudge()
	session := &GameSession{State: StatePlaying, Health: MaxHealth}

	var got []Event
	bus.Subscribe(EventJudged, func(e Event) { got = append(got, e) })

	// A fresh sequencer clock reads 0, which sits exactly on a beat.
	j.HandleInput(session)

	if len(got) != 1 {
		t.Fatalf("judged events = %d, want 1", len(got))
	}
	if got[0].Quality != QualityPerfect || got[0].Points != PointsPerfect {
		t.Fatalf("event = %+v, want PERFECT/%d", got[0], PointsPerfect)
	}
	b := &bs.B[0]
	if !b.Locked || b.Quality != QualityPerfect || b.Height != LockedPerfectH {
		t.Fatalf("building not locked as PERFECT: %+v", b)
	}
	if len(fs.T) != 1 || fs.T[0].Text != "PERFECT" {
		t.Fatalf("feedback = %+v, want one PERFECT token", fs.T)
	}
}

func TestHandleInputInactiveStates(t *testing.T) {
	for _, state := range []GameState{StateMenu, StateGameOver} {
		j, bs, _, bus := newTestJudge()
		session := &GameSession{State: state, Health: MaxHealth}
		fired := 0
		bus.Subscribe(EventJudged, func(Event) { fired++ })

		j.HandleInput(session)
		if fired != 0 {
			t.Fatalf("state %v: judged %d events, want 0", state, fired)
		}
		if bs.B[0].Locked {
			t.Fatalf("state %v: building locked outside PLAYING", state)
		}
	}
}

func TestHandleInputNoTargets(t *testing.T) {
	j, bs, _, bus := newTestJudge()
	bs.B = nil
	session := &GameSession{State: StatePlaying, Health: MaxHealth}
	fired := 0
	bus.Subscribe(EventJudged, func(Event) { fired++ })

	j.HandleInput(session)
	if fired != 0 {
		t.Fatalf("no targets: judged %d events, want 0", fired)
	}
}
