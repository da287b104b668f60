package game

import (
	"math"
	"testing"
)

func TestInitialSpawnField(t *testing.T) {
	bs := NewBuildingSystem(7)
	if len(bs.B) != MinBuildings {
		t.Fatalf("initial pool = %d buildings, want %d", len(bs.B), MinBuildings)
	}
	zs := make([]float64, len(bs.B))
	for i, b := range bs.B {
		zs[i] = b.Z
		if b.Height < 0.25 || b.Height > 0.85 {
			t.Fatalf("building %d height %v outside [0.25, 0.85]", b.ID, b.Height)
		}
		if b.Locked || b.Missed {
			t.Fatalf("building %d spawned locked or missed", b.ID)
		}
		laneOK := false
		for _, x := range laneOffsets {
			if b.LaneX == x {
				laneOK = true
			}
		}
		if !laneOK {
			t.Fatalf("building %d lane %v not on the lane grid", b.ID, b.LaneX)
		}
	}
	// Spawned depth-ordered, each exactly one gap behind the previous, and
	// the nearest one at least a full gap behind the judgment line.
	if zs[0] < JudgeLineZ+SpawnGapZ {
		t.Fatalf("nearest spawn at z=%v, want >= %v", zs[0], float64(JudgeLineZ+SpawnGapZ))
	}
	for i := 1; i < len(zs); i++ {
		if gap := zs[i] - zs[i-1]; math.Abs(gap-SpawnGapZ) > 1e-9 {
			t.Fatalf("spawn gap %d->%d = %v, want %v", i-1, i, gap, float64(SpawnGapZ))
		}
	}
}

func TestUpdateAdvancesByDt(t *testing.T) {
	bs := NewBuildingSystem(7)
	bus := NewEventBus()
	before := bs.B[0].Z

	bs.Update(0.5, 200, bus)
	if got, want := bs.B[0].Z, before-100; math.Abs(got-want) > 1e-9 {
		t.Fatalf("z after update = %v, want %v", got, want)
	}
}

func TestPassiveMissReportedExactlyOnce(t *testing.T) {
	bs := &BuildingSystem{rand: NewRand(1)}
	threshold := float64(JudgeLineZ - PassiveSlackZ)
	bs.B = []Building{{ID: 1, Z: threshold + 5, Height: 0.5}}

	bus := NewEventBus()
	misses := 0
	bus.Subscribe(EventPassiveMiss, func(Event) { misses++ })

	// Many tiny steps carry the building well past the threshold; the miss
	// must be reported on the crossing frame and never again.
	for i := 0; i < 200; i++ {
		bs.Update(0.001, 100, bus)
	}
	if misses != 1 {
		t.Fatalf("passive miss reported %d times, want exactly 1", misses)
	}
}

func TestLockedBuildingNeverPassiveMisses(t *testing.T) {
	bs := &BuildingSystem{rand: NewRand(1)}
	bs.B = []Building{{ID: 1, Z: JudgeLineZ, Height: 0.5, Locked: true, Quality: QualityGood}}

	bus := NewEventBus()
	misses := 0
	bus.Subscribe(EventPassiveMiss, func(Event) { misses++ })

	for i := 0; i < 50; i++ {
		bs.Update(0.016, 200, bus)
	}
	if misses != 0 {
		t.Fatalf("locked building reported %d passive misses, want 0", misses)
	}
}

func TestRetirementAndRefill(t *testing.T) {
	bs := NewBuildingSystem(7)
	bus := NewEventBus()

	// Drive the nearest building behind the camera.
	for i := 0; i < 400; i++ {
		bs.Update(0.05, 300, bus)
		for _, b := range bs.B {
			if b.Z <= RetireZ {
				t.Fatalf("building %d at z=%v survived past retirement", b.ID, b.Z)
			}
		}
		if len(bs.B) < MinBuildings {
			t.Fatalf("pool dropped to %d buildings, want >= %d", len(bs.B), MinBuildings)
		}
	}
}

func TestSortedBackToFront(t *testing.T) {
	bs := &BuildingSystem{B: []Building{
		{ID: 1, Z: 300},
		{ID: 2, Z: 1200},
		{ID: 3, Z: 90},
		{ID: 4, Z: 700},
	}}
	idx := bs.SortedBackToFront()
	if len(idx) != 4 {
		t.Fatalf("order has %d entries, want 4", len(idx))
	}
	for i := 1; i < len(idx); i++ {
		if bs.B[idx[i-1]].Z < bs.B[idx[i]].Z {
			t.Fatalf("order not back-to-front: z %v before %v",
				bs.B[idx[i-1]].Z, bs.B[idx[i]].Z)
		}
	}
}

func TestResetReseedsPool(t *testing.T) {
	a := NewBuildingSystem(42)
	b := NewBuildingSystem(42)
	for i := range a.B {
		if a.B[i].LaneX != b.B[i].LaneX || a.B[i].Height != b.B[i].Height {
			t.Fatalf("same seed diverged at building %d", i)
		}
	}

	a.Reset(43)
	same := true
	for i := range a.B {
		if a.B[i].LaneX != b.B[i].LaneX || a.B[i].Height != b.B[i].Height {
			same = false
		}
	}
	if same {
		t.Fatal("different seed produced an identical field")
	}
}

func TestFeedbackFadeout(t *testing.T) {
	fs := &FeedbackSystem{}
	fs.Push("PERFECT", Palette.Perfect, 0, JudgeLineZ)

	frames := 0
	for len(fs.T) > 0 {
		prev := fs.T[0].Alpha
		fs.Update()
		frames++
		if len(fs.T) > 0 {
			if fs.T[0].Alpha >= prev {
				t.Fatalf("alpha did not decrease: %v -> %v", prev, fs.T[0].Alpha)
			}
			if fs.T[0].YOff <= 0 {
				t.Fatalf("token not drifting upward: YOff=%v", fs.T[0].YOff)
			}
		}
		if frames > 1000 {
			t.Fatal("token never faded out")
		}
	}
	wantFrames := int(math.Ceil(1.0 / FeedbackFade))
	if frames != wantFrames {
		t.Fatalf("token lived %d frames, want %d", frames, wantFrames)
	}

	fs.Push("GOOD", Palette.Good, 0, JudgeLineZ)
	fs.Clear()
	if len(fs.T) != 0 {
		t.Fatalf("Clear left %d tokens", len(fs.T))
	}
}
