package game

import (
	"math"
	"testing"
)

func TestSparkBurstPopulation(t *testing.T) {
	ps := NewParticleSystem(5)
	ps.SpawnBurst(160, 300, JudgeLineZ, Palette.Perfect, 42, 1.0)
	if len(ps.P) != 42 {
		t.Fatalf("burst spawned %d sparks, want 42", len(ps.P))
	}
	for i, p := range ps.P {
		if p.MaxLife <= 0 || p.Life != 0 {
			t.Fatalf("spark %d lifetime %v/%v malformed", i, p.Life, p.MaxLife)
		}
		if p.Z != JudgeLineZ {
			t.Fatalf("spark %d depth %v, want %v", i, p.Z, float64(JudgeLineZ))
		}
	}

	ps.SpawnBurst(0, 0, JudgeLineZ, Palette.Good, 0, 1.0)
	ps.SpawnBurst(0, 0, JudgeLineZ, Palette.Good, 10, 0)
	if len(ps.P) != 42 {
		t.Fatalf("degenerate bursts added sparks: %d", len(ps.P))
	}
}

func TestSparksExpireAndStayAboveFloor(t *testing.T) {
	ps := NewParticleSystem(5)
	ps.SpawnBurst(0, 120, JudgeLineZ, Palette.Perfect, 30, 1.0)

	for i := 0; i < 120 && len(ps.P) > 0; i++ {
		ps.Update(1.0/60, 180)
		for _, p := range ps.P {
			if p.Y < sparkFloorY {
				t.Fatalf("spark fell through the floor: y=%v", p.Y)
			}
		}
	}
	if len(ps.P) != 0 {
		t.Fatalf("%d sparks alive after 2s, max lifetime is under 1s", len(ps.P))
	}
}

func TestSparksRideDepthScroll(t *testing.T) {
	ps := NewParticleSystem(5)
	ps.SpawnBurst(0, 120, 400, Palette.Good, 5, 0.5)
	ps.Update(0.1, 200)
	for _, p := range ps.P {
		if math.Abs(p.Z-380) > 1e-9 {
			t.Fatalf("spark depth %v after scroll, want 380", p.Z)
		}
	}

	ps.Clear()
	if len(ps.P) != 0 {
		t.Fatalf("Clear left %d sparks", len(ps.P))
	}
}
