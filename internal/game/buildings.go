package game

import "math"

// Building is one lockable target advancing toward the judgment line.
type Building struct {
	ID      int
	Height  float64 // 0..1, scaled by BuildingMaxH for rendering
	Z       float64 // depth, decreasing toward the camera
	LaneX   float64
	Locked  bool
	Quality Quality
	Missed  bool // passive miss already reported
}

// BuildingSystem owns the target pool: spawning, advancement, retirement
// and passive-miss detection.
type BuildingSystem struct {
	B      []Building
	nextID int
	rand   *Rand
}

func NewBuildingSystem(seed uint64) *BuildingSystem {
	bs := &BuildingSystem{rand: NewRand(seed)}
	bs.fill()
	return bs
}

// Reset clears the pool and respawns the initial field.
func (bs *BuildingSystem) Reset(seed uint64) {
	bs.B = bs.B[:0]
	bs.rand = NewRand(seed)
	bs.fill()
}

func (bs *BuildingSystem) spawn(z float64) {
	bs.nextID++
	bs.B = append(bs.B, Building{
		ID:     bs.nextID,
		Height: bs.rand.RangeF(0.25, 0.85),
		Z:      z,
		LaneX:  laneOffsets[bs.rand.Intn(len(laneOffsets))],
	})
}

// fill tops the pool up to MinBuildings, each SpawnGapZ behind the deepest.
func (bs *BuildingSystem) fill() {
	deepest := JudgeLineZ + SpawnGapZ
	for i := range bs.B {
		if bs.B[i].Z > deepest {
			deepest = bs.B[i].Z
		}
	}
	for len(bs.B) < MinBuildings {
		deepest += SpawnGapZ
		bs.spawn(deepest)
	}
}

// Update advances all buildings by speed*dt, reports passive misses exactly
// once each, retires buildings behind the camera and refills the pool.
func (bs *BuildingSystem) Update(dt, speed float64, bus *EventBus) {
	for i := range bs.B {
		b := &bs.B[i]
		b.Z -= speed * dt
		if !b.Locked && !b.Missed && b.Z < JudgeLineZ-PassiveSlackZ {
			b.Missed = true
			bus.Emit(Event{Type: EventPassiveMiss})
		}
	}

	alive := bs.B[:0]
	for _, b := range bs.B {
		if b.Z > RetireZ {
			alive = append(alive, b)
		}
	}
	bs.B = alive
	bs.fill()
}

// NearestUnlocked returns the unlocked building closest to lineZ by
// absolute depth distance, or nil when none exist.
func (bs *BuildingSystem) NearestUnlocked(lineZ float64) *Building {
	var best *Building
	bestDist := math.MaxFloat64
	for i := range bs.B {
		b := &bs.B[i]
		if b.Locked {
			continue
		}
		d := math.Abs(b.Z - lineZ)
		if d < bestDist {
			bestDist = d
			best = b
		}
	}
	return best
}

// SortedBackToFront returns indices into B ordered farthest depth first, so
// nearer buildings draw over farther ones.
func (bs *BuildingSystem) SortedBackToFront() []int {
	idx := make([]int, len(bs.B))
	for i := range idx {
		idx[i] = i
	}
	// Insertion sort: the pool is small and nearly sorted every frame.
	for i := 1; i < len(idx); i++ {
		j := i
		for j > 0 && bs.B[idx[j-1]].Z < bs.B[idx[j]].Z {
			idx[j-1], idx[j] = idx[j], idx[j-1]
			j--
		}
	}
	return idx
}

// ---- Feedback tokens -----------------------------------------------------

// FeedbackToken is a transient result label anchored to a world position.
type FeedbackToken struct {
	Text  string
	Col   RGB
	X, Z  float64 // world lane and depth at the moment of judgment
	YOff  float64 // upward drift in screen pixels
	Alpha float64
}

type FeedbackSystem struct {
	T []FeedbackToken
}

func (fs *FeedbackSystem) Push(text string, col RGB, x, z float64) {
	fs.T = append(fs.T, FeedbackToken{Text: text, Col: col, X: x, Z: z, Alpha: 1.0})
}

// Update fades each token by a fixed per-frame amount and drifts it upward;
// fully faded tokens are cleared.
func (fs *FeedbackSystem) Update() {
	alive := fs.T[:0]
	for _, t := range fs.T {
		t.Alpha -= FeedbackFade
		t.YOff += FeedbackDrift
		if t.Alpha > 0 {
			alive = append(alive, t)
		}
	}
	fs.T = alive
}

func (fs *FeedbackSystem) Clear() {
	fs.T = fs.T[:0]
}
