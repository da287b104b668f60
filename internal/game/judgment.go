package game

import "math"

// Quality classifies a judged input.
type Quality int

const (
	QualityNone Quality = iota
	QualityPerfect
	QualityGood
	QualityMiss
)

func (q Quality) String() string {
	switch q {
	case QualityPerfect:
		return "PERFECT"
	case QualityGood:
		return "GOOD"
	case QualityMiss:
		return "MISS"
	}
	return "NONE"
}

// BeatError returns the normalized distance from t to the nearest beat
// boundary: 0 exactly on the beat, 0.5 exactly between beats.
func BeatError(t, secondsPerBeat float64) float64 {
	progress := math.Mod(t, secondsPerBeat) / secondsPerBeat
	if progress < 0 {
		progress += 1
	}
	return math.Min(progress, 1-progress)
}

// Classify maps a beat error to a quality and its base points.
func Classify(err float64) (Quality, int) {
	switch {
	case err < PerfectWindow:
		return QualityPerfect, PointsPerfect
	case err < GoodWindow:
		return QualityGood, PointsGood
	default:
		return QualityMiss, 0
	}
}

// Judge scores lock attempts against the beat grid.
type Judge struct {
	seq       *Sequencer
	buildings *BuildingSystem
	feedback  *FeedbackSystem
	sparks    *ParticleSystem
	bus       *EventBus
	cam       *Camera
}

func NewJudge(seq *Sequencer, b *BuildingSystem, f *FeedbackSystem, sparks *ParticleSystem, bus *EventBus, cam *Camera) *Judge {
	return &Judge{seq: seq, buildings: b, feedback: f, sparks: sparks, bus: bus, cam: cam}
}

// HandleInput judges one lock attempt. Valid only while playing; selects the
// unlocked building nearest the judgment line, classifies the input's beat
// phase, and emits the result. A MISS leaves the building untouched, so
// spamming keeps missing the same one until it passively expires.
func (j *Judge) HandleInput(session *GameSession) {
	if session.State != StatePlaying {
		return
	}
	b := j.buildings.NearestUnlocked(JudgeLineZ)
	if b == nil {
		return
	}

	now := j.seq.CurrentTime()
	err := BeatError(now, j.seq.SecondsPerBeat())
	quality, points := Classify(err)

	switch quality {
	case QualityPerfect:
		b.Locked = true
		b.Quality = quality
		b.Height = LockedPerfectH
		j.cam.AddShake(ShakePerfect, ShakeDuration)
		j.feedback.Push("PERFECT", Palette.Perfect, b.LaneX, b.Z)
		j.sparks.SpawnBurst(b.LaneX, b.Height*BuildingMaxH, b.Z, Palette.Perfect, 42, 1.0)
	case QualityGood:
		b.Locked = true
		b.Quality = quality
		b.Height = LockedGoodH
		j.cam.AddShake(ShakeGood, ShakeDuration)
		j.feedback.Push("GOOD", Palette.Good, b.LaneX, b.Z)
		j.sparks.SpawnBurst(b.LaneX, b.Height*BuildingMaxH, b.Z, Palette.Good, 22, 0.6)
	default:
		j.cam.AddShake(ShakeMiss, ShakeDuration)
		j.feedback.Push("MISS", Palette.Miss, b.LaneX, b.Z)
	}

	j.bus.Emit(Event{Type: EventJudged, Quality: quality, Points: points, Time: now})
}
