package game

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 720
)

// Track tempo. The single hard-coded song runs at 115 BPM.
const (
	TrackBPM     = 115.0
	PatternSteps = 16 // sixteenth notes per bar
	StepsPerBeat = 4
)

// Judgment thresholds in normalized beat phase (0 = on the beat, 0.5 = max).
// Half-open intervals: [0,0.08) is PERFECT, [0.08,0.22) is GOOD.
const (
	PerfectWindow = 0.08
	GoodWindow    = 0.22
)

// Judgment points.
const (
	PointsPerfect = 1000
	PointsGood    = 500
)

// Health policy (0..100, clamped).
const (
	MaxHealth         = 100
	HealthPerfectGain = 5
	HealthMissCost    = 15
	HealthPassiveCost = 10
)

// Combo multiplier tier: +0.5x per 5 combo.
const ComboTierSize = 5

// Building field layout, in world depth units.
const (
	JudgeLineZ    = 200.0 // depth of the judgment line
	SpawnGapZ     = 400.0 // depth spacing between consecutive spawns
	RetireZ       = -50.0 // buildings behind this are destroyed
	PassiveSlackZ = 40.0  // unlocked building below JudgeLineZ-slack = missed
	MinBuildings  = 8     // keep at least this many in flight
	BuildingHalfW = 54.0  // world half-width of a building footprint
	BuildingMaxH  = 420.0 // world height for Height=1.0
	FallbackSpeed = 180.0 // depth units/sec when audio is not running
	SpeedBase     = 150.0 // depth units/sec at zero bass energy
	SpeedEnergy   = 120.0 // additional speed at full bass energy
)

// Visual height snap applied when a building locks.
const (
	LockedPerfectH = 0.95
	LockedGoodH    = 0.70
)

// laneOffsets is the fixed set of spawn lanes (world X).
var laneOffsets = [5]float64{-320, -160, 0, 160, 320}

// Camera / pinhole projection.
const (
	CameraFov      = 520.0 // focal length in screen pixels at depth 1
	CameraHeight   = 140.0 // eye height above the ground plane
	ScreenVertBias = 60.0  // fixed downward shift of the horizon
	ShakePerfect   = 9.0
	ShakeGood      = 4.5
	ShakeMiss      = 1.5
	ShakeDuration  = 0.28
)

// Feedback tokens fade by a fixed amount each frame and drift upward.
const (
	FeedbackFade  = 0.02
	FeedbackDrift = 1.2
)

// Background layer sizes.
const (
	StarCount       = 220
	RainColumns     = 48
	SkylineLayers   = 3
	SkylinePerLayer = 26
	GridRungs       = 24
)

// Audio scheduling.
const (
	SchedulerIntervalMs = 25   // coarse wall-clock timer period
	LookaheadSec        = 0.10 // schedule everything below now+lookahead
	StartupOffsetSec    = 0.08 // first step lands slightly after Start()
	MaxVoiceSec         = 0.5  // no voice instance outlives this
)

// Intensity filter: log sweep between the cutoff floor and Nyquist.
const (
	CutoffFloorHz = 200.0
	CutoffRamp    = 0.0008 // per-sample smoothing toward the target cutoff
)

// Visualization.
const (
	VizBins     = 32
	VizRingSize = 1024
	VizMinHz    = 40.0
	VizMaxHz    = 8000.0
	BassBins    = 6 // low bins averaged into the bass-energy signal
)
