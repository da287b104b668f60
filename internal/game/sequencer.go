package game

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// BeatEvent is published on every quarter-note boundary (step%4 == 0)
// with the exact audio-clock time the beat was scheduled for.
type BeatEvent struct {
	Time float64
	Step int
}

var musicVolume = 0.60

func SetMusicVolume(vol float64) {
	musicVolume = clampF(vol, 0, 1)
}

// Sequencer schedules the fixed 16-step drum/bass/arp pattern on a rolling
// look-ahead window anchored to the audio clock. A coarse wall-clock ticker
// only arranges future voice starts; the mix stream renders each voice at
// its exact sample offset, so playback timing is immune to ticker jitter.
type Sequencer struct {
	audio  *AudioSystem
	stream *mixStream
	player oto.Player

	bpm     float64
	running bool

	step         int
	nextStepTime float64

	beats chan BeatEvent

	quit chan struct{}
	done chan struct{}
}

func NewSequencer(audio *AudioSystem, bpm float64) *Sequencer {
	return &Sequencer{
		audio:  audio,
		stream: newMixStream(),
		bpm:    bpm,
		beats:  make(chan BeatEvent, 16),
	}
}

func (s *Sequencer) BPM() float64            { return s.bpm }
func (s *Sequencer) IsRunning() bool         { return s.running }
func (s *Sequencer) CurrentTime() float64    { return s.stream.Now() }
func (s *Sequencer) SecondsPerBeat() float64 { return 60.0 / s.bpm }
func (s *Sequencer) secondsPerStep() float64 { return 60.0 / s.bpm / StepsPerBeat }

// Beats returns the channel of scheduled beat boundaries. Drained by the
// frame loop; the buffer absorbs one look-ahead window of slack.
func (s *Sequencer) Beats() <-chan BeatEvent { return s.beats }

// Start arms the scheduler. Idempotent while running. If the audio device
// is absent or not yet ready it leaves the sequencer stopped; callers poll
// IsRunning rather than assuming success.
func (s *Sequencer) Start() {
	if s.running {
		return
	}
	if s.audio == nil || !s.audio.Ready() {
		return
	}
	if s.player == nil {
		s.player = s.audio.ctx.NewPlayer(s.stream)
		s.player.SetVolume(musicVolume)
	}

	s.step = 0
	s.nextStepTime = s.stream.Now() + StartupOffsetSec
	s.player.Play()

	s.quit = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.quit, s.done)
	s.running = true
}

// Stop cancels the scheduling loop and pauses the device. Synchronous: no
// voice is scheduled after Stop returns. The step counter is not rewound.
func (s *Sequencer) Stop() {
	if !s.running {
		return
	}
	close(s.quit)
	<-s.done
	s.player.Pause()
	s.running = false
}

func (s *Sequencer) loop(quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(SchedulerIntervalMs * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			s.schedulePending(s.stream.Now())
		}
	}
}

// schedulePending schedules every step whose target time falls below
// now+lookahead. A late tick is absorbed here: the loop catches up on all
// missed steps in one pass.
func (s *Sequencer) schedulePending(now float64) {
	horizon := now + LookaheadSec
	for s.nextStepTime < horizon {
		for _, v := range StepVoices(s.step, s.nextStepTime) {
			s.stream.Schedule(v)
		}
		if s.step%StepsPerBeat == 0 {
			select {
			case s.beats <- BeatEvent{Time: s.nextStepTime, Step: s.step}:
			default:
			}
		}
		s.nextStepTime += s.secondsPerStep()
		s.step = (s.step + 1) % PatternSteps
	}
}

// SetIntensity maps 0..1 onto the bus low-pass cutoff, log-scaled between
// the floor and Nyquist. The stream ramps toward it instead of jumping.
func (s *Sequencer) SetIntensity(x float64) {
	s.stream.SetIntensity(x)
}

// VisualizationData fills dst (VizBins bytes) with a byte-scaled
// frequency-magnitude snapshot of recent output. Cosmetic only.
func (s *Sequencer) VisualizationData(dst []byte) {
	s.stream.Visualization(dst)
}

// BassEnergy averages the low visualization bins into a 0..1 signal.
func (s *Sequencer) BassEnergy() float64 {
	var bins [VizBins]byte
	s.stream.Visualization(bins[:])
	sum := 0
	for i := 0; i < BassBins; i++ {
		sum += int(bins[i])
	}
	return float64(sum) / float64(BassBins*255)
}

// ---- Mix stream ----------------------------------------------------------

const nyquistHz = SampleRate / 2

type activeVoice struct {
	v     Voice
	start int64 // absolute sample index
}

// mixStream is the io.Reader handed to oto. It owns the audio clock (an
// atomic count of rendered frames), drains scheduled voices from a channel,
// and synthesizes each one at its exact sample offset.
type mixStream struct {
	samples atomic.Int64
	sched   chan Voice

	// Touched only from Read (oto's goroutine).
	active    []activeVoice
	seed      uint64
	cutoffCur float64
	lp        float64

	cutoffTarget atomic.Uint64 // Float64bits

	vizMu  sync.Mutex
	viz    [VizRingSize]float64
	vizPos int
}

func newMixStream() *mixStream {
	m := &mixStream{
		sched:     make(chan Voice, 64),
		seed:      0x5EED0F0F,
		cutoffCur: nyquistHz,
	}
	m.cutoffTarget.Store(math.Float64bits(nyquistHz))
	return m
}

func (m *mixStream) Now() float64 {
	return float64(m.samples.Load()) / SampleRate
}

func (m *mixStream) Schedule(v Voice) {
	select {
	case m.sched <- v:
	default:
	}
}

func (m *mixStream) SetIntensity(x float64) {
	cutoff := CutoffFloorHz * math.Pow(nyquistHz/CutoffFloorHz, clampF(x, 0, 1))
	m.cutoffTarget.Store(math.Float64bits(cutoff))
}

func (m *mixStream) Read(p []byte) (int, error) {
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}

	for {
		select {
		case v := <-m.sched:
			m.active = append(m.active, activeVoice{v: v, start: int64(v.At * SampleRate)})
		default:
			goto drained
		}
	}
drained:

	base := m.samples.Load()
	target := math.Float64frombits(m.cutoffTarget.Load())

	m.vizMu.Lock()
	for i := 0; i < frames; i++ {
		global := base + int64(i)
		s := 0.0
		for ai := range m.active {
			a := &m.active[ai]
			if global < a.start {
				continue
			}
			trig := float64(global-a.start) / SampleRate
			if trig <= a.v.Dur {
				s += voiceSample(&a.v, trig, &m.seed)
			}
		}

		// Smoothed cutoff ramp, then a one-pole low-pass on the bus.
		m.cutoffCur += (target - m.cutoffCur) * CutoffRamp
		alpha := 1 - math.Exp(-2*math.Pi*m.cutoffCur/SampleRate)
		m.lp += alpha * (s - m.lp)
		out := softSat(m.lp * 0.9)

		putStereoF32(p, i, out)
		m.viz[m.vizPos] = out
		m.vizPos = (m.vizPos + 1) % VizRingSize
	}
	m.vizMu.Unlock()

	end := base + int64(frames)
	remaining := m.active[:0]
	for _, a := range m.active {
		if a.start+int64(a.v.Dur*SampleRate) >= end {
			remaining = append(remaining, a)
		}
	}
	m.active = remaining

	m.samples.Store(end)
	return len(p), nil
}

// Visualization computes a Goertzel magnitude per log-spaced bin over the
// recent sample ring and byte-scales the result.
func (m *mixStream) Visualization(dst []byte) {
	var ring [VizRingSize]float64
	m.vizMu.Lock()
	pos := m.vizPos
	for i := 0; i < VizRingSize; i++ {
		ring[i] = m.viz[(pos+i)%VizRingSize]
	}
	m.vizMu.Unlock()

	n := len(dst)
	if n > VizBins {
		n = VizBins
	}
	for k := 0; k < n; k++ {
		frac := float64(k) / float64(VizBins-1)
		freq := VizMinHz * math.Pow(VizMaxHz/VizMinHz, frac)
		mag := goertzel(ring[:], freq)
		v := int(mag * 640)
		dst[k] = byte(clamp(v, 0, 255))
	}
}

// goertzel returns the normalized magnitude of one frequency in buf.
func goertzel(buf []float64, freq float64) float64 {
	omega := 2 * math.Pi * freq / SampleRate
	coeff := 2 * math.Cos(omega)
	var s1, s2 float64
	for _, x := range buf {
		s0 := x + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	power := s1*s1 + s2*s2 - coeff*s1*s2
	if power < 0 {
		power = 0
	}
	return math.Sqrt(power) / (float64(len(buf)) * 0.5)
}
