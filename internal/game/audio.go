package game

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies one-shot sound effects.
type SoundKind int

const (
	SoundMenuSelect SoundKind = iota
	SoundLockPerfect
	SoundLockGood
	SoundLockMiss
	SoundGameOver
)

// AudioSystem owns the audio device. A single context serves both the
// sequencer's streaming player and fire-and-forget SFX players.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var sfxVolume = 0.55

// NewAudioSystem opens the audio device. The returned system is usable
// immediately; sounds are dropped until the device signals readiness.
func NewAudioSystem() (*AudioSystem, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &AudioSystem{ctx: ctx, ready: ready}, nil
}

// Ready reports whether the device has finished initializing.
func (a *AudioSystem) Ready() bool {
	if a == nil {
		return false
	}
	select {
	case <-a.ready:
		return true
	default:
		return false
	}
}

func SetSFXVolume(vol float64) {
	sfxVolume = clampF(vol, 0, 1)
}

// PlaySound plays a procedurally generated sound effect.
func (a *AudioSystem) PlaySound(kind SoundKind) {
	if !a.Ready() {
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := a.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// putStereoF32LR writes independent left/right samples in [-1,1].
func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}

// softSat applies gentle tanh-like saturation — no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// ---- Sound effects -------------------------------------------------------

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundMenuSelect:
		return genMenuSelect()
	case SoundLockPerfect:
		return genLockHit(880.0, 1320.0)
	case SoundLockGood:
		return genLockHit(660.0, 880.0)
	case SoundLockMiss:
		return genLockMiss()
	case SoundGameOver:
		return genGameOver()
	}
	return nil
}

// genMenuSelect: short ascending FM blip.
func genMenuSelect() []byte {
	n := int(0.10 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.5, 0.0, 0.2)
		freq := 520 + 620*p
		s := fm(t, freq, 2.0, 2.8*env) * env * 0.5
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genLockHit: bright FM bell, pitch pair selects the quality flavor.
func genLockHit(f0, f1 float64) []byte {
	n := int(0.16 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.008, 0.55, 0.0, 0.2)
		s := fm(t, f0, 2.0, 3.0*env) * env * 0.38
		s += math.Sin(2*math.Pi*f1*t) * env * env * 0.16
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genLockMiss: dull detuned thunk with a noise edge.
func genLockMiss() []byte {
	n := int(0.18 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0xBADBEA7)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 9)
		lp = lp*0.9 + lcg(&seed)*0.1
		thud := fm(t, 110, 0.5, 1.4) * math.Exp(-p*16)
		s := (lp*0.4 + thud*0.55) * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genGameOver: descending minor sweep with a long noise tail.
func genGameOver() []byte {
	n := int(1.1 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0xDEAD)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 2.4)
		freq := 440 * math.Pow(0.25, p)
		s := fm(t, freq, 1.5, 1.8*env) * env * 0.4
		s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.18
		lp = lp*0.97 + lcg(&seed)*0.03
		s += lp * p * 0.22
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
