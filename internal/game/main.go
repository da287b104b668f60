package game

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Options are the launch settings parsed by cmd/gridlock.
type Options struct {
	Width, Height int
	MusicVolume   float64
	SFXVolume     float64
	Seed          uint64
	VSync         bool
}

func RunDesktop(opts Options) {
	runtime.LockOSThread()

	if opts.Width <= 0 {
		opts.Width = WindowWidth
	}
	if opts.Height <= 0 {
		opts.Height = WindowHeight
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	window, err := initWindow(opts.Width, opts.Height, opts.VSync)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	SetMusicVolume(opts.MusicVolume)
	SetSFXVolume(opts.SFXVolume)

	// A dead audio device leaves the sequencer stopped forever; the menu
	// still works but PLAYING stays gated on IsRunning.
	audio, err := NewAudioSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
		audio = nil
	}

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	seq := NewSequencer(audio, TrackBPM)
	defer seq.Stop()

	bus := NewEventBus()
	session := NewGameSession()
	buildings := NewBuildingSystem(seed)
	feedback := &FeedbackSystem{}
	sparks := NewParticleSystem(seed ^ 0xB1A57)
	cam := NewCamera()
	judge := NewJudge(seq, buildings, feedback, sparks, bus, cam)

	fbW, fbH := window.GetFramebufferSize()
	bg := NewBackground(seed^0x57A6F1E1D, fbW, fbH)
	input := NewInput()

	// Reusable render buffers.
	var pointBuf, lineBuf, glowBuf []float32

	// SFX follow judgment events for the whole process lifetime.
	if audio != nil {
		bus.Subscribe(EventJudged, func(e Event) {
			switch e.Quality {
			case QualityPerfect:
				audio.PlaySound(SoundLockPerfect)
			case QualityGood:
				audio.PlaySound(SoundLockGood)
			default:
				audio.PlaySound(SoundLockMiss)
			}
		})
	}

	startRun := func() {
		buildings.Reset(splitmix64(seed ^ uint64(session.Score)))
		feedback.Clear()
		sparks.Clear()
		session.StartRun(bus)
	}

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		newW, newH := window.GetFramebufferSize()
		if newW <= 0 || newH <= 0 {
			continue
		}
		if newW != fbW || newH != fbH {
			fbW, fbH = newW, newH
			bg.Resize(fbW, fbH)
		}

		switch session.State {
		case StateMenu:
			if input.LockAttempt(window) {
				if audio != nil {
					audio.PlaySound(SoundMenuSelect)
				}
				seq.Start()
				if seq.IsRunning() {
					startRun()
				}
			}

		case StatePlaying:
			if input.LockAttempt(window) {
				judge.HandleInput(session)
			}

			seq.SetIntensity(0.35 + 0.65*session.HealthFraction())

			speed := FallbackSpeed
			intensity := 0.0
			if seq.IsRunning() {
				intensity = seq.BassEnergy()
				speed = SpeedBase + SpeedEnergy*intensity
			}
			buildings.Update(dt, speed, bus)
			feedback.Update()
			sparks.Update(dt, speed)
			bg.Update(dt, speed, intensity)

			if session.State == StateGameOver {
				// A reducer zeroed health this frame.
				session.EndRun(bus)
				seq.Stop()
				if audio != nil {
					audio.PlaySound(SoundGameOver)
				}
			}

		case StateGameOver:
			feedback.Update()
			sparks.Update(dt, 0)
			bg.Update(dt, 0, 0)
			if input.LockAttempt(window) {
				seq.Start()
				if seq.IsRunning() {
					startRun()
				}
			}
		}

		// Beat boundaries cross from the scheduler goroutine here.
	beatDrain:
		for {
			select {
			case <-seq.Beats():
				bg.OnBeat()
			default:
				break beatDrain
			}
		}

		cam.UpdateShake(dt, seed^0x5AA3E)

		rend.BeginFrame(fbW, fbH)

		pointBuf = StarSprites(bg, cam, fbW, fbH, pointBuf[:0])
		rend.DrawPoints(pointBuf, fbW, fbH, false)

		lineBuf = SkylineLines(bg, cam, fbW, fbH, lineBuf[:0])
		lineBuf = RainLines(bg, fbW, fbH, lineBuf)
		lineBuf = GridLines(cam, bg, fbW, fbH, lineBuf)
		rend.DrawLines(lineBuf, fbW, fbH, false)

		// Buildings draw back-to-front with additive neon glow.
		glowBuf = glowBuf[:0]
		for _, i := range buildings.SortedBackToFront() {
			glowBuf = BuildingLines(&buildings.B[i], cam, fbW, fbH, glowBuf)
		}
		glowBuf = JudgeLineVerts(cam, bg, fbW, fbH, glowBuf)
		rend.DrawLines(glowBuf, fbW, fbH, true)

		pointBuf = sparks.Sprites(cam, fbW, fbH, pointBuf[:0])
		rend.DrawPoints(pointBuf, fbW, fbH, true)

		RenderHUD(rend, session, seq, feedback, cam, fbW, fbH)
		rend.FlushText(fbW, fbH)

		window.SwapBuffers()
	}
}
