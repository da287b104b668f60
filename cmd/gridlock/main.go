package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"gridlock/internal/game"
)

var (
	width    = kingpin.Flag("width", "Window width").Default("1280").Short('w').Int()
	height   = kingpin.Flag("height", "Window height").Default("720").Short('h').Int()
	musicVol = kingpin.Flag("music", "Music volume 0..1").Default("0.6").Float64()
	sfxVol   = kingpin.Flag("sfx", "Effects volume 0..1").Default("0.55").Float64()
	seed     = kingpin.Flag("seed", "Deterministic world seed (0 = clock)").Default("0").Uint64()
	noVSync  = kingpin.Flag("no-vsync", "Disable vertical sync").Bool()
)

func main() {
	kingpin.Version("1.0.0")
	kingpin.Parse()

	// Crash boundary: a fault anywhere in the frame loop lands here instead
	// of taking the terminal down mid-frame.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "gridlock crashed: %v\nrestart the game to continue\n", r)
			os.Exit(1)
		}
	}()

	game.RunDesktop(game.Options{
		Width:       *width,
		Height:      *height,
		MusicVolume: *musicVol,
		SFXVolume:   *sfxVol,
		Seed:        *seed,
		VSync:       !*noVSync,
	})
}
