package game

import "github.com/go-gl/glfw/v3.3/glfw"

// lockKeys is the fixed set of keys that attempt a lock.
var lockKeys = [3]glfw.Key{glfw.KeySpace, glfw.KeyEnter, glfw.KeyJ}

type Input struct {
	prevMouse map[glfw.MouseButton]bool
	prevKeys  map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

// LockAttempt reports one discrete lock input: any lock key edge or a left
// click. Every key's edge state is advanced even after a hit so holds don't
// re-trigger on the next frame.
func (in *Input) LockAttempt(window *glfw.Window) bool {
	hit := false
	for _, k := range lockKeys {
		if in.JustPressed(window, k) {
			hit = true
		}
	}
	if in.JustClicked(window, glfw.MouseButtonLeft) {
		hit = true
	}
	return hit
}
