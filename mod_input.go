package pushy

import (
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/pushy/dragger"
)

// Key indexes Input's state arrays. Mouse buttons share the space with keys.
type Key int

const (
	KeyA Key = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyShift
	KeyRightShift
	KeyControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

type InputModule struct{}

type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64

	WindowWidth, WindowHeight int
}

// Install adds the Input resource and, when a window exists, the polling
// system. Without a window Input is driven by hand.
func (mod InputModule) Install(app *App, cmd *Commands) {
	ensureResource(app, func() *Input { return &Input{} })
	if _, ok := Resource[WindowState](app); !ok {
		return
	}
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

// Press records a key going down this frame.
func (input *Input) Press(k Key) {
	if !input.Pressed[k] {
		input.JustPressed[k] = true
	}
	input.Pressed[k] = true
}

func (input *Input) Release(k Key) {
	if input.Pressed[k] {
		input.JustReleased[k] = true
	}
	input.Pressed[k] = false
}

// EndFrame clears the edge flags.
func (input *Input) EndFrame() {
	input.JustPressed = [256]bool{}
	input.JustReleased = [256]bool{}
}

// MoveMouse sets the pointer position and its delta from the last position.
func (input *Input) MoveMouse(x, y float64) {
	input.MouseDeltaX = x - input.MouseX
	input.MouseDeltaY = y - input.MouseY
	input.MouseX, input.MouseY = x, y
}

func (input *Input) ModifierHeld(m dragger.Modifier) bool {
	switch m {
	case dragger.ModShift:
		return input.Pressed[KeyShift] || input.Pressed[KeyRightShift]
	case dragger.ModCtrl:
		return input.Pressed[KeyControl] || input.Pressed[KeyRightControl]
	case dragger.ModAlt:
		return input.Pressed[KeyLeftAlt] || input.Pressed[KeyRightAlt]
	}
	return false
}

// Modifier reports the held modifier, preferring Ctrl, then Shift, then Alt.
func (input *Input) Modifier() dragger.Modifier {
	for _, m := range []dragger.Modifier{dragger.ModCtrl, dragger.ModShift, dragger.ModAlt} {
		if input.ModifierHeld(m) {
			return m
		}
	}
	return dragger.ModNone
}

func inputSystem(s *WindowState, input *Input) {
	input.EndFrame()
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		switch s.windowGlfw.GetKey(glfwKey) {
		case glfw.Press, glfw.Repeat:
			input.Press(key)
		case glfw.Release:
			input.Release(key)
		}
	}

	input.MoveMouse(s.windowGlfw.GetCursorPos())
	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()

	for key, glfwBtn := range mouseToGlfw {
		switch s.windowGlfw.GetMouseButton(glfwBtn) {
		case glfw.Press:
			input.Press(key)
		case glfw.Release:
			input.Release(key)
		}
	}
}

var keyNames = map[string]Key{
	"a": KeyA, "b": KeyB, "c": KeyC, "d": KeyD, "e": KeyE, "f": KeyF, "g": KeyG,
	"h": KeyH, "i": KeyI, "j": KeyJ, "k": KeyK, "l": KeyL, "m": KeyM, "n": KeyN,
	"o": KeyO, "p": KeyP, "q": KeyQ, "r": KeyR, "s": KeyS, "t": KeyT, "u": KeyU,
	"v": KeyV, "w": KeyW, "x": KeyX, "y": KeyY, "z": KeyZ,
	"0": Key0, "1": Key1, "2": Key2, "3": Key3, "4": Key4,
	"5": Key5, "6": Key6, "7": Key7, "8": Key8, "9": Key9,
	"space":     KeySpace,
	"enter":     KeyEnter,
	"escape":    KeyEscape,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"f1":        KeyF1,
	"f2":        KeyF2,
	"f3":        KeyF3,
	"f4":        KeyF4,
}

// ParseKey maps a config key name such as "d" or "space" to a Key.
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

var keyToGlfw = map[Key]glfw.Key{
	KeyA:            glfw.KeyA,
	KeyB:            glfw.KeyB,
	KeyC:            glfw.KeyC,
	KeyD:            glfw.KeyD,
	KeyE:            glfw.KeyE,
	KeyF:            glfw.KeyF,
	KeyG:            glfw.KeyG,
	KeyH:            glfw.KeyH,
	KeyI:            glfw.KeyI,
	KeyJ:            glfw.KeyJ,
	KeyK:            glfw.KeyK,
	KeyL:            glfw.KeyL,
	KeyM:            glfw.KeyM,
	KeyN:            glfw.KeyN,
	KeyO:            glfw.KeyO,
	KeyP:            glfw.KeyP,
	KeyQ:            glfw.KeyQ,
	KeyR:            glfw.KeyR,
	KeyS:            glfw.KeyS,
	KeyT:            glfw.KeyT,
	KeyU:            glfw.KeyU,
	KeyV:            glfw.KeyV,
	KeyW:            glfw.KeyW,
	KeyX:            glfw.KeyX,
	KeyY:            glfw.KeyY,
	KeyZ:            glfw.KeyZ,
	Key0:            glfw.Key0,
	Key1:            glfw.Key1,
	Key2:            glfw.Key2,
	Key3:            glfw.Key3,
	Key4:            glfw.Key4,
	Key5:            glfw.Key5,
	Key6:            glfw.Key6,
	Key7:            glfw.Key7,
	Key8:            glfw.Key8,
	Key9:            glfw.Key9,
	KeySpace:        glfw.KeySpace,
	KeyEnter:        glfw.KeyEnter,
	KeyEscape:       glfw.KeyEscape,
	KeyTab:          glfw.KeyTab,
	KeyBackspace:    glfw.KeyBackspace,
	KeyDelete:       glfw.KeyDelete,
	KeyF1:           glfw.KeyF1,
	KeyF2:           glfw.KeyF2,
	KeyF3:           glfw.KeyF3,
	KeyF4:           glfw.KeyF4,
	KeyShift:        glfw.KeyLeftShift,
	KeyRightShift:   glfw.KeyRightShift,
	KeyControl:      glfw.KeyLeftControl,
	KeyRightControl: glfw.KeyRightControl,
	KeyLeftAlt:      glfw.KeyLeftAlt,
	KeyRightAlt:     glfw.KeyRightAlt,
}

var mouseToGlfw = map[Key]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
