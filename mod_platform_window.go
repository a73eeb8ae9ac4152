package pushy

import (
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the single shared GLFW window.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
	shownTitle   string

	cursors map[string]*glfw.Cursor
}

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource. Install is idempotent: an existing
// WindowState is reused.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "pushy"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}

	ws := createWindowState(m.Width, m.Height, m.Title)
	app.addResources(ws)
	app.Logger().Infof("Created shared window (%dx%d) '%s'", m.Width, m.Height, m.Title)

	app.UseSystem(
		System(windowCloseSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
		cursors:      make(map[string]*glfw.Cursor),
	}
}

// windowCloseSystem moves a stateful app to its final state once the user
// closes the window.
func windowCloseSystem(cmd *Commands, s *WindowState) {
	if !s.windowGlfw.ShouldClose() {
		return
	}
	app := cmd.App()
	if app.stateful && app.state != app.finalState {
		cmd.ChangeState(app.finalState)
	}
}

// Title is the title currently shown, the base title until ToolTitleSystem
// first runs.
func (s *WindowState) Title() string {
	if s.shownTitle == "" {
		return s.windowTitle
	}
	return s.shownTitle
}

// ToolTitleSystem shows the current tool context in the window title.
func ToolTitleSystem(s *WindowState, tools *ToolContext) {
	title := fmt.Sprintf("%s [%s]", s.windowTitle, tools.Current)
	if title == s.shownTitle {
		return
	}
	s.shownTitle = title
	if s.windowGlfw != nil {
		s.windowGlfw.SetTitle(title)
	}
}

// SetCursorGlyph installs img as the pointer, hot spot at its centre. Glyphs
// are uploaded once per name.
func (s *WindowState) SetCursorGlyph(name string, img image.Image) {
	c, ok := s.cursors[name]
	if !ok {
		b := img.Bounds()
		c = glfw.CreateCursor(img, b.Dx()/2, b.Dy()/2)
		s.cursors[name] = c
	}
	s.windowGlfw.SetCursor(c)
}

// ResetCursor restores the system arrow.
func (s *WindowState) ResetCursor() {
	s.windowGlfw.SetCursor(nil)
}

func (s *WindowState) Destroy() {
	for _, c := range s.cursors {
		c.Destroy()
	}
	clear(s.cursors)
	s.windowGlfw.Destroy()
	glfw.Terminate()
}
