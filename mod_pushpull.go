package pushy

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/pushy/dragger"
)

// PushPullModule installs the push/pull tool and the resources it works on.
// A zero Config means DefaultConfig.
type PushPullModule struct {
	Config Config
}

// PushPullTool binds a dragger.Session to the hotkey and the left mouse button.
// While the hotkey is held the tool context is "pushpull" and the dolly cursor
// is shown; a left drag pushes the selection along the camera axis.
type PushPullTool struct {
	session *dragger.Session
	host    *sceneHost
	tools   *ToolContext
	window  *WindowState
	cursor  image.Image

	hotkey   Key
	toolKeys map[Key]string

	active bool
	prior  string
	last   mgl32.Vec2
}

func (m PushPullModule) Install(app *App, cmd *Commands) {
	cfg := m.Config
	if cfg.Hotkey == "" {
		cfg = DefaultConfig()
	}
	log := app.Logger()

	tools := ensureResource(app, func() *ToolContext { return &ToolContext{Current: ContextSelect} })
	ensureResource(app, func() *History { return NewHistory(cfg.HistoryDepth) })
	host := newSceneHost(app)

	tool := &PushPullTool{
		session: dragger.NewSession(host, cfg.SessionOptions()),
		host:    host,
		tools:   tools,
		cursor:  DollyCursorImage(32),
		hotkey:  bindKey(log, "hotkey", cfg.Hotkey, KeyD),
		toolKeys: map[Key]string{
			bindKey(log, "select_key", cfg.SelectKey, KeyQ): ContextSelect,
			bindKey(log, "move_key", cfg.MoveKey, KeyW):     ContextMove,
			bindKey(log, "rotate_key", cfg.RotateKey, KeyE): ContextRotate,
			bindKey(log, "scale_key", cfg.ScaleKey, KeyR):   ContextScale,
		},
	}
	if ws, ok := Resource[WindowState](app); ok {
		tool.window = ws
	}
	app.addResources(tool)

	app.UseSystem(
		System(pushPullSystem).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(viewportSystem).
			InStage(PostRender).
			RunAlways(),
	)
}

func bindKey(log Logger, name, value string, fallback Key) Key {
	if k, ok := ParseKey(value); ok {
		return k
	}
	log.Warnf("%s: unknown key %q, using default", name, value)
	return fallback
}

func (t *PushPullTool) Active() bool {
	return t.active
}

func (t *PushPullTool) Session() *dragger.Session {
	return t.session
}

// Activate switches to the push/pull context, remembering the current one.
func (t *PushPullTool) Activate() {
	if t.active {
		return
	}
	t.active = true
	t.prior = t.tools.Current
	t.tools.Current = ContextPushPull
	if t.window != nil {
		t.window.SetCursorGlyph(dollyCursorName, t.cursor)
	}
}

// Deactivate ends any drag and restores the previous context and cursor.
func (t *PushPullTool) Deactivate() {
	if !t.active {
		return
	}
	t.session.End()
	t.active = false
	t.tools.Current = t.prior
	t.prior = ""
	if t.window != nil {
		t.window.ResetCursor()
	}
}

// Press starts a drag at point. A press that finds nothing to move leaves the
// tool idle.
func (t *PushPullTool) Press(point mgl32.Vec2, mod dragger.Modifier) error {
	t.last = point
	return t.session.Begin(dragger.Press{
		Anchor:       point,
		Modifier:     mod,
		PriorContext: t.prior,
	})
}

func (t *PushPullTool) Drag(point mgl32.Vec2) {
	if !t.session.Ready() || point == t.last {
		return
	}
	t.last = point
	t.session.Update(point)
}

func (t *PushPullTool) Release() {
	t.session.End()
}

func (t *PushPullTool) Undo() bool {
	if t.session.Ready() {
		return false
	}
	return t.host.Undo()
}

func (t *PushPullTool) Redo() bool {
	if t.session.Ready() {
		return false
	}
	return t.host.Redo()
}

// ClearSelection empties the selection. Refused while a drag is armed.
func (t *PushPullTool) ClearSelection() bool {
	if t.session.Ready() || t.host.sel.Len() == 0 {
		return false
	}
	t.host.sel.Clear()
	t.host.Refresh()
	return true
}

func pushPullSystem(cmd *Commands, input *Input, tool *PushPullTool) {
	log := cmd.App().Logger()

	if input.JustPressed[tool.hotkey] {
		tool.Activate()
		log.Debugf("push/pull on (was %q)", tool.prior)
	}

	if tool.active {
		point := mgl32.Vec2{float32(input.MouseX), float32(input.MouseY)}
		switch {
		case input.JustPressed[MouseButtonLeft]:
			mod := input.Modifier()
			if opts := tool.session.Options(); input.ModifierHeld(opts.CompensateModifier) {
				mod = opts.CompensateModifier
			}
			if err := tool.Press(point, mod); err != nil {
				log.Debugf("push/pull: %v", err)
			}
		case input.Pressed[MouseButtonLeft]:
			tool.Drag(point)
		}
		if input.JustReleased[MouseButtonLeft] {
			tool.Release()
		}
	}

	if input.JustReleased[tool.hotkey] {
		tool.Deactivate()
		log.Debugf("push/pull off, back to %q", tool.tools.Current)
		return
	}
	if tool.active {
		return
	}

	if input.ModifierHeld(dragger.ModCtrl) {
		switch {
		case input.JustPressed[KeyZ]:
			if tool.Undo() {
				log.Debugf("undo")
			}
		case input.JustPressed[KeyY]:
			if tool.Redo() {
				log.Debugf("redo")
			}
		}
		return
	}

	if input.JustPressed[KeyEscape] && tool.ClearSelection() {
		log.Debugf("selection cleared")
	}

	for k, name := range tool.toolKeys {
		if input.JustPressed[k] {
			tool.tools.Current = name
			log.Debugf("tool context %q", name)
		}
	}
}
