package pushy

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/pushy/dragger"
)

type toolRig struct {
	app   *App
	cmd   *Commands
	input *Input
	tool  *PushPullTool
	tools *ToolContext
}

func newToolRig(t *testing.T, cfg Config) *toolRig {
	t.Helper()
	app := NewApp()
	app.UseModules(InputModule{}, HierarchyModule{}, PushPullModule{Config: cfg})

	input, ok := Resource[Input](app)
	require.True(t, ok)
	tool, ok := Resource[PushPullTool](app)
	require.True(t, ok)
	tools, ok := Resource[ToolContext](app)
	require.True(t, ok)
	return &toolRig{app: app, cmd: app.Commands(), input: input, tool: tool, tools: tools}
}

// frame runs one app step with the given input changes, then clears edges.
func (r *toolRig) frame(change func(in *Input)) {
	if change != nil {
		change(r.input)
	}
	r.app.Step()
	r.input.EndFrame()
}

func (r *toolRig) spawnPoints() EntityId {
	eid := r.cmd.AddEntity(
		NameComponent{Name: "pts"},
		NewTransform(mgl32.Vec3{}),
		NewMesh([]mgl32.Vec3{{0, 0, 0}, {2, 0, 0}}, nil),
	)
	r.cmd.AddEntity(NameComponent{Name: "persp"}, CameraComponent{Position: mgl32.Vec3{0, 0, 10}, Active: true})
	r.app.FlushCommands()
	return eid
}

func TestPushPull_PerspectiveDragEndToEnd(t *testing.T) {
	r := newToolRig(t, Config{})
	eid := r.spawnPoints()
	sel, _ := Resource[Selection](r.app)
	require.NoError(t, sel.SelectPaths("|pts.vtx[0]", "|pts.vtx[1]"))

	r.frame(func(in *Input) { in.Press(KeyD) })
	require.True(t, r.tool.Active())
	assert.Equal(t, ContextPushPull, r.tools.Current)

	r.frame(func(in *Input) {
		in.MoveMouse(100, 50)
		in.Press(MouseButtonLeft)
	})
	require.True(t, r.tool.Session().Ready())
	assert.True(t, r.tool.Session().ComponentMode())

	r.frame(func(in *Input) { in.MoveMouse(200, 50) })

	mesh, _ := GetComponent[MeshComponent](r.cmd, eid)
	vecNear(t, mgl32.Vec3{0.5, 0, -5}, mesh.Vertices[0])
	vecNear(t, mgl32.Vec3{2.5, 0, -5}, mesh.Vertices[1])

	vp, _ := Resource[Viewport](r.app)
	assert.False(t, vp.Dirty, "refresh is acknowledged at the end of the frame")
	assert.NotZero(t, vp.Revision)

	r.frame(func(in *Input) { in.Release(MouseButtonLeft) })
	assert.False(t, r.tool.Session().Ready())

	history, _ := Resource[History](r.app)
	require.Equal(t, 1, history.UndoLen())
	assert.False(t, history.IsOpen())

	r.frame(func(in *Input) { in.Release(KeyD) })
	assert.False(t, r.tool.Active())
	assert.Equal(t, ContextSelect, r.tools.Current)

	r.frame(func(in *Input) {
		in.Press(KeyControl)
		in.Press(KeyZ)
	})
	vecNear(t, mgl32.Vec3{0, 0, 0}, mesh.Vertices[0])
	vecNear(t, mgl32.Vec3{2, 0, 0}, mesh.Vertices[1])

	r.frame(func(in *Input) { in.Press(KeyY) })
	vecNear(t, mgl32.Vec3{0.5, 0, -5}, mesh.Vertices[0])
}

func TestPushPull_EmptySelectionOpensNothing(t *testing.T) {
	r := newToolRig(t, Config{})
	r.spawnPoints()

	r.frame(func(in *Input) { in.Press(KeyD) })
	r.frame(func(in *Input) { in.Press(MouseButtonLeft) })
	assert.False(t, r.tool.Session().Ready())

	r.frame(func(in *Input) { in.MoveMouse(300, 0) })
	r.frame(func(in *Input) { in.Release(MouseButtonLeft) })

	history, _ := Resource[History](r.app)
	assert.Zero(t, history.UndoLen())
	assert.False(t, history.IsOpen())
}

func TestPushPull_HotkeyReleaseMidDragClosesChunk(t *testing.T) {
	r := newToolRig(t, Config{})
	r.spawnPoints()
	sel, _ := Resource[Selection](r.app)
	require.NoError(t, sel.SelectPaths("|pts"))

	r.frame(func(in *Input) { in.Press(KeyD) })
	r.frame(func(in *Input) { in.Press(MouseButtonLeft) })
	require.True(t, r.tool.Session().Ready())
	r.frame(func(in *Input) { in.MoveMouse(50, 0) })
	r.frame(func(in *Input) { in.Release(KeyD) })

	history, _ := Resource[History](r.app)
	assert.False(t, r.tool.Session().Ready())
	assert.False(t, history.IsOpen())
	assert.Equal(t, 1, history.UndoLen())
}

func TestPushPull_PriorScaleContextCompensates(t *testing.T) {
	r := newToolRig(t, Config{})
	eid := r.spawnPoints()
	sel, _ := Resource[Selection](r.app)
	require.NoError(t, sel.SelectPaths("|pts"))

	r.frame(func(in *Input) { in.Press(KeyR) })
	assert.Equal(t, ContextScale, r.tools.Current)
	r.frame(func(in *Input) { in.Release(KeyR) })

	r.frame(func(in *Input) { in.Press(KeyD) })
	r.frame(func(in *Input) { in.Press(MouseButtonLeft) })
	require.True(t, r.tool.Session().ScaleCompensate())

	r.frame(func(in *Input) { in.MoveMouse(100, 0) })

	tr, _ := GetComponent[TransformComponent](r.cmd, eid)
	vecNear(t, mgl32.Vec3{1.5, 1.5, 1.5}, tr.Scale)
	vecNear(t, mgl32.Vec3{0, 0, -5}, tr.Position)

	r.frame(func(in *Input) {
		in.Release(MouseButtonLeft)
		in.Release(KeyD)
	})
	assert.Equal(t, ContextScale, r.tools.Current)
}

func TestPushPull_ModifierCompensates(t *testing.T) {
	r := newToolRig(t, Config{})
	r.spawnPoints()
	sel, _ := Resource[Selection](r.app)
	require.NoError(t, sel.SelectPaths("|pts"))

	r.frame(func(in *Input) { in.Press(KeyD) })
	r.frame(func(in *Input) {
		in.Press(KeyRightControl)
		in.Press(MouseButtonLeft)
	})
	assert.True(t, r.tool.Session().ScaleCompensate())
}

func TestPushPull_ConfiguredKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hotkey = "space"
	cfg.MoveKey = "nope"
	r := newToolRig(t, cfg)

	r.frame(func(in *Input) { in.Press(KeyD) })
	assert.False(t, r.tool.Active())

	r.frame(func(in *Input) { in.Press(KeySpace) })
	assert.True(t, r.tool.Active())
	r.frame(func(in *Input) { in.Release(KeySpace) })

	r.frame(func(in *Input) { in.Press(KeyW) })
	assert.Equal(t, ContextMove, r.tools.Current, "unknown keys fall back to the default binding")
}

func TestPushPull_ToolKeysIgnoredWhileActive(t *testing.T) {
	r := newToolRig(t, Config{})

	r.frame(func(in *Input) { in.Press(KeyD) })
	r.frame(func(in *Input) { in.Press(KeyW) })
	assert.Equal(t, ContextPushPull, r.tools.Current)

	r.frame(func(in *Input) { in.Release(KeyD) })
	assert.Equal(t, ContextSelect, r.tools.Current)
}

func TestPushPull_OrthoCamera(t *testing.T) {
	r := newToolRig(t, Config{})
	eid := r.cmd.AddEntity(NameComponent{Name: "box"}, NewTransform(mgl32.Vec3{1, 2, 3}))
	r.cmd.AddEntity(NameComponent{Name: "top"}, CameraComponent{Position: mgl32.Vec3{0, 50, 0}, Pitch: -90, Ortho: true})
	r.app.FlushCommands()
	sel, _ := Resource[Selection](r.app)
	sel.Set(dragger.Plain("|box"))

	r.frame(func(in *Input) { in.Press(KeyD) })
	r.frame(func(in *Input) { in.Press(MouseButtonLeft) })
	require.True(t, r.tool.Session().Ortho())
	r.frame(func(in *Input) { in.MoveMouse(100, 0) })

	// delta 0.5 * speed 2 along the view direction, straight down
	tr, _ := GetComponent[TransformComponent](r.cmd, eid)
	vecNear(t, mgl32.Vec3{1, 1, 3}, tr.Position)
}

func TestPushPull_EscapeClearsSelection(t *testing.T) {
	r := newToolRig(t, Config{})
	r.spawnPoints()
	sel, _ := Resource[Selection](r.app)
	require.NoError(t, sel.SelectPaths("|pts"))
	vp, _ := Resource[Viewport](r.app)

	r.frame(func(in *Input) { in.Press(KeyD) })
	r.frame(func(in *Input) { in.Press(KeyEscape) })
	assert.Equal(t, 1, sel.Len(), "escape does nothing while the tool is held")

	r.frame(func(in *Input) {
		in.Release(KeyEscape)
		in.Release(KeyD)
	})
	before := vp.Revision
	r.frame(func(in *Input) { in.Press(KeyEscape) })
	assert.Zero(t, sel.Len())
	assert.Greater(t, vp.Revision, before)
}
