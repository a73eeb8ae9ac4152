package pushy

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/pushy/dragger"
)

// CameraNavModule moves cameras carrying a CameraNavComponent with Alt and the
// mouse: left button tumbles, middle tracks, right dollies. Navigation is off
// while the push/pull context is current.
type CameraNavModule struct{}

func (m CameraNavModule) Install(app *App, cmd *Commands) {
	ensureResource(app, func() *ToolContext { return &ToolContext{Current: ContextSelect} })
	ensureResource(app, func() *Viewport { return &Viewport{} })

	app.UseSystem(
		System(cameraNavInputSystem).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(cameraNavControlSystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

type CameraNavComponent struct {
	// Sensitivity is degrees of tumble per pixel.
	Sensitivity float32
	// Speed is world units of track or dolly per pixel.
	Speed float32

	Look  mgl32.Vec2
	Track mgl32.Vec2
	Dolly float32
}

func cameraNavInputSystem(cmd *Commands, input *Input, tools *ToolContext) {
	navigating := tools.Current != ContextPushPull && input.ModifierHeld(dragger.ModAlt)
	delta := mgl32.Vec2{float32(input.MouseDeltaX), float32(input.MouseDeltaY)}

	MakeQuery1[CameraNavComponent](cmd).Map(func(eid EntityId, nav *CameraNavComponent) bool {
		nav.Look = mgl32.Vec2{}
		nav.Track = mgl32.Vec2{}
		nav.Dolly = 0
		if !navigating {
			return true
		}

		switch {
		case input.Pressed[MouseButtonLeft]:
			nav.Look = delta
		case input.Pressed[MouseButtonMiddle]:
			nav.Track = delta
		case input.Pressed[MouseButtonRight]:
			nav.Dolly = delta.X() - delta.Y()
		}
		return true
	})
}

func cameraNavControlSystem(cmd *Commands, vp *Viewport) {
	moved := false

	MakeQuery2[CameraComponent, CameraNavComponent](cmd).Map(func(eid EntityId, cam *CameraComponent, nav *CameraNavComponent) bool {
		if nav.Look == (mgl32.Vec2{}) && nav.Track == (mgl32.Vec2{}) && nav.Dolly == 0 {
			return true
		}
		if nav.Sensitivity == 0 {
			nav.Sensitivity = 0.25
		}
		if nav.Speed == 0 {
			nav.Speed = 0.02
		}

		cam.Yaw += nav.Look.X() * nav.Sensitivity
		cam.Pitch -= nav.Look.Y() * nav.Sensitivity
		cam.Pitch = mgl32.Clamp(cam.Pitch, -89, 89)

		forward := cam.Forward()
		right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
		up := right.Cross(forward)

		// Track drags the scene with the pointer.
		cam.Position = cam.Position.
			Sub(right.Mul(nav.Track.X() * nav.Speed)).
			Add(up.Mul(nav.Track.Y() * nav.Speed)).
			Add(forward.Mul(nav.Dolly * nav.Speed))

		moved = true
		return true
	})

	if moved {
		vp.Refresh()
	}
}
