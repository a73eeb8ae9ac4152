package pushy

import (
	"github.com/go-gl/mathgl/mgl32"
)

type HierarchyModule struct{}

func (HierarchyModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(TransformHierarchySystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

// TransformHierarchySystem keeps roots' local transforms equal to their world
// transforms and recomputes children's world transforms from their parents.
func TransformHierarchySystem(cmd *Commands) {
	MakeQuery2[LocalTransformComponent, TransformComponent](cmd).Map(func(eid EntityId, local *LocalTransformComponent, tr *TransformComponent) bool {
		if _, hasParent := GetComponent[Parent](cmd, eid); hasParent {
			return true
		}
		local.Position = tr.Position
		local.Rotation = tr.Rotation
		local.Scale = tr.Scale
		return true
	})

	// A few passes settle hierarchies of moderate depth.
	for pass := 0; pass < 8; pass++ {
		changed := false
		MakeQuery3[LocalTransformComponent, Parent, TransformComponent](cmd).Map(func(eid EntityId, local *LocalTransformComponent, parent *Parent, world *TransformComponent) bool {
			parentWorld, ok := GetComponent[TransformComponent](cmd, parent.Entity)
			if !ok {
				return true
			}

			next := composeTransform(*parentWorld, *local)
			if next != *world {
				*world = next
				changed = true
			}
			return true
		})
		if !changed {
			break
		}
	}
}

// composeTransform propagates components directly to preserve scale signs.
func composeTransform(parent TransformComponent, local LocalTransformComponent) TransformComponent {
	scaledLocalPos := mgl32.Vec3{
		local.Position.X() * parent.Scale.X(),
		local.Position.Y() * parent.Scale.Y(),
		local.Position.Z() * parent.Scale.Z(),
	}
	return TransformComponent{
		Position: parent.Position.Add(parent.Rotation.Rotate(scaledLocalPos)),
		Rotation: parent.Rotation.Mul(local.Rotation).Normalize(),
		Scale: mgl32.Vec3{
			parent.Scale.X() * local.Scale.X(),
			parent.Scale.Y() * local.Scale.Y(),
			parent.Scale.Z() * local.Scale.Z(),
		},
	}
}

// localPositionFor inverts composeTransform's position term.
func localPositionFor(parent TransformComponent, world mgl32.Vec3) mgl32.Vec3 {
	rel := parent.Rotation.Normalize().Conjugate().Rotate(world.Sub(parent.Position))
	div := func(a, b float32) float32 {
		if b == 0 {
			return 0
		}
		return a / b
	}
	return mgl32.Vec3{
		div(rel.X(), parent.Scale.X()),
		div(rel.Y(), parent.Scale.Y()),
		div(rel.Z(), parent.Scale.Z()),
	}
}
