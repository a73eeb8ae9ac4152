package pushy

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TransformComponent is the entity's world transform.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// LocalTransformComponent is relative to the Parent entity; HierarchyModule
// derives TransformComponent from it.
type LocalTransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

type Parent struct {
	Entity EntityId
}

// NameComponent gives an entity a path segment. Unnamed entities are not
// addressable by the push/pull tool.
type NameComponent struct {
	Name string
}

func NewTransform(pos mgl32.Vec3) TransformComponent {
	return TransformComponent{Position: pos, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// ObjectToWorld is T * R * S.
func (t TransformComponent) ObjectToWorld() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Normalize().Mat4()).Mul4(scale)
}

// WorldToObject inverts ObjectToWorld. Zero scale axes collapse to zero.
func (t TransformComponent) WorldToObject() mgl32.Mat4 {
	inv := func(f float32) float32 {
		if f == 0 {
			return 0
		}
		return 1 / f
	}
	invScale := mgl32.Scale3D(inv(t.Scale.X()), inv(t.Scale.Y()), inv(t.Scale.Z()))
	invRotate := t.Rotation.Normalize().Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())
	return invScale.Mul4(invRotate).Mul4(invTranslate)
}

func (t TransformComponent) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, t.ObjectToWorld())
}

func (t TransformComponent) InverseTransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, t.WorldToObject())
}

// CameraComponent is a Y-up yaw/pitch camera. Angles are in degrees; yaw 0,
// pitch 0 looks down -Z.
type CameraComponent struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Ortho    bool
	// Active marks the camera of the focused viewport when several exist.
	Active bool
}

func (c CameraComponent) Forward() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Sin(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(-math.Cos(yaw) * math.Cos(pitch)),
	}.Normalize()
}

func (c CameraComponent) ViewMatrix() mgl32.Mat4 {
	forward := c.Forward()
	up := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(forward.Dot(up))) > 0.999 {
		// looking straight up or down
		up = mgl32.Vec3{0, 0, -1}
	}
	return mgl32.LookAtV(c.Position, c.Position.Add(forward), up)
}

// WorldMatrix is the camera's object-to-world matrix. Its third column is the
// camera's back axis.
func (c CameraComponent) WorldMatrix() mgl32.Mat4 {
	return c.ViewMatrix().Inv()
}
