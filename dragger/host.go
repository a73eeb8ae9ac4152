package dragger

import "github.com/go-gl/mathgl/mgl32"

// Camera is the active viewport camera at press time.
type Camera struct {
	Transform   Ident
	Ortho       bool
	WorldMatrix mgl32.Mat4
	Position    mgl32.Vec3
}

// Bounds is a world-space axis-aligned box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extend grows b to contain p.
func (b Bounds) Extend(p mgl32.Vec3) Bounds {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// PointBounds is the degenerate box around a single point.
func PointBounds(p mgl32.Vec3) Bounds {
	return Bounds{Min: p, Max: p}
}

type SceneQuery interface {
	CurrentSelection() []Ident
	// IsTransform reports whether id is a whole transform node.
	IsTransform(id Ident) bool
	ConvertToVertices(ids []Ident) []Ident
	// ShapesOf returns the shape nodes under the given objects, if any.
	ShapesOf(ids []Ident) []Ident
	WorldTranslation(id Ident) (mgl32.Vec3, bool)
	WorldBoundingBox(ids []Ident) (Bounds, bool)
	ActiveCamera() (Camera, bool)
	ScaleOf(id Ident) (mgl32.Vec3, bool)
}

type Mutator interface {
	SetWorldTranslation(id Ident, pos mgl32.Vec3)
	SetScale(id Ident, scale mgl32.Vec3)
}

// Transactions brackets edits into one undo step.
type Transactions interface {
	OpenUndoChunk()
	CloseUndoChunk()
}

type Refresher interface {
	Refresh()
}

// Host is everything a Session needs from the application it runs in.
type Host interface {
	SceneQuery
	Mutator
	Transactions
	Refresher
}
