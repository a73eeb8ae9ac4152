package dragger

import (
	"github.com/go-gl/mathgl/mgl32"
)

type fakeHost struct {
	selection  []Ident
	transforms map[Ident]bool
	positions  map[Ident]mgl32.Vec3
	scales     map[Ident]mgl32.Vec3
	faces      map[Ident][]Ident
	shapes     map[Ident]Ident
	bounds     *Bounds
	camera     *Camera

	moves      []move
	scaleCalls []move
	opened     int
	closed     int
	refreshes  int
	converted  [][]Ident
}

type move struct {
	id  Ident
	val mgl32.Vec3
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		transforms: make(map[Ident]bool),
		positions:  make(map[Ident]mgl32.Vec3),
		scales:     make(map[Ident]mgl32.Vec3),
		faces:      make(map[Ident][]Ident),
		shapes:     make(map[Ident]Ident),
	}
}

func perspectiveAt(pos mgl32.Vec3) *Camera {
	world := mgl32.LookAtV(pos, pos.Add(mgl32.Vec3{0, 0, -1}), mgl32.Vec3{0, 1, 0}).Inv()
	return &Camera{Transform: Plain("|persp"), WorldMatrix: world, Position: pos}
}

func orthoLooking(forward mgl32.Vec3) *Camera {
	eye := forward.Mul(-50)
	up := mgl32.Vec3{0, 1, 0}
	if abs(forward.Dot(up)) > 0.99 {
		up = mgl32.Vec3{0, 0, -1}
	}
	world := mgl32.LookAtV(eye, eye.Add(forward), up).Inv()
	return &Camera{Transform: Plain("|top"), Ortho: true, WorldMatrix: world, Position: eye}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func (h *fakeHost) CurrentSelection() []Ident { return h.selection }

func (h *fakeHost) IsTransform(id Ident) bool { return h.transforms[id] }

func (h *fakeHost) ConvertToVertices(ids []Ident) []Ident {
	h.converted = append(h.converted, ids)
	var out []Ident
	for _, id := range ids {
		if verts, ok := h.faces[id]; ok {
			out = append(out, verts...)
			continue
		}
		out = append(out, id)
	}
	return out
}

func (h *fakeHost) ShapesOf(ids []Ident) []Ident {
	var out []Ident
	for _, id := range ids {
		if s, ok := h.shapes[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (h *fakeHost) WorldTranslation(id Ident) (mgl32.Vec3, bool) {
	p, ok := h.positions[id]
	return p, ok
}

func (h *fakeHost) WorldBoundingBox(ids []Ident) (Bounds, bool) {
	if h.bounds != nil {
		return *h.bounds, true
	}
	found := false
	var b Bounds
	for _, id := range ids {
		p, ok := h.positions[id]
		if !ok {
			continue
		}
		if !found {
			b = PointBounds(p)
			found = true
			continue
		}
		b = b.Extend(p)
	}
	return b, found
}

func (h *fakeHost) ActiveCamera() (Camera, bool) {
	if h.camera == nil {
		return Camera{}, false
	}
	return *h.camera, true
}

func (h *fakeHost) ScaleOf(id Ident) (mgl32.Vec3, bool) {
	s, ok := h.scales[id]
	return s, ok
}

func (h *fakeHost) SetWorldTranslation(id Ident, pos mgl32.Vec3) {
	h.moves = append(h.moves, move{id, pos})
}

func (h *fakeHost) SetScale(id Ident, scale mgl32.Vec3) {
	h.scaleCalls = append(h.scaleCalls, move{id, scale})
}

func (h *fakeHost) OpenUndoChunk()  { h.opened++ }
func (h *fakeHost) CloseUndoChunk() { h.closed++ }
func (h *fakeHost) Refresh()        { h.refreshes++ }

// lastMoves returns the final position written for each target in this frame.
func (h *fakeHost) lastMoves() map[Ident]mgl32.Vec3 {
	out := make(map[Ident]mgl32.Vec3)
	for _, m := range h.moves {
		out[m.id] = m.val
	}
	return out
}
