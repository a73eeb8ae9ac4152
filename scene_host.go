package pushy

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/pushy/dragger"
)

// sceneHost exposes the ECS world to a dragger.Session.
type sceneHost struct {
	cmd      *Commands
	sel      *Selection
	history  *History
	viewport *Viewport
	input    *Input

	paths map[string]EntityId
}

var _ dragger.Host = (*sceneHost)(nil)

func newSceneHost(app *App) *sceneHost {
	return &sceneHost{
		cmd:      app.Commands(),
		sel:      ensureResource(app, func() *Selection { return &Selection{} }),
		history:  ensureResource(app, func() *History { return NewHistory(DefaultHistoryDepth) }),
		viewport: ensureResource(app, func() *Viewport { return &Viewport{} }),
		input:    ensureResource(app, func() *Input { return &Input{} }),
		paths:    make(map[string]EntityId),
	}
}

func (h *sceneHost) reindex() {
	clear(h.paths)
	MakeQuery1[NameComponent](h.cmd).Map(func(eid EntityId, _ *NameComponent) bool {
		if p, ok := EntityPath(h.cmd, eid); ok {
			h.paths[p] = eid
		}
		return true
	})
}

func (h *sceneHost) lookup(path string) (EntityId, bool) {
	if eid, ok := h.paths[path]; ok {
		if p, ok := EntityPath(h.cmd, eid); ok && p == path {
			return eid, true
		}
	}
	h.reindex()
	eid, ok := h.paths[path]
	return eid, ok
}

// node resolves the entity an identifier lives on, with its world transform.
func (h *sceneHost) node(id dragger.Ident) (EntityId, *TransformComponent, bool) {
	eid, ok := h.lookup(id.Path)
	if !ok {
		return 0, nil, false
	}
	tr, ok := GetComponent[TransformComponent](h.cmd, eid)
	if !ok {
		return 0, nil, false
	}
	return eid, tr, true
}

func (h *sceneHost) CurrentSelection() []dragger.Ident {
	h.reindex()
	return h.sel.Items()
}

func (h *sceneHost) IsTransform(id dragger.Ident) bool {
	if id.IsComponent() {
		return false
	}
	_, _, ok := h.node(id)
	return ok
}

func (h *sceneHost) ConvertToVertices(ids []dragger.Ident) []dragger.Ident {
	var out []dragger.Ident
	seen := make(map[dragger.Ident]struct{})
	add := func(id dragger.Ident) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	for _, id := range ids {
		eid, _, ok := h.node(id)
		if !ok {
			continue
		}
		mesh, ok := GetComponent[MeshComponent](h.cmd, eid)
		if !ok {
			continue
		}

		if !id.IsComponent() {
			for i := range mesh.Vertices {
				add(dragger.Component(id.Path, dragger.KindVertex, i))
			}
			continue
		}

		verts, ok := mesh.ComponentVertices(id.Kind, id.Index)
		if !ok {
			continue
		}
		for _, v := range verts {
			add(dragger.Component(id.Path, dragger.KindVertex, v))
		}
	}
	return out
}

// ShapesOf returns the objects that carry geometry; the mesh is the shape.
func (h *sceneHost) ShapesOf(ids []dragger.Ident) []dragger.Ident {
	var out []dragger.Ident
	for _, id := range ids {
		if id.IsComponent() {
			continue
		}
		eid, _, ok := h.node(id)
		if !ok {
			continue
		}
		if _, ok := GetComponent[MeshComponent](h.cmd, eid); ok {
			out = append(out, id)
		}
	}
	return out
}

// componentPoints returns the world positions of the vertices id covers.
func (h *sceneHost) componentPoints(id dragger.Ident) ([]int, []mgl32.Vec3, bool) {
	eid, tr, ok := h.node(id)
	if !ok {
		return nil, nil, false
	}
	mesh, ok := GetComponent[MeshComponent](h.cmd, eid)
	if !ok {
		return nil, nil, false
	}
	verts, ok := mesh.ComponentVertices(id.Kind, id.Index)
	if !ok || len(verts) == 0 {
		return nil, nil, false
	}

	pts := make([]mgl32.Vec3, 0, len(verts))
	for _, v := range verts {
		if v < 0 || v >= len(mesh.Vertices) {
			return nil, nil, false
		}
		pts = append(pts, tr.TransformPoint(mesh.Vertices[v]))
	}
	return verts, pts, true
}

func (h *sceneHost) WorldTranslation(id dragger.Ident) (mgl32.Vec3, bool) {
	if !id.IsComponent() {
		_, tr, ok := h.node(id)
		if !ok {
			return mgl32.Vec3{}, false
		}
		return tr.Position, true
	}

	_, pts, ok := h.componentPoints(id)
	if !ok {
		return mgl32.Vec3{}, false
	}
	var sum mgl32.Vec3
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float32(len(pts))), true
}

func (h *sceneHost) WorldBoundingBox(ids []dragger.Ident) (dragger.Bounds, bool) {
	var b dragger.Bounds
	found := false
	include := func(box dragger.Bounds) {
		if !found {
			b, found = box, true
			return
		}
		b = b.Extend(box.Min).Extend(box.Max)
	}

	for _, id := range ids {
		if id.IsComponent() {
			_, pts, ok := h.componentPoints(id)
			if !ok {
				continue
			}
			for _, p := range pts {
				include(dragger.PointBounds(p))
			}
			continue
		}

		eid, tr, ok := h.node(id)
		if !ok {
			continue
		}
		if mesh, ok := GetComponent[MeshComponent](h.cmd, eid); ok {
			if box, ok := mesh.WorldBounds(*tr); ok {
				include(box)
				continue
			}
		}
		include(dragger.PointBounds(tr.Position))
	}
	return b, found
}

// ActiveCamera picks the camera flagged Active, else the oldest camera. There
// is none while the pointer is outside the window.
func (h *sceneHost) ActiveCamera() (dragger.Camera, bool) {
	if h.input.WindowWidth > 0 && h.input.WindowHeight > 0 {
		x, y := h.input.MouseX, h.input.MouseY
		if x < 0 || y < 0 || x >= float64(h.input.WindowWidth) || y >= float64(h.input.WindowHeight) {
			return dragger.Camera{}, false
		}
	}

	var best EntityId
	var cam *CameraComponent
	MakeQuery1[CameraComponent](h.cmd).Map(func(eid EntityId, c *CameraComponent) bool {
		switch {
		case cam == nil,
			c.Active && !cam.Active,
			c.Active == cam.Active && eid < best:
			best, cam = eid, c
		}
		return true
	})
	if cam == nil {
		return dragger.Camera{}, false
	}

	path, _ := EntityPath(h.cmd, best)
	return dragger.Camera{
		Transform:   dragger.Plain(path),
		Ortho:       cam.Ortho,
		WorldMatrix: cam.WorldMatrix(),
		Position:    cam.Position,
	}, true
}

// ScaleOf returns the object's own scale: local for children, world for roots.
func (h *sceneHost) ScaleOf(id dragger.Ident) (mgl32.Vec3, bool) {
	if id.IsComponent() {
		return mgl32.Vec3{}, false
	}
	eid, tr, ok := h.node(id)
	if !ok {
		return mgl32.Vec3{}, false
	}
	if _, hasParent := GetComponent[Parent](h.cmd, eid); hasParent {
		if local, ok := GetComponent[LocalTransformComponent](h.cmd, eid); ok {
			return local.Scale, true
		}
	}
	return tr.Scale, true
}

func (h *sceneHost) SetWorldTranslation(id dragger.Ident, pos mgl32.Vec3) {
	before, ok := h.WorldTranslation(id)
	if !ok {
		return
	}
	h.applyTranslation(id, pos)
	h.history.Record(Edit{Target: id, Channel: ChannelTranslate, Before: before, After: pos})
}

func (h *sceneHost) SetScale(id dragger.Ident, scale mgl32.Vec3) {
	before, ok := h.ScaleOf(id)
	if !ok {
		return
	}
	h.applyScale(id, scale)
	h.history.Record(Edit{Target: id, Channel: ChannelScale, Before: before, After: scale})
}

func (h *sceneHost) applyTranslation(id dragger.Ident, pos mgl32.Vec3) {
	eid, tr, ok := h.node(id)
	if !ok {
		return
	}

	if !id.IsComponent() {
		tr.Position = pos
		parent, hasParent := GetComponent[Parent](h.cmd, eid)
		local, hasLocal := GetComponent[LocalTransformComponent](h.cmd, eid)
		if hasParent && hasLocal {
			if parentWorld, ok := GetComponent[TransformComponent](h.cmd, parent.Entity); ok {
				local.Position = localPositionFor(*parentWorld, pos)
			}
		}
		return
	}

	verts, pts, ok := h.componentPoints(id)
	if !ok {
		return
	}
	mesh, _ := GetComponent[MeshComponent](h.cmd, eid)

	if len(verts) == 1 {
		mesh.Vertices[verts[0]] = tr.InverseTransformPoint(pos)
		return
	}

	// edges and faces move rigidly by their centroid
	var sum mgl32.Vec3
	for _, p := range pts {
		sum = sum.Add(p)
	}
	shift := pos.Sub(sum.Mul(1 / float32(len(pts))))
	for i, v := range verts {
		mesh.Vertices[v] = tr.InverseTransformPoint(pts[i].Add(shift))
	}
}

func (h *sceneHost) applyScale(id dragger.Ident, scale mgl32.Vec3) {
	eid, tr, ok := h.node(id)
	if !ok || id.IsComponent() {
		return
	}

	parent, hasParent := GetComponent[Parent](h.cmd, eid)
	local, hasLocal := GetComponent[LocalTransformComponent](h.cmd, eid)
	if hasParent && hasLocal {
		local.Scale = scale
		if parentWorld, ok := GetComponent[TransformComponent](h.cmd, parent.Entity); ok {
			*tr = composeTransform(*parentWorld, *local)
		}
		return
	}
	tr.Scale = scale
}

func (h *sceneHost) applyEdit(e Edit, v mgl32.Vec3) {
	switch e.Channel {
	case ChannelTranslate:
		h.applyTranslation(e.Target, v)
	case ChannelScale:
		h.applyScale(e.Target, v)
	}
}

func (h *sceneHost) OpenUndoChunk() {
	h.history.OpenChunk("push/pull")
}

func (h *sceneHost) CloseUndoChunk() {
	h.history.CloseChunk()
}

func (h *sceneHost) Refresh() {
	h.viewport.Refresh()
}

// Undo reverts the latest history chunk.
func (h *sceneHost) Undo() bool {
	if !h.history.Undo(h.applyEdit) {
		return false
	}
	h.viewport.Refresh()
	return true
}

func (h *sceneHost) Redo() bool {
	if !h.history.Redo(h.applyEdit) {
		return false
	}
	h.viewport.Refresh()
	return true
}
