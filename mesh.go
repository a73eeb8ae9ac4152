package pushy

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/pushy/dragger"
)

// MeshComponent is editable polygon geometry in object space. Faces index
// into Vertices; Edges are unique vertex pairs.
type MeshComponent struct {
	Vertices []mgl32.Vec3
	Edges    [][2]int
	Faces    [][]int
}

// NewMesh builds a mesh and derives its edge list from the faces.
func NewMesh(vertices []mgl32.Vec3, faces [][]int) MeshComponent {
	return MeshComponent{Vertices: vertices, Faces: faces, Edges: DeriveEdges(faces)}
}

// NewCubeMesh is an axis-aligned cube centred on the origin.
func NewCubeMesh(size float32) MeshComponent {
	h := size / 2
	verts := []mgl32.Vec3{
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
	}
	faces := [][]int{
		{0, 1, 2, 3}, // +Z
		{5, 4, 7, 6}, // -Z
		{4, 0, 3, 7}, // -X
		{1, 5, 6, 2}, // +X
		{3, 2, 6, 7}, // +Y
		{4, 5, 1, 0}, // -Y
	}
	return NewMesh(verts, faces)
}

// NewGridMesh is a flat XZ grid of quads with cols x rows cells.
func NewGridMesh(cols, rows int, cell float32) MeshComponent {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	var verts []mgl32.Vec3
	ox, oz := float32(cols)*cell/2, float32(rows)*cell/2
	for z := 0; z <= rows; z++ {
		for x := 0; x <= cols; x++ {
			verts = append(verts, mgl32.Vec3{float32(x)*cell - ox, 0, float32(z)*cell - oz})
		}
	}

	var faces [][]int
	stride := cols + 1
	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			i := z*stride + x
			faces = append(faces, []int{i, i + stride, i + stride + 1, i + 1})
		}
	}
	return NewMesh(verts, faces)
}

// DeriveEdges lists each undirected face edge once, in first-seen order.
func DeriveEdges(faces [][]int) [][2]int {
	seen := make(map[[2]int]struct{})
	var edges [][2]int
	for _, f := range faces {
		for i := range f {
			a, b := f[i], f[(i+1)%len(f)]
			key := [2]int{min(a, b), max(a, b)}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, key)
		}
	}
	return edges
}

// ComponentVertices lists the vertex indices a component covers. ok is false
// for indices outside the mesh.
func (m *MeshComponent) ComponentVertices(kind dragger.Kind, index int) (verts []int, ok bool) {
	switch kind {
	case dragger.KindVertex, dragger.KindControlPoint:
		if index < 0 || index >= len(m.Vertices) {
			return nil, false
		}
		return []int{index}, true
	case dragger.KindEdge:
		if index < 0 || index >= len(m.Edges) {
			return nil, false
		}
		e := m.Edges[index]
		return []int{e[0], e[1]}, true
	case dragger.KindFace:
		if index < 0 || index >= len(m.Faces) {
			return nil, false
		}
		return m.Faces[index], true
	}
	return nil, false
}

// WorldBounds returns the mesh's world-space box under tr.
func (m *MeshComponent) WorldBounds(tr TransformComponent) (dragger.Bounds, bool) {
	if len(m.Vertices) == 0 {
		return dragger.Bounds{}, false
	}
	toWorld := tr.ObjectToWorld()
	b := dragger.PointBounds(mgl32.TransformCoordinate(m.Vertices[0], toWorld))
	for _, v := range m.Vertices[1:] {
		b = b.Extend(mgl32.TransformCoordinate(v, toWorld))
	}
	return b, true
}
