package pushy

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/pushy/dragger"
)

func TestNewCubeMesh(t *testing.T) {
	m := NewCubeMesh(2)
	assert.Len(t, m.Vertices, 8)
	assert.Len(t, m.Faces, 6)
	assert.Len(t, m.Edges, 12)

	b, ok := m.WorldBounds(NewTransform(mgl32.Vec3{}))
	require.True(t, ok)
	assert.Equal(t, dragger.Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}, b)
}

func TestNewGridMesh(t *testing.T) {
	m := NewGridMesh(2, 3, 1)
	assert.Len(t, m.Vertices, 12)
	assert.Len(t, m.Faces, 6)
	// 3 rows of 2 horizontal edges per line (4 lines) + 3 vertical per row
	assert.Len(t, m.Edges, 2*4+3*3)

	assert.Len(t, NewGridMesh(0, 0, 1).Faces, 1)
}

func TestDeriveEdges(t *testing.T) {
	edges := DeriveEdges([][]int{{0, 1, 2}, {2, 1, 3}})
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {0, 2}, {1, 3}, {2, 3}}, edges)
}

func TestComponentVertices(t *testing.T) {
	m := NewMesh([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, [][]int{{0, 1, 2}})

	tests := []struct {
		kind  dragger.Kind
		index int
		want  []int
		ok    bool
	}{
		{dragger.KindVertex, 2, []int{2}, true},
		{dragger.KindControlPoint, 0, []int{0}, true},
		{dragger.KindEdge, 1, []int{1, 2}, true},
		{dragger.KindFace, 0, []int{0, 1, 2}, true},
		{dragger.KindVertex, 3, nil, false},
		{dragger.KindEdge, -1, nil, false},
		{dragger.KindFace, 1, nil, false},
		{dragger.KindPlain, 0, nil, false},
	}
	for _, tt := range tests {
		got, ok := m.ComponentVertices(tt.kind, tt.index)
		assert.Equal(t, tt.ok, ok, "%s[%d]", tt.kind, tt.index)
		assert.Equal(t, tt.want, got, "%s[%d]", tt.kind, tt.index)
	}
}

func TestMeshWorldBoundsRotated(t *testing.T) {
	m := NewMesh([]mgl32.Vec3{{1, 0, 0}, {2, 0, 0}}, nil)
	tr := NewTransform(mgl32.Vec3{0, 0, 5})
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})

	b, ok := m.WorldBounds(tr)
	require.True(t, ok)
	vecNear(t, mgl32.Vec3{0, 0, 3}, b.Min)
	vecNear(t, mgl32.Vec3{0, 0, 4}, b.Max)

	empty := NewMesh(nil, nil)
	_, ok = empty.WorldBounds(tr)
	assert.False(t, ok)
}
