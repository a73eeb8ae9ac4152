package pushy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/pushy/dragger"
)

func TestSelection_OrderAndDedup(t *testing.T) {
	var s Selection
	a, b, c := dragger.Plain("|a"), dragger.Plain("|b"), dragger.Plain("|c")

	s.Add(b, a, b)
	assert.Equal(t, []dragger.Ident{b, a}, s.Items())

	s.Set(a, c)
	assert.Equal(t, []dragger.Ident{a, c}, s.Items())
	assert.True(t, s.Contains(c))
	assert.False(t, s.Contains(b))

	items := s.Items()
	items[0] = b
	assert.Equal(t, a, s.Items()[0], "Items returns a copy")

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestSelection_SelectPaths(t *testing.T) {
	var s Selection
	require.NoError(t, s.SelectPaths("|cube.f[2]", "|cube"))
	assert.Equal(t, []dragger.Ident{dragger.Component("|cube", dragger.KindFace, 2), dragger.Plain("|cube")}, s.Items())

	err := s.SelectPaths("|cube.q[1]")
	assert.Error(t, err)
	assert.Equal(t, 2, s.Len(), "a bad path leaves the selection alone")
}

func TestEntityPath(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	root := cmd.AddEntity(NameComponent{Name: "rig"})
	arm := cmd.AddEntity(NameComponent{Name: "arm"}, Parent{Entity: root})
	hand := cmd.AddEntity(NameComponent{Name: "hand"}, Parent{Entity: arm})
	orphan := cmd.AddEntity(NameComponent{Name: "x"}, Parent{Entity: 999})
	unnamed := cmd.AddEntity(Parent{Entity: root})
	app.FlushCommands()

	p, ok := EntityPath(cmd, hand)
	require.True(t, ok)
	assert.Equal(t, "|rig|arm|hand", p)

	_, ok = EntityPath(cmd, orphan)
	assert.False(t, ok)
	_, ok = EntityPath(cmd, unnamed)
	assert.False(t, ok)
}
