package dragger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdent(t *testing.T) {
	cases := []struct {
		in   string
		want Ident
	}{
		{"|pCube1", Plain("|pCube1")},
		{"|grp|pCube1.vtx[12]", Component("|grp|pCube1", KindVertex, 12)},
		{"|pCube1.e[3]", Component("|pCube1", KindEdge, 3)},
		{"|pCube1.f[0]", Component("|pCube1", KindFace, 0)},
		{"|curve1.cv[5]", Component("|curve1", KindControlPoint, 5)},
		// a dot in a parent segment is part of the name
		{"|v1.2|mesh", Plain("|v1.2|mesh")},
		{"  |a.vtx[1]  ", Component("|a", KindVertex, 1)},
	}

	for _, tc := range cases {
		got, err := ParseIdent(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseIdent_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"|a.map[1]",
		"|a.vtx",
		"|a.vtx[x]",
		"|a.vtx[-1]",
		".vtx[1]",
	} {
		_, err := ParseIdent(in)
		assert.Error(t, err, "%q", in)
	}
}

func TestIdent_StringRoundTrip(t *testing.T) {
	for _, s := range []string{"|a", "|a|b.vtx[2]", "|a.e[0]", "|a.f[9]", "|c.cv[1]"} {
		id, err := ParseIdent(s)
		require.NoError(t, err)
		assert.Equal(t, s, id.String())
	}
}

func TestIdent_Classification(t *testing.T) {
	assert.False(t, Plain("|a").IsComponent())
	assert.True(t, Component("|a", KindVertex, 0).IsComponent())
	assert.False(t, Component("|a", KindVertex, 0).IsFaceOrEdge())
	assert.True(t, Component("|a", KindEdge, 0).IsFaceOrEdge())
	assert.True(t, Component("|a", KindFace, 0).IsFaceOrEdge())
	assert.False(t, Component("|a", KindControlPoint, 0).IsFaceOrEdge())
}

func TestParseModifier(t *testing.T) {
	m, err := ParseModifier("Ctrl")
	require.NoError(t, err)
	assert.Equal(t, ModCtrl, m)

	m, err = ParseModifier("")
	require.NoError(t, err)
	assert.Equal(t, ModNone, m)

	_, err = ParseModifier("hyper")
	assert.Error(t, err)
	assert.Equal(t, "alt", ModAlt.String())
}
