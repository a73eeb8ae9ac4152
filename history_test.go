package pushy

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/pushy/dragger"
)

func moveEdit(path string, before, after float32) Edit {
	return Edit{
		Target:  dragger.Plain(path),
		Channel: ChannelTranslate,
		Before:  mgl32.Vec3{before, 0, 0},
		After:   mgl32.Vec3{after, 0, 0},
	}
}

type applied struct {
	target string
	value  float32
}

func recorder(out *[]applied) func(Edit, mgl32.Vec3) {
	return func(e Edit, v mgl32.Vec3) {
		*out = append(*out, applied{e.Target.Path, v.X()})
	}
}

func TestHistory_ChunkCoalescesEdits(t *testing.T) {
	h := NewHistory(0)
	h.OpenChunk("drag")
	h.Record(moveEdit("|a", 0, 1))
	h.Record(moveEdit("|b", 5, 6))
	h.Record(moveEdit("|a", 1, 2))
	h.Record(Edit{Target: dragger.Plain("|a"), Channel: ChannelScale, Before: mgl32.Vec3{1, 1, 1}, After: mgl32.Vec3{2, 2, 2}})
	assert.Zero(t, h.UndoLen(), "nothing is undoable while the chunk is open")
	h.CloseChunk()

	require.Equal(t, 1, h.UndoLen())
	c, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, "drag", c.Name)
	_, err := uuid.Parse(c.ID)
	assert.NoError(t, err)
	require.Len(t, c.Edits, 3)
	assert.Equal(t, moveEdit("|a", 0, 2), c.Edits[0])
}

func TestHistory_NestedChunks(t *testing.T) {
	h := NewHistory(10)
	h.OpenChunk("outer")
	h.OpenChunk("inner")
	h.Record(moveEdit("|a", 0, 1))
	h.CloseChunk()
	assert.True(t, h.IsOpen())
	h.Record(moveEdit("|b", 0, 1))
	h.CloseChunk()
	h.CloseChunk() // unbalanced, ignored

	require.Equal(t, 1, h.UndoLen())
	c, _ := h.Peek()
	assert.Equal(t, "outer", c.Name)
	assert.Len(t, c.Edits, 2)
}

func TestHistory_EmptyChunkDiscarded(t *testing.T) {
	h := NewHistory(10)
	h.OpenChunk("noop")
	h.CloseChunk()

	assert.Zero(t, h.UndoLen())
	_, ok := h.Peek()
	assert.False(t, ok)
}

func TestHistory_UndoRedoOrder(t *testing.T) {
	h := NewHistory(10)
	h.OpenChunk("drag")
	h.Record(moveEdit("|a", 0, 1))
	h.Record(moveEdit("|b", 5, 6))
	h.CloseChunk()

	var got []applied
	require.True(t, h.Undo(recorder(&got)))
	assert.Equal(t, []applied{{"|b", 5}, {"|a", 0}}, got)
	assert.False(t, h.Undo(recorder(&got)))

	got = nil
	require.True(t, h.Redo(recorder(&got)))
	assert.Equal(t, []applied{{"|a", 1}, {"|b", 6}}, got)
	assert.False(t, h.Redo(recorder(&got)))
}

func TestHistory_NewEditClearsRedo(t *testing.T) {
	h := NewHistory(10)
	h.Record(moveEdit("|a", 0, 1))
	require.True(t, h.Undo(func(Edit, mgl32.Vec3) {}))
	require.Equal(t, 1, h.RedoLen())

	h.Record(moveEdit("|a", 0, 3))
	assert.Zero(t, h.RedoLen())
}

func TestHistory_UndoRefusedWhileOpen(t *testing.T) {
	h := NewHistory(10)
	h.Record(moveEdit("|a", 0, 1))
	h.OpenChunk("drag")

	assert.False(t, h.Undo(func(Edit, mgl32.Vec3) {}))
	assert.Equal(t, 1, h.UndoLen())
}

func TestHistory_MaxDepth(t *testing.T) {
	h := NewHistory(2)
	for i := 0; i < 4; i++ {
		h.Record(moveEdit("|a", float32(i), float32(i+1)))
	}

	assert.Equal(t, 2, h.UndoLen())
	c, _ := h.Peek()
	assert.Equal(t, moveEdit("|a", 3, 4), c.Edits[0])
}
