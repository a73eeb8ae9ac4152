package pushy

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/pushy/dragger"
)

const DefaultHistoryDepth = 100

type Channel int

const (
	ChannelTranslate Channel = iota
	ChannelScale
)

// Edit is one value change on one target.
type Edit struct {
	Target  dragger.Ident
	Channel Channel
	Before  mgl32.Vec3
	After   mgl32.Vec3
}

// Chunk is one undoable step.
type Chunk struct {
	ID    string
	Name  string
	Edits []Edit
}

type editKey struct {
	target  dragger.Ident
	channel Channel
}

// History groups edits into undo chunks. Chunks may nest; only the outermost
// open/close pair produces an undo step.
type History struct {
	undo     []*Chunk
	redo     []*Chunk
	open     *Chunk
	openIdx  map[editKey]int
	depth    int
	maxDepth int
}

func NewHistory(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultHistoryDepth
	}
	return &History{maxDepth: maxDepth}
}

func (h *History) OpenChunk(name string) {
	h.depth++
	if h.depth > 1 {
		return
	}
	h.open = &Chunk{ID: uuid.NewString(), Name: name}
	h.openIdx = make(map[editKey]int)
}

// CloseChunk ends the outermost chunk. Unbalanced closes are ignored.
func (h *History) CloseChunk() {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}

	chunk := h.open
	h.open, h.openIdx = nil, nil
	if len(chunk.Edits) > 0 {
		h.push(chunk)
	}
}

func (h *History) IsOpen() bool {
	return h.depth > 0
}

// Record adds an edit. Inside a chunk, repeated edits of the same target and
// channel collapse into one spanning the first Before and the last After.
func (h *History) Record(e Edit) {
	if h.open == nil {
		h.push(&Chunk{ID: uuid.NewString(), Name: "edit", Edits: []Edit{e}})
		return
	}

	key := editKey{e.Target, e.Channel}
	if i, ok := h.openIdx[key]; ok {
		h.open.Edits[i].After = e.After
		return
	}
	h.openIdx[key] = len(h.open.Edits)
	h.open.Edits = append(h.open.Edits, e)
}

func (h *History) push(c *Chunk) {
	h.undo = append(h.undo, c)
	if len(h.undo) > h.maxDepth {
		h.undo = h.undo[len(h.undo)-h.maxDepth:]
	}
	h.redo = h.redo[:0]
}

func (h *History) UndoLen() int { return len(h.undo) }
func (h *History) RedoLen() int { return len(h.redo) }

// Peek returns the chunk Undo would revert.
func (h *History) Peek() (*Chunk, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	return h.undo[len(h.undo)-1], true
}

// Undo reverts the latest chunk through apply, newest edit first.
func (h *History) Undo(apply func(Edit, mgl32.Vec3)) bool {
	if h.IsOpen() || len(h.undo) == 0 {
		return false
	}
	c := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	for i := len(c.Edits) - 1; i >= 0; i-- {
		apply(c.Edits[i], c.Edits[i].Before)
	}
	h.redo = append(h.redo, c)
	return true
}

func (h *History) Redo(apply func(Edit, mgl32.Vec3)) bool {
	if h.IsOpen() || len(h.redo) == 0 {
		return false
	}
	c := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	for _, e := range c.Edits {
		apply(e, e.After)
	}
	h.undo = append(h.undo, c)
	return true
}
