package dragger

import (
	"errors"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Reasons Begin declines to arm. None of them is a user-facing error.
var (
	ErrNoCamera       = errors.New("dragger: no active viewport camera")
	ErrEmptySelection = errors.New("dragger: empty selection")
	ErrNoTargets      = errors.New("dragger: selection resolved to no targets")
	ErrNoPositions    = errors.New("dragger: no readable target positions")
	ErrNoBounds       = errors.New("dragger: no bounding box for targets")
)

// Press describes the mouse press that starts a drag.
type Press struct {
	Anchor       mgl32.Vec2
	Modifier     Modifier
	PriorContext string
}

// Session is one press/drag/release cycle of the push/pull gesture.
//
// Begin snapshots the selection; every Update recomputes positions from that
// snapshot, so dropped or repeated drag events never accumulate error.
type Session struct {
	host Host
	opts Options

	ready     bool
	chunkOpen bool

	targets         []Ident
	ortho           bool
	componentMode   bool
	scaleCompensate bool

	initialPositions []mgl32.Vec3

	// ortho only
	viewDirection mgl32.Vec3

	// perspective only
	cameraPos      mgl32.Vec3
	initialAvgPos  mgl32.Vec3
	camToAvgVec    mgl32.Vec3
	initialVectors []mgl32.Vec3

	initialScales map[Ident]mgl32.Vec3
	anchor        mgl32.Vec2
}

func NewSession(host Host, opts Options) *Session {
	if opts.Sensitivity == 0 {
		opts.Sensitivity = DefaultSensitivity
	}
	if opts.OrthoSpeed == 0 {
		opts.OrthoSpeed = DefaultOrthoSpeed
	}
	s := &Session{host: host, opts: opts}
	s.reset()
	return s
}

func (s *Session) Ready() bool           { return s.ready }
func (s *Session) Ortho() bool           { return s.ortho }
func (s *Session) ComponentMode() bool   { return s.componentMode }
func (s *Session) ScaleCompensate() bool { return s.scaleCompensate }
func (s *Session) Options() Options      { return s.opts }

// Targets returns a copy of the items being moved, in mutation order.
func (s *Session) Targets() []Ident {
	return slices.Clone(s.targets)
}

// Begin arms the session for a new drag. On error the session stays idle and
// the host has not been touched.
func (s *Session) Begin(p Press) error {
	s.End()

	cam, ok := s.host.ActiveCamera()
	if !ok {
		return ErrNoCamera
	}

	selection := s.host.CurrentSelection()
	if len(selection) == 0 {
		return ErrEmptySelection
	}

	targets, componentMode := s.resolveTargets(selection)
	if len(targets) == 0 {
		return ErrNoTargets
	}

	compensate := s.wantsCompensation(p)

	kept := targets[:0:0]
	positions := make([]mgl32.Vec3, 0, len(targets))
	for _, t := range targets {
		pos, ok := s.host.WorldTranslation(t)
		if !ok {
			continue
		}
		kept = append(kept, t)
		positions = append(positions, pos)
	}
	if len(positions) == 0 {
		return ErrNoPositions
	}
	targets = kept

	next := Session{
		host:             s.host,
		opts:             s.opts,
		targets:          targets,
		ortho:            cam.Ortho,
		componentMode:    componentMode,
		scaleCompensate:  compensate,
		initialPositions: positions,
		initialScales:    make(map[Ident]mgl32.Vec3),
		anchor:           p.Anchor,
	}

	if cam.Ortho {
		back := cam.WorldMatrix.Col(2).Vec3()
		if back.Len() == 0 {
			return ErrNoCamera
		}
		next.viewDirection = back.Mul(-1).Normalize()
	} else {
		nodes := targets
		if !componentMode {
			if shapes := s.host.ShapesOf(targets); len(shapes) > 0 {
				nodes = shapes
			}
		}
		bounds, ok := s.host.WorldBoundingBox(nodes)
		if !ok {
			return ErrNoBounds
		}

		next.initialAvgPos = bounds.Center()
		next.cameraPos = cam.Position
		next.camToAvgVec = next.initialAvgPos.Sub(next.cameraPos)
		next.initialVectors = make([]mgl32.Vec3, len(positions))
		for i, pos := range positions {
			next.initialVectors[i] = pos.Sub(next.initialAvgPos)
		}
	}

	// Components have no scale channel of their own.
	if compensate && !componentMode {
		for _, t := range targets {
			if scale, ok := s.host.ScaleOf(t); ok {
				next.initialScales[t] = scale
			}
		}
	}

	*s = next
	s.host.OpenUndoChunk()
	s.chunkOpen = true
	s.ready = true
	return nil
}

// Update moves every target for the given drag point. It does nothing unless
// Begin succeeded.
func (s *Session) Update(point mgl32.Vec2) {
	if !s.ready {
		return
	}

	delta := (point.X() - s.anchor.X()) * s.opts.Sensitivity

	if s.ortho {
		move := s.viewDirection.Mul(delta * s.opts.OrthoSpeed)
		for i, t := range s.targets {
			s.host.SetWorldTranslation(t, s.initialPositions[i].Add(move))
		}
		s.host.Refresh()
		return
	}

	// depth may go negative; the group then passes through the camera.
	depth := 1 + delta
	centroid := s.cameraPos.Add(s.camToAvgVec.Mul(depth))
	factor := float32(1)
	if s.scaleCompensate {
		factor = depth
	}

	for i, t := range s.targets {
		s.host.SetWorldTranslation(t, centroid.Add(s.initialVectors[i].Mul(factor)))
		if scale, ok := s.initialScales[t]; ok {
			s.host.SetScale(t, scale.Mul(factor))
		}
	}
	s.host.Refresh()
}

// End closes the undo chunk opened by Begin, if any, and returns to idle.
// Calling it again is harmless.
func (s *Session) End() {
	if s.chunkOpen {
		s.host.CloseUndoChunk()
	}
	s.reset()
}

func (s *Session) reset() {
	*s = Session{
		host:          s.host,
		opts:          s.opts,
		initialScales: make(map[Ident]mgl32.Vec3),
	}
}

// resolveTargets classifies the selection in a single pass and returns the
// items to move.
func (s *Session) resolveTargets(selection []Ident) ([]Ident, bool) {
	componentMode, faceOrEdge := false, false
	for _, id := range selection {
		if id.IsComponent() {
			componentMode = true
		}
		if id.IsFaceOrEdge() {
			faceOrEdge = true
			break
		}
	}

	if !componentMode {
		var out []Ident
		for _, id := range selection {
			if s.host.IsTransform(id) {
				out = append(out, id)
			}
		}
		return out, false
	}

	if !faceOrEdge {
		return slices.Clone(selection), true
	}

	// Convert the whole selection at once: a face whose vertices are also
	// selected individually must not move them twice.
	return dedup(s.host.ConvertToVertices(selection)), true
}

func (s *Session) wantsCompensation(p Press) bool {
	if p.Modifier != ModNone && p.Modifier == s.opts.CompensateModifier {
		return true
	}
	return p.PriorContext != "" && slices.Contains(s.opts.ScaleContexts, p.PriorContext)
}

func dedup(ids []Ident) []Ident {
	seen := make(map[Ident]struct{}, len(ids))
	out := make([]Ident, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
