package dragger

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags what an Ident refers to.
type Kind uint8

const (
	KindPlain Kind = iota
	KindVertex
	KindEdge
	KindFace
	KindControlPoint
)

var kindSuffix = map[Kind]string{
	KindVertex:       "vtx",
	KindEdge:         "e",
	KindFace:         "f",
	KindControlPoint: "cv",
}

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	case KindFace:
		return "face"
	case KindControlPoint:
		return "cv"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Ident names either a whole node (Kind == KindPlain) or one component of it.
type Ident struct {
	Path  string
	Kind  Kind
	Index int
}

func Plain(path string) Ident {
	return Ident{Path: path, Kind: KindPlain}
}

func Component(path string, kind Kind, index int) Ident {
	return Ident{Path: path, Kind: kind, Index: index}
}

func (id Ident) IsComponent() bool {
	return id.Kind != KindPlain
}

// IsFaceOrEdge reports whether converting id to vertices yields more than itself.
func (id Ident) IsFaceOrEdge() bool {
	return id.Kind == KindFace || id.Kind == KindEdge
}

func (id Ident) String() string {
	if !id.IsComponent() {
		return id.Path
	}
	return fmt.Sprintf("%s.%s[%d]", id.Path, kindSuffix[id.Kind], id.Index)
}

// ParseIdent reads the textual form "|grp|node" or "|grp|node.vtx[3]".
func ParseIdent(s string) (Ident, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ident{}, fmt.Errorf("parse ident: empty")
	}

	// Components hang off the last path segment only.
	seg := strings.LastIndex(s, "|")
	dot := strings.LastIndex(s, ".")
	if dot <= seg {
		return Plain(s), nil
	}

	path, comp := s[:dot], s[dot+1:]
	if path == "" || path == "|" {
		return Ident{}, fmt.Errorf("parse ident %q: missing node path", s)
	}

	open := strings.Index(comp, "[")
	if open < 0 || !strings.HasSuffix(comp, "]") {
		return Ident{}, fmt.Errorf("parse ident %q: expected name[index]", s)
	}

	var kind Kind
	switch comp[:open] {
	case "vtx":
		kind = KindVertex
	case "e":
		kind = KindEdge
	case "f":
		kind = KindFace
	case "cv":
		kind = KindControlPoint
	default:
		return Ident{}, fmt.Errorf("parse ident %q: unknown component %q", s, comp[:open])
	}

	idx, err := strconv.Atoi(comp[open+1 : len(comp)-1])
	if err != nil {
		return Ident{}, fmt.Errorf("parse ident %q: %w", s, err)
	}
	if idx < 0 {
		return Ident{}, fmt.Errorf("parse ident %q: negative index", s)
	}
	return Component(path, kind, idx), nil
}

// ParseIdents parses every entry, stopping at the first bad one.
func ParseIdents(items []string) ([]Ident, error) {
	out := make([]Ident, 0, len(items))
	for _, item := range items {
		id, err := ParseIdent(item)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
