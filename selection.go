package pushy

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gekko3d/pushy/dragger"
)

// Selection is the ordered list of selected items. Order is kept because the
// push/pull tool mutates targets in selection order.
type Selection struct {
	items []dragger.Ident
}

func (s *Selection) Items() []dragger.Ident {
	return slices.Clone(s.items)
}

func (s *Selection) Len() int {
	return len(s.items)
}

func (s *Selection) Contains(id dragger.Ident) bool {
	return slices.Contains(s.items, id)
}

// Set replaces the selection.
func (s *Selection) Set(ids ...dragger.Ident) {
	s.items = s.items[:0]
	s.Add(ids...)
}

// Add appends ids not already selected.
func (s *Selection) Add(ids ...dragger.Ident) {
	for _, id := range ids {
		if !s.Contains(id) {
			s.items = append(s.items, id)
		}
	}
}

func (s *Selection) Clear() {
	s.items = s.items[:0]
}

// SelectPaths parses textual identifiers and replaces the selection with them.
func (s *Selection) SelectPaths(paths ...string) error {
	ids, err := dragger.ParseIdents(paths)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	s.Set(ids...)
	return nil
}

const maxHierarchyDepth = 64

// EntityPath is "|" joined names from the root down to eid.
func EntityPath(cmd *Commands, eid EntityId) (string, bool) {
	var segs []string
	for cur := eid; ; {
		name, ok := GetComponent[NameComponent](cmd, cur)
		if !ok || name.Name == "" {
			return "", false
		}
		segs = append(segs, name.Name)
		if len(segs) > maxHierarchyDepth {
			return "", false
		}

		parent, ok := GetComponent[Parent](cmd, cur)
		if !ok || parent.Entity == 0 {
			break
		}
		cur = parent.Entity
	}

	slices.Reverse(segs)
	return "|" + strings.Join(segs, "|"), true
}
