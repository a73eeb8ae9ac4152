package pushy

import (
	"reflect"
)

// Query1..Query3 iterate every entity that has all of the listed components.
// Components passed as optionals may be missing; Map then hands over nil.
// Iteration order is unspecified.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }

// column returns the typed column for id, or nil when the archetype lacks it.
// ok is false when the component is required but missing.
func column[T any](arch *archetype, id componentId, opt set[componentId]) (comps []T, ok bool) {
	if col, found := arch.columns[id]; found {
		return col.Interface().([]T), true
	}
	_, optional := opt[id]
	return nil, optional
}

func at[T any](comps []T, r row) *T {
	if comps == nil {
		return nil
	}
	return &comps[r]
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	id1 := componentIdOf[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		for eid, r := range arch.entities {
			if !m(eid, at(comps1, r)) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	id1, id2 := componentIdOf[A](q.ecs), componentIdOf[B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}
		for eid, r := range arch.entities {
			if !m(eid, at(comps1, r), at(comps2, r)) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	id1, id2, id3 := componentIdOf[A](q.ecs), componentIdOf[B](q.ecs), componentIdOf[C](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		comps1, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}
		comps3, ok := column[C](arch, id3, opt)
		if !ok {
			continue
		}
		for eid, r := range arch.entities {
			if !m(eid, at(comps1, r), at(comps2, r), at(comps3, r)) {
				return
			}
		}
	}
}

// GetComponent returns a pointer into the entity's storage. The pointer is
// valid until the next structural change to that archetype.
func GetComponent[T any](cmd *Commands, eid EntityId) (*T, bool) {
	ecs := cmd.app.ecs
	arch, r, ok := ecs.locate(eid)
	if !ok {
		return nil, false
	}
	col, ok := arch.columns[componentIdOf[T](ecs)]
	if !ok {
		return nil, false
	}
	return &col.Interface().([]T)[r], true
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		res[ecs.getComponentId(componentType(c))] = struct{}{}
	}
	return res
}

func componentIdOf[T any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeOf((*T)(nil)).Elem())
}
