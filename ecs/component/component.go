// Package component defines the component kinds the simulation layer
// attaches to entities, plus the typed handle machinery the world stores
// them under.
package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ID is the process-wide identifier of a component kind.
type ID uint32

var nextID atomic.Uint32

// Kind is the untyped view of a component kind, usable in queries.
type Kind interface {
	ID() ID
}

// ComponentKind carries the type association for a kind.
type ComponentKind[T any] struct {
	id ID
}

func (k ComponentKind[T]) ID() ID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle registers and addresses a component type. Declare one
// package-level handle per component.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent allocates a fresh component kind.
func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: ComponentKind[T]{id: ID(nextID.Add(1))}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
