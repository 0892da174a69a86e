package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// Kind is the untyped view of a component kind, used by multi-kind queries.
type Kind interface {
	ID() ComponentID
}

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

// NewComponent registers a component type and returns its kind.
func NewComponent[T any]() ComponentKind[T] {
	return NewComponentKind[T]()
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

// Kind returns k itself so registered components read the same at call sites.
func (k ComponentKind[T]) Kind() ComponentKind[T] {
	return k
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

type ComponentID uint32

var nextComponentID atomic.Uint32
