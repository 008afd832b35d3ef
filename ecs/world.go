package ecs

import (
	"github.com/gridlockgames/collider/ecs/component"
)

// World owns entities, component tables, and the event queue.
type World struct {
	entities entityStore
	tables   map[component.ID]*sparseSet
	events   EventQueue
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{tables: make(map[component.ID]*sparseSet)}
}

// CreateEntity allocates a new entity handle.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes an entity and all its components. Returns false for
// stale or invalid handles.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, table := range w.tables {
		table.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether the handle is current.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, len(w.entities.gens))
	for i, gen := range w.entities.gens {
		e := makeEntity(entityID(i+1), gen)
		if w.entities.isAlive(e) {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) table(id component.ID) *sparseSet {
	if w.tables == nil {
		w.tables = make(map[component.ID]*sparseSet)
	}
	t, ok := w.tables[id]
	if !ok {
		t = &sparseSet{}
		w.tables[id] = t
	}
	return t
}

// Query returns the live entities having every listed kind, in slot order.
// Slot order keeps iteration deterministic for identical operation
// histories, which the collision pipeline's determinism contract needs.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	tables := make([]*sparseSet, 0, len(kinds))
	for _, k := range kinds {
		t, ok := w.tables[k.ID()]
		if !ok || t.len() == 0 {
			return nil
		}
		tables = append(tables, t)
	}

	out := make([]Entity, 0, tables[0].len())
	for i, gen := range w.entities.gens {
		id := entityID(i + 1)
		e := makeEntity(id, gen)
		if !w.entities.isAlive(e) {
			continue
		}
		all := true
		for _, t := range tables {
			if !t.has(id) {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity matching the kinds, if any.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	matches := w.Query(kinds...)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0], true
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
