package ecs

import "github.com/gridlockgames/collider/ecs/component"

// Add attaches (or replaces) a component on an entity.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	w.table(handle.Kind().ID()).set(e.id(), &value)
	return nil
}

// Remove detaches a component. Returns false when the entity did not have it.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	t, ok := w.tables[handle.Kind().ID()]
	if !ok {
		return false
	}
	return t.remove(e.id())
}

// Has reports whether the entity carries the component.
func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	t, ok := w.tables[handle.Kind().ID()]
	return ok && t.has(e.id())
}

// Get returns a copy of the component value.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	p := GetPtr(w, e, handle)
	if p == nil {
		return zero, false
	}
	return *p, true
}

// GetPtr returns a pointer to the stored component for in-place mutation,
// or nil. The pointer stays valid until the component is removed.
func GetPtr[T any](w *World, e Entity, handle component.ComponentHandle[T]) *T {
	if w == nil || !w.entities.isAlive(e) {
		return nil
	}
	t, ok := w.tables[handle.Kind().ID()]
	if !ok {
		return nil
	}
	v := t.get(e.id())
	if v == nil {
		return nil
	}
	p, ok := v.(*T)
	if !ok {
		return nil
	}
	return p
}

// ForEach2 visits every entity having both components, in slot order,
// passing mutable pointers.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ha.Kind(), hb.Kind()) {
		pa := GetPtr(w, e, ha)
		pb := GetPtr(w, e, hb)
		if pa == nil || pb == nil {
			continue
		}
		fn(e, pa, pb)
	}
}
