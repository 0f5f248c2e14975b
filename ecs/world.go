// Package ecs is a small entity/component store driven once per frame.
package ecs

import (
	"fmt"
	"sort"
)

type EntityID uint32

// Component is implemented by every storable component type.
type Component interface {
	componentName() string
}

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

func (Position) componentName() string { return "Position" }
func (Velocity) componentName() string { return "Velocity" }

type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

type World struct {
	entities   map[EntityID]struct{}
	positions  *SparseSet[Position]
	velocities *SparseSet[Velocity]
	systems    []System
}

func NewWorld() *World {
	return &World{
		entities:   make(map[EntityID]struct{}),
		positions:  NewSparseSet[Position](),
		velocities: NewSparseSet[Velocity](),
	}
}

// AddEntity stores id with exactly the given components, replacing any
// components it had before.
func (w *World) AddEntity(id EntityID, components ...Component) {
	w.removeComponents(id)
	w.entities[id] = struct{}{}
	for _, c := range components {
		switch c := c.(type) {
		case Position:
			w.positions.Set(id, c)
		case *Position:
			w.positions.Set(id, *c)
		case Velocity:
			w.velocities.Set(id, c)
		case *Velocity:
			w.velocities.Set(id, *c)
		default:
			panic(fmt.Sprintf("ecs: unsupported component %T", c))
		}
	}
}

func (w *World) RemoveEntity(id EntityID) bool {
	if _, ok := w.entities[id]; !ok {
		return false
	}
	w.removeComponents(id)
	delete(w.entities, id)
	return true
}

func (w *World) removeComponents(id EntityID) {
	w.positions.Remove(id)
	w.velocities.Remove(id)
}

func (w *World) HasEntity(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Entities returns the live entity ids in ascending order.
func (w *World) Entities() []EntityID {
	ids := make([]EntityID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (w *World) Position(id EntityID) (*Position, bool) { return w.positions.Get(id) }
func (w *World) Velocity(id EntityID) (*Velocity, bool) { return w.velocities.Get(id) }

func (w *World) Positions() *SparseSet[Position]  { return w.positions }
func (w *World) Velocities() *SparseSet[Velocity] { return w.velocities }

func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
}

// Update runs every system once, in registration order.
func (w *World) Update() {
	for _, s := range w.systems {
		s.Update(w)
	}
}

// MovementSystem integrates Velocity into Position for entities that have
// both.
type MovementSystem struct{}

func NewMovementSystem() MovementSystem { return MovementSystem{} }

func (MovementSystem) Update(w *World) {
	w.positions.Each(func(id EntityID, p *Position) {
		if v, ok := w.velocities.Get(id); ok {
			p.X += v.DX
			p.Y += v.DY
		}
	})
}
