package ecs

// SparseSet stores one component type densely, indexed by entity id.
// Removal swaps the last element into the hole, so iteration order is not
// stable across removals.
type SparseSet[T any] struct {
	sparse map[EntityID]int
	dense  []T
	ids    []EntityID
}

func NewSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{sparse: make(map[EntityID]int)}
}

func (s *SparseSet[T]) Len() int { return len(s.dense) }

func (s *SparseSet[T]) Has(id EntityID) bool {
	_, ok := s.sparse[id]
	return ok
}

// Set inserts or overwrites the component for id.
func (s *SparseSet[T]) Set(id EntityID, v T) {
	if i, ok := s.sparse[id]; ok {
		s.dense[i] = v
		return
	}
	s.sparse[id] = len(s.dense)
	s.dense = append(s.dense, v)
	s.ids = append(s.ids, id)
}

// Get returns a pointer into the dense storage. It is invalidated by the
// next Set or Remove.
func (s *SparseSet[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.sparse[id]
	if !ok {
		return nil, false
	}
	return &s.dense[i], true
}

func (s *SparseSet[T]) Remove(id EntityID) bool {
	i, ok := s.sparse[id]
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.ids[i] = s.ids[last]
		s.sparse[s.ids[i]] = i
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.ids = s.ids[:last]
	delete(s.sparse, id)
	return true
}

// Each visits every stored component. fn must not add or remove entries.
func (s *SparseSet[T]) Each(fn func(id EntityID, v *T)) {
	for i := range s.dense {
		fn(s.ids[i], &s.dense[i])
	}
}
