package interpreter

import "maps"

// Store holds the interpreter's named variables. Values never go below zero.
type Store struct {
	vars map[string]int
}

func NewStore() *Store {
	return &Store{vars: make(map[string]int)}
}

func (s *Store) Set(name string, v int) {
	s.vars[name] = v
}

func (s *Store) Get(name string) (int, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Sub decrements name by v. It reports false, and changes nothing, when
// name is absent; a result below zero is ErrUnderflow.
func (s *Store) Sub(name string, v int) (bool, error) {
	cur, ok := s.vars[name]
	if !ok {
		return false, nil
	}
	if v > cur {
		return true, ErrUnderflow
	}

	s.vars[name] = cur - v
	return true, nil
}

// Delete removes name, reporting whether it was present
func (s *Store) Delete(name string) bool {
	if _, ok := s.vars[name]; !ok {
		return false
	}

	delete(s.vars, name)
	return true
}

func (s *Store) Len() int {
	return len(s.vars)
}

func (s *Store) Clear() {
	clear(s.vars)
}

// Snapshot returns a copy of all variables
func (s *Store) Snapshot() map[string]int {
	return maps.Clone(s.vars)
}
