package clausenote

import "fmt"

// SymbolTable maps predicate names to the stable integer predicate ids
// internal/term.Literal requires (predicate identity there is by id,
// not name — see Store.Literal), and back again for internal/tptpout's
// benefit. Id 0 is reserved for equality (never allocated here);
// negative ids are reserved for synthetic predicates such as
// internal/answer's $ans (also never allocated here).
type SymbolTable struct {
	byName map[string]int
	byID   map[int]string
	next   int
}

// NewSymbolTable returns an empty table, with predicate ids starting
// at 1.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]int), byID: make(map[int]string), next: 1}
}

// IDFor returns the stable id for name, allocating a fresh one on
// first use.
func (s *SymbolTable) IDFor(name string) int {
	if id, ok := s.byName[name]; ok {
		return id
	}
	id := s.next
	s.next++
	s.byName[name] = id
	s.byID[id] = name
	return id
}

// NameFor returns the name registered for id, or a synthetic
// placeholder if id was never allocated through this table (e.g. it
// came from another run's symbol table).
func (s *SymbolTable) NameFor(id int) string {
	if name, ok := s.byID[id]; ok {
		return name
	}
	return fmt.Sprintf("p%d", id)
}
