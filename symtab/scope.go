package symtab

// Scope is the set of symbols registered directly at one lexical depth.
// Membership is ordered by registration; the name index serves lookups.
type Scope struct {
	members []SymbolID
	index   map[string]SymbolID
}

func newScope() Scope {
	return Scope{index: make(map[string]SymbolID)}
}

func (s *Scope) register(name string, id SymbolID) {
	s.members = append(s.members, id)
	s.index[name] = id
}

func (s *Scope) find(name string) (SymbolID, bool) {
	id, ok := s.index[name]
	return id, ok
}

// Members returns the symbols registered in the scope in registration order.
func (s *Scope) Members() []SymbolID {
	return s.members
}
