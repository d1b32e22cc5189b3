package symtab

import (
	"fmt"

	"symcc/common"
	"symcc/logging"
	"symcc/typing"
)

// Category distinguishes the two independent C name spaces the compiler
// tracks.
type Category int

// Enumeration of namespace categories
const (
	// CategoryIdent holds ordinary identifiers and typedef names.  Only this
	// category assigns storage to parameters and locals.
	CategoryIdent Category = iota

	// CategoryTag holds struct, union, and enum tags.
	CategoryTag
)

// Namespace is an independent symbol table and scope stack for one category of
// names.  It owns every symbol it creates: symbols are never deleted
// individually, and popping a scope only hides its symbols from lookup.
type Namespace struct {
	name     string
	category Category
	types    *typing.Arena

	// symbols is the backing store; index 0 is reserved for NoSymbol.
	symbols []Symbol

	// scopes is the scope stack.  The file scope is always present so the
	// current depth is len(scopes) - 1.
	scopes []Scope

	alloc allocator

	// tempCount and staticCount number temporaries and block-scoped statics.
	tempCount   int
	staticCount int
}

// NewNamespace creates a namespace with its file scope open.
func NewNamespace(name string, category Category, types *typing.Arena) *Namespace {
	return &Namespace{
		name:     name,
		category: category,
		types:    types,
		symbols:  make([]Symbol, 1, 64),
		scopes:   []Scope{newScope()},
		alloc: allocator{
			wordSize:       int(types.WordSize()),
			registerParams: common.DefaultRegisterParams,
		},
	}
}

// SetRegisterParams sets how many leading parameters are passed in registers.
func (ns *Namespace) SetRegisterParams(n int) {
	ns.alloc.registerParams = n
}

// Name returns the namespace's display name.
func (ns *Namespace) Name() string {
	return ns.name
}

// Types returns the type arena symbol types refer to.
func (ns *Namespace) Types() *typing.Arena {
	return ns.types
}

// Depth returns the current scope depth.
func (ns *Namespace) Depth() int {
	return len(ns.scopes) - 1
}

// Len returns the number of symbols ever created in the namespace.
func (ns *Namespace) Len() int {
	return len(ns.symbols) - 1
}

// Get returns a copy of the symbol named by id.
func (ns *Namespace) Get(id SymbolID) Symbol {
	return *ns.slot(id)
}

func (ns *Namespace) slot(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(ns.symbols) {
		panic(fmt.Sprintf("symtab: invalid symbol id %d in namespace %s", id, ns.name))
	}

	return &ns.symbols[id]
}

// -----------------------------------------------------------------------------

// PushScope opens a new, empty scope one level deeper.
func (ns *Namespace) PushScope() {
	ns.scopes = append(ns.scopes, newScope())

	if ns.category == CategoryIdent {
		ns.alloc.enter(ns.Depth())
	}
}

// PopScope closes the innermost scope.  Its symbols remain in the backing store
// but are no longer visible.  The file scope cannot be popped.
func (ns *Namespace) PopScope() {
	if ns.Depth() == 0 {
		return
	}

	ns.scopes = ns.scopes[:len(ns.scopes)-1]
}

// Lookup returns the innermost visible symbol with the given name.
func (ns *Namespace) Lookup(name string) (SymbolID, bool) {
	for d := ns.Depth(); d >= 0; d-- {
		if id, ok := ns.scopes[d].find(name); ok {
			return id, true
		}
	}

	return NoSymbol, false
}

// ScopeMembers returns the symbols registered in the current scope in
// registration order.  Code generation uses it to walk the parameters of a
// function in declaration order.
func (ns *Namespace) ScopeMembers() []SymbolID {
	return append([]SymbolID(nil), ns.scopes[ns.Depth()].Members()...)
}

// -----------------------------------------------------------------------------

// create appends a symbol to the backing store at the current depth without
// making it visible.
func (ns *Namespace) create(sym Symbol) SymbolID {
	sym.Depth = ns.Depth()
	ns.symbols = append(ns.symbols, sym)
	id := SymbolID(len(ns.symbols) - 1)

	logging.Trace().Debug().
		Str("namespace", ns.name).
		Str("name", sym.EmittedName()).
		Int("depth", sym.Depth).
		Stringer("kind", sym.Kind).
		Stringer("linkage", sym.Linkage).
		Str("type", ns.types.Repr(sym.Type)).
		Msg("created symbol")

	return id
}

// register makes a created symbol visible in the current scope.
func (ns *Namespace) register(id SymbolID) {
	ns.scopes[ns.Depth()].register(ns.slot(id).Name, id)
}

// CreateTemporary creates and registers a symbol with a unique compiler
// generated name.  Temporaries never merge with other symbols.
func (ns *Namespace) CreateTemporary(typ typing.TypeID) SymbolID {
	sym := Symbol{
		Name: fmt.Sprintf(".t%d", ns.tempCount),
		Type: typ,
		Kind: KindDefinition,
	}
	ns.tempCount++

	if ns.category == CategoryIdent && ns.Depth() >= 2 && ns.types.IsObject(typ) {
		ns.alloc.assign(&sym, ns.Depth(), int(ns.types.SizeOf(typ)))
	}

	id := ns.create(sym)
	ns.register(id)
	return id
}

// Complete completes the type of an existing symbol from a fuller type.  The
// type is completed in place, so every holder of the type handle observes it.
func (ns *Namespace) Complete(id SymbolID, newer typing.TypeID) {
	sym := ns.slot(id)
	if ns.types.IsIncomplete(sym.Type) {
		ns.types.Complete(sym.Type, newer)
	}
}

// LocalFrameSize returns the number of bytes of local storage allocated in the
// current function body so far.  Code generation reads it when the body
// closes to size the prologue's stack adjustment.
func (ns *Namespace) LocalFrameSize() int {
	return ns.alloc.frameSize()
}
