package symtab

import (
	"fmt"

	"symcc/typing"
)

// SymbolID is the permanent identity of a symbol: its slot in the backing store
// of the namespace that created it.  IDs stay valid for the life of the
// namespace regardless of how many symbols are created after them.
type SymbolID uint32

// NoSymbol marks the absence of a symbol reference.
const NoSymbol SymbolID = 0

// IsValid reports whether the ID refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbol }

// SymbolKind classifies what a declaration of a symbol established.
type SymbolKind int

// Enumeration of symbol kinds
const (
	KindDeclaration SymbolKind = iota
	KindTentative
	KindDefinition
	KindTypedef
	KindEnumConstant
)

func (k SymbolKind) String() string {
	switch k {
	case KindDeclaration:
		return "declaration"
	case KindTentative:
		return "tentative"
	case KindDefinition:
		return "definition"
	case KindTypedef:
		return "typedef"
	default:
		return "enum"
	}
}

// Linkage determines whether a name denotes the same entity across scopes.
type Linkage int

// Enumeration of linkages
const (
	LinkageNone Linkage = iota
	LinkageInternal
	LinkageExternal
)

func (l Linkage) String() string {
	switch l {
	case LinkageInternal:
		return "intern"
	case LinkageExternal:
		return "extern"
	default:
		return "none"
	}
}

// Symbol records the attributes of one declared name.
type Symbol struct {
	// Name is the name of the symbol as it is referenced in source code.
	// Temporaries are named `.tN`, which can never collide with a source name.
	Name string

	// Disambiguator is a non-zero suffix for block-scoped symbols with
	// internal linkage so that their emitted names are unique.
	Disambiguator int

	// Type is a handle to the (possibly incomplete) type of the symbol.
	Type typing.TypeID

	Kind    SymbolKind
	Linkage Linkage

	// Depth is the scope depth the symbol was created at: 0 is file scope, 1
	// is function parameter scope, and anything greater is a block scope.
	Depth int

	// ParamOrdinal is the 1-based position of a function parameter or 0.
	ParamOrdinal int

	// StackOffset is the frame-relative offset of a parameter or local.  It is
	// meaningless when InRegister is set.
	StackOffset int

	// InRegister marks a parameter passed in a register.
	InRegister bool

	// EnumValue is the value of an enumeration constant.
	EnumValue int
}

// EmittedName returns the name the symbol is known by in generated output.
func (sym *Symbol) EmittedName() string {
	if sym.Disambiguator != 0 {
		return fmt.Sprintf("%s.%d", sym.Name, sym.Disambiguator)
	}

	return sym.Name
}

// Draft describes a source-level declaration submitted to Declare.
type Draft struct {
	Name      string
	Type      typing.TypeID
	Kind      SymbolKind
	Linkage   Linkage
	EnumValue int
}
