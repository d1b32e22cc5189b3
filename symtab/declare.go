package symtab

import (
	"errors"
	"fmt"

	"symcc/logging"
)

// Errors returned by Declare.  Both are also reported to the shared error
// channel; the caller should stop processing the offending declaration.
var (
	ErrIncompatibleRedeclaration = errors.New("declaration does not match prior declaration")
	ErrDuplicateDefinition       = errors.New("duplicate definition")
)

// DeclError is a failed declaration of a named symbol.
type DeclError struct {
	Name string
	Err  error
}

func (de *DeclError) Error() string {
	if de.Err == ErrDuplicateDefinition {
		return fmt.Sprintf("duplicate definition of symbol `%s`", de.Name)
	}

	return fmt.Sprintf("declaration of `%s` does not match prior declaration", de.Name)
}

func (de *DeclError) Unwrap() error {
	return de.Err
}

// Declare registers a source-level declaration.  A redeclaration of a visible
// symbol resolves to that symbol, completing its type and promoting its kind
// where the linkage rules allow it; otherwise a fresh symbol is created in the
// current scope, shadowing any outer symbol of the same name.
func (ns *Namespace) Declare(d Draft) (SymbolID, error) {
	if id, ok := ns.Lookup(d.Name); ok {
		s := ns.slot(id)
		depth := ns.Depth()

		// an extern declaration refers to whatever tentative or full
		// definition is already visible
		if d.Linkage == LinkageExternal && d.Kind == KindDeclaration &&
			(s.Kind == KindTentative || s.Kind == KindDefinition) {
			ns.Complete(id, d.Type)
			return id, nil
		}

		if s.Depth == depth && depth == 0 {
			if s.Linkage == d.Linkage {
				switch {
				case s.Kind == KindTentative && d.Kind == KindDefinition,
					s.Kind == KindDefinition && d.Kind == KindTentative:
					ns.Complete(id, d.Type)
					s.Kind = KindDefinition
					return id, nil
				case s.Kind == KindDeclaration && d.Kind == KindTentative:
					ns.Complete(id, d.Type)
					s.Kind = KindTentative
					return id, nil
				case s.Kind == d.Kind:
					ns.Complete(id, d.Type)
					return id, nil
				}
			}

			return NoSymbol, ns.reject(d.Name, ErrIncompatibleRedeclaration)
		}

		// no merging below file scope
		if s.Depth == depth {
			return NoSymbol, ns.reject(d.Name, ErrDuplicateDefinition)
		}
	}

	sym := Symbol{
		Name:      d.Name,
		Type:      d.Type,
		Kind:      d.Kind,
		Linkage:   d.Linkage,
		EnumValue: d.EnumValue,
	}

	depth := ns.Depth()

	// block-scoped statics are emitted at file scope, so they need a name that
	// cannot collide with any other
	if d.Linkage == LinkageInternal && depth > 0 {
		ns.staticCount++
		sym.Disambiguator = ns.staticCount
	}

	if ns.needsStorage(d) {
		ns.alloc.assign(&sym, depth, int(ns.types.SizeOf(d.Type)))
	}

	id := ns.create(sym)
	ns.register(id)
	return id, nil
}

// reject reports a failed declaration to the shared error channel.
func (ns *Namespace) reject(name string, err error) error {
	de := &DeclError{Name: name, Err: err}
	logging.LogCompileError(de.Error(), logging.LMKDef)
	return de
}
