package symtab

import "symcc/typing"

// DeclareTag declares a struct, union, or enum tag in the current scope.  A
// tag already declared in the current scope is completed by a complete type
// and referred to by an incomplete one; giving it a second complete type is a
// duplicate definition, and naming it with the other aggregate kind is an
// incompatible redeclaration.  Tags declared in outer scopes are shadowed.
func (ns *Namespace) DeclareTag(name string, typ typing.TypeID) (SymbolID, error) {
	if id, ok := ns.scopes[ns.Depth()].find(name); ok {
		existing := ns.slot(id).Type
		if ns.types.Get(existing).Kind != ns.types.Get(typ).Kind {
			return NoSymbol, ns.reject(name, ErrIncompatibleRedeclaration)
		}

		if ns.types.IsIncomplete(typ) || existing == typ {
			return id, nil
		}

		if !ns.types.IsIncomplete(existing) {
			return NoSymbol, ns.reject(name, ErrDuplicateDefinition)
		}

		ns.Complete(id, typ)
		return id, nil
	}

	return ns.Declare(Draft{Name: name, Type: typ, Kind: KindTypedef})
}
