package symtab

// TentativeObject is a tentatively defined object that never received a full
// definition.  Storage must be reserved for it at the end of the translation
// unit.
type TentativeObject struct {
	Name     string
	Size     int
	Align    int
	Internal bool
}

// ForEachTentative calls fn, in creation order, for every symbol that is still
// a tentative definition of an object type.  It should be called once at the
// end of the translation unit.
func (ns *Namespace) ForEachTentative(fn func(TentativeObject)) {
	for i := 1; i < len(ns.symbols); i++ {
		sym := &ns.symbols[i]
		if sym.Kind != KindTentative || !ns.types.IsObject(sym.Type) {
			continue
		}

		size := int(ns.types.SizeOf(sym.Type))
		fn(TentativeObject{
			Name:     sym.EmittedName(),
			Size:     size,
			Align:    tentativeAlignment(size),
			Internal: sym.Linkage == LinkageInternal,
		})
	}
}

func tentativeAlignment(size int) int {
	switch {
	case size >= 16:
		return 16
	case size >= 8:
		return 8
	default:
		return 4
	}
}
