package symtab

// allocator assigns parameter ordinals and frame offsets following the System
// V calling convention: the first registerParams parameters arrive in
// registers, the rest above the return address, and locals grow downward from
// the frame base.
type allocator struct {
	wordSize       int
	registerParams int

	offset  int
	ordinal int
}

// enter resets the counters when a function's parameter scope or body scope
// opens.  Nested blocks keep accumulating so sibling blocks never share slots.
func (al *allocator) enter(depth int) {
	switch depth {
	case 1:
		al.offset = al.wordSize
		al.ordinal = 1
	case 2:
		al.offset = 0
	}
}

// assign places a parameter (depth 1) or local (deeper) of the given size.
func (al *allocator) assign(sym *Symbol, depth, size int) {
	if depth == 1 {
		sym.ParamOrdinal = al.ordinal
		al.ordinal++
		al.offset += size

		if sym.ParamOrdinal <= al.registerParams {
			sym.InRegister = true
		} else {
			sym.StackOffset = al.offset
		}

		return
	}

	al.offset -= size
	sym.StackOffset = al.offset
}

func (al *allocator) frameSize() int {
	if al.offset < 0 {
		return -al.offset
	}

	return 0
}

// needsStorage reports whether a newly declared symbol is a parameter or local
// object that occupies a frame slot.
func (ns *Namespace) needsStorage(d Draft) bool {
	if ns.category != CategoryIdent || ns.Depth() < 1 || d.Linkage != LinkageNone {
		return false
	}

	if d.Kind == KindTypedef || d.Kind == KindEnumConstant {
		return false
	}

	return ns.types.IsObject(d.Type)
}
