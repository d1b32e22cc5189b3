package symtab

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes every symbol ever created in the namespace, indented by depth.
func (ns *Namespace) Dump(w io.Writer) {
	if ns.Len() > 0 {
		fmt.Fprintf(w, "namespace %s:\n", ns.name)
	}

	for i := 1; i < len(ns.symbols); i++ {
		sym := &ns.symbols[i]

		sb := strings.Builder{}
		sb.WriteString(strings.Repeat("  ", sym.Depth))

		switch sym.Linkage {
		case LinkageInternal:
			sb.WriteString("static ")
		case LinkageExternal:
			sb.WriteString("global ")
		}

		fmt.Fprintf(&sb, "%s %s :: %s, size=%d",
			sym.Kind, sym.EmittedName(), ns.types.Repr(sym.Type), ns.types.SizeOf(sym.Type))

		if sym.ParamOrdinal > 0 {
			fmt.Fprintf(&sb, " (param: %d)", sym.ParamOrdinal)
		}

		if sym.InRegister {
			sb.WriteString(" (register)")
		} else if sym.StackOffset != 0 {
			fmt.Fprintf(&sb, " (stack_offset: %d)", sym.StackOffset)
		}

		if sym.Kind == KindEnumConstant {
			fmt.Fprintf(&sb, ", value=%d", sym.EnumValue)
		}

		fmt.Fprintln(w, sb.String())
	}
}
