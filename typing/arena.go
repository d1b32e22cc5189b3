package typing

import (
	"fmt"
	"strings"
)

// Arena owns every type created during a compilation.  Types are addressed by
// TypeID and are never relocated: growing the arena does not invalidate
// previously issued IDs.
type Arena struct {
	data []Type

	// wordSize is the size and alignment of pointers on the target.
	wordSize uint
}

// NewArena creates an arena for a target with the given word size.
func NewArena(wordSize uint) *Arena {
	return &Arena{
		data:     make([]Type, 1, 64), // index 0 reserved for NoType
		wordSize: wordSize,
	}
}

// WordSize returns the pointer size of the target.
func (a *Arena) WordSize() uint {
	return a.wordSize
}

// Len reports the number of allocated types.
func (a *Arena) Len() int {
	return len(a.data) - 1
}

// Get returns a copy of the type named by id.  It panics on an invalid ID since
// handles are only ever produced by the arena itself.
func (a *Arena) Get(id TypeID) Type {
	return *a.slot(id)
}

func (a *Arena) slot(id TypeID) *Type {
	if !id.IsValid() || int(id) >= len(a.data) {
		panic(fmt.Sprintf("typing: invalid type id %d", id))
	}

	return &a.data[id]
}

func (a *Arena) add(t Type) TypeID {
	a.data = append(a.data, t)
	return TypeID(len(a.data) - 1)
}

// -----------------------------------------------------------------------------

// Void creates the void type.
func (a *Arena) Void() TypeID {
	return a.add(Type{Kind: KindVoid})
}

// Integer creates an integer type of the given width in bytes.
func (a *Arena) Integer(width uint, unsigned bool) TypeID {
	return a.add(Type{Kind: KindInteger, Width: width, Unsigned: unsigned})
}

// Pointer creates a pointer to elem.
func (a *Arena) Pointer(elem TypeID) TypeID {
	return a.add(Type{Kind: KindPointer, Elem: elem})
}

// Array creates an array of n elements.  An array of length zero is
// incomplete until completed from a sized declaration.
func (a *Arena) Array(elem TypeID, n uint) TypeID {
	return a.add(Type{Kind: KindArray, Elem: elem, Len: n})
}

// Aggregate creates an incomplete struct or union.  Members are added with
// AddMember and the layout is finalized with Layout.
func (a *Arena) Aggregate(tag string, union bool) TypeID {
	kind := KindStruct
	if union {
		kind = KindUnion
	}

	return a.add(Type{Kind: kind, Tag: tag})
}

// Function creates a function type.
func (a *Arena) Function(ret TypeID, params []TypeID, variadic bool) TypeID {
	return a.add(Type{Kind: KindFunction, Return: ret, Params: params, Variadic: variadic})
}

// AddMember appends a member to an aggregate that has not been laid out.
func (a *Arena) AddMember(id TypeID, name string, typ TypeID) error {
	t := a.slot(id)
	if t.Kind != KindStruct && t.Kind != KindUnion {
		return fmt.Errorf("cannot add member `%s` to non-aggregate type %s", name, a.Repr(id))
	}

	if t.laidOut {
		return fmt.Errorf("cannot add member `%s` to complete type %s", name, a.Repr(id))
	}

	for _, m := range t.Members {
		if m.Name == name {
			return fmt.Errorf("duplicate member `%s` in %s", name, a.Repr(id))
		}
	}

	if a.IsIncomplete(typ) {
		return fmt.Errorf("member `%s` has incomplete type %s", name, a.Repr(typ))
	}

	t.Members = append(t.Members, Member{Name: name, Type: typ})
	return nil
}

// Layout computes the member offsets, size, and alignment of an aggregate,
// making it complete.  Members are placed at the next offset that is a multiple
// of their alignment (all at offset zero for unions) and the size is padded to
// a multiple of the largest member alignment.
func (a *Arena) Layout(id TypeID) {
	t := a.slot(id)

	var offset, size uint
	maxAlign := uint(1)
	for i := range t.Members {
		m := &t.Members[i]
		memberSize, memberAlign := a.SizeOf(m.Type), a.AlignOf(m.Type)

		if t.Kind == KindUnion {
			m.Offset = 0
			if memberSize > size {
				size = memberSize
			}
		} else {
			if alignMod := offset % memberAlign; alignMod != 0 {
				offset += memberAlign - alignMod
			}

			m.Offset = offset
			offset += memberSize
			size = offset
		}

		if memberAlign > maxAlign {
			maxAlign = memberAlign
		}
	}

	if padding := size % maxAlign; padding != 0 {
		size += maxAlign - padding
	}

	t.size = size
	t.align = maxAlign
	t.laidOut = true
}

// -----------------------------------------------------------------------------

// IsIncomplete reports whether the type lacks the size information needed to
// reserve storage for it: void, arrays without a length (or of incomplete
// elements), and aggregates that have not been laid out.
func (a *Arena) IsIncomplete(id TypeID) bool {
	t := a.slot(id)
	switch t.Kind {
	case KindVoid:
		return true
	case KindArray:
		return t.Len == 0 || a.IsIncomplete(t.Elem)
	case KindStruct, KindUnion:
		return !t.laidOut
	}

	return false
}

// IsObject reports whether the type describes an object (anything but void
// and functions).
func (a *Arena) IsObject(id TypeID) bool {
	kind := a.slot(id).Kind
	return kind != KindFunction && kind != KindVoid
}

// SizeOf returns the size of a type in bytes.  Incomplete types, void, and
// functions have size zero.  Array sizes are computed from their element type
// so that completing an element type in place is reflected.
func (a *Arena) SizeOf(id TypeID) uint {
	t := a.slot(id)
	switch t.Kind {
	case KindInteger:
		return t.Width
	case KindPointer:
		return a.wordSize
	case KindArray:
		return t.Len * a.SizeOf(t.Elem)
	case KindStruct, KindUnion:
		return t.size
	}

	return 0
}

// AlignOf returns the required alignment of a type in bytes.
func (a *Arena) AlignOf(id TypeID) uint {
	t := a.slot(id)
	switch t.Kind {
	case KindInteger:
		return t.Width
	case KindPointer:
		return a.wordSize
	case KindArray:
		return a.AlignOf(t.Elem)
	case KindStruct, KindUnion:
		if t.laidOut {
			return t.align
		}
	}

	return 1
}

// Complete merges the fuller definition newer into the incomplete type
// existing by mutating existing's slot, and returns existing.  An array
// takes the length of a sized array; an aggregate takes the members and layout
// of a complete aggregate of the same kind.  Any other combination leaves
// existing unchanged.
func (a *Arena) Complete(existing, newer TypeID) TypeID {
	if existing == newer || !a.IsIncomplete(existing) || a.IsIncomplete(newer) {
		return existing
	}

	t, n := a.slot(existing), a.slot(newer)
	if t.Kind != n.Kind {
		return existing
	}

	switch t.Kind {
	case KindArray:
		if t.Len == 0 {
			t.Len = n.Len
		}

		if a.IsIncomplete(t.Elem) {
			a.Complete(t.Elem, n.Elem)
		}
	case KindStruct, KindUnion:
		t.Members = append([]Member(nil), n.Members...)
		t.size = n.size
		t.align = n.align
		t.laidOut = true
	}

	return existing
}

// -----------------------------------------------------------------------------

// Repr returns a C-like textual representation of a type.
func (a *Arena) Repr(id TypeID) string {
	if !id.IsValid() {
		return "<none>"
	}

	t := a.slot(id)
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindInteger:
		name := map[uint]string{1: "char", 2: "short", 4: "int", 8: "long"}[t.Width]
		if name == "" {
			name = fmt.Sprintf("int%d", t.Width*8)
		}

		if t.Unsigned {
			return "unsigned " + name
		}

		return name
	case KindPointer:
		return "*" + a.Repr(t.Elem)
	case KindArray:
		if t.Len == 0 {
			return "[]" + a.Repr(t.Elem)
		}

		return fmt.Sprintf("[%d]%s", t.Len, a.Repr(t.Elem))
	case KindStruct, KindUnion:
		sb := strings.Builder{}
		if t.Kind == KindStruct {
			sb.WriteString("struct")
		} else {
			sb.WriteString("union")
		}

		if t.Tag != "" {
			sb.WriteString(" " + t.Tag)
		}

		if t.laidOut && t.Tag == "" {
			sb.WriteString(" {")
			for i, m := range t.Members {
				if i > 0 {
					sb.WriteString(",")
				}

				sb.WriteString(" " + a.Repr(m.Type) + " " + m.Name)
			}
			sb.WriteString(" }")
		}

		return sb.String()
	default:
		sb := strings.Builder{}
		sb.WriteString("func(")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(a.Repr(p))
		}

		if t.Variadic {
			if len(t.Params) > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString("...")
		}

		sb.WriteString(") " + a.Repr(t.Return))
		return sb.String()
	}
}
