package typing

// TypeID is a stable handle to a type stored in an Arena.  Completing a type
// mutates the slot it names, so every holder of the handle observes the
// completion.
type TypeID uint32

// NoType marks the absence of a type reference.
const NoType TypeID = 0

// IsValid reports whether the ID refers to an allocated type.
func (id TypeID) IsValid() bool { return id != NoType }

// Kind is the category of a C type.  It must be one of the enumerated kinds
// below.
type Kind int

// Enumeration of type kinds
const (
	KindVoid Kind = iota
	KindInteger
	KindPointer
	KindArray
	KindStruct
	KindUnion
	KindFunction
)

// Type is the contents of one arena slot.  Only the fields relevant to its
// Kind are populated.
type Type struct {
	Kind Kind

	// Width is the size in bytes of an integer type.
	Width    uint
	Unsigned bool

	// Elem is the pointee of a pointer or the element type of an array.
	Elem TypeID

	// Len is the number of elements of an array.  An array with length zero
	// is incomplete.
	Len uint

	// Tag is the (possibly empty) tag name of a struct or union.
	Tag     string
	Members []Member

	// laidOut indicates that an aggregate's members are final and its size
	// and alignment have been computed.
	laidOut     bool
	size, align uint

	// Return, Params, and Variadic describe a function type.
	Return   TypeID
	Params   []TypeID
	Variadic bool
}

// Member is a named field of a struct or union.
type Member struct {
	Name   string
	Type   TypeID
	Offset uint
}
