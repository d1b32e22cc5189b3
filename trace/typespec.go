package trace

import (
	"fmt"
	"strconv"
	"unicode"

	"symcc/build"
	"symcc/common"
	"symcc/symtab"
	"symcc/typing"
)

// typeParser reads the compact type notation used by traces:
//
//	unsigned long*          pointer to unsigned long
//	struct node*[4]         array of 4 pointers to struct node
//	int(char*, ...)         variadic function returning int
//	__builtin_va_list       typedef name
//
// Struct and union tags that are not visible are declared incomplete in the
// current scope, as a first mention in C source does.
type typeParser struct {
	c    *build.Compiler
	toks []string
	pos  int
}

// ParseTypeSpec parses a type specification against the compiler's namespaces.
func ParseTypeSpec(c *build.Compiler, spec string) (typing.TypeID, error) {
	toks, err := tokenize(spec)
	if err != nil {
		return typing.NoType, err
	}

	tp := &typeParser{c: c, toks: toks}
	typ, err := tp.parseSpec()
	if err != nil {
		return typing.NoType, err
	}

	if tp.pos < len(tp.toks) {
		return typing.NoType, fmt.Errorf("unexpected `%s` in type `%s`", tp.toks[tp.pos], spec)
	}

	return typ, nil
}

func tokenize(spec string) ([]string, error) {
	var toks []string
	runes := []rune(spec)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			start := i
			for i < len(runes) && (runes[i] == '_' || unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			toks = append(toks, string(runes[start:i]))
		case r == '.':
			if i+2 < len(runes) && runes[i+1] == '.' && runes[i+2] == '.' {
				toks = append(toks, "...")
				i += 3
			} else {
				return nil, fmt.Errorf("unexpected `.` in type `%s`", spec)
			}
		case r == '*' || r == '(' || r == ')' || r == '[' || r == ']' || r == ',':
			toks = append(toks, string(r))
			i++
		default:
			return nil, fmt.Errorf("unexpected `%c` in type `%s`", r, spec)
		}
	}

	if len(toks) == 0 {
		return nil, fmt.Errorf("empty type")
	}

	return toks, nil
}

func (tp *typeParser) peek() string {
	if tp.pos < len(tp.toks) {
		return tp.toks[tp.pos]
	}

	return ""
}

func (tp *typeParser) next() string {
	tok := tp.peek()
	tp.pos++
	return tok
}

func (tp *typeParser) expect(tok string) error {
	if got := tp.next(); got != tok {
		if got == "" {
			return fmt.Errorf("expected `%s` but reached end of type", tok)
		}

		return fmt.Errorf("expected `%s` but got `%s`", tok, got)
	}

	return nil
}

// parseSpec parses: base `*`* [`(` params `)`] (`[` [N] `]`)*
func (tp *typeParser) parseSpec() (typing.TypeID, error) {
	types := tp.c.Types()

	typ, err := tp.parseBase()
	if err != nil {
		return typing.NoType, err
	}

	for tp.peek() == "*" {
		tp.next()
		typ = types.Pointer(typ)
	}

	if tp.peek() == "(" {
		tp.next()
		params, variadic, err := tp.parseParams()
		if err != nil {
			return typing.NoType, err
		}

		typ = types.Function(typ, params, variadic)
	}

	var dims []uint
	for tp.peek() == "[" {
		tp.next()

		var n uint64
		if tp.peek() != "]" {
			n, err = strconv.ParseUint(tp.next(), 10, 32)
			if err != nil {
				return typing.NoType, fmt.Errorf("invalid array length: %s", err.Error())
			}
		}

		if err := tp.expect("]"); err != nil {
			return typing.NoType, err
		}

		dims = append(dims, uint(n))
	}

	// the first dimension is the outermost array
	for i := len(dims) - 1; i >= 0; i-- {
		typ = types.Array(typ, dims[i])
	}

	return typ, nil
}

func (tp *typeParser) parseParams() ([]typing.TypeID, bool, error) {
	var params []typing.TypeID

	for tp.peek() != ")" {
		if tp.peek() == "..." {
			tp.next()
			return params, true, tp.expect(")")
		}

		param, err := tp.parseSpec()
		if err != nil {
			return nil, false, err
		}
		params = append(params, param)

		if tp.peek() != ")" {
			if err := tp.expect(","); err != nil {
				return nil, false, err
			}
		}
	}

	tp.next()
	return params, false, nil
}

var integerWidths = map[string]uint{
	"char":  1,
	"short": 2,
	"int":   4,
	"long":  8,
}

func (tp *typeParser) parseBase() (typing.TypeID, error) {
	types := tp.c.Types()
	tok := tp.next()

	switch tok {
	case "":
		return typing.NoType, fmt.Errorf("expected a type but reached end of type")
	case "void":
		return types.Void(), nil
	case "signed", "unsigned":
		width := uint(4)
		if w, ok := integerWidths[tp.peek()]; ok {
			tp.next()
			width = w
		}

		return types.Integer(width, tok == "unsigned"), nil
	case "struct", "union":
		name := tp.next()
		if !common.IsValidIdentifier(name) {
			return typing.NoType, fmt.Errorf("expected a tag name after `%s`", tok)
		}

		return tp.tagType(name, tok == "union")
	}

	if w, ok := integerWidths[tok]; ok {
		return types.Integer(w, false), nil
	}

	if common.IsValidIdentifier(tok) {
		if id, ok := tp.c.Idents().Lookup(tok); ok {
			if sym := tp.c.Idents().Get(id); sym.Kind == symtab.KindTypedef {
				return sym.Type, nil
			}
		}

		return typing.NoType, fmt.Errorf("`%s` does not name a type", tok)
	}

	return typing.NoType, fmt.Errorf("unexpected `%s` in type", tok)
}

// tagType resolves a struct or union tag, declaring it incomplete in the
// current scope if it is not visible.
func (tp *typeParser) tagType(name string, union bool) (typing.TypeID, error) {
	tags := tp.c.Tags()
	if id, ok := tags.Lookup(name); ok {
		typ := tags.Get(id).Type
		if isUnion := tp.c.Types().Get(typ).Kind == typing.KindUnion; isUnion != union {
			return typing.NoType, fmt.Errorf("`%s` was previously declared as a different kind of tag", name)
		}

		return typ, nil
	}

	typ := tp.c.Types().Aggregate(name, union)
	if _, err := tags.DeclareTag(name, typ); err != nil {
		return typing.NoType, err
	}

	return typ, nil
}
