package trace

import (
	"fmt"
	"os"

	"symcc/build"
	"symcc/common"
	"symcc/logging"
	"symcc/symtab"
	"symcc/typing"

	"github.com/pelletier/go-toml"
)

// Op is a single parser action recorded in a trace.
type Op int

const (
	OpPush    Op = iota // enter a block
	OpPop               // leave a block
	OpDeclare           // declare an identifier
	OpEnum              // declare an enumeration constant
	OpTag               // declare or define a struct or union tag
	OpTemp              // create a compiler temporary
)

var opNames = map[string]Op{
	"push":    OpPush,
	"pop":     OpPop,
	"declare": OpDeclare,
	"enum":    OpEnum,
	"tag":     OpTag,
	"temp":    OpTemp,
}

var kindNames = map[string]symtab.SymbolKind{
	"declaration": symtab.KindDeclaration,
	"tentative":   symtab.KindTentative,
	"definition":  symtab.KindDefinition,
	"typedef":     symtab.KindTypedef,
}

var linkageNames = map[string]symtab.Linkage{
	"":         symtab.LinkageNone,
	"none":     symtab.LinkageNone,
	"intern":   symtab.LinkageInternal,
	"internal": symtab.LinkageInternal,
	"static":   symtab.LinkageInternal,
	"extern":   symtab.LinkageExternal,
	"external": symtab.LinkageExternal,
}

// Step is one decoded trace entry.  Type strings are kept unparsed since
// their meaning depends on the declarations that precede them.
type Step struct {
	Op      Op
	Name    string
	Type    string
	Kind    symtab.SymbolKind
	Linkage symtab.Linkage
	Value   int
	Union   bool
	Members []Member
}

// Member is a field of a struct or union defined by an OpTag step.
type Member struct {
	Name string
	Type string
}

// Trace is the sequence of declarations a parser would make over one
// translation unit.
type Trace struct {
	Steps []Step
}

// tomlTrace represents a trace file as it is decoded from TOML.
type tomlTrace struct {
	Steps []*tomlStep `toml:"step"`
}

type tomlStep struct {
	Op      string        `toml:"op"`
	Name    string        `toml:"name"`
	Type    string        `toml:"type"`
	Kind    string        `toml:"kind"`
	Linkage string        `toml:"linkage"`
	Value   int           `toml:"value"`
	Union   bool          `toml:"union"`
	Members []*tomlMember `toml:"member"`
}

type tomlMember struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// LoadTrace reads and decodes the trace file at path.
func LoadTrace(path string) (*Trace, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseTrace(buff)
}

// ParseTrace decodes a trace.  Structural problems (unknown ops, kinds or
// linkages, invalid names) fail the whole trace; type and declaration errors
// are only detected when the trace is replayed.
func ParseTrace(buff []byte) (*Trace, error) {
	tt := &tomlTrace{}
	if err := toml.Unmarshal(buff, tt); err != nil {
		return nil, err
	}

	t := &Trace{Steps: make([]Step, 0, len(tt.Steps))}
	for i, ts := range tt.Steps {
		step, err := ts.decode()
		if err != nil {
			return nil, fmt.Errorf("step %d: %s", i+1, err.Error())
		}

		t.Steps = append(t.Steps, step)
	}

	return t, nil
}

func (ts *tomlStep) decode() (Step, error) {
	op, ok := opNames[ts.Op]
	if !ok {
		return Step{}, fmt.Errorf("unknown operation `%s`", ts.Op)
	}

	step := Step{Op: op, Name: ts.Name, Type: ts.Type, Value: ts.Value, Union: ts.Union}

	switch op {
	case OpDeclare:
		kind, ok := kindNames[ts.Kind]
		if !ok {
			return Step{}, fmt.Errorf("unknown symbol kind `%s`", ts.Kind)
		}
		step.Kind = kind

		linkage, ok := linkageNames[ts.Linkage]
		if !ok {
			return Step{}, fmt.Errorf("unknown linkage `%s`", ts.Linkage)
		}
		step.Linkage = linkage
	case OpTag:
		for _, tm := range ts.Members {
			if !common.IsValidIdentifier(tm.Name) {
				return Step{}, fmt.Errorf("invalid member name `%s`", tm.Name)
			}

			step.Members = append(step.Members, Member{Name: tm.Name, Type: tm.Type})
		}
	}

	switch op {
	case OpDeclare, OpEnum, OpTag:
		if !common.IsValidIdentifier(ts.Name) {
			return Step{}, fmt.Errorf("invalid name `%s`", ts.Name)
		}
	}

	switch op {
	case OpDeclare, OpTemp:
		if ts.Type == "" {
			return Step{}, fmt.Errorf("`%s` requires a type", ts.Op)
		}
	}

	return step, nil
}

// Replay applies every step of the trace to the compiler in order.  A step
// that fails is reported to the log and skipped; replay always continues so
// that all errors in the trace are reported.
func (t *Trace) Replay(c *build.Compiler) {
	for i, step := range t.Steps {
		if err := step.apply(c); err != nil {
			logging.Trace().Debug().Int("step", i+1).Err(err).Msg("step failed")
		}
	}
}

func (s *Step) apply(c *build.Compiler) error {
	switch s.Op {
	case OpPush:
		c.PushScope()
	case OpPop:
		if c.Idents().Depth() == 0 {
			logging.LogCompileWarning("`pop` at file scope has no block to close", logging.LMKTrace)
			return nil
		}

		c.PopScope()
	case OpDeclare:
		typ, err := s.parseType(c, s.Type)
		if err != nil {
			return err
		}

		// errors are already reported by the symbol table
		_, err = c.Idents().Declare(symtab.Draft{
			Name:    s.Name,
			Type:    typ,
			Kind:    s.Kind,
			Linkage: s.Linkage,
		})
		return err
	case OpEnum:
		_, err := c.Idents().Declare(symtab.Draft{
			Name:      s.Name,
			Type:      c.Types().Integer(4, false),
			Kind:      symtab.KindEnumConstant,
			EnumValue: s.Value,
		})
		return err
	case OpTag:
		return s.defineTag(c)
	case OpTemp:
		typ, err := s.parseType(c, s.Type)
		if err != nil {
			return err
		}

		c.Idents().CreateTemporary(typ)
	}

	return nil
}

// defineTag declares the tag before reading its members so that members may
// refer to the aggregate being defined.
func (s *Step) defineTag(c *build.Compiler) error {
	types := c.Types()

	if _, err := c.Tags().DeclareTag(s.Name, types.Aggregate(s.Name, s.Union)); err != nil {
		return err
	}

	if len(s.Members) == 0 {
		return nil
	}

	agg := types.Aggregate(s.Name, s.Union)
	for _, m := range s.Members {
		typ, err := s.parseType(c, m.Type)
		if err != nil {
			return err
		}

		if err := types.AddMember(agg, m.Name, typ); err != nil {
			logging.LogCompileError(fmt.Sprintf("in `%s`: %s", s.Name, err.Error()), logging.LMKTyping)
			return err
		}
	}

	types.Layout(agg)
	_, err := c.Tags().DeclareTag(s.Name, agg)
	return err
}

func (s *Step) parseType(c *build.Compiler, spec string) (typing.TypeID, error) {
	typ, err := ParseTypeSpec(c, spec)
	if err != nil {
		logging.LogCompileError(err.Error(), logging.LMKTyping)
	}

	return typ, err
}
