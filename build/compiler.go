package build

import (
	"errors"
	"fmt"
	"io"

	"symcc/config"
	"symcc/generate"
	"symcc/logging"
	"symcc/symtab"
	"symcc/typing"
)

// Compiler is the data structure responsible for maintaining all high-level
// state of a translation unit: the type arena and the two namespaces every
// declaration is resolved against.
type Compiler struct {
	// profile is the configuration the compiler was created with
	profile *config.Profile

	types *typing.Arena

	// idents holds ordinary identifiers and typedef names; tags holds struct,
	// union, and enum tags.
	idents *symtab.Namespace
	tags   *symtab.Namespace
}

// NewCompiler creates a compiler for a profile with both namespaces at file
// scope and the builtin declarations registered.
func NewCompiler(profile *config.Profile) (*Compiler, error) {
	if err := profile.Validate(); err != nil {
		logging.LogConfigError("Profile", err.Error())
		return nil, err
	}

	types := typing.NewArena(uint(profile.WordSize))
	c := &Compiler{
		profile: profile,
		types:   types,
		idents:  symtab.NewNamespace("ident", symtab.CategoryIdent, types),
		tags:    symtab.NewNamespace("tag", symtab.CategoryTag, types),
	}
	c.idents.SetRegisterParams(profile.RegisterParams)

	if err := c.registerPrelude(); err != nil {
		return nil, err
	}

	return c, nil
}

// Types returns the type arena of the translation unit.
func (c *Compiler) Types() *typing.Arena {
	return c.types
}

// Idents returns the identifier namespace.
func (c *Compiler) Idents() *symtab.Namespace {
	return c.idents
}

// Tags returns the tag namespace.
func (c *Compiler) Tags() *symtab.Namespace {
	return c.tags
}

// PushScope opens a scope in both namespaces, as entering a parameter list or
// a block does.
func (c *Compiler) PushScope() {
	c.idents.PushScope()
	c.tags.PushScope()
}

// PopScope closes the innermost scope of both namespaces.  Closing a function
// body reports the size of its local frame to the trace.
func (c *Compiler) PopScope() {
	if c.idents.Depth() == 2 {
		logging.Trace().Debug().Int("frame-size", c.idents.LocalFrameSize()).Msg("closed function body")
	}

	c.tags.PopScope()
	c.idents.PopScope()
}

// Finish completes the translation unit.  If any error was reported the
// compilation is aborted; otherwise storage is reserved for every remaining
// tentative definition in the profile's output format.
func (c *Compiler) Finish(w io.Writer) error {
	if n := logging.ErrorCount(); n > 0 {
		if n > 1 {
			return fmt.Errorf("aborting because of %d previous errors", n)
		}

		return errors.New("aborting because of previous error")
	}

	e, err := generate.NewEmitter(c.profile.OutputFormat)
	if err != nil {
		return err
	}

	return generate.EmitTentatives(c.idents, e, w)
}

// DumpSymbols writes the diagnostic dump of both namespaces.
func (c *Compiler) DumpSymbols(w io.Writer) {
	c.idents.Dump(w)
	c.tags.Dump(w)
}
