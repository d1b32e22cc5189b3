package build

import (
	"fmt"

	"symcc/symtab"
)

// registerPrelude adds the compiler-internal declarations that system headers
// depend on.  They live at file scope of the identifier namespace and resolve
// before any user declaration is seen.
func (c *Compiler) registerPrelude() error {
	if c.idents.Depth() != 0 {
		return fmt.Errorf("prelude must be registered at file scope, not depth %d", c.idents.Depth())
	}

	return symtab.RegisterBuiltins(c.idents)
}
