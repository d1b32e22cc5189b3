package generate

import (
	"fmt"
	"io"

	"symcc/symtab"
)

// Emitter reserves storage for the tentative definitions left at the end of a
// translation unit.
type Emitter interface {
	// Emit records one tentative object.
	Emit(obj symtab.TentativeObject)

	// Flush writes everything emitted so far to w.
	Flush(w io.Writer) error
}

// Enumeration of output formats
const (
	FormatASM  = "asm"
	FormatLLVM = "llvm"
)

// NewEmitter creates the emitter for an output format.
func NewEmitter(format string) (Emitter, error) {
	switch format {
	case FormatASM:
		return &AsmEmitter{}, nil
	case FormatLLVM:
		return NewLLVMEmitter(), nil
	}

	return nil, fmt.Errorf("%s is not a valid output format", format)
}

// EmitTentatives runs the end-of-unit sweep of ns through e and writes the
// result to w.
func EmitTentatives(ns *symtab.Namespace, e Emitter, w io.Writer) error {
	ns.ForEachTentative(e.Emit)
	return e.Flush(w)
}

// -----------------------------------------------------------------------------

// AsmEmitter emits GNU assembler common symbol directives.
type AsmEmitter struct {
	objs []symtab.TentativeObject
}

func (ae *AsmEmitter) Emit(obj symtab.TentativeObject) {
	ae.objs = append(ae.objs, obj)
}

func (ae *AsmEmitter) Flush(w io.Writer) error {
	for _, obj := range ae.objs {
		if obj.Internal {
			if _, err := fmt.Fprintf(w, "\t.local %s\n", obj.Name); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "\t.comm %s, %d, %d\n", obj.Name, obj.Size, obj.Align); err != nil {
			return err
		}
	}

	ae.objs = nil
	return nil
}
