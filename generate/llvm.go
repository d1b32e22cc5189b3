package generate

import (
	"io"

	"symcc/symtab"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// LLVMEmitter reserves storage for tentative objects as zero-initialized
// globals in an LLVM module.  Externally visible objects get common linkage,
// the LLVM counterpart of `.comm`; file-local objects get internal linkage.
type LLVMEmitter struct {
	llModule *ir.Module
}

// NewLLVMEmitter creates an emitter with an empty module.
func NewLLVMEmitter() *LLVMEmitter {
	return &LLVMEmitter{llModule: ir.NewModule()}
}

func (le *LLVMEmitter) Emit(obj symtab.TentativeObject) {
	// the object's C type is opaque at this point: reserve raw bytes
	storage := types.NewArray(uint64(obj.Size), types.I8)

	glob := le.llModule.NewGlobalDef(obj.Name, constant.NewZeroInitializer(storage))
	glob.Align = ir.Align(obj.Align)

	if obj.Internal {
		glob.Linkage = enum.LinkageInternal
	} else {
		glob.Linkage = enum.LinkageCommon
	}
}

func (le *LLVMEmitter) Flush(w io.Writer) error {
	_, err := le.llModule.WriteTo(w)
	return err
}

// Module returns the module built so far.
func (le *LLVMEmitter) Module() *ir.Module {
	return le.llModule
}
