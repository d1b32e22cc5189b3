package symtab

import (
	"symcc/common"
	"symcc/typing"
)

// RegisterBuiltins declares the compiler-internal names that standard library
// headers assume exist.  It must run at file scope before parsing begins.
func RegisterBuiltins(ns *Namespace) error {
	types := ns.Types()

	// va_list, as described in the System V ABI: a one element array of the
	// register save area bookkeeping struct
	area := types.Aggregate("", false)
	members := []struct {
		name string
		typ  typing.TypeID
	}{
		{"gp_offset", types.Integer(4, true)},
		{"fp_offset", types.Integer(4, true)},
		{"overflow_arg_area", types.Pointer(types.Void())},
		{"reg_save_area", types.Pointer(types.Void())},
	}
	for _, m := range members {
		if err := types.AddMember(area, m.name, m.typ); err != nil {
			return err
		}
	}
	types.Layout(area)

	if _, err := ns.Declare(Draft{
		Name: common.BuiltinVaList,
		Type: types.Array(area, 1),
		Kind: KindTypedef,
	}); err != nil {
		return err
	}

	// va_start and va_arg are handled specially by code generation; they are
	// declared with a dummy type only so that they resolve during parsing
	for _, name := range []string{common.BuiltinVaStart, common.BuiltinVaArg} {
		if _, err := ns.Declare(Draft{
			Name: name,
			Type: types.Void(),
			Kind: KindDeclaration,
		}); err != nil {
			return err
		}
	}

	return nil
}
