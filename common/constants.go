package common

const (
	SymccVersion    = "0.1.0"
	ProfileFileName = "symcc.toml"
)

// Default target parameters: System V AMD64.
const (
	DefaultWordSize       = 8
	DefaultRegisterParams = 6
)

// Reserved names registered before parsing begins.
const (
	BuiltinVaList  = "__builtin_va_list"
	BuiltinVaStart = "__builtin_va_start"
	BuiltinVaArg   = "__builtin_va_arg"
)
