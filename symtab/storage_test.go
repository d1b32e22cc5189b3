package symtab

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterStorage(t *testing.T) {
	ns, types := newIdent()
	i := types.Integer(4, false)

	ns.PushScope()
	params := make([]SymbolID, 8)
	for n := range params {
		params[n] = declare(t, ns, Draft{Name: fmt.Sprintf("p%d", n+1), Type: i, Kind: KindDefinition})
	}

	for n, id := range params[:6] {
		sym := ns.Get(id)
		assert.Equal(t, n+1, sym.ParamOrdinal)
		assert.True(t, sym.InRegister, "parameter %d", n+1)
		assert.Zero(t, sym.StackOffset, "parameter %d", n+1)
	}

	p7, p8 := ns.Get(params[6]), ns.Get(params[7])
	assert.Equal(t, 7, p7.ParamOrdinal)
	assert.False(t, p7.InRegister)
	assert.Equal(t, 36, p7.StackOffset)
	assert.Equal(t, 8, p8.ParamOrdinal)
	assert.Equal(t, 40, p8.StackOffset)

	t.Run("counters reset for the next function", func(t *testing.T) {
		ns.PopScope()
		ns.PushScope()
		id := declare(t, ns, Draft{Name: "q", Type: i, Kind: KindDefinition})
		assert.Equal(t, 1, ns.Get(id).ParamOrdinal)
	})

	t.Run("register count is configurable", func(t *testing.T) {
		ns, types := newIdent()
		ns.SetRegisterParams(0)
		ns.PushScope()
		id := declare(t, ns, Draft{Name: "a", Type: types.Integer(8, false), Kind: KindDefinition})
		assert.False(t, ns.Get(id).InRegister)
		assert.Equal(t, 16, ns.Get(id).StackOffset)
	})
}

func TestLocalStorage(t *testing.T) {
	ns, types := newIdent()

	ns.PushScope()
	ns.PushScope()
	a := declare(t, ns, Draft{Name: "a", Type: types.Integer(4, false), Kind: KindDefinition})
	b := declare(t, ns, Draft{Name: "b", Type: types.Integer(8, false), Kind: KindDefinition})
	c := declare(t, ns, Draft{Name: "c", Type: types.Integer(4, false), Kind: KindDefinition})

	assert.Equal(t, -4, ns.Get(a).StackOffset)
	assert.Equal(t, -12, ns.Get(b).StackOffset)
	assert.Equal(t, -16, ns.Get(c).StackOffset)
	assert.Equal(t, 16, ns.LocalFrameSize())

	t.Run("nested blocks keep accumulating", func(t *testing.T) {
		ns.PushScope()
		d := declare(t, ns, Draft{Name: "d", Type: types.Integer(4, false), Kind: KindDefinition})
		ns.PopScope()

		ns.PushScope()
		e := declare(t, ns, Draft{Name: "e", Type: types.Integer(4, false), Kind: KindDefinition})
		ns.PopScope()

		assert.Equal(t, -20, ns.Get(d).StackOffset)
		assert.Equal(t, -24, ns.Get(e).StackOffset)
	})

	t.Run("typedefs, enum constants and externs take no slot", func(t *testing.T) {
		before := ns.LocalFrameSize()
		declare(t, ns, Draft{Name: "T", Type: types.Integer(4, false), Kind: KindTypedef})
		declare(t, ns, Draft{Name: "RED", Type: types.Integer(4, false), Kind: KindEnumConstant, EnumValue: 1})
		declare(t, ns, Draft{Name: "ext", Type: types.Integer(4, false), Kind: KindDeclaration, Linkage: LinkageExternal})
		assert.Equal(t, before, ns.LocalFrameSize())
	})

	t.Run("new function body resets the offset", func(t *testing.T) {
		ns.PopScope()
		ns.PopScope()
		ns.PushScope()
		ns.PushScope()
		f := declare(t, ns, Draft{Name: "f", Type: types.Integer(4, false), Kind: KindDefinition})
		assert.Equal(t, -4, ns.Get(f).StackOffset)
	})
}

func TestFileScopeHasNoStorage(t *testing.T) {
	ns, types := newIdent()
	id := declare(t, ns, Draft{Name: "g", Type: types.Integer(4, false), Kind: KindDefinition})

	sym := ns.Get(id)
	assert.Zero(t, sym.StackOffset)
	assert.Zero(t, sym.ParamOrdinal)
	assert.False(t, sym.InRegister)
}

func TestBlockFunctionDeclarationHasNoStorage(t *testing.T) {
	ns, types := newIdent()
	i := types.Integer(4, false)

	ns.PushScope()
	ns.PushScope()
	a := declare(t, ns, Draft{Name: "a", Type: i, Kind: KindDefinition})
	f := declare(t, ns, Draft{Name: "f", Type: types.Function(i, nil, false), Kind: KindDeclaration})
	b := declare(t, ns, Draft{Name: "b", Type: i, Kind: KindDefinition})

	assert.Zero(t, ns.Get(f).StackOffset)
	assert.Zero(t, ns.Get(f).ParamOrdinal)
	assert.Equal(t, -4, ns.Get(a).StackOffset)
	assert.Equal(t, -8, ns.Get(b).StackOffset)
	assert.Equal(t, 8, ns.LocalFrameSize())
}
