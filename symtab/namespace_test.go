package symtab

import (
	"os"
	"testing"

	"symcc/logging"
	"symcc/typing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.Initialize("silent")
	os.Exit(m.Run())
}

func newIdent() (*Namespace, *typing.Arena) {
	types := typing.NewArena(8)
	return NewNamespace("ident", CategoryIdent, types), types
}

func declare(t *testing.T, ns *Namespace, d Draft) SymbolID {
	t.Helper()
	id, err := ns.Declare(d)
	require.NoError(t, err)
	return id
}

func TestScopeStack(t *testing.T) {
	ns, types := newIdent()
	i := types.Integer(4, false)

	assert.Equal(t, 0, ns.Depth())

	outer := declare(t, ns, Draft{Name: "x", Type: i, Kind: KindTentative, Linkage: LinkageExternal})

	ns.PushScope()
	ns.PushScope()
	middle := declare(t, ns, Draft{Name: "x", Type: i, Kind: KindDefinition})
	ns.PushScope()
	inner := declare(t, ns, Draft{Name: "x", Type: i, Kind: KindDefinition})
	assert.Equal(t, 3, ns.Depth())

	got, ok := ns.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, inner, got)

	ns.PopScope()
	got, _ = ns.Lookup("x")
	assert.Equal(t, middle, got)

	ns.PopScope()
	got, _ = ns.Lookup("x")
	assert.Equal(t, outer, got)

	ns.PopScope()
	assert.Equal(t, 0, ns.Depth())

	t.Run("popped symbols are orphaned, not deleted", func(t *testing.T) {
		assert.Equal(t, 3, ns.Len())
		assert.Equal(t, 3, ns.Get(inner).Depth)
	})

	t.Run("file scope cannot be popped", func(t *testing.T) {
		ns.PopScope()
		assert.Equal(t, 0, ns.Depth())
		_, ok := ns.Lookup("x")
		assert.True(t, ok)
	})

	t.Run("missing names are not found", func(t *testing.T) {
		id, ok := ns.Lookup("nope")
		assert.False(t, ok)
		assert.False(t, id.IsValid())
	})
}

func TestTentativeMerge(t *testing.T) {
	t.Run("tentative then definition", func(t *testing.T) {
		ns, types := newIdent()
		i := types.Integer(4, false)

		first := declare(t, ns, Draft{Name: "x", Type: i, Kind: KindTentative, Linkage: LinkageExternal})
		second := declare(t, ns, Draft{Name: "x", Type: i, Kind: KindDefinition, Linkage: LinkageExternal})

		assert.Equal(t, first, second)
		assert.Equal(t, 1, ns.Len())
		assert.Equal(t, KindDefinition, ns.Get(first).Kind)
	})

	t.Run("definition then tentative", func(t *testing.T) {
		ns, types := newIdent()
		i := types.Integer(4, false)

		id := declare(t, ns, Draft{Name: "x", Type: i, Kind: KindDefinition, Linkage: LinkageExternal})
		declare(t, ns, Draft{Name: "x", Type: i, Kind: KindTentative, Linkage: LinkageExternal})
		assert.Equal(t, KindDefinition, ns.Get(id).Kind)
	})

	t.Run("declaration then tentative", func(t *testing.T) {
		ns, types := newIdent()
		i := types.Integer(4, false)

		id := declare(t, ns, Draft{Name: "y", Type: i, Kind: KindDeclaration, Linkage: LinkageExternal})
		again := declare(t, ns, Draft{Name: "y", Type: i, Kind: KindTentative, Linkage: LinkageExternal})
		assert.Equal(t, id, again)
		assert.Equal(t, KindTentative, ns.Get(id).Kind)
	})

	t.Run("type is completed in place", func(t *testing.T) {
		ns, types := newIdent()
		i := types.Integer(4, false)
		open := types.Array(i, 0)

		id := declare(t, ns, Draft{Name: "a", Type: open, Kind: KindTentative, Linkage: LinkageExternal})
		assert.True(t, types.IsIncomplete(ns.Get(id).Type))

		declare(t, ns, Draft{Name: "a", Type: types.Array(i, 4), Kind: KindDefinition, Linkage: LinkageExternal})

		assert.Equal(t, 1, ns.Len())
		assert.Equal(t, open, ns.Get(id).Type)
		assert.False(t, types.IsIncomplete(open))
		assert.Equal(t, uint(16), types.SizeOf(open))
	})

	t.Run("plain redeclaration keeps its kind", func(t *testing.T) {
		ns, types := newIdent()
		fn := types.Function(types.Integer(4, false), nil, false)

		id := declare(t, ns, Draft{Name: "f", Type: fn, Kind: KindDeclaration, Linkage: LinkageExternal})
		declare(t, ns, Draft{Name: "f", Type: fn, Kind: KindDeclaration, Linkage: LinkageExternal})
		assert.Equal(t, KindDeclaration, ns.Get(id).Kind)
		assert.Equal(t, 1, ns.Len())
	})

	t.Run("extern declaration refers to existing definition", func(t *testing.T) {
		ns, types := newIdent()
		i := types.Integer(4, false)
		open := types.Array(i, 0)

		id := declare(t, ns, Draft{Name: "buf", Type: open, Kind: KindTentative, Linkage: LinkageInternal})

		ns.PushScope()
		ns.PushScope()
		got := declare(t, ns, Draft{Name: "buf", Type: types.Array(i, 8), Kind: KindDeclaration, Linkage: LinkageExternal})

		assert.Equal(t, id, got)
		assert.Equal(t, KindTentative, ns.Get(id).Kind)
		assert.Equal(t, uint(32), types.SizeOf(open))
		assert.Empty(t, ns.ScopeMembers())
	})
}

func TestDeclarationErrors(t *testing.T) {
	t.Run("duplicate definition in block scope", func(t *testing.T) {
		for _, linkage := range []Linkage{LinkageNone, LinkageInternal} {
			ns, types := newIdent()
			i := types.Integer(4, false)

			ns.PushScope()
			ns.PushScope()
			declare(t, ns, Draft{Name: "z", Type: i, Kind: KindDefinition, Linkage: linkage})

			before := logging.ErrorCount()
			id, err := ns.Declare(Draft{Name: "z", Type: i, Kind: KindDefinition, Linkage: linkage})

			require.ErrorIs(t, err, ErrDuplicateDefinition)
			assert.False(t, id.IsValid())
			assert.Equal(t, before+1, logging.ErrorCount())
			assert.Equal(t, "duplicate definition of symbol `z`", err.Error())
			assert.Equal(t, 1, ns.Len())
		}
	})

	t.Run("duplicate parameter", func(t *testing.T) {
		ns, types := newIdent()
		i := types.Integer(4, false)

		ns.PushScope()
		declare(t, ns, Draft{Name: "p", Type: i, Kind: KindDefinition})
		_, err := ns.Declare(Draft{Name: "p", Type: i, Kind: KindDefinition})
		assert.ErrorIs(t, err, ErrDuplicateDefinition)
	})

	t.Run("incompatible linkage at file scope", func(t *testing.T) {
		ns, types := newIdent()
		i := types.Integer(4, false)

		declare(t, ns, Draft{Name: "v", Type: i, Kind: KindTentative, Linkage: LinkageInternal})

		before := logging.ErrorCount()
		_, err := ns.Declare(Draft{Name: "v", Type: i, Kind: KindTentative, Linkage: LinkageExternal})

		require.ErrorIs(t, err, ErrIncompatibleRedeclaration)
		assert.Equal(t, before+1, logging.ErrorCount())
		assert.Contains(t, logging.Messages(), "declaration of `v` does not match prior declaration")
	})

	t.Run("incompatible kinds at file scope", func(t *testing.T) {
		ns, types := newIdent()
		i := types.Integer(4, false)

		declare(t, ns, Draft{Name: "T", Type: i, Kind: KindTypedef})
		_, err := ns.Declare(Draft{Name: "T", Type: i, Kind: KindDefinition})
		assert.ErrorIs(t, err, ErrIncompatibleRedeclaration)

		declare(t, ns, Draft{Name: "g", Type: i, Kind: KindDeclaration, Linkage: LinkageExternal})
		_, err = ns.Declare(Draft{Name: "g", Type: i, Kind: KindDefinition, Linkage: LinkageExternal})
		assert.ErrorIs(t, err, ErrIncompatibleRedeclaration)
	})
}

func TestShadowingAndStatics(t *testing.T) {
	ns, types := newIdent()
	i := types.Integer(4, false)

	global := declare(t, ns, Draft{Name: "count", Type: i, Kind: KindTentative, Linkage: LinkageInternal})
	assert.Equal(t, 0, ns.Get(global).Disambiguator)

	ns.PushScope()
	ns.PushScope()
	first := declare(t, ns, Draft{Name: "count", Type: i, Kind: KindDefinition, Linkage: LinkageInternal})
	ns.PopScope()
	ns.PopScope()

	ns.PushScope()
	ns.PushScope()
	second := declare(t, ns, Draft{Name: "count", Type: i, Kind: KindDefinition, Linkage: LinkageInternal})

	a, b := ns.Get(first), ns.Get(second)
	assert.NotEqual(t, global, first)
	assert.Equal(t, "count.1", a.EmittedName())
	assert.Equal(t, "count.2", b.EmittedName())
	assert.Equal(t, "count", a.Name)

	t.Run("statics take no frame slot", func(t *testing.T) {
		assert.Zero(t, a.StackOffset)
		assert.Zero(t, ns.LocalFrameSize())
	})
}

func TestTemporaries(t *testing.T) {
	ns, types := newIdent()
	i := types.Integer(4, false)

	ns.PushScope()
	ns.PushScope()
	t0 := ns.CreateTemporary(i)
	t1 := ns.CreateTemporary(i)

	assert.NotEqual(t, t0, t1)
	assert.Equal(t, ".t0", ns.Get(t0).Name)
	assert.Equal(t, ".t1", ns.Get(t1).Name)

	got, ok := ns.Lookup(".t1")
	require.True(t, ok)
	assert.Equal(t, t1, got)

	assert.Equal(t, -4, ns.Get(t0).StackOffset)
	assert.Equal(t, -8, ns.Get(t1).StackOffset)
}

func TestCompleteSymbolType(t *testing.T) {
	types := typing.NewArena(8)
	tags := NewNamespace("tag", CategoryTag, types)

	tags.PushScope()
	tags.PushScope()
	fwd := types.Aggregate("point", false)
	id := declare(t, tags, Draft{Name: "point", Type: fwd, Kind: KindTypedef})

	def := types.Aggregate("point", false)
	require.NoError(t, types.AddMember(def, "x", types.Integer(4, false)))
	require.NoError(t, types.AddMember(def, "y", types.Integer(4, false)))
	types.Layout(def)

	tags.Complete(id, def)
	assert.Equal(t, uint(8), types.SizeOf(tags.Get(id).Type))
	assert.Zero(t, tags.Get(id).StackOffset)
}

func TestIdentityStability(t *testing.T) {
	ns, types := newIdent()
	i := types.Integer(4, false)

	first := declare(t, ns, Draft{Name: "first", Type: types.Array(i, 0), Kind: KindTentative, Linkage: LinkageExternal})

	for n := 0; n < 500; n++ {
		ns.CreateTemporary(i)
	}

	declare(t, ns, Draft{Name: "first", Type: types.Array(i, 2), Kind: KindDefinition, Linkage: LinkageExternal})

	sym := ns.Get(first)
	assert.Equal(t, "first", sym.Name)
	assert.Equal(t, KindDefinition, sym.Kind)
	assert.Equal(t, uint(8), types.SizeOf(sym.Type))
}
