package reflection_test

import (
	"reflect"
	"testing"

	"github.com/junioryono/injector/internal/reflection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Port int

func TestInspect_Classification(t *testing.T) {
	tests := []struct {
		name     string
		typ      reflect.Type
		class    reflection.Class
		canBeNil bool
	}{
		{"int", reflect.TypeOf(0), reflection.Builtin, false},
		{"string", reflect.TypeOf(""), reflection.Builtin, false},
		{"pointer to int", reflect.TypeOf((*int)(nil)), reflection.Builtin, true},
		{"error", reflect.TypeOf((*error)(nil)).Elem(), reflection.Builtin, true},
		{"any", reflect.TypeOf((*any)(nil)).Elem(), reflection.Builtin, true},
		{"slice", reflect.TypeOf([]string{}), reflection.Builtin, true},
		{"map", reflect.TypeOf(map[string]int{}), reflection.Builtin, true},
		{"func", reflect.TypeOf(func() {}), reflection.Builtin, true},
		{"named struct", reflect.TypeOf(Database{}), reflection.Named, false},
		{"pointer to named struct", reflect.TypeOf((*Database)(nil)), reflection.Named, true},
		{"named interface", reflect.TypeOf((*Logger)(nil)).Elem(), reflection.Named, true},
		{"named int", reflect.TypeOf(Port(0)), reflection.Named, false},
		{"anonymous struct", reflect.TypeOf(struct{ A int }{}), reflection.Ambiguous, false},
		{"anonymous interface", reflect.TypeOf((*interface{ Log(string) })(nil)).Elem(), reflection.Ambiguous, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := reflection.Inspect(tt.typ)
			require.NotNil(t, info)

			assert.Equal(t, tt.typ, info.Type)
			assert.Equal(t, tt.class, info.Class, "class is %s", info.Class)
			assert.Equal(t, tt.canBeNil, info.CanBeNil)
		})
	}
}

func TestInspect_Instantiable(t *testing.T) {
	assert.True(t, reflection.Inspect(reflect.TypeOf((*Database)(nil))).IsInstantiable)
	assert.True(t, reflection.Inspect(reflect.TypeOf(Database{})).IsInstantiable)
	assert.True(t, reflection.Inspect(reflect.TypeOf(0)).IsInstantiable)
	assert.False(t, reflection.Inspect(reflect.TypeOf((*Logger)(nil)).Elem()).IsInstantiable)
}

func TestInspect_Cached(t *testing.T) {
	typ := reflect.TypeOf((*Database)(nil))
	assert.Same(t, reflection.Inspect(typ), reflection.Inspect(typ))
	assert.Nil(t, reflection.Inspect(nil))
}

func TestZero(t *testing.T) {
	t.Run("pointer to struct is allocated", func(t *testing.T) {
		v := reflection.Zero(reflect.TypeOf((*Database)(nil)))
		require.False(t, v.IsNil())
		db, ok := v.Interface().(*Database)
		require.True(t, ok)
		assert.Empty(t, db.ConnectionString)
	})

	t.Run("struct value", func(t *testing.T) {
		v := reflection.Zero(reflect.TypeOf(Database{}))
		assert.Equal(t, Database{}, v.Interface())
	})

	t.Run("pointer to primitive stays nil", func(t *testing.T) {
		v := reflection.Zero(reflect.TypeOf((*int)(nil)))
		assert.True(t, v.IsNil())
	})
}

func TestImplements(t *testing.T) {
	loggerType := reflect.TypeOf((*Logger)(nil)).Elem()

	assert.True(t, reflection.Implements(reflect.TypeOf(&ConsoleLogger{}), loggerType))
	assert.False(t, reflection.Implements(reflect.TypeOf(ConsoleLogger{}), loggerType), "pointer receiver")
	assert.False(t, reflection.Implements(reflect.TypeOf(&Database{}), loggerType))
	assert.False(t, reflection.Implements(nil, loggerType))
	assert.False(t, reflection.Implements(reflect.TypeOf(&ConsoleLogger{}), reflect.TypeOf(Database{})))
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "named", reflection.Named.String())
	assert.Equal(t, "builtin", reflection.Builtin.String())
	assert.Equal(t, "ambiguous", reflection.Ambiguous.String())
	assert.Equal(t, "unknown", reflection.Class(42).String())
}
