package injector

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_New(t *testing.T) {
	t.Run("constructs without arguments", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTImpl))

		got, err := c.New(TypeOf[*TImpl]())
		require.NoError(t, err)
		assert.Equal(t, statusInit, got.(*TImpl).Status())
	})

	t.Run("constructs with arguments", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTImpl))

		got, err := c.New(TypeOf[*TImpl](), statusModified)
		require.NoError(t, err)
		assert.Equal(t, statusModified, got.(*TImpl).Status())
	})

	t.Run("constructs through binding", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTImpl))
		require.NoError(t, BindType[TContract, *TImpl](c))

		got, err := c.New(TypeOf[TContract]())
		require.NoError(t, err)
		assert.IsType(t, &TImpl{}, got)
		assert.Equal(t, statusInit, got.(TContract).Status())
	})

	t.Run("builds zero value without constructor", func(t *testing.T) {
		t.Parallel()

		c := New()

		got, err := c.New(TypeOf[*TPlain]())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "", got.(*TPlain).Name)

		value, err := c.New(TypeOf[TPlain]())
		require.NoError(t, err)
		assert.Equal(t, TPlain{}, value)
	})

	t.Run("arguments without constructor overflow", func(t *testing.T) {
		t.Parallel()

		c := New()
		_, err := c.New(TypeOf[*TPlain](), "x")

		var overflow ArityOverflowError
		require.ErrorAs(t, err, &overflow)
		assert.Equal(t, 0, overflow.Accepts)
		assert.Equal(t, 1, overflow.Given)
	})

	t.Run("too many arguments overflow", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTService))

		_, err := c.New(TypeOf[*TService](), NewTImpl(), &TPlain{}, "extra")
		assert.True(t, IsArityOverflow(err))
	})

	t.Run("injects dependencies", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTService))
		require.NoError(t, BindType[TContract, *TImpl](c))
		require.NoError(t, c.Provide(NewTImpl))

		got, err := Make[*TService](c)
		require.NoError(t, err)
		assert.Equal(t, statusInit, got.Contract.Status())
		assert.NotNil(t, got.Plain)
	})

	t.Run("explicit arguments fill the tail", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTService))
		require.NoError(t, BindType[TContract, *TImpl](c))

		plain := &TPlain{Name: "explicit"}
		got, err := Make[*TService](c, plain)
		require.NoError(t, err)
		assert.Same(t, plain, got.Plain)
		assert.NotNil(t, got.Contract)
	})

	t.Run("unbound interface is unresolvable", func(t *testing.T) {
		t.Parallel()

		c := New()
		_, err := c.New(TypeOf[TContract]())

		require.Error(t, err)
		assert.True(t, IsUnresolvableAbstract(err))
		assert.Contains(t, err.Error(), "no binding")
	})

	t.Run("unresolvable dependency propagates", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTService))

		_, err := c.New(TypeOf[*TService]())
		assert.ErrorIs(t, err, ErrUnresolvableAbstract)
	})

	t.Run("nil type", func(t *testing.T) {
		t.Parallel()

		c := New()
		_, err := c.New(nil)
		assert.ErrorIs(t, err, ErrTypeNil)
	})

	t.Run("never shares the result", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTImpl))

		first, err := c.New(TypeOf[*TImpl]())
		require.NoError(t, err)
		second, err := c.New(TypeOf[*TImpl]())
		require.NoError(t, err)

		assert.NotSame(t, first, second)
		assert.False(t, c.IsShared(TypeOf[*TImpl]()))
	})
}

func TestContainer_ResolveShared(t *testing.T) {
	t.Run("injects instance shared under concrete type", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTService))
		require.NoError(t, BindType[TContract, *TImpl](c))

		shared := NewTImpl(statusModified)
		require.NoError(t, c.Share(shared))

		got, err := Make[*TService](c)
		require.NoError(t, err)
		assert.Same(t, shared, got.Contract)
	})

	t.Run("injects instance shared under unbound interface", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTService))

		shared := NewTImpl(statusModified)
		require.NoError(t, ShareAs[TContract](c, shared))

		got, err := Make[*TService](c)
		require.NoError(t, err)
		assert.Same(t, shared, got.Contract)
	})

	t.Run("bound interface looks up its concrete key", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTService))
		require.NoError(t, c.Provide(NewTImpl))
		require.NoError(t, BindType[TContract, *TImpl](c))

		shared := NewTImpl(statusModified)
		require.NoError(t, ShareAs[TContract](c, shared))

		got, err := Make[*TService](c)
		require.NoError(t, err)
		assert.NotSame(t, shared, got.Contract)
		assert.Equal(t, statusInit, got.Contract.Status())
	})

	t.Run("new ignores shared instances", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(NewTImpl))
		shared := NewTImpl(statusModified)
		require.NoError(t, c.Share(shared))

		got, err := c.New(TypeOf[*TImpl]())
		require.NoError(t, err)
		assert.NotSame(t, shared, got)
	})
}

func TestContainer_ConstructorFailures(t *testing.T) {
	t.Run("returned error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		c := New()
		require.NoError(t, c.Provide(func() (*TPlain, error) { return nil, boom }))

		_, err := c.New(TypeOf[*TPlain]())
		require.ErrorIs(t, err, boom)

		var ctorErr ConstructorError
		require.ErrorAs(t, err, &ctorErr)
		assert.Equal(t, TypeOf[*TPlain](), ctorErr.Type)
	})

	t.Run("panic", func(t *testing.T) {
		t.Parallel()

		c := New()
		require.NoError(t, c.Provide(func() *TPlain { panic("boom") }))

		_, err := c.New(TypeOf[*TPlain]())

		var panicErr PanicError
		require.ErrorAs(t, err, &panicErr)
		assert.Equal(t, "boom", panicErr.Panic)
		assert.NotEmpty(t, panicErr.Stack)
	})
}

func TestContainer_CircularDependency(t *testing.T) {
	c := New()
	require.NoError(t, c.Provide(NewTCycleA))
	require.NoError(t, c.Provide(NewTCycleB))

	_, err := c.New(TypeOf[*TCycleA]())
	require.Error(t, err)
	assert.True(t, IsCircularDependency(err))

	var cycle CircularDependencyError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, TypeOf[*TCycleA](), cycle.Type)
	assert.Equal(t, []reflect.Type{TypeOf[*TCycleA](), TypeOf[*TCycleB]()}, cycle.Chain)
	assert.Contains(t, err.Error(), "*TCycleA (cycle)")
}

func TestContainer_ConcurrentNew(t *testing.T) {
	c := New()
	require.NoError(t, c.Provide(NewTService))
	require.NoError(t, c.Provide(NewTSingleton))
	require.NoError(t, BindType[TContract, *TSingleton](c))

	const workers = 32
	results := make([]*TService, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			svc, err := Make[*TService](c)
			assert.NoError(t, err)
			results[i] = svc
		}(i)
	}
	wg.Wait()

	cached, err := c.New(TypeOf[*TSingleton]())
	require.NoError(t, err)

	for _, svc := range results {
		require.NotNil(t, svc)
		assert.Equal(t, statusInit, svc.Contract.Status())
		assert.Same(t, cached, svc.Contract)
	}
}

func TestContainer_ConcurrentSingletonConstruction(t *testing.T) {
	const callers = 2

	// every caller is inside the constructor before any of them returns
	var entered sync.WaitGroup
	entered.Add(callers)

	c := New()
	require.NoError(t, c.Provide(func() *TSingleton {
		entered.Done()
		entered.Wait()
		return NewTSingleton()
	}))

	instances := make([]any, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			instance, err := c.New(TypeOf[*TSingleton]())
			assert.NoError(t, err)
			instances[i] = instance
		}(i)
	}
	wg.Wait()

	require.NotNil(t, instances[0])
	assert.Same(t, instances[0], instances[1])

	cached, ok := c.singleton(TypeOf[*TSingleton]())
	require.True(t, ok)
	assert.Same(t, instances[0], cached)
}
