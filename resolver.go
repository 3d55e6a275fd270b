package injector

import (
	"reflect"

	"github.com/junioryono/injector/internal/reflection"
)

// New constructs an instance of t, injecting the constructor parameters not
// covered by args.
//
// Interfaces are built through their binding. A singleton type that was
// already built (or shared) returns the cached instance and args are ignored.
// The result is never added to the shared registry.
func (c *Container) New(t reflect.Type, args ...any) (any, error) {
	return c.instantiate(c.newResolution(), t, args)
}

// resolveType returns the instance shared under the best type to try for t,
// or constructs a new one.
func (c *Container) resolveType(res *resolution, t reflect.Type) (any, error) {
	if instance, ok := c.Get(c.Concrete(t)); ok {
		return instance, nil
	}

	return c.instantiate(res, t, nil)
}

func (c *Container) instantiate(res *resolution, t reflect.Type, args []any) (any, error) {
	if t == nil {
		return nil, ErrTypeNil
	}

	concrete := t
	if !reflection.Inspect(t).IsInstantiable {
		bound, ok := c.bound(t)
		if !ok {
			return nil, UnresolvableAbstractError{Type: t}
		}
		if !reflection.Inspect(bound).IsInstantiable {
			return nil, UnresolvableAbstractError{Type: t, Binding: bound}
		}
		concrete = bound
	}

	singleton := isSingleton(concrete)
	if singleton {
		if instance, ok := c.singleton(concrete); ok {
			return instance, nil
		}
	}

	if err := res.enter(concrete); err != nil {
		return nil, err
	}
	defer res.leave()

	instance, err := c.construct(res, concrete, args)
	if err != nil {
		return nil, err
	}

	if singleton {
		// a concurrent construction may have stored first
		instance, _ = c.singletons.loadOrStore(concrete, instance)
	}

	c.log.WithField("type", formatType(concrete)).Debug("constructed")

	return instance, nil
}

// construct builds t with its registered constructor, or as a zero value
// when it has none.
func (c *Container) construct(res *resolution, t reflect.Type, args []any) (any, error) {
	ctor, ok := c.constructors.get(t)
	if !ok {
		if len(args) > 0 {
			return nil, ArityOverflowError{Callable: t, Accepts: 0, Given: len(args)}
		}
		return reflection.Zero(t).Interface(), nil
	}

	final, err := c.collectArgs(res, ctor.sig, args)
	if err != nil {
		return nil, err
	}

	results, err := c.call(ctor.fn, ctor.sig, final)
	if err != nil {
		return nil, ConstructorError{Type: t, Cause: err}
	}

	return results[0], nil
}
