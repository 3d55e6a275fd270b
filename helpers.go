package injector

import (
	"fmt"
	"reflect"
)

// TypeOf returns the type identifier of T. Use it for interfaces:
//
//	c.Bind(injector.TypeOf[Mailer](), injector.TypeOf[*SMTPMailer]())
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// BindType binds the interface A to the concrete type C.
func BindType[A, C any](c *Container) error {
	return c.Bind(TypeOf[A](), TypeOf[C]())
}

// ShareAs shares instance under the type A.
func ShareAs[A any](c *Container, instance A) error {
	return c.Share(instance, TypeOf[A]())
}

// Lookup returns the instance shared under T.
func Lookup[T any](c *Container) (T, bool) {
	var zero T

	instance, ok := c.Get(TypeOf[T]())
	if !ok {
		return zero, false
	}

	result, ok := instance.(T)
	return result, ok
}

// Make constructs a T with New and asserts the result.
func Make[T any](c *Container, args ...any) (T, error) {
	var zero T

	instance, err := c.New(TypeOf[T](), args...)
	if err != nil {
		return zero, err
	}

	result, ok := instance.(T)
	if !ok {
		return zero, TypeMismatchError{
			Expected: TypeOf[T](),
			Actual:   reflect.TypeOf(instance),
			Context:  "type assertion",
		}
	}

	return result, nil
}

// MustMake is like Make but panics if construction fails.
func MustMake[T any](c *Container, args ...any) T {
	result, err := Make[T](c, args...)
	if err != nil {
		panic(err)
	}
	return result
}

// Invoke taps action and returns its first result as R.
func Invoke[R any](c *Container, action any, args ...any) (R, error) {
	var zero R

	results, err := c.Tap(action, args...)
	if err != nil {
		return zero, err
	}

	if len(results) == 0 {
		return zero, fmt.Errorf("%w: %T returns no value", ErrInvalidFunction, action)
	}

	result, ok := results[0].(R)
	if !ok && results[0] != nil {
		return zero, TypeMismatchError{
			Expected: TypeOf[R](),
			Actual:   reflect.TypeOf(results[0]),
			Context:  "result",
		}
	}

	return result, nil
}
