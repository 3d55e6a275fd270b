package injector

import (
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/junioryono/injector/internal/reflection"
)

// MethodRef names a method to call through Tap.
type MethodRef struct {
	// Target is the receiver instance. A reflect.Type here is a bare type
	// with no receiver and is rejected by Tap.
	Target any
	Name   string
}

// Method references the exported method name of target.
//
//	results, err := c.Tap(injector.Method(handler, "Serve"), "payload")
func Method(target any, name string) MethodRef {
	return MethodRef{Target: target, Name: name}
}

// Tap calls action with its dependencies injected and returns its results.
//
// action is a function value or a MethodRef. The leading parameters not
// covered by args are resolved from the container; args fill the rest, in
// order. A trailing error result is returned as the error and left out of the
// returned values.
//
// Go methods always need a receiver: a MethodRef whose target is a
// reflect.Type fails with an InvalidReceiverError. A method expression such as
// (*Handler).Serve is an ordinary function whose first parameter, the
// receiver, is injected like any other.
func (c *Container) Tap(action any, args ...any) ([]any, error) {
	res := c.newResolution()

	switch ref := action.(type) {
	case MethodRef:
		return c.tapMethod(res, ref.Target, ref.Name, args)
	case *MethodRef:
		if ref == nil {
			return nil, InvocationError{Callable: reflect.TypeOf(action), Cause: ErrInvalidFunction}
		}
		return c.tapMethod(res, ref.Target, ref.Name, args)
	default:
		return c.tapFunc(res, action, args)
	}
}

func (c *Container) tapMethod(res *resolution, target any, name string, args []any) ([]any, error) {
	if t, ok := target.(reflect.Type); ok {
		if t == nil {
			return nil, InvalidReceiverError{Method: name}
		}
		if !hasMethod(t, name) {
			return nil, MethodNotFoundError{Type: t, Method: name}
		}
		return nil, InvalidReceiverError{Type: t, Method: name}
	}

	if target == nil {
		return nil, InvalidReceiverError{Method: name}
	}

	receiver := reflect.ValueOf(target)
	if receiver.Kind() == reflect.Pointer && receiver.IsNil() {
		return nil, InvalidReceiverError{Type: receiver.Type(), Method: name}
	}

	method := receiver.MethodByName(name)
	if !method.IsValid() {
		return nil, MethodNotFoundError{Type: receiver.Type(), Method: name}
	}

	return c.invoke(res, method, args)
}

func (c *Container) tapFunc(res *resolution, action any, args []any) ([]any, error) {
	fn := reflect.ValueOf(action)
	if action == nil || fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, InvocationError{Callable: reflect.TypeOf(action), Cause: ErrInvalidFunction}
	}

	return c.invoke(res, fn, args)
}

func (c *Container) invoke(res *resolution, fn reflect.Value, args []any) ([]any, error) {
	sig, err := c.analyzer.Analyze(fn.Type())
	if err != nil {
		return nil, InvocationError{Callable: fn.Type(), Cause: err}
	}

	final, err := c.collectArgs(res, sig, args)
	if err != nil {
		return nil, err
	}

	return c.call(fn, sig, final)
}

// call invokes fn positionally. For a variadic fn, a final argument that is
// nil or already a slice of the variadic type is passed as the whole
// variadic slice.
func (c *Container) call(fn reflect.Value, sig *reflection.Signature, args []any) (results []any, err error) {
	n := len(sig.Parameters)

	if (!sig.IsVariadic && len(args) != n) || (sig.IsVariadic && len(args) < n-1) {
		return nil, ArgumentCountError{Callable: sig.Type, Want: n, Got: len(args)}
	}

	spread := sig.IsVariadic && len(args) == n && fillsVariadic(sig.Parameters[n-1].Type, args[n-1])

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		paramType, _ := sig.ParameterType(i)
		if spread && i == n-1 {
			paramType = sig.Parameters[n-1].Type
		}

		value, err := argumentValue(arg, paramType)
		if err != nil {
			return nil, InvocationError{
				Callable: sig.Type,
				Cause:    fmt.Errorf("argument %d: %w", i, err),
			}
		}
		in[i] = value
	}

	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = InvocationError{
				Callable: sig.Type,
				Cause:    PanicError{Callable: sig.Type, Panic: r, Stack: debug.Stack()},
			}
		}
	}()

	var out []reflect.Value
	if spread {
		out = fn.CallSlice(in)
	} else {
		out = fn.Call(in)
	}

	return splitResults(sig, out)
}

func fillsVariadic(sliceType reflect.Type, arg any) bool {
	if arg == nil {
		return true
	}
	return reflect.TypeOf(arg).AssignableTo(sliceType)
}

// argumentValue converts an argument to a value assignable to paramType.
func argumentValue(arg any, paramType reflect.Type) (reflect.Value, error) {
	if arg == nil {
		if !reflection.Inspect(paramType).CanBeNil {
			return reflect.Value{}, TypeMismatchError{Expected: paramType, Context: "nil argument"}
		}
		return reflect.Zero(paramType), nil
	}

	value := reflect.ValueOf(arg)
	if !value.Type().AssignableTo(paramType) {
		return reflect.Value{}, TypeMismatchError{Expected: paramType, Actual: value.Type(), Context: "argument"}
	}

	return value, nil
}

// splitResults converts call results, returning a non-nil trailing error.
func splitResults(sig *reflection.Signature, out []reflect.Value) ([]any, error) {
	if sig.HasErrorReturn {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}

	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}

	return results, nil
}

func hasMethod(t reflect.Type, name string) bool {
	if _, ok := t.MethodByName(name); ok {
		return true
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		_, ok := reflect.PointerTo(t).MethodByName(name)
		return ok
	}
	return false
}
