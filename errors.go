package injector

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// Typed errors below wrap these so callers can match with errors.Is.

var (
	ErrInvalidBinding       = errors.New("invalid binding")
	ErrAmbiguousParameter   = errors.New("ambiguous parameter declaration")
	ErrArityOverflow        = errors.New("too many arguments")
	ErrUnresolvableAbstract = errors.New("cannot instantiate abstract type")
	ErrInvalidReceiver      = errors.New("invalid method receiver")
	ErrCircularDependency   = errors.New("circular dependency detected")
	ErrArgumentCount        = errors.New("argument count mismatch")

	ErrTypeNil         = errors.New("type cannot be nil")
	ErrNilInstance     = errors.New("instance cannot be nil")
	ErrConstructorNil  = errors.New("constructor cannot be nil")
	ErrInvalidFunction = errors.New("invalid function")
	ErrMethodNotFound  = errors.New("method not found")
)

var (
	_ error = InvalidBindingError{}
	_ error = AmbiguousParameterError{}
	_ error = ArityOverflowError{}
	_ error = UnresolvableAbstractError{}
	_ error = InvalidReceiverError{}
	_ error = MethodNotFoundError{}
	_ error = CircularDependencyError{}
	_ error = ArgumentCountError{}
	_ error = InvocationError{}
	_ error = PanicError{}
	_ error = ConstructorError{}
	_ error = TypeMismatchError{}
	_ error = RegistrationError{}
)

// InvalidBindingError indicates Bind was called with a concrete type that does
// not implement the abstract type.
type InvalidBindingError struct {
	Abstract reflect.Type
	Concrete reflect.Type
}

func (e InvalidBindingError) Error() string {
	if e.Abstract != nil && e.Abstract.Kind() != reflect.Interface {
		return fmt.Sprintf("cannot bind %s to %s: %s is not an interface",
			formatType(e.Concrete), formatType(e.Abstract), formatType(e.Abstract))
	}
	return fmt.Sprintf("cannot bind %s to %s: %s does not implement %s",
		formatType(e.Concrete), formatType(e.Abstract), formatType(e.Concrete), formatType(e.Abstract))
}

func (e InvalidBindingError) Unwrap() error {
	return ErrInvalidBinding
}

// AmbiguousParameterError indicates a parameter in the injectable prefix does
// not declare a single unambiguous type.
type AmbiguousParameterError struct {
	Callable  reflect.Type
	Index     int
	Parameter reflect.Type
}

func (e AmbiguousParameterError) Error() string {
	return fmt.Sprintf("parameter %d (%s) of %s must declare a single named type to be injected",
		e.Index, formatType(e.Parameter), formatType(e.Callable))
}

func (e AmbiguousParameterError) Unwrap() error {
	return ErrAmbiguousParameter
}

// ArityOverflowError indicates more explicit arguments were supplied than the
// callable accepts.
type ArityOverflowError struct {
	Callable reflect.Type
	Accepts  int
	Given    int
}

func (e ArityOverflowError) Error() string {
	return fmt.Sprintf("%s accepts %d argument(s), %d given",
		formatType(e.Callable), e.Accepts, e.Given)
}

func (e ArityOverflowError) Unwrap() error {
	return ErrArityOverflow
}

// UnresolvableAbstractError indicates New was asked for a type that cannot be
// instantiated and has no usable binding.
type UnresolvableAbstractError struct {
	Type    reflect.Type
	Binding reflect.Type // nil when nothing is bound
}

func (e UnresolvableAbstractError) Error() string {
	if e.Binding != nil {
		return fmt.Sprintf("cannot instantiate %s: bound to %s which is not instantiable",
			formatType(e.Type), formatType(e.Binding))
	}
	return fmt.Sprintf("cannot instantiate %s: abstract type with no binding", formatType(e.Type))
}

func (e UnresolvableAbstractError) Unwrap() error {
	return ErrUnresolvableAbstract
}

// InvalidReceiverError indicates Tap was given a method reference without an
// instance to call it on.
type InvalidReceiverError struct {
	Type   reflect.Type
	Method string
}

func (e InvalidReceiverError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("cannot invoke method %s on a nil receiver", e.Method)
	}
	return fmt.Sprintf("cannot invoke method %s.%s without a receiver instance", formatType(e.Type), e.Method)
}

func (e InvalidReceiverError) Unwrap() error {
	return ErrInvalidReceiver
}

// MethodNotFoundError indicates the named method does not exist on the target.
type MethodNotFoundError struct {
	Type   reflect.Type
	Method string
}

func (e MethodNotFoundError) Error() string {
	return fmt.Sprintf("%s has no exported method %s", formatType(e.Type), e.Method)
}

func (e MethodNotFoundError) Unwrap() error {
	return ErrMethodNotFound
}

// CircularDependencyError indicates construction re-entered a type that is
// already being constructed on the same resolution chain.
type CircularDependencyError struct {
	Type  reflect.Type
	Chain []reflect.Type
}

func (e CircularDependencyError) Error() string {
	var b strings.Builder
	b.WriteString("circular dependency detected:\n\n")

	for _, t := range e.Chain {
		b.WriteString(fmt.Sprintf("    %s\n", formatType(t)))
		b.WriteString("      ↓\n")
	}
	b.WriteString(fmt.Sprintf("    %s (cycle)\n", formatType(e.Type)))

	return b.String()
}

func (e CircularDependencyError) Unwrap() error {
	return ErrCircularDependency
}

// ArgumentCountError indicates the final argument list does not fit the
// callable. This is what the injected prefix produces when it skips a
// non-nullable builtin parameter.
type ArgumentCountError struct {
	Callable reflect.Type
	Want     int
	Got      int
}

func (e ArgumentCountError) Error() string {
	return fmt.Sprintf("cannot call %s: want %d argument(s), got %d",
		formatType(e.Callable), e.Want, e.Got)
}

func (e ArgumentCountError) Unwrap() error {
	return ErrArgumentCount
}

// InvocationError wraps failures while calling a callable with its final
// argument list.
type InvocationError struct {
	Callable reflect.Type
	Cause    error
}

func (e InvocationError) Error() string {
	return fmt.Sprintf("failed to invoke %s: %v", formatType(e.Callable), e.Cause)
}

func (e InvocationError) Unwrap() error {
	return e.Cause
}

// PanicError captures a panic raised by a constructor or tapped function.
type PanicError struct {
	Callable reflect.Type
	Panic    any
	Stack    []byte
}

func (e PanicError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s panicked: %v", formatType(e.Callable), e.Panic))

	if len(e.Stack) > 0 {
		b.WriteString("\n\nStack trace:\n")
		b.Write(e.Stack)
	}

	return b.String()
}

// ConstructorError wraps an error returned by, or raised while calling, a
// registered constructor.
type ConstructorError struct {
	Type  reflect.Type
	Cause error
}

func (e ConstructorError) Error() string {
	return fmt.Sprintf("constructor for %s failed: %v", formatType(e.Type), e.Cause)
}

func (e ConstructorError) Unwrap() error {
	return e.Cause
}

// TypeMismatchError indicates a value is not assignable to the expected type.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
	Context  string // "share", "argument 2", ...
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Context, formatType(e.Expected), formatType(e.Actual))
}

// RegistrationError wraps errors during constructor registration or export.
type RegistrationError struct {
	Type      reflect.Type
	Operation string // "provide", "export"
	Cause     error
}

func (e RegistrationError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("failed to %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, formatType(e.Type), e.Cause)
}

func (e RegistrationError) Unwrap() error {
	return e.Cause
}

// IsInvalidBinding reports whether err is an invalid binding error.
func IsInvalidBinding(err error) bool { return errors.Is(err, ErrInvalidBinding) }

// IsAmbiguousParameter reports whether err is an ambiguous parameter error.
func IsAmbiguousParameter(err error) bool { return errors.Is(err, ErrAmbiguousParameter) }

// IsArityOverflow reports whether err is an arity overflow error.
func IsArityOverflow(err error) bool { return errors.Is(err, ErrArityOverflow) }

// IsUnresolvableAbstract reports whether err is an unresolvable abstract error.
func IsUnresolvableAbstract(err error) bool { return errors.Is(err, ErrUnresolvableAbstract) }

// IsInvalidReceiver reports whether err is an invalid receiver error.
func IsInvalidReceiver(err error) bool { return errors.Is(err, ErrInvalidReceiver) }

// IsCircularDependency reports whether err is a circular dependency error.
func IsCircularDependency(err error) bool { return errors.Is(err, ErrCircularDependency) }

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	case reflect.Func:
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
