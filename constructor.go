package injector

import (
	"fmt"
	"reflect"

	"github.com/junioryono/injector/internal/reflection"
)

// constructor is a registered function building one concrete type.
type constructor struct {
	fn  reflect.Value
	sig *reflection.Signature
}

// Provide registers fn as the constructor of the concrete type it returns.
// fn must return the concrete type, optionally followed by an error. Its
// parameters are resolved by the container each time New builds the type.
// A later Provide for the same type replaces the earlier one.
//
//	func NewMailer(cfg *Config, from ...string) (*Mailer, error)
//
//	_ = c.Provide(NewMailer)
//	m, err := injector.Make[*Mailer](c, "noreply@example.com")
func (c *Container) Provide(fn any) error {
	if fn == nil {
		return RegistrationError{Operation: "provide", Cause: ErrConstructorNil}
	}

	val := reflect.ValueOf(fn)
	if val.Kind() != reflect.Func {
		return RegistrationError{
			Type:      val.Type(),
			Operation: "provide",
			Cause:     fmt.Errorf("%w: constructor must be a function", ErrInvalidFunction),
		}
	}
	if val.IsNil() {
		return RegistrationError{Type: val.Type(), Operation: "provide", Cause: ErrConstructorNil}
	}

	sig, err := c.analyzer.Analyze(val.Type())
	if err != nil {
		return RegistrationError{Type: val.Type(), Operation: "provide", Cause: err}
	}

	valueCount := len(sig.Returns)
	if sig.HasErrorReturn {
		valueCount--
	}
	if valueCount != 1 {
		return RegistrationError{
			Type:      val.Type(),
			Operation: "provide",
			Cause:     fmt.Errorf("%w: constructor must return exactly one value and an optional error", ErrInvalidFunction),
		}
	}

	target := sig.Returns[0]
	if !reflection.Inspect(target).IsInstantiable {
		return RegistrationError{
			Type:      target,
			Operation: "provide",
			Cause:     fmt.Errorf("%w: constructor must return a concrete type, use Bind for interfaces", ErrInvalidFunction),
		}
	}

	c.constructors.set(target, &constructor{fn: val, sig: sig})
	c.log.WithField("type", formatType(target)).Debug("constructor registered")

	return nil
}
