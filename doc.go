// Package injector provides a reflection-based dependency injection container.
//
// # Overview
//
// A Container keeps four tables:
//   - bindings: interface → concrete type
//   - shared instances: type → live object, injected as-is
//   - singletons: concrete type → the one instance built for it
//   - constructors: concrete type → function building it
//
// Objects are built on demand by New, which calls the registered
// constructor and resolves each of its parameters from the container.
// Functions and methods are called with injected parameters through Tap.
//
// # Basic Usage
//
//	c := injector.New()
//
//	_ = c.Provide(NewSMTPMailer)              // func(*Config) *SMTPMailer
//	_ = injector.BindType[Mailer, *SMTPMailer](c)
//	_ = c.Share(&Config{Host: "localhost"})
//
//	mailer, err := injector.Make[Mailer](c)
//
// # Argument Collection
//
// Caller arguments always fill the trailing parameters. Only the leading
// parameters left over are injected:
//
//	func Send(m Mailer, to string, body string) error
//
//	c.Tap(Send, "bob@example.com", "hi") // m is injected
//	c.Tap(Send, m, "bob@example.com", "hi") // nothing is injected
//
// An injected parameter of a builtin type (int, string, []byte, ...) is
// never resolved. A nullable builtin receives nil; any other builtin is
// skipped, which leaves the final argument list one short. Calling a
// function through such a list fails with an ArgumentCountError.
//
// A variadic parameter counts as one parameter and stands in for an optional
// one: when it is injected it receives a nil slice.
//
// # Singletons
//
// Types embedding Singleton are built once per container:
//
//	type Clock struct {
//	    injector.Singleton
//	    Zone string
//	}
//
// Later New calls for *Clock return the first instance and ignore their
// arguments. Sharing a *Clock makes it the cached instance.
//
// # Errors
//
// Every failure is a typed error wrapping a sentinel: ErrInvalidBinding,
// ErrAmbiguousParameter, ErrArityOverflow, ErrUnresolvableAbstract,
// ErrInvalidReceiver, ErrCircularDependency and ErrArgumentCount. Use
// errors.Is or the Is* helpers.
//
// # Interop
//
// ExportToDig exposes bindings and shared instances to a go.uber.org/dig
// container. The chi subpackage mounts handlers whose dependencies are
// injected per request.
package injector
