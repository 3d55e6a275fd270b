package injector

import (
	"errors"
	"reflect"
	"sort"

	"go.uber.org/dig"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ExportToDig provides types to a dig container, each backed by this
// container: a dig constructor for T returns the instance shared under T's
// best type or a newly constructed one. With no types, every shared key and
// every bound interface is exported.
//
// dig calls each constructor at most once, so dig consumers see one instance
// per exported type regardless of singleton marking.
//
//	d := dig.New()
//	if err := c.ExportToDig(d); err != nil {
//	    return err
//	}
//	err := d.Invoke(func(m Mailer) { ... })
func (c *Container) ExportToDig(d *dig.Container, types ...reflect.Type) error {
	if d == nil {
		return RegistrationError{Operation: "export", Cause: errors.New("dig container cannot be nil")}
	}

	if len(types) == 0 {
		types = c.exportable()
	}

	for _, t := range types {
		if t == nil {
			return RegistrationError{Operation: "export", Cause: ErrTypeNil}
		}

		if err := d.Provide(c.digConstructor(t)); err != nil {
			return RegistrationError{Type: t, Operation: "export", Cause: err}
		}

		c.log.WithField("type", formatType(t)).Debug("exported to dig")
	}

	return nil
}

// exportable returns shared keys and bound interfaces, deduplicated and in a
// stable order.
func (c *Container) exportable() []reflect.Type {
	seen := make(map[reflect.Type]struct{})
	var types []reflect.Type

	for _, t := range append(c.shared.keys(), c.bindings.keys()...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})

	return types
}

// digConstructor builds a func() (T, error) resolving T from the container.
func (c *Container) digConstructor(t reflect.Type) any {
	fnType := reflect.FuncOf(nil, []reflect.Type{t, errorType}, false)

	return reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
		out := reflect.New(t).Elem()
		errOut := reflect.New(errorType).Elem()

		instance, err := c.resolveType(c.newResolution(), t)
		if err != nil {
			errOut.Set(reflect.ValueOf(err))
			return []reflect.Value{out, errOut}
		}

		if instance != nil {
			out.Set(reflect.ValueOf(instance))
		}

		return []reflect.Value{out, errOut}
	}).Interface()
}
