package injector

import (
	"reflect"

	"github.com/junioryono/injector/internal/reflection"
	"github.com/sirupsen/logrus"
)

// Bind registers concrete as the implementation of the interface abstract.
// A later Bind for the same abstract replaces the earlier one.
//
// Bind fails with an InvalidBindingError, leaving the table unchanged, when
// abstract is not an interface or concrete does not implement it.
func (c *Container) Bind(abstract, concrete reflect.Type) error {
	if abstract == nil || concrete == nil {
		return ErrTypeNil
	}

	if concrete == abstract || !reflection.Implements(concrete, abstract) {
		return InvalidBindingError{Abstract: abstract, Concrete: concrete}
	}

	c.bindings.set(abstract, concrete)

	c.log.WithFields(logrus.Fields{
		"abstract": formatType(abstract),
		"concrete": formatType(concrete),
	}).Debug("bound")

	return nil
}

// Unbind removes the binding for abstract, if any.
func (c *Container) Unbind(abstract reflect.Type) {
	c.bindings.delete(abstract)
}

// IsBound reports whether abstract has a binding.
func (c *Container) IsBound(abstract reflect.Type) bool {
	return c.bindings.has(abstract)
}

// Concrete returns the type bound to abstract, or abstract itself when there
// is no binding.
func (c *Container) Concrete(abstract reflect.Type) reflect.Type {
	if concrete, ok := c.bindings.get(abstract); ok {
		return concrete
	}
	return abstract
}

// bound returns the type bound to abstract only if a binding exists.
func (c *Container) bound(abstract reflect.Type) (reflect.Type, bool) {
	return c.bindings.get(abstract)
}
