package injector

import (
	"reflect"
)

// Share makes instance available for injection. It is stored under every
// type in as, or under its own dynamic type when as is empty. Sharing again
// under the same key replaces the previous instance.
//
// If the instance's type embeds Singleton, it also becomes the cached
// singleton for that type.
//
// The container never closes or otherwise disposes shared instances.
func (c *Container) Share(instance any, as ...reflect.Type) error {
	if instance == nil {
		return ErrNilInstance
	}

	instanceType := reflect.TypeOf(instance)

	keys := as
	if len(keys) == 0 {
		keys = []reflect.Type{instanceType}
	}

	for _, key := range keys {
		if key == nil {
			return ErrTypeNil
		}
		if !instanceType.AssignableTo(key) {
			return TypeMismatchError{Expected: key, Actual: instanceType, Context: "share"}
		}
	}

	for _, key := range keys {
		c.shared.set(key, instance)
		c.log.WithField("type", formatType(key)).Debug("shared")
	}

	if isSingleton(instanceType) {
		c.saveSingleton(instance)
	}

	return nil
}

// Get returns the instance shared under t. It never constructs.
func (c *Container) Get(t reflect.Type) (any, bool) {
	return c.shared.get(t)
}

// Remove drops the instance shared under t, if any.
func (c *Container) Remove(t reflect.Type) {
	c.shared.delete(t)
}

// IsShared reports whether an instance is shared under t.
func (c *Container) IsShared(t reflect.Type) bool {
	return c.shared.has(t)
}
