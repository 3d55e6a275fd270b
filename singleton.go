package injector

import (
	"reflect"
)

// Singleton marks a type as constructed at most once per container.
// Embed it in a struct:
//
//	type Clock struct {
//	    injector.Singleton
//	    Zone string
//	}
//
// Every later New for that type returns the first instance and ignores the
// arguments it was given.
type Singleton struct{}

func (Singleton) singleton() {}

type singletonMarker interface {
	singleton()
}

var singletonType = reflect.TypeOf((*singletonMarker)(nil)).Elem()

func isSingleton(t reflect.Type) bool {
	return t != nil && t.Implements(singletonType)
}

// saveSingleton stores instance as the singleton of its dynamic type.
func (c *Container) saveSingleton(instance any) {
	c.singletons.set(reflect.TypeOf(instance), instance)
}

// singleton returns the cached singleton of concrete type t.
func (c *Container) singleton(t reflect.Type) (any, bool) {
	return c.singletons.get(t)
}
