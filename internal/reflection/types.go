package reflection

import (
	"reflect"
	"sync"
)

// Class describes how a declared parameter type takes part in injection.
type Class int

const (
	// Named is a single named type declared in some package (struct,
	// interface, or a pointer to one). Named parameters are resolved from the
	// container.
	Named Class = iota

	// Builtin is a predeclared type, a pointer to one, or an unnamed composite
	// (slice, map, chan, func, array). Builtin parameters are never resolved.
	Builtin

	// Ambiguous is a declaration that does not name exactly one type: an
	// anonymous struct or an anonymous interface with methods.
	Ambiguous
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Named:
		return "named"
	case Builtin:
		return "builtin"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// TypeInfo holds pre-computed reflection facts about a type.
type TypeInfo struct {
	Type reflect.Type
	Kind reflect.Kind

	IsInterface bool

	// CanBeNil reports whether nil is a valid value of the type.
	CanBeNil bool

	// IsInstantiable reports whether a value can be built directly, without
	// going through a binding.
	IsInstantiable bool

	Class Class
}

// typeCache caches TypeInfo values keyed by reflect.Type.
type typeCache struct {
	cache sync.Map // map[reflect.Type]*TypeInfo
}

var globalTypeCache = &typeCache{}

// Inspect returns the cached TypeInfo for t, computing it on first use.
func Inspect(t reflect.Type) *TypeInfo {
	if t == nil {
		return nil
	}

	if cached, ok := globalTypeCache.cache.Load(t); ok {
		return cached.(*TypeInfo)
	}

	actual, _ := globalTypeCache.cache.LoadOrStore(t, newTypeInfo(t))
	return actual.(*TypeInfo)
}

func newTypeInfo(t reflect.Type) *TypeInfo {
	info := &TypeInfo{
		Type:  t,
		Kind:  t.Kind(),
		Class: classify(t),
	}

	info.IsInterface = info.Kind == reflect.Interface
	info.IsInstantiable = !info.IsInterface

	switch info.Kind {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		info.CanBeNil = true
	}

	return info
}

func classify(t reflect.Type) Class {
	switch {
	case t.Name() != "" && t.PkgPath() != "":
		return Named
	case t.Name() != "":
		// predeclared: int, string, error, ...
		return Builtin
	}

	switch t.Kind() {
	case reflect.Pointer:
		return classify(t.Elem())
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return Builtin
		}
		return Ambiguous
	case reflect.Struct:
		return Ambiguous
	default:
		return Builtin
	}
}

// Zero builds the value a concrete type gets when it has no constructor.
// Pointers to structs are allocated; every other type gets its zero value.
func Zero(t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
		return reflect.New(t.Elem())
	}
	return reflect.Zero(t)
}

// Implements reports whether t satisfies the interface iface.
func Implements(t, iface reflect.Type) bool {
	if t == nil || iface == nil || iface.Kind() != reflect.Interface {
		return false
	}
	return t.Implements(iface)
}
