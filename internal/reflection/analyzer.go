package reflection

import (
	"fmt"
	"reflect"
	"sync"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Analyzer performs reflection-based analysis of callables.
// It caches analysis results per function type.
type Analyzer struct {
	mu    sync.RWMutex
	cache map[reflect.Type]*Signature
}

// Signature contains the analyzed parameters and results of a function type.
type Signature struct {
	Type           reflect.Type
	Parameters     []ParameterInfo
	Returns        []reflect.Type
	IsVariadic     bool
	HasErrorReturn bool // Returns error as last value
}

// ParameterInfo describes one formal parameter of a callable.
type ParameterInfo struct {
	Type     reflect.Type
	Index    int
	Class    Class
	Nullable bool
	Variadic bool // True for the trailing ...T parameter; Type is then []T
}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{
		cache: make(map[reflect.Type]*Signature),
	}
}

// Analyze returns the signature of the given function type.
func (a *Analyzer) Analyze(fnType reflect.Type) (*Signature, error) {
	if fnType == nil {
		return nil, fmt.Errorf("function type cannot be nil")
	}

	if fnType.Kind() != reflect.Func {
		return nil, fmt.Errorf("expected a function, got %v", fnType.Kind())
	}

	a.mu.RLock()
	if cached, ok := a.cache[fnType]; ok {
		a.mu.RUnlock()
		return cached, nil
	}
	a.mu.RUnlock()

	sig := &Signature{
		Type:       fnType,
		IsVariadic: fnType.IsVariadic(),
		Parameters: make([]ParameterInfo, fnType.NumIn()),
		Returns:    make([]reflect.Type, fnType.NumOut()),
	}

	for i := 0; i < fnType.NumIn(); i++ {
		paramType := fnType.In(i)
		info := Inspect(paramType)
		sig.Parameters[i] = ParameterInfo{
			Type:     paramType,
			Index:    i,
			Class:    info.Class,
			Nullable: info.CanBeNil,
			Variadic: sig.IsVariadic && i == fnType.NumIn()-1,
		}
	}

	for i := 0; i < fnType.NumOut(); i++ {
		sig.Returns[i] = fnType.Out(i)
	}

	if n := fnType.NumOut(); n > 0 && isErrorType(fnType.Out(n-1)) {
		sig.HasErrorReturn = true
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if cached, ok := a.cache[fnType]; ok {
		return cached, nil
	}
	a.cache[fnType] = sig

	return sig, nil
}

// AnalyzeFunc analyzes the type of a function value.
func (a *Analyzer) AnalyzeFunc(fn any) (*Signature, error) {
	if fn == nil {
		return nil, fmt.Errorf("function cannot be nil")
	}

	val := reflect.ValueOf(fn)
	if val.Kind() == reflect.Func && val.IsNil() {
		return nil, fmt.Errorf("function cannot be nil")
	}

	return a.Analyze(val.Type())
}

// ParameterType returns the type an argument at position i must be assignable
// to when the function is called element-wise. Positions past the last
// parameter of a variadic function map to the variadic element type.
func (s *Signature) ParameterType(i int) (reflect.Type, bool) {
	n := len(s.Parameters)
	switch {
	case i < 0:
		return nil, false
	case s.IsVariadic && i >= n-1:
		return s.Parameters[n-1].Type.Elem(), true
	case i < n:
		return s.Parameters[i].Type, true
	default:
		return nil, false
	}
}

func isErrorType(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.Implements(errType)
}
