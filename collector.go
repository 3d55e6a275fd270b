package injector

import (
	"reflect"

	"github.com/junioryono/injector/internal/reflection"
)

// CollectArgs returns the positional argument list Tap would call fn with:
// the injected values for the leading parameters not covered by args,
// followed by args.
func (c *Container) CollectArgs(fn any, args ...any) ([]any, error) {
	sig, err := c.analyzer.AnalyzeFunc(fn)
	if err != nil {
		return nil, InvocationError{Callable: reflect.TypeOf(fn), Cause: ErrInvalidFunction}
	}

	return c.collectArgs(c.newResolution(), sig, args)
}

// collectArgs injects the parameters in front of the explicit arguments.
//
// Only the first len(params)-len(explicit) parameters are injected. Builtin
// parameters get nil when nullable and are skipped otherwise, so a
// non-nullable builtin in the injected prefix leaves its slot empty and
// shifts the final list.
func (c *Container) collectArgs(res *resolution, sig *reflection.Signature, explicit []any) ([]any, error) {
	injectCount := len(sig.Parameters) - len(explicit)

	if injectCount < 0 {
		return nil, ArityOverflowError{
			Callable: sig.Type,
			Accepts:  len(sig.Parameters),
			Given:    len(explicit),
		}
	}

	if injectCount == 0 {
		return explicit, nil
	}

	args := make([]any, 0, len(sig.Parameters))
	for _, param := range sig.Parameters[:injectCount] {
		switch param.Class {
		case reflection.Ambiguous:
			return nil, AmbiguousParameterError{
				Callable:  sig.Type,
				Index:     param.Index,
				Parameter: param.Type,
			}

		case reflection.Builtin:
			if param.Nullable {
				args = append(args, reflect.Zero(param.Type).Interface())
			}

		default:
			value, err := c.resolveType(res, param.Type)
			if err != nil {
				return nil, err
			}
			args = append(args, value)
		}
	}

	return append(args, explicit...), nil
}
