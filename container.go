package injector

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/junioryono/injector/internal/reflection"
	"github.com/sirupsen/logrus"
)

// Container maps abstract types to concrete implementations, holds shared
// instances, constructs objects by resolving their constructor parameters and
// keeps one instance of every singleton type it builds.
//
// All methods are safe for concurrent use. Constructors run outside the
// container's locks, so they may call back into the container. Concurrent
// first constructions of a singleton type may each run the constructor, but
// only the first stored instance is kept and returned to every caller.
type Container struct {
	id           string
	log          logrus.FieldLogger
	detectCycles bool
	analyzer     *reflection.Analyzer

	bindings     *typeMap[reflect.Type] // abstract -> concrete
	shared       *typeMap[any]          // key -> live instance
	singletons   *typeMap[any]          // concrete -> instance
	constructors *typeMap[*constructor] // concrete -> constructor
}

// New creates an empty container.
//
// Example:
//
//	c := injector.New(injector.WithLogger(logrus.StandardLogger()))
//	_ = injector.BindType[Mailer, *SMTPMailer](c)
//	svc, err := injector.Make[*SignupService](c)
func New(opts ...Option) *Container {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.id == "" {
		o.id = uuid.NewString()
	}

	return &Container{
		id:           o.id,
		log:          o.logger.WithField("container", o.id),
		detectCycles: o.detectCycles,
		analyzer:     reflection.New(),
		bindings:     newTypeMap[reflect.Type](),
		shared:       newTypeMap[any](),
		singletons:   newTypeMap[any](),
		constructors: newTypeMap[*constructor](),
	}
}

// ID returns the unique identifier of the container.
func (c *Container) ID() string {
	return c.id
}

// resolution tracks the concrete types under construction on one call chain.
type resolution struct {
	chain []reflect.Type
}

func (c *Container) newResolution() *resolution {
	if !c.detectCycles {
		return nil
	}
	return &resolution{}
}

func (r *resolution) enter(t reflect.Type) error {
	if r == nil {
		return nil
	}

	for _, seen := range r.chain {
		if seen == t {
			chain := make([]reflect.Type, len(r.chain))
			copy(chain, r.chain)
			return CircularDependencyError{Type: t, Chain: chain}
		}
	}

	r.chain = append(r.chain, t)
	return nil
}

func (r *resolution) leave() {
	if r == nil {
		return
	}
	r.chain = r.chain[:len(r.chain)-1]
}
