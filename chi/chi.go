// Package chi provides injector integration for the Chi router.
//
// Middleware attaches a container to every request context. Handle wraps any
// function or method reference whose trailing parameters are
// (http.ResponseWriter, *http.Request): the leading parameters are injected
// from the container on each request.
//
// Example usage:
//
//	c := injector.New()
//	_ = c.Provide(NewUserController)
//
//	r := gochi.NewRouter()
//	r.Use(injectorchi.Middleware(c))
//
//	r.Get("/users/{id}", injectorchi.Handle((*UserController).GetByID))
//	injectorchi.Route(r, http.MethodPost, "/login", (*AuthController).Login)
package chi

import (
	"context"
	"errors"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/junioryono/injector"
	"github.com/sirupsen/logrus"
)

// ErrContainerNotInContext is returned by FromContext when no container was
// attached to the request.
var ErrContainerNotInContext = errors.New("no container found in context")

type contextKey struct{}

// NewContext returns a copy of ctx carrying c.
func NewContext(ctx context.Context, c *injector.Container) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the container attached by Middleware.
func FromContext(ctx context.Context) (*injector.Container, error) {
	c, ok := ctx.Value(contextKey{}).(*injector.Container)
	if !ok || c == nil {
		return nil, ErrContainerNotInContext
	}
	return c, nil
}

// Config holds the configuration for the middleware.
type Config struct {
	// ErrorHandler is called when a request middleware fails.
	// If nil, a default handler returning 500 Internal Server Error is used.
	ErrorHandler func(http.ResponseWriter, *http.Request, error)

	// Middlewares run after the container is attached, in the order added.
	// They can share request data into the container or reject the request.
	Middlewares []func(*injector.Container, *http.Request) error
}

// Option configures the middleware.
type Option func(*Config)

// WithErrorHandler sets the error handler for request middleware failures.
func WithErrorHandler(h func(http.ResponseWriter, *http.Request, error)) Option {
	return func(c *Config) {
		c.ErrorHandler = h
	}
}

// WithMiddleware adds a function that runs after the container is attached.
func WithMiddleware(mw func(*injector.Container, *http.Request) error) Option {
	return func(c *Config) {
		c.Middlewares = append(c.Middlewares, mw)
	}
}

func defaultConfig() *Config {
	return &Config{
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logrus.WithError(err).Error("request middleware failed")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		},
	}
}

// Middleware creates a Chi middleware that attaches c to each request
// context, where Handle and FromContext find it.
//
// Example:
//
//	r := gochi.NewRouter()
//	r.Use(injectorchi.Middleware(c))
func Middleware(c *injector.Container, opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(NewContext(r.Context(), c))

			for _, mw := range cfg.Middlewares {
				if err := mw(c, r); err != nil {
					cfg.ErrorHandler(w, r, err)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// HandlerConfig holds configuration for the Handle wrapper.
type HandlerConfig struct {
	// PanicRecovery enables panic recovery in the handler. Panics inside the
	// action itself are always returned as errors by the container; this
	// covers the error handlers and the response writer.
	PanicRecovery bool

	// PanicHandler is called when a panic occurs (if PanicRecovery is true).
	PanicHandler func(http.ResponseWriter, *http.Request, any)

	// ContainerErrorHandler is called when no container is in the context.
	ContainerErrorHandler func(http.ResponseWriter, *http.Request, error)

	// ErrorHandler is called when injection fails or the action returns an
	// error.
	ErrorHandler func(http.ResponseWriter, *http.Request, error)

	// Logger receives the default handlers' error entries.
	Logger logrus.FieldLogger
}

// HandlerOption configures the Handle wrapper.
type HandlerOption func(*HandlerConfig)

// WithPanicRecovery enables or disables panic recovery in the handler.
func WithPanicRecovery(enabled bool) HandlerOption {
	return func(c *HandlerConfig) {
		c.PanicRecovery = enabled
	}
}

// WithPanicHandler sets the handler for panics.
func WithPanicHandler(h func(http.ResponseWriter, *http.Request, any)) HandlerOption {
	return func(c *HandlerConfig) {
		c.PanicHandler = h
	}
}

// WithContainerErrorHandler sets the handler for a missing container.
func WithContainerErrorHandler(h func(http.ResponseWriter, *http.Request, error)) HandlerOption {
	return func(c *HandlerConfig) {
		c.ContainerErrorHandler = h
	}
}

// WithHandlerErrorHandler sets the handler for injection and action errors.
func WithHandlerErrorHandler(h func(http.ResponseWriter, *http.Request, error)) HandlerOption {
	return func(c *HandlerConfig) {
		c.ErrorHandler = h
	}
}

// WithLogger sets the logger used by the default handlers.
func WithLogger(logger logrus.FieldLogger) HandlerOption {
	return func(c *HandlerConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

func defaultHandlerConfig() *HandlerConfig {
	cfg := &HandlerConfig{
		Logger: logrus.StandardLogger(),
	}

	cfg.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		cfg.Logger.WithField("panic", v).Error("panic in handler")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
	cfg.ContainerErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		cfg.Logger.WithError(err).Error("failed to get container from context")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
	cfg.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		cfg.Logger.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("handler failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}

	return cfg
}

// Handle wraps action for use as an http.HandlerFunc. action is a function
// or an injector.MethodRef ending in (http.ResponseWriter, *http.Request);
// its leading parameters are injected from the request's container. A
// trailing error result is passed to the error handler.
//
// Example:
//
//	func (c *UserController) GetByID(users *UserStore, w http.ResponseWriter, r *http.Request) error
//
//	r.Get("/users/{id}", injectorchi.Handle((*UserController).GetByID))
func Handle(action any, opts ...HandlerOption) http.HandlerFunc {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.PanicRecovery {
			defer func() {
				if v := recover(); v != nil {
					cfg.PanicHandler(w, r, v)
				}
			}()
		}

		c, err := FromContext(r.Context())
		if err != nil {
			cfg.ContainerErrorHandler(w, r, err)
			return
		}

		if _, err := c.Tap(action, w, r); err != nil {
			cfg.ErrorHandler(w, r, err)
		}
	}
}

// Route mounts action on r for the given method and pattern.
func Route(r gochi.Router, method, pattern string, action any, opts ...HandlerOption) {
	r.Method(method, pattern, Handle(action, opts...))
}

// Param returns the URL parameter key of the matched route.
func Param(r *http.Request, key string) string {
	return gochi.URLParam(r, key)
}
