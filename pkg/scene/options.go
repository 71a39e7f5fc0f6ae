package scene

import (
	"log/slog"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets a structured logger for the scene core.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFactory replaces the default action catalog.
func WithFactory(f ports.ActionFactory) Option {
	return func(r *Registry) {
		if f != nil {
			r.factory = f
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(r *Registry) {
		r.hooks = hooks
	}
}
