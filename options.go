package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/campushq/reconcile/pkg/differ"
	"github.com/campushq/reconcile/pkg/errors"
	"github.com/campushq/reconcile/pkg/policy"
)

// options configures an Engine.
type options struct {
	differ  differ.Differ
	overlay policy.Overlay
	logger  *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		differ: differ.New(),
	}
}

// Option is a function that configures an Engine.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	options := defaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// WithDiffer sets the change detector used for comparisons.
func WithDiffer(d differ.Differ) Option {
	return func(o *options) error {
		if d == nil {
			return &errors.ValidationError{
				Field:   "differ",
				Message: "cannot be nil",
			}
		}
		o.differ = d
		return nil
	}
}

// WithOperatorOverlay sets the operator's action overrides, applied to
// every changeset the engine produces before it is returned.
func WithOperatorOverlay(overlay policy.Overlay) Option {
	return func(o *options) error {
		o.overlay = overlay
		return nil
	}
}

// WithLogger sets a fixed logger instead of the context logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
