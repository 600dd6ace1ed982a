package objective

import (
	"github.com/YuminosukeSato/gbloss/core/host"
	"github.com/YuminosukeSato/gbloss/core/stability"
	"github.com/YuminosukeSato/gbloss/pkg/log"
)

// Option is a function that configures an objective at construction time.
type Option func(*config)

// WithSpace sets the space predictions are delivered in. Classification
// objectives default to stability.Margin; regression objectives ignore it.
func WithSpace(space stability.Space) Option {
	return func(c *config) {
		c.space = space
	}
}

// WithConvention records the host the objective is built for.
// Gradients and Hessians are shaped identically for both hosts.
func WithConvention(convention host.Convention) Option {
	return func(c *config) {
		c.convention = convention
	}
}

// WithXGBoost is shorthand for WithConvention(host.ConventionFor(xgboost)).
func WithXGBoost(xgboost bool) Option {
	return WithConvention(host.ConventionFor(xgboost))
}

// WithParallelThreshold sets the vector length above which GradHess fans out
// across CPU cores.
func WithParallelThreshold(n int) Option {
	return func(c *config) {
		c.threshold = n
	}
}

// WithLogger sets the logger used for construction and debug records.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
