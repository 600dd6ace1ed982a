package metrics

import (
	"strings"

	"github.com/YuminosukeSato/gbloss/core/host"
	"github.com/YuminosukeSato/gbloss/core/parallel"
	"github.com/YuminosukeSato/gbloss/core/stability"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"github.com/YuminosukeSato/gbloss/pkg/log"
)

// Average selects how per-class F1 scores are combined.
type Average int

const (
	// AverageBinary reports the F1 score of the positive label only.
	AverageBinary Average = iota
	// AverageMicro counts true positives, false positives and false negatives globally.
	AverageMicro
	// AverageMacro is the unweighted mean of per-class F1 scores.
	AverageMacro
	// AverageWeighted is the mean of per-class F1 scores weighted by class support.
	AverageWeighted
)

func (a Average) String() string {
	switch a {
	case AverageBinary:
		return "binary"
	case AverageMicro:
		return "micro"
	case AverageMacro:
		return "macro"
	case AverageWeighted:
		return "weighted"
	default:
		return "unknown"
	}
}

// ParseAverage maps "binary", "micro", "macro" or "weighted" to an Average.
func ParseAverage(s string) (Average, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary", "":
		return AverageBinary, nil
	case "micro":
		return AverageMicro, nil
	case "macro":
		return AverageMacro, nil
	case "weighted":
		return AverageWeighted, nil
	default:
		return AverageBinary, errors.NewValidationError("average",
			"must be one of binary, micro, macro, weighted", s)
	}
}

type config struct {
	convention host.Convention
	space      stability.Space
	spaceSet   bool
	threshold  int
	logger     log.Logger

	average  Average
	posLabel float64
	numClass int
}

// Option is a function that configures a metric at construction time.
type Option func(*config)

func newConfig(opts []Option) config {
	cfg := config{
		convention: host.LightGBM,
		space:      stability.Margin,
		threshold:  parallel.DefaultThreshold,
		average:    AverageBinary,
		posLabel:   1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName(log.ComponentMetrics)
	}
	return cfg
}

func (c *config) validate() error {
	switch c.average {
	case AverageBinary, AverageMicro, AverageMacro, AverageWeighted:
	default:
		return errors.NewValidationError("average", "unknown averaging mode", int(c.average))
	}
	if c.numClass < 0 {
		return errors.NewValidationError("num_class", "must not be negative", c.numClass)
	}
	return nil
}

// Convention returns the host convention results are shaped for.
func (c config) Convention() host.Convention {
	return c.convention
}

// Space returns the space classification metrics expect predictions in.
func (c config) Space() stability.Space {
	return c.space
}

// WithConvention selects the result shape: host.LightGBM reports
// (name, score, higherIsBetter), host.XGBoost reports (name, score).
func WithConvention(convention host.Convention) Option {
	return func(c *config) {
		c.convention = convention
	}
}

// WithXGBoost is shorthand for WithConvention(host.ConventionFor(xgboost)).
func WithXGBoost(xgboost bool) Option {
	return WithConvention(host.ConventionFor(xgboost))
}

// WithSpace sets the space predictions are delivered in. Cross-entropy and
// focal metrics default to stability.Margin. F1 rounds predictions as
// delivered unless a space is set explicitly, in which case they are mapped
// to probabilities first.
func WithSpace(space stability.Space) Option {
	return func(c *config) {
		c.space = space
		c.spaceSet = true
	}
}

// WithParallelThreshold sets the vector length above which per-sample
// losses are evaluated across CPU cores.
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

// WithAverage sets the F1 averaging mode. Default AverageBinary.
func WithAverage(average Average) Option {
	return func(c *config) {
		c.average = average
	}
}

// WithPosLabel sets the label treated as positive by binary F1. Default 1.
func WithPosLabel(label float64) Option {
	return func(c *config) {
		c.posLabel = label
	}
}

// WithNumClass fixes the number of classes used to reshape QWK scores.
// Zero, the default, counts the distinct labels of each evaluation.
func WithNumClass(k int) Option {
	return func(c *config) {
		c.numClass = k
	}
}
