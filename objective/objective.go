// Package objective implements custom training objectives for gradient-boosting
// hosts. Each objective evaluates a closed-form per-sample gradient and Hessian
// with respect to the raw model output.
//
// Objectives are immutable after construction and safe for concurrent use.
package objective

import (
	"context"
	"math"
	"time"

	"github.com/YuminosukeSato/gbloss/core/host"
	"github.com/YuminosukeSato/gbloss/core/parallel"
	"github.com/YuminosukeSato/gbloss/core/stability"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"github.com/YuminosukeSato/gbloss/pkg/log"
)

// Objective defines the interface for custom objective functions.
type Objective interface {
	// Gradient calculates the first derivative of the loss for a single sample.
	Gradient(prediction, label float64) float64

	// Hessian calculates the second derivative of the loss for a single sample.
	Hessian(prediction, label float64) float64

	// Loss calculates the loss for a single sample.
	Loss(prediction, label float64) float64

	// GradHess evaluates gradient and Hessian for every sample of preds against
	// the labels of data. preds is never modified.
	GradHess(preds []float64, data host.LabelSource) (grad, hess []float64, err error)

	// Name returns the name of the objective.
	Name() string
}

// derivatives is implemented by every objective in this package so that the
// shared vector loop evaluates each sample's transform once.
type derivatives interface {
	derivatives(prediction, label float64) (grad, hess float64)
	Name() string
}

type config struct {
	space      stability.Space
	convention host.Convention
	threshold  int
	logger     log.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		space:      stability.Margin,
		convention: host.LightGBM,
		threshold:  parallel.DefaultThreshold,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName(log.ComponentObjective)
	}
	return cfg
}

// Space returns the prediction space the objective expects.
func (c config) Space() stability.Space {
	return c.space
}

// Convention returns the host convention the objective was built for.
func (c config) Convention() host.Convention {
	return c.convention
}

// gradHess is the vector loop shared by all objectives.
func gradHess(o derivatives, cfg *config, preds []float64, data host.LabelSource) (grad, hess []float64, err error) {
	op := o.Name() + ".GradHess"
	defer errors.Recover(&err, op)

	labels, err := labelsFor(op, preds, data)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	grad = make([]float64, len(preds))
	hess = make([]float64, len(preds))
	parallel.ForEach(len(preds), cfg.threshold, func(i int) {
		grad[i], hess[i] = o.derivatives(preds[i], labels[i])
	})

	if cfg.logger.Enabled(context.Background(), log.LevelDebug) {
		cfg.logger.Debug("gradient computed",
			log.ObjectiveNameKey, o.Name(),
			log.OperationKey, log.OperationGradHess,
			log.SamplesKey, len(preds),
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return grad, hess, nil
}

func labelsFor(op string, preds []float64, data host.LabelSource) ([]float64, error) {
	if data == nil {
		return nil, errors.NewValueError(op, "nil label source")
	}
	labels := data.GetLabel()
	if len(labels) != len(preds) {
		return nil, errors.NewDimensionError(op, len(preds), len(labels), 0)
	}
	return labels, nil
}

func checkNonNegative(param string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 1) {
		return errors.NewValidationError(param, "must be a finite, non-negative number", v)
	}
	return nil
}
