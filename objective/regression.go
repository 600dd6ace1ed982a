package objective

import (
	"math"

	"github.com/YuminosukeSato/gbloss/core/host"
	"github.com/YuminosukeSato/gbloss/core/stability"
	"github.com/YuminosukeSato/gbloss/pkg/log"
)

// LogCosh implements log-cosh loss, a smooth alternative to absolute error:
//
//	L = ln(cosh(p - y))
type LogCosh struct {
	config
}

// NewLogCosh creates a log-cosh objective.
func NewLogCosh(opts ...Option) (*LogCosh, error) {
	o := &LogCosh{config: newConfig(opts)}
	o.logger.Debug("objective constructed",
		log.ObjectiveNameKey, o.Name(),
		log.OperationKey, log.OperationConstruct,
	)
	return o, nil
}

func (o *LogCosh) derivatives(prediction, label float64) (float64, float64) {
	d := prediction - label
	c := math.Cosh(d)
	return math.Tanh(d), 1 / (c * c)
}

// Gradient returns tanh(p - y).
func (o *LogCosh) Gradient(prediction, label float64) float64 {
	return math.Tanh(prediction - label)
}

// Hessian returns 1/cosh²(p - y).
func (o *LogCosh) Hessian(prediction, label float64) float64 {
	_, h := o.derivatives(prediction, label)
	return h
}

// Loss returns ln(cosh(p - y)), evaluated without overflowing cosh.
func (o *LogCosh) Loss(prediction, label float64) float64 {
	return stability.LogCosh(prediction - label)
}

// GradHess implements Objective.
func (o *LogCosh) GradHess(preds []float64, data host.LabelSource) ([]float64, []float64, error) {
	return gradHess(o, &o.config, preds, data)
}

func (o *LogCosh) Name() string {
	return "LogCosh"
}

// SquaredLogError implements squared log error:
//
//	L = ½·(ln(1+p) - ln(1+y))²
//
// Labels must be greater than -1. Predictions at or below -1 are raised to
// -1+stability.LogEpsilon before evaluation.
type SquaredLogError struct {
	config
}

// NewSquaredLogError creates a squared-log-error objective.
func NewSquaredLogError(opts ...Option) (*SquaredLogError, error) {
	o := &SquaredLogError{config: newConfig(opts)}
	o.logger.Debug("objective constructed",
		log.ObjectiveNameKey, o.Name(),
		log.OperationKey, log.OperationConstruct,
	)
	return o, nil
}

func (o *SquaredLogError) derivatives(prediction, label float64) (float64, float64) {
	p := stability.ClipLogPrediction(prediction)
	diff := math.Log1p(p) - math.Log1p(label)
	return diff / (p + 1), (1 - diff) / ((p + 1) * (p + 1))
}

// Gradient returns (ln(1+p) - ln(1+y)) / (p+1).
func (o *SquaredLogError) Gradient(prediction, label float64) float64 {
	g, _ := o.derivatives(prediction, label)
	return g
}

// Hessian returns (ln(1+y) - ln(1+p) + 1) / (p+1)².
func (o *SquaredLogError) Hessian(prediction, label float64) float64 {
	_, h := o.derivatives(prediction, label)
	return h
}

// Loss returns ½·(ln(1+p) - ln(1+y))².
func (o *SquaredLogError) Loss(prediction, label float64) float64 {
	diff := math.Log1p(stability.ClipLogPrediction(prediction)) - math.Log1p(label)
	return 0.5 * diff * diff
}

// GradHess implements Objective.
func (o *SquaredLogError) GradHess(preds []float64, data host.LabelSource) ([]float64, []float64, error) {
	return gradHess(o, &o.config, preds, data)
}

func (o *SquaredLogError) Name() string {
	return "SquaredLogError"
}

// SquaredPercentageError implements squared percentage error, the per-sample
// term of RMSPE:
//
//	L = ((y - p) / y)²
//
// A zero label divides by zero; the resulting Inf/NaN is passed to the host.
type SquaredPercentageError struct {
	config
}

// NewSquaredPercentageError creates a squared-percentage-error objective.
func NewSquaredPercentageError(opts ...Option) (*SquaredPercentageError, error) {
	o := &SquaredPercentageError{config: newConfig(opts)}
	o.logger.Debug("objective constructed",
		log.ObjectiveNameKey, o.Name(),
		log.OperationKey, log.OperationConstruct,
	)
	return o, nil
}

func (o *SquaredPercentageError) derivatives(prediction, label float64) (float64, float64) {
	y2 := label * label
	return -2 * (label - prediction) / y2, 2 / y2
}

// Gradient returns -2(y-p)/y².
func (o *SquaredPercentageError) Gradient(prediction, label float64) float64 {
	g, _ := o.derivatives(prediction, label)
	return g
}

// Hessian returns 2/y².
func (o *SquaredPercentageError) Hessian(prediction, label float64) float64 {
	return 2 / (label * label)
}

// Loss returns ((y-p)/y)².
func (o *SquaredPercentageError) Loss(prediction, label float64) float64 {
	r := (label - prediction) / label
	return r * r
}

// GradHess implements Objective.
func (o *SquaredPercentageError) GradHess(preds []float64, data host.LabelSource) ([]float64, []float64, error) {
	return gradHess(o, &o.config, preds, data)
}

func (o *SquaredPercentageError) Name() string {
	return "SquaredPercentageError"
}
