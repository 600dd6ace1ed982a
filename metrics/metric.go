// Package metrics implements evaluation metrics for gradient-boosting hosts.
//
// Two layers are provided. Scoring functions such as RMSPE or
// QuadraticWeightedKappa take gonum vectors and return a plain score.
// Metric objects wrap the same computations behind the callback shape a host
// invokes once per boosting round, reporting either
//
//	(name, score, higherIsBetter)   LightGBM
//	(name, score)                   XGBoost
//
// depending on the convention selected at construction.
package metrics

import (
	"context"
	"time"

	"github.com/YuminosukeSato/gbloss/core/host"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"github.com/YuminosukeSato/gbloss/pkg/log"
)

// Metric is a host-facing evaluation metric.
type Metric interface {
	// Eval scores preds against the labels of data. preds is never modified.
	Eval(preds []float64, data host.LabelSource) (Result, error)

	// Name returns the name reported to the host, hyperparameters included.
	Name() string

	// HigherIsBetter reports the optimization direction of the score.
	HigherIsBetter() bool
}

// Result is the outcome of one metric evaluation.
type Result struct {
	Name           string
	Score          float64
	HigherIsBetter bool
	Convention     host.Convention
}

// Pair returns the XGBoost-style (name, score) tuple.
func (r Result) Pair() (string, float64) {
	return r.Name, r.Score
}

// Triple returns the LightGBM-style (name, score, higherIsBetter) tuple.
func (r Result) Triple() (string, float64, bool) {
	return r.Name, r.Score, r.HigherIsBetter
}

// HasDirection reports whether the result's convention carries the
// higher-is-better flag to the host.
func (r Result) HasDirection() bool {
	return r.Convention.ReportsDirection()
}

// ThreeTupleFunc is the LightGBM feval callback shape.
type ThreeTupleFunc func(preds []float64, data host.LabelSource) (string, float64, bool, error)

// TwoTupleFunc is the XGBoost custom_metric callback shape.
type TwoTupleFunc func(preds []float64, data host.LabelSource) (string, float64, error)

// ThreeTuple adapts m to the LightGBM callback shape.
func ThreeTuple(m Metric) ThreeTupleFunc {
	return func(preds []float64, data host.LabelSource) (string, float64, bool, error) {
		r, err := m.Eval(preds, data)
		if err != nil {
			return "", 0, false, err
		}
		name, score, higher := r.Triple()
		return name, score, higher, nil
	}
}

// TwoTuple adapts m to the XGBoost callback shape.
func TwoTuple(m Metric) TwoTupleFunc {
	return func(preds []float64, data host.LabelSource) (string, float64, error) {
		r, err := m.Eval(preds, data)
		if err != nil {
			return "", 0, err
		}
		name, score := r.Pair()
		return name, score, nil
	}
}

// Callback returns the callback shape matching m's configured convention:
// a ThreeTupleFunc for LightGBM, a TwoTupleFunc for XGBoost.
func Callback(m Metric) interface{} {
	if c, ok := m.(interface{ Convention() host.Convention }); ok && c.Convention() == host.XGBoost {
		return TwoTuple(m)
	}
	return ThreeTuple(m)
}

// base carries what every metric shares: its configuration, reported name,
// direction and scoring routine.
type base struct {
	config
	name   string
	higher bool
	score  func(op string, preds, labels []float64) (float64, error)
}

func newBase(name string, higher bool, opts []Option) (base, error) {
	b := base{config: newConfig(opts), name: name, higher: higher}
	if err := b.validate(); err != nil {
		return base{}, err
	}
	return b, nil
}

func (m *base) Name() string {
	return m.name
}

func (m *base) HigherIsBetter() bool {
	return m.higher
}

// Eval implements Metric.
func (m *base) Eval(preds []float64, data host.LabelSource) (res Result, err error) {
	op := m.name + ".Eval"
	defer errors.Recover(&err, op)

	if data == nil {
		return Result{}, errors.NewValueError(op, "nil label source")
	}

	start := time.Now()
	score, err := m.score(op, preds, data.GetLabel())
	if err != nil {
		return Result{}, err
	}

	if m.logger.Enabled(context.Background(), log.LevelDebug) {
		m.logger.Debug("metric evaluated",
			log.MetricNameKey, m.name,
			log.OperationKey, log.OperationEval,
			log.ConventionKey, m.convention.String(),
			log.SamplesKey, len(preds),
			log.ScoreKey, score,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return Result{Name: m.name, Score: score, HigherIsBetter: m.higher, Convention: m.convention}, nil
}

func (m *base) logConstructed(fields ...any) {
	kv := append([]any{
		log.MetricNameKey, m.name,
		log.OperationKey, log.OperationConstruct,
		log.ConventionKey, m.convention.String(),
		log.HigherIsBetterKey, m.higher,
	}, fields...)
	m.logger.Debug("metric constructed", kv...)
}
