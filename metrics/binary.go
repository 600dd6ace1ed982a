package metrics

import (
	"math"

	"github.com/YuminosukeSato/gbloss/core/parallel"
	"github.com/YuminosukeSato/gbloss/core/stability"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"github.com/YuminosukeSato/gbloss/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// WeightedCrossEntropy は重み付き交差エントロピーの平均を計算する
//
//	(1/n) * Σ(-α·y·ln(p) - (1-y)·ln(1-p)),  p = σ(yScore)
//
// yScore は生のマージン（シグモイド変換前のスコア）
func WeightedCrossEntropy(yTrue, yScore *mat.VecDense, alpha float64) (float64, error) {
	if err := checkParam("alpha", alpha); err != nil {
		return 0, err
	}
	return meanLoss("WeightedCrossEntropy", vecData(yTrue), vecData(yScore),
		parallel.DefaultThreshold, wceLoss(alpha, stability.Margin))
}

// FocalLoss は α 重み付き Focal Loss の平均を計算する
//
//	(1/n) * Σ(-α·y·(1-p)^γ·ln(p) - (1-y)·p^γ·ln(1-p)),  p = σ(yScore)
func FocalLoss(yTrue, yScore *mat.VecDense, alpha, gamma float64) (float64, error) {
	if err := checkParam("alpha", alpha); err != nil {
		return 0, err
	}
	if err := checkParam("gamma", gamma); err != nil {
		return 0, err
	}
	return meanLoss("FocalLoss", vecData(yTrue), vecData(yScore),
		parallel.DefaultThreshold, focalLoss(alpha, gamma, stability.Margin))
}

func wceLoss(alpha float64, space stability.Space) func(x, y float64) float64 {
	return func(x, y float64) float64 {
		p := space.Transform(x)
		return -alpha*y*math.Log(p) - (1-y)*math.Log(1-p)
	}
}

func focalLoss(alpha, gamma float64, space stability.Space) func(x, y float64) float64 {
	return func(x, y float64) float64 {
		p := space.Transform(x)
		q := 1 - p
		return -alpha*y*math.Log(p)*math.Pow(q, gamma) - (1-y)*math.Log(q)*math.Pow(p, gamma)
	}
}

func checkParam(param string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 1) {
		return errors.NewValidationError(param, "must be a finite, non-negative number", v)
	}
	return nil
}

// WeightedCrossEntropyMetric reports the mean weighted cross-entropy of
// stabilized predictions. Lower is better.
type WeightedCrossEntropyMetric struct {
	base
	alpha float64
}

// NewWeightedCrossEntropyMetric creates a metric named "WCE_alpha{alpha}".
// Unlike the objective, alpha == 1 is accepted so the unweighted loss can be
// monitored.
func NewWeightedCrossEntropyMetric(alpha float64, opts ...Option) (*WeightedCrossEntropyMetric, error) {
	if err := checkParam("alpha", alpha); err != nil {
		return nil, err
	}
	b, err := newBase(wceName(alpha), false, opts)
	if err != nil {
		return nil, err
	}

	m := &WeightedCrossEntropyMetric{base: b, alpha: alpha}
	loss := wceLoss(alpha, m.space)
	m.score = func(op string, preds, labels []float64) (float64, error) {
		return meanLoss(op, labels, preds, m.threshold, loss)
	}
	m.logConstructed(log.AlphaKey, alpha, log.SpaceKey, m.space.String())
	return m, nil
}

// Alpha returns the positive-class weight.
func (m *WeightedCrossEntropyMetric) Alpha() float64 { return m.alpha }

// FocalMetric reports the mean alpha-weighted focal loss of stabilized
// predictions. Lower is better.
type FocalMetric struct {
	base
	alpha float64
	gamma float64
}

// NewFocalMetric creates a metric named "Focal_alpha{alpha}_gamma{gamma}".
func NewFocalMetric(alpha, gamma float64, opts ...Option) (*FocalMetric, error) {
	if err := checkParam("alpha", alpha); err != nil {
		return nil, err
	}
	if err := checkParam("gamma", gamma); err != nil {
		return nil, err
	}
	b, err := newBase(focalName(alpha, gamma), false, opts)
	if err != nil {
		return nil, err
	}

	m := &FocalMetric{base: b, alpha: alpha, gamma: gamma}
	loss := focalLoss(alpha, gamma, m.space)
	m.score = func(op string, preds, labels []float64) (float64, error) {
		return meanLoss(op, labels, preds, m.threshold, loss)
	}
	m.logConstructed(log.AlphaKey, alpha, log.GammaKey, gamma, log.SpaceKey, m.space.String())
	return m, nil
}

// Alpha returns the positive-class weight.
func (m *FocalMetric) Alpha() float64 { return m.alpha }

// Gamma returns the focusing parameter.
func (m *FocalMetric) Gamma() float64 { return m.gamma }
