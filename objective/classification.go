package objective

import (
	"math"

	"github.com/YuminosukeSato/gbloss/core/host"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"github.com/YuminosukeSato/gbloss/pkg/log"
)

// WeightedCrossEntropy implements binary cross-entropy with the positive class
// weighted by alpha:
//
//	L = -α·y·ln(p) - (1-y)·ln(1-p),  p = σ(margin)
//
// alpha > 1 penalizes false negatives more (higher recall), alpha < 1
// penalizes false positives more (higher precision).
type WeightedCrossEntropy struct {
	config
	alpha float64
}

// NewWeightedCrossEntropy creates a weighted cross-entropy objective.
// alpha must be non-negative and must not be 1, which is plain cross-entropy
// and should be configured through the host's built-in objective instead.
func NewWeightedCrossEntropy(alpha float64, opts ...Option) (*WeightedCrossEntropy, error) {
	if err := checkNonNegative("alpha", alpha); err != nil {
		return nil, err
	}
	if alpha == 1 {
		return nil, errors.NewValidationError("alpha",
			"alpha == 1 is unweighted cross entropy, use the host's built-in objective", alpha)
	}

	o := &WeightedCrossEntropy{config: newConfig(opts), alpha: alpha}
	o.logger.Debug("objective constructed",
		log.ObjectiveNameKey, o.Name(),
		log.OperationKey, log.OperationConstruct,
		log.AlphaKey, alpha,
		log.SpaceKey, o.space.String(),
	)
	return o, nil
}

// Alpha returns the positive-class weight.
func (o *WeightedCrossEntropy) Alpha() float64 { return o.alpha }

func (o *WeightedCrossEntropy) derivatives(prediction, label float64) (float64, float64) {
	p := o.space.Transform(prediction)
	w := (o.alpha-1)*label + 1
	return p*w - o.alpha*label, p * (1 - p) * w
}

// Gradient returns p·((α-1)y+1) - α·y.
func (o *WeightedCrossEntropy) Gradient(prediction, label float64) float64 {
	g, _ := o.derivatives(prediction, label)
	return g
}

// Hessian returns p(1-p)·((α-1)y+1).
func (o *WeightedCrossEntropy) Hessian(prediction, label float64) float64 {
	_, h := o.derivatives(prediction, label)
	return h
}

// Loss returns -α·y·ln(p) - (1-y)·ln(1-p).
func (o *WeightedCrossEntropy) Loss(prediction, label float64) float64 {
	p := o.space.Transform(prediction)
	return -o.alpha*label*math.Log(p) - (1-label)*math.Log(1-p)
}

// GradHess implements Objective.
func (o *WeightedCrossEntropy) GradHess(preds []float64, data host.LabelSource) ([]float64, []float64, error) {
	return gradHess(o, &o.config, preds, data)
}

func (o *WeightedCrossEntropy) Name() string {
	return "WeightedCrossEntropy"
}

// Focal implements alpha-weighted focal loss (Lin et al., 2017):
//
//	L = -α·y·(1-p)^γ·ln(p) - (1-y)·p^γ·ln(1-p),  p = σ(margin)
//
// Increasing gamma focuses training on hard, misclassified samples. With
// gamma = 0 it reduces to weighted cross-entropy, and with alpha = 1 as well
// to plain binary cross-entropy.
type Focal struct {
	config
	alpha float64
	gamma float64
}

// NewFocal creates a focal-loss objective. alpha and gamma must be non-negative.
func NewFocal(alpha, gamma float64, opts ...Option) (*Focal, error) {
	if err := checkNonNegative("alpha", alpha); err != nil {
		return nil, err
	}
	if err := checkNonNegative("gamma", gamma); err != nil {
		return nil, err
	}

	o := &Focal{config: newConfig(opts), alpha: alpha, gamma: gamma}
	o.logger.Debug("objective constructed",
		log.ObjectiveNameKey, o.Name(),
		log.OperationKey, log.OperationConstruct,
		log.AlphaKey, alpha,
		log.GammaKey, gamma,
		log.SpaceKey, o.space.String(),
	)
	return o, nil
}

// Alpha returns the positive-class weight.
func (o *Focal) Alpha() float64 { return o.alpha }

// Gamma returns the focusing parameter.
func (o *Focal) Gamma() float64 { return o.gamma }

// derivatives differentiates L with respect to the margin using dp/dx = p·q, q = 1-p.
// The positive term contributes α·y·q^γ·(γ·p·ln p - q); the negative term
// (1-y)·p^γ·(p - γ·q·ln q).
func (o *Focal) derivatives(prediction, label float64) (float64, float64) {
	a, g, y := o.alpha, o.gamma, label
	p := o.space.Transform(prediction)
	q := 1 - p
	lnp, lnq := math.Log(p), math.Log(q)
	pg, qg := math.Pow(p, g), math.Pow(q, g)

	pos := g*p*lnp - q
	neg := p - g*q*lnq

	grad := a*y*qg*pos + (1-y)*pg*neg
	hess := a*y*p*qg*(q*(g*lnp+g+1)-g*pos) +
		(1-y)*q*pg*(p*(g*lnq+g+1)+g*neg)
	return grad, hess
}

// Gradient returns dL/dmargin for a single sample.
func (o *Focal) Gradient(prediction, label float64) float64 {
	g, _ := o.derivatives(prediction, label)
	return g
}

// Hessian returns d²L/dmargin² for a single sample.
func (o *Focal) Hessian(prediction, label float64) float64 {
	_, h := o.derivatives(prediction, label)
	return h
}

// Loss returns the focal loss of a single sample.
func (o *Focal) Loss(prediction, label float64) float64 {
	p := o.space.Transform(prediction)
	q := 1 - p
	return -o.alpha*label*math.Pow(q, o.gamma)*math.Log(p) -
		(1-label)*math.Pow(p, o.gamma)*math.Log(q)
}

// GradHess implements Objective.
func (o *Focal) GradHess(preds []float64, data host.LabelSource) ([]float64, []float64, error) {
	return gradHess(o, &o.config, preds, data)
}

func (o *Focal) Name() string {
	return "Focal"
}
