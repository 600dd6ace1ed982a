// Package stability converts raw boosting scores into bounded probabilities
// that are safe to feed into logarithms and powers.
//
// Every classification objective and metric routes its predictions through this
// package before evaluating ln(p), ln(1-p), p^γ or (1-p)^γ. Probabilities are
// clamped into [Epsilon, 1-Epsilon] so those terms stay finite and gradients do
// not explode near saturation.
package stability

import (
	"math"
	"strings"

	"github.com/YuminosukeSato/gbloss/pkg/errors"
)

// Epsilon is the distance kept between a stabilized probability and 0 or 1.
const Epsilon = 1e-15

// LogEpsilon is the distance kept between a prediction fed to ln(1+p) and -1.
const LogEpsilon = 1e-6

// Space identifies how a host delivers predictions.
type Space int

const (
	// Margin predictions are raw, unbounded scores and go through the logistic transform.
	Margin Space = iota
	// Probability predictions are already in [0, 1] and are only clipped.
	Probability
)

func (s Space) String() string {
	switch s {
	case Margin:
		return "margin"
	case Probability:
		return "probability"
	default:
		return "unknown"
	}
}

// ParseSpace maps "margin" (or "raw") and "probability" (or "proba", "prob")
// to a Space. Matching ignores case and surrounding spaces.
func ParseSpace(s string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "margin", "raw":
		return Margin, nil
	case "probability", "proba", "prob":
		return Probability, nil
	default:
		return Margin, errors.NewValidationError("space", "must be \"margin\" or \"probability\"", s)
	}
}

// Transform maps a single prediction from space s to a clamped probability.
func (s Space) Transform(x float64) float64 {
	if s == Probability {
		return Clip(x)
	}
	return Sigmoid(x)
}

// Sigmoid returns 1/(1+exp(-x)) clamped into [Epsilon, 1-Epsilon].
// NaN propagates.
func Sigmoid(x float64) float64 {
	return Clip(1 / (1 + math.Exp(-x)))
}

// Clip clamps a probability into [Epsilon, 1-Epsilon].
func Clip(p float64) float64 {
	return errors.ClipValue(p, Epsilon, 1-Epsilon)
}

// ClipSigmoid applies Sigmoid elementwise. The input is left untouched.
func ClipSigmoid(x []float64) []float64 {
	return Stabilize(x, Margin)
}

// ClipProba applies Clip elementwise. The input is left untouched.
func ClipProba(p []float64) []float64 {
	return Stabilize(p, Probability)
}

// Stabilize maps predictions delivered in space s to clamped probabilities,
// returning a new slice.
func Stabilize(x []float64, s Space) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = s.Transform(v)
	}
	return out
}

// ClipLogPrediction raises p to -1+LogEpsilon when p ≤ -1+LogEpsilon so that
// ln(1+p) stays finite. NaN propagates.
func ClipLogPrediction(p float64) float64 {
	if p <= -1+LogEpsilon {
		return -1 + LogEpsilon
	}
	return p
}

// LogCosh computes ln(cosh(d)) as |d| + ln(1 + e^{-2|d|}) - ln 2, which stays
// finite where cosh(d) overflows.
func LogCosh(d float64) float64 {
	a := math.Abs(d)
	return a + math.Log1p(math.Exp(-2*a)) - math.Ln2
}
