// Package host defines the narrow contract between gbloss and a boosting
// framework: where labels come from and which output shape metrics report.
package host

import (
	"gonum.org/v1/gonum/mat"
)

// LabelSource is the only capability gbloss needs from a host dataset.
// GetLabel returns labels aligned 1:1 by index with the prediction vector.
// Implementations must not expect the returned slice to be mutated.
type LabelSource interface {
	GetLabel() []float64
}

// Labels adapts a plain slice to LabelSource.
type Labels []float64

// GetLabel implements LabelSource.
func (l Labels) GetLabel() []float64 {
	return l
}

// VecLabels adapts a gonum vector to LabelSource.
type VecLabels struct {
	Vec *mat.VecDense
}

// GetLabel implements LabelSource. A nil or empty vector yields no labels.
func (v VecLabels) GetLabel() []float64 {
	if v.Vec == nil || v.Vec.Len() == 0 {
		return nil
	}
	return mat.Col(nil, 0, v.Vec)
}

// LabelFunc adapts a function to LabelSource.
type LabelFunc func() []float64

// GetLabel implements LabelSource.
func (f LabelFunc) GetLabel() []float64 {
	return f()
}

// Convention selects the calling convention a host expects from metrics.
type Convention int

const (
	// LightGBM hosts expect (name, score, higherIsBetter).
	LightGBM Convention = iota
	// XGBoost hosts expect (name, score); direction is configured out of band
	// (e.g. maximize=false in xgboost.train).
	XGBoost
)

// ReportsDirection reports whether metrics under this convention return the
// higher-is-better flag.
func (c Convention) ReportsDirection() bool {
	return c == LightGBM
}

func (c Convention) String() string {
	switch c {
	case LightGBM:
		return "lightgbm"
	case XGBoost:
		return "xgboost"
	default:
		return "unknown"
	}
}

// ConventionFor maps the boolean flag used by host bindings ("xgboost": true)
// to a Convention.
func ConventionFor(xgboost bool) Convention {
	if xgboost {
		return XGBoost
	}
	return LightGBM
}
