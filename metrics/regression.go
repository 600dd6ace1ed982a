package metrics

import (
	"math"

	"github.com/YuminosukeSato/gbloss/core/host"
	"github.com/YuminosukeSato/gbloss/core/parallel"
	"github.com/YuminosukeSato/gbloss/core/stability"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// LogCoshError は対数双曲線余弦誤差の平均を計算する
//
//	(1/n) * Σ ln(cosh(yPred - yTrue))
func LogCoshError(yTrue, yPred *mat.VecDense) (float64, error) {
	return meanLoss("LogCoshError", vecData(yTrue), vecData(yPred), parallel.DefaultThreshold, logCoshLoss)
}

// RMSPE は平方根平均二乗パーセンテージ誤差を計算する
//
//	sqrt((1/n) * Σ((yTrue - yPred) / yTrue)²)
//
// yTrue に 0 が含まれる場合は Inf/NaN がそのまま返る
func RMSPE(yTrue, yPred *mat.VecDense) (float64, error) {
	return rootMeanLoss("RMSPE", vecData(yTrue), vecData(yPred), parallel.DefaultThreshold, squaredPercentageLoss)
}

// RMSLE は平方根平均二乗対数誤差を計算する
//
//	sqrt((1/n) * Σ(ln(1+yPred) - ln(1+yTrue))²)
//
// yPred は -1 を下回らないよう stability.ClipLogPrediction で補正される
func RMSLE(yTrue, yPred *mat.VecDense) (float64, error) {
	return rootMeanLoss("RMSLE", vecData(yTrue), vecData(yPred), parallel.DefaultThreshold, squaredLogLoss)
}

func logCoshLoss(p, y float64) float64 {
	return stability.LogCosh(p - y)
}

func squaredPercentageLoss(p, y float64) float64 {
	r := (y - p) / y
	return r * r
}

func squaredLogLoss(p, y float64) float64 {
	d := math.Log1p(stability.ClipLogPrediction(p)) - math.Log1p(y)
	return d * d
}

// checkLengths は入力ベクトルの検証を行う
func checkLengths(op string, yTrue, yPred []float64) error {
	n := len(yTrue)
	if n == 0 {
		return errors.NewValueError(op, "empty vector")
	}
	if len(yPred) != n {
		return errors.NewDimensionError(op, n, len(yPred), 0)
	}
	return nil
}

// meanLoss は要素ごとの損失 fn(p, y) の平均を計算する
// threshold を超える長さでは要素ごとの計算を並列化する
func meanLoss(op string, yTrue, yPred []float64, threshold int, fn func(p, y float64) float64) (float64, error) {
	if err := checkLengths(op, yTrue, yPred); err != nil {
		return 0, err
	}

	elements := make([]float64, len(yTrue))
	parallel.ForEach(len(elements), threshold, func(i int) {
		elements[i] = fn(yPred[i], yTrue[i])
	})

	return stat.Mean(elements, nil), nil
}

// rootMeanLoss は meanLoss の平方根を返す
func rootMeanLoss(op string, yTrue, yPred []float64, threshold int, fn func(p, y float64) float64) (float64, error) {
	m, err := meanLoss(op, yTrue, yPred, threshold, fn)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(m), nil
}

// vecData はベクトルの要素を新しいスライスにコピーする
func vecData(v *mat.VecDense) []float64 {
	return host.VecLabels{Vec: v}.GetLabel()
}

// LogCoshMetric reports the mean log-cosh error. Lower is better.
type LogCoshMetric struct {
	base
}

// NewLogCoshMetric creates a log-cosh metric named "LogCosh".
func NewLogCoshMetric(opts ...Option) (*LogCoshMetric, error) {
	b, err := newBase("LogCosh", false, opts)
	if err != nil {
		return nil, err
	}
	m := &LogCoshMetric{base: b}
	m.score = func(op string, preds, labels []float64) (float64, error) {
		return meanLoss(op, labels, preds, m.threshold, logCoshLoss)
	}
	m.logConstructed()
	return m, nil
}

// RMSPEMetric reports the root mean squared percentage error. Lower is better.
type RMSPEMetric struct {
	base
}

// NewRMSPEMetric creates an RMSPE metric named "RMSPE".
func NewRMSPEMetric(opts ...Option) (*RMSPEMetric, error) {
	b, err := newBase("RMSPE", false, opts)
	if err != nil {
		return nil, err
	}
	m := &RMSPEMetric{base: b}
	m.score = func(op string, preds, labels []float64) (float64, error) {
		return rootMeanLoss(op, labels, preds, m.threshold, squaredPercentageLoss)
	}
	m.logConstructed()
	return m, nil
}

// RMSLEMetric reports the root mean squared log error, the monitoring
// counterpart of the squared-log-error objective. Lower is better.
type RMSLEMetric struct {
	base
}

// NewRMSLEMetric creates an RMSLE metric named "RMSLE".
func NewRMSLEMetric(opts ...Option) (*RMSLEMetric, error) {
	b, err := newBase("RMSLE", false, opts)
	if err != nil {
		return nil, err
	}
	m := &RMSLEMetric{base: b}
	m.score = func(op string, preds, labels []float64) (float64, error) {
		return rootMeanLoss(op, labels, preds, m.threshold, squaredLogLoss)
	}
	m.logConstructed()
	return m, nil
}
