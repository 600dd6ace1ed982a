package metrics

import (
	"context"
	"math"

	"github.com/YuminosukeSato/gbloss/core/host"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"github.com/YuminosukeSato/gbloss/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// QuadraticWeightedKappa は二次重み付きカッパ係数（Cohen's kappa, quadratic weights）を計算する
//
// クラスは yTrue と yPred に現れる値の和集合を昇順に並べたもの。
// 重みはクラスの順位 i, j に対して (i-j)²。
// 期待一致度が0となる場合（全サンプルが同一クラス）は NaN を返し、UndefinedMetricWarning を発生させる
func QuadraticWeightedKappa(yTrue, yPred *mat.VecDense) (float64, error) {
	return quadraticWeightedKappa("QuadraticWeightedKappa", vecData(yTrue), vecData(yPred))
}

func quadraticWeightedKappa(op string, yTrue, yPred []float64) (float64, error) {
	if err := checkLengths(op, yTrue, yPred); err != nil {
		return 0, err
	}
	if floats.HasNaN(yTrue) || floats.HasNaN(yPred) {
		return 0, errors.NewValueError(op, "input contains NaN")
	}

	classes := uniqueSorted(yTrue, yPred)
	idx := indexOf(classes)
	k := len(classes)

	// 混同行列: 行が正解、列が予測
	confusion := mat.NewDense(k, k, nil)
	for i := range yTrue {
		r, c := idx[yTrue[i]], idx[yPred[i]]
		confusion.Set(r, c, confusion.At(r, c)+1)
	}

	trueCounts := mat.NewVecDense(k, nil)
	predCounts := mat.NewVecDense(k, nil)
	row := make([]float64, k)
	col := make([]float64, k)
	for c := 0; c < k; c++ {
		trueCounts.SetVec(c, floats.Sum(mat.Row(row, c, confusion)))
		predCounts.SetVec(c, floats.Sum(mat.Col(col, c, confusion)))
	}

	// 周辺分布から求めた期待混同行列
	var expected mat.Dense
	expected.Outer(1/float64(len(yTrue)), predCounts, trueCounts)

	weights := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			d := float64(i - j)
			weights.Set(i, j, d*d)
		}
	}

	var observed, chance mat.Dense
	observed.MulElem(weights, confusion)
	chance.MulElem(weights, &expected)

	denom := mat.Sum(&chance)
	if denom == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("QWK", "no disagreement expected by chance", math.NaN()))
		return math.NaN(), nil
	}
	return 1 - mat.Sum(&observed)/denom, nil
}

// ReshapeScores は長さ n*k の平坦なスコア列を n×k 行列（行がサンプル、列がクラス）に並べ替える
//
// host.LightGBM はクラス優先（クラス c のスコアが連続）で渡すため k×n に並べて転置する。
// host.XGBoost はサンプル優先なのでそのまま n×k に並べる。
// preds はコピーされ、変更されない
func ReshapeScores(preds []float64, n, k int, convention host.Convention) (*mat.Dense, error) {
	if n <= 0 || k <= 0 {
		return nil, errors.NewValueError("ReshapeScores", "number of samples and classes must be positive")
	}
	if len(preds) != n*k {
		return nil, errors.NewDimensionError("ReshapeScores", n*k, len(preds), 1)
	}

	data := append([]float64(nil), preds...)
	if convention == host.XGBoost {
		return mat.NewDense(n, k, data), nil
	}

	var scores mat.Dense
	scores.CloneFrom(mat.NewDense(k, n, data).T())
	return &scores, nil
}

// ArgmaxRows は各行で最大値を持つ列番号を返す。同値の場合は最初の列
// scores は少なくとも1行を持つ必要がある
func ArgmaxRows(scores mat.Matrix) *mat.VecDense {
	r, c := scores.Dims()
	out := mat.NewVecDense(r, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		out.SetVec(i, float64(floats.MaxIdx(mat.Row(row, i, scores))))
	}
	return out
}

// QuadraticWeightedKappaMetric reports Cohen's kappa with quadratic weights
// between labels and the argmax class of multiclass scores. Higher is better.
type QuadraticWeightedKappaMetric struct {
	base
}

// NewQuadraticWeightedKappaMetric creates a metric named "QWK".
//
// Each evaluation accepts either n*k class scores, laid out per the configured
// convention, or n already-predicted labels. k is WithNumClass when set and
// the number of distinct labels otherwise.
func NewQuadraticWeightedKappaMetric(opts ...Option) (*QuadraticWeightedKappaMetric, error) {
	b, err := newBase("QWK", true, opts)
	if err != nil {
		return nil, err
	}

	m := &QuadraticWeightedKappaMetric{base: b}
	m.score = m.kappa
	m.logConstructed(log.NumClassKey, m.numClass)
	return m, nil
}

// NumClass returns the configured number of classes, 0 when inferred from labels.
func (m *QuadraticWeightedKappaMetric) NumClass() int { return m.numClass }

func (m *QuadraticWeightedKappaMetric) kappa(op string, preds, labels []float64) (float64, error) {
	n := len(labels)
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if floats.HasNaN(labels) {
		return 0, errors.NewValueError(op, "labels contain NaN")
	}

	k := m.numClass
	if k == 0 {
		k = len(uniqueSorted(labels))
	}

	var predicted []float64
	switch len(preds) {
	case n * k:
		scores, err := ReshapeScores(preds, n, k, m.convention)
		if err != nil {
			return 0, err
		}
		predicted = vecData(ArgmaxRows(scores))
	case n:
		predicted = preds
	default:
		return 0, errors.NewDimensionError(op, n*k, len(preds), 1)
	}

	if m.logger.Enabled(context.Background(), log.LevelDebug) {
		m.logger.Debug("class scores resolved",
			log.MetricNameKey, m.name,
			log.SamplesKey, n,
			log.ClassesKey, k,
		)
	}
	return quadraticWeightedKappa(op, labels, predicted)
}
