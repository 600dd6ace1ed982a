package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/YuminosukeSato/gbloss/core/stability"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"github.com/YuminosukeSato/gbloss/pkg/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// F1Score はF1スコアを計算する
// yPred の値は最も近い整数（偶数丸め）に丸めてからラベルとして扱う
// 平均化の方法は WithAverage、二値の陽性ラベルは WithPosLabel で指定する
//
// 適合率と再現率の分母がともに0となるクラスのF1は0とし、UndefinedMetricWarning を発生させる
func F1Score(yTrue, yPred *mat.VecDense, opts ...Option) (float64, error) {
	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return 0, err
	}
	return f1Score("F1Score", vecData(yTrue), vecData(yPred), cfg.average, cfg.posLabel)
}

func f1Score(op string, yTrue, yPred []float64, average Average, posLabel float64) (float64, error) {
	if err := checkLengths(op, yTrue, yPred); err != nil {
		return 0, err
	}

	rounded := make([]float64, len(yPred))
	for i, p := range yPred {
		rounded[i] = math.RoundToEven(p)
	}
	if floats.HasNaN(yTrue) || floats.HasNaN(rounded) {
		return 0, errors.NewValueError(op, "input contains NaN")
	}

	classes := uniqueSorted(yTrue, rounded)
	idx := indexOf(classes)

	k := len(classes)
	tp := make([]float64, k)
	fp := make([]float64, k)
	fn := make([]float64, k)
	support := make([]float64, k)
	for i := range yTrue {
		t, p := idx[yTrue[i]], idx[rounded[i]]
		support[t]++
		if t == p {
			tp[t]++
		} else {
			fn[t]++
			fp[p]++
		}
	}

	switch average {
	case AverageBinary:
		if k > 2 {
			return 0, errors.NewValueError(op,
				fmt.Sprintf("target is multiclass (%d labels) but average is binary", k))
		}
		j, ok := idx[posLabel]
		if !ok {
			if k == 2 {
				return 0, errors.NewValueError(op,
					fmt.Sprintf("pos_label=%v is not a valid label, expected one of %v", posLabel, classes))
			}
			return fScoreOrWarn(0, 0, 0), nil
		}
		return fScoreOrWarn(tp[j], fp[j], fn[j]), nil

	case AverageMicro:
		return fScoreOrWarn(floats.Sum(tp), floats.Sum(fp), floats.Sum(fn)), nil

	case AverageMacro, AverageWeighted:
		scores := make([]float64, k)
		illDefined := false
		for c := range classes {
			var undefined bool
			scores[c], undefined = fScore(tp[c], fp[c], fn[c])
			illDefined = illDefined || undefined
		}
		if illDefined {
			warnUndefinedF()
		}
		if average == AverageMacro {
			return floats.Sum(scores) / float64(k), nil
		}
		return floats.Dot(scores, support) / floats.Sum(support), nil

	default:
		return 0, errors.NewValidationError("average", "unknown averaging mode", int(average))
	}
}

// fScore は 2TP / (2TP + FP + FN) を返す。分母が0の場合は (0, true)
func fScore(tp, fp, fn float64) (float64, bool) {
	denom := 2*tp + fp + fn
	if denom == 0 {
		return 0, true
	}
	return 2 * tp / denom, false
}

func fScoreOrWarn(tp, fp, fn float64) float64 {
	f, undefined := fScore(tp, fp, fn)
	if undefined {
		warnUndefinedF()
	}
	return f
}

func warnUndefinedF() {
	errors.Warn(errors.NewUndefinedMetricWarning("F-score", "no true nor predicted samples", 0))
}

// uniqueSorted は全スライスに現れる値を重複なしで昇順に返す
func uniqueSorted(xs ...[]float64) []float64 {
	seen := make(map[float64]struct{})
	var out []float64
	for _, x := range xs {
		for _, v := range x {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	sort.Float64s(out)
	return out
}

func indexOf(classes []float64) map[float64]int {
	idx := make(map[float64]int, len(classes))
	for i, c := range classes {
		idx[c] = i
	}
	return idx
}

// F1Metric reports the F1 score of rounded predictions. Higher is better.
type F1Metric struct {
	base
}

// NewF1Metric creates a metric named "F1". Averaging follows WithAverage and
// WithPosLabel. When WithSpace is given, predictions are mapped to
// probabilities before rounding; otherwise they are rounded as delivered.
func NewF1Metric(opts ...Option) (*F1Metric, error) {
	b, err := newBase("F1", true, opts)
	if err != nil {
		return nil, err
	}

	m := &F1Metric{base: b}
	m.score = func(op string, preds, labels []float64) (float64, error) {
		if m.spaceSet {
			preds = stability.Stabilize(preds, m.space)
		}
		return f1Score(op, labels, preds, m.average, m.posLabel)
	}
	m.logConstructed(log.AverageKey, m.average.String())
	return m, nil
}

// Average returns the configured averaging mode.
func (m *F1Metric) Average() Average { return m.average }
