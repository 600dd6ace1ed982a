package metrics

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/gbloss/core/host"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestQuadraticWeightedKappa(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect agreement",
			yTrue: []float64{0, 1, 2, 3},
			yPred: []float64{0, 1, 2, 3},
			want:  1,
		},
		{
			name:  "partial agreement",
			yTrue: []float64{0, 1, 2, 2},
			yPred: []float64{0, 2, 2, 1},
			want:  7.0 / 11.0,
		},
		{
			name:  "missing class in labels",
			yTrue: []float64{0, 1, 2, 3, 0, 1},
			yPred: []float64{0, 1, 3, 3, 1, 1},
			want:  13.0 / 15.0,
		},
		{
			name:  "reversed ordering",
			yTrue: []float64{1, 2, 3},
			yPred: []float64{3, 2, 1},
			want:  -1,
		},
		{
			name:  "chance agreement",
			yTrue: []float64{0, 0, 1, 1},
			yPred: []float64{0, 1, 0, 1},
			want:  0,
		},
		{
			name:    "dimension mismatch",
			yTrue:   []float64{0, 1},
			yPred:   []float64{0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuadraticWeightedKappa(
				mat.NewVecDense(len(tt.yTrue), tt.yTrue),
				mat.NewVecDense(len(tt.yPred), tt.yPred),
			)

			if (err != nil) != tt.wantErr {
				t.Errorf("QuadraticWeightedKappa() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("QuadraticWeightedKappa() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuadraticWeightedKappaSingleClass(t *testing.T) {
	warnings := captureWarnings(t)

	got, err := QuadraticWeightedKappa(mat.NewVecDense(3, []float64{2, 2, 2}), mat.NewVecDense(3, []float64{2, 2, 2}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))

	ws := warnings()
	require.Len(t, ws, 1)
	var undefined *errors.UndefinedMetricWarning
	assert.True(t, errors.As(ws[0], &undefined))
}

// scores is a 3-sample, 2-class score matrix whose argmax is {1, 0, 1}.
var scores = mat.NewDense(3, 2, []float64{
	0.1, 0.9,
	0.8, 0.2,
	0.3, 0.7,
})

func TestReshapeScores(t *testing.T) {
	classMajor := []float64{0.1, 0.8, 0.3, 0.9, 0.2, 0.7}
	sampleMajor := []float64{0.1, 0.9, 0.8, 0.2, 0.3, 0.7}

	got, err := ReshapeScores(classMajor, 3, 2, host.LightGBM)
	require.NoError(t, err)
	assert.True(t, mat.Equal(scores, got), "class-major layout must recover the score matrix")

	got, err = ReshapeScores(sampleMajor, 3, 2, host.XGBoost)
	require.NoError(t, err)
	assert.True(t, mat.Equal(scores, got), "sample-major layout must recover the score matrix")

	// The result does not alias the input.
	got.Set(0, 0, 42)
	assert.Equal(t, 0.1, sampleMajor[0])

	_, err = ReshapeScores(classMajor, 4, 2, host.LightGBM)
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 1, dimErr.Axis)

	_, err = ReshapeScores(nil, 0, 2, host.LightGBM)
	assert.Error(t, err)
}

func TestArgmaxRows(t *testing.T) {
	got := ArgmaxRows(scores)
	assert.Equal(t, []float64{1, 0, 1}, got.RawVector().Data)

	ties := mat.NewDense(2, 3, []float64{
		0.5, 0.5, 0.1,
		0.2, 0.4, 0.4,
	})
	assert.Equal(t, []float64{0, 1}, ArgmaxRows(ties).RawVector().Data)
}

func TestQuadraticWeightedKappaMetric(t *testing.T) {
	labels := host.Labels{1, 0, 1}

	tests := []struct {
		name  string
		opts  []Option
		preds []float64
	}{
		{"lightgbm class-major", nil, []float64{0.1, 0.8, 0.3, 0.9, 0.2, 0.7}},
		{"xgboost sample-major", []Option{WithXGBoost(true)}, []float64{0.1, 0.9, 0.8, 0.2, 0.3, 0.7}},
		{"predicted labels", nil, []float64{1, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewQuadraticWeightedKappaMetric(tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, "QWK", m.Name())
			assert.True(t, m.HigherIsBetter())

			res, err := m.Eval(tt.preds, labels)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, res.Score, 1e-12)
		})
	}
}

func TestQuadraticWeightedKappaMetricLayoutMatters(t *testing.T) {
	m, err := NewQuadraticWeightedKappaMetric()
	require.NoError(t, err)

	// Sample-major scores read as class-major yield argmax {1, 0, 0}.
	res, err := m.Eval([]float64{0.1, 0.9, 0.8, 0.2, 0.3, 0.7}, host.Labels{1, 0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.4, res.Score, 1e-12)
}

func TestQuadraticWeightedKappaMetricNumClass(t *testing.T) {
	m, err := NewQuadraticWeightedKappaMetric(WithNumClass(3))
	require.NoError(t, err)
	assert.Equal(t, 3, m.NumClass())

	// Only classes 0 and 2 appear in the labels; class-major scores for 3 classes.
	preds := []float64{
		0.7, 0.1, // class 0
		0.2, 0.1, // class 1
		0.1, 0.8, // class 2
	}
	res, err := m.Eval(preds, host.Labels{0, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Score, 1e-12)

	_, err = NewQuadraticWeightedKappaMetric(WithNumClass(-1))
	assert.Error(t, err)
}

func TestQuadraticWeightedKappaMetricErrors(t *testing.T) {
	m, err := NewQuadraticWeightedKappaMetric()
	require.NoError(t, err)

	_, err = m.Eval([]float64{0.1, 0.2, 0.3, 0.4, 0.5}, host.Labels{0, 1, 0})
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 6, dimErr.Expected)
	assert.Equal(t, 5, dimErr.Got)

	_, err = m.Eval(nil, host.Labels{})
	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))
}
