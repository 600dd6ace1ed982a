package metrics

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/gbloss/core/host"
	"github.com/YuminosukeSato/gbloss/core/stability"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLogCoshError(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:     mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			want:      0.0,
			tolerance: 1e-12,
		},
		{
			name:      "symmetric errors",
			yTrue:     mat.NewVecDense(2, []float64{0.0, 0.0}),
			yPred:     mat.NewVecDense(2, []float64{1.0, -1.0}),
			want:      math.Log(math.Cosh(1)),
			tolerance: 1e-12,
		},
		{
			name:      "one error",
			yTrue:     mat.NewVecDense(2, []float64{0.0, 0.0}),
			yPred:     mat.NewVecDense(2, []float64{0.0, 1.0}),
			want:      math.Log(math.Cosh(1)) / 2,
			tolerance: 1e-12,
		},
		{
			name:      "large error does not overflow",
			yTrue:     mat.NewVecDense(1, []float64{0.0}),
			yPred:     mat.NewVecDense(1, []float64{1000.0}),
			want:      1000 - math.Ln2,
			tolerance: 1e-9,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LogCoshError(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("LogCoshError() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("LogCoshError() = %v, want %v (tolerance: %v)", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestRMSPE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect prediction",
			yTrue: []float64{1, 2, 3},
			yPred: []float64{1, 2, 3},
			want:  0,
		},
		{
			name:  "relative errors",
			yTrue: []float64{2, 4},
			yPred: []float64{1, 5},
			want:  math.Sqrt((0.25 + 0.0625) / 2), // (1/2)² and (1/4)²
		},
		{
			name:  "scale invariant",
			yTrue: []float64{200, 400},
			yPred: []float64{100, 500},
			want:  math.Sqrt((0.25 + 0.0625) / 2),
		},
		{
			name:    "dimension mismatch",
			yTrue:   []float64{1, 2},
			yPred:   []float64{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RMSPE(mat.NewVecDense(len(tt.yTrue), tt.yTrue), mat.NewVecDense(len(tt.yPred), tt.yPred))

			if (err != nil) != tt.wantErr {
				t.Errorf("RMSPE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("RMSPE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSPEZeroLabelPropagates(t *testing.T) {
	got, err := RMSPE(mat.NewVecDense(2, []float64{0, 1}), mat.NewVecDense(2, []float64{1, 1}))
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	got, err = RMSPE(mat.NewVecDense(1, []float64{0}), mat.NewVecDense(1, []float64{0}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestRMSLE(t *testing.T) {
	got, err := RMSLE(mat.NewVecDense(2, []float64{0, math.E - 1}), mat.NewVecDense(2, []float64{math.E - 1, math.E - 1}))
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(0.5), got, 1e-12)

	// Predictions at or below -1 are raised to -1+LogEpsilon.
	got, err = RMSLE(mat.NewVecDense(1, []float64{0}), mat.NewVecDense(1, []float64{-5}))
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(stability.LogEpsilon), got, 1e-6)
}

func TestRegressionMetrics(t *testing.T) {
	labels := host.Labels{2, 4}
	preds := []float64{1, 5}

	tests := []struct {
		name  string
		build func() (Metric, error)
		want  float64
	}{
		{"LogCosh", func() (Metric, error) { return asMetric[*LogCoshMetric](NewLogCoshMetric()) },
			math.Log(math.Cosh(1))},
		{"RMSPE", func() (Metric, error) { return asMetric[*RMSPEMetric](NewRMSPEMetric()) },
			math.Sqrt((0.25 + 0.0625) / 2)},
		{"RMSLE", func() (Metric, error) { return asMetric[*RMSLEMetric](NewRMSLEMetric()) },
			math.Sqrt((math.Pow(math.Log(2)-math.Log(3), 2) + math.Pow(math.Log(6)-math.Log(5), 2)) / 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, tt.name, m.Name())
			assert.False(t, m.HigherIsBetter())

			res, err := m.Eval(preds, labels)
			require.NoError(t, err)

			name, score, higher := res.Triple()
			assert.Equal(t, tt.name, name)
			assert.InDelta(t, tt.want, score, 1e-12)
			assert.False(t, higher)
		})
	}
}

func TestRegressionMetricDimensionError(t *testing.T) {
	m, err := NewRMSPEMetric()
	require.NoError(t, err)

	_, err = m.Eval([]float64{1, 2, 3}, host.Labels{1, 2})

	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 3, dimErr.Got)
}

func BenchmarkRMSPE(b *testing.B) {
	n := 10000
	yTrue := mat.NewVecDense(n, nil)
	yPred := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yTrue.SetVec(i, float64(i%100)+1)
		yPred.SetVec(i, float64(i%100)+1.5)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = RMSPE(yTrue, yPred)
	}
}
