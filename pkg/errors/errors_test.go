package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		reason  string
		value   interface{}
		wantMsg string
	}{
		{
			name:    "redundant alpha",
			param:   "alpha",
			reason:  "alpha == 1 is plain cross entropy, use the unweighted objective",
			value:   1.0,
			wantMsg: "gbloss: validation failed for parameter 'alpha': alpha == 1 is plain cross entropy, use the unweighted objective (got: 1)",
		},
		{
			name:    "negative gamma",
			param:   "gamma",
			reason:  "must be non-negative",
			value:   -2.0,
			wantMsg: "gbloss: validation failed for parameter 'gamma': must be non-negative (got: -2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.param, tt.reason, tt.value)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var valErr *ValidationError
			if !As(err, &valErr) {
				t.Fatal("Error should be castable to *ValidationError")
			}
			if valErr.ParamName != tt.param {
				t.Errorf("ParamName = %v, want %v", valErr.ParamName, tt.param)
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("GradHess", 10, 8, 0)

	want := "gbloss: GradHess: dimension mismatch on axis 0 (samples). Expected 10, got 8"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}

	err = NewDimensionError("QWK", 3, 2, 1)
	if !strings.Contains(err.Error(), "(classes)") {
		t.Errorf("Expected class axis name, got %v", err.Error())
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("RMSPE", "empty vector")

	want := "gbloss: RMSPE: empty vector"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestUndefinedMetricWarning(t *testing.T) {
	warn := NewUndefinedMetricWarning("F1", "no predicted positive samples", 0)

	want := "'F1' is ill-defined and being set to 0.000000 due to no predicted positive samples."
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}
}

func TestWarnRouting(t *testing.T) {
	var handled, zlogged []error

	SetWarningHandler(func(w error) { handled = append(handled, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(NewUndefinedMetricWarning("QWK", "single class", math.NaN()))
	if len(handled) != 1 {
		t.Fatalf("expected handler to receive 1 warning, got %d", len(handled))
	}

	// zerologが設定されている場合は優先的に使用
	SetZerologWarnFunc(func(w error) { zlogged = append(zlogged, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewUndefinedMetricWarning("F1", "no true samples", 0))
	if len(zlogged) != 1 || len(handled) != 1 {
		t.Errorf("expected zerolog func to take precedence, got handler=%d zerolog=%d", len(handled), len(zlogged))
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrUnknownName, "objective \"hinge\"")

	if !Is(wrapped, ErrUnknownName) {
		t.Error("Expected Is(wrapped, ErrUnknownName) to be true")
	}

	if !strings.Contains(wrapped.Error(), "objective \"hinge\"") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "QWK", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in QWK: expected 10, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("gradient", []float64{0.1, -3, 1e300}, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := CheckNumericalStability("hessian", []float64{1, math.Inf(1), math.NaN(), 2}, 7)
	if err == nil {
		t.Fatal("expected instability error")
	}

	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatalf("expected *NumericalInstabilityError, got %T", err)
	}
	if numErr.Iteration != 7 || len(numErr.Values) != 2 {
		t.Errorf("unexpected error payload: %+v", numErr)
	}
	if !strings.Contains(err.Error(), "hessian at iteration 7") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("score", 0.3, 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckScalar("score", math.Inf(-1), 0); err == nil {
		t.Error("expected error for -Inf")
	}
}

func TestClipValue(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-5, -1},
		{0.5, 0.5},
		{3, 1},
	}
	for _, c := range cases {
		if got := ClipValue(c.in, -1, 1); got != c.want {
			t.Errorf("ClipValue(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	if !math.IsNaN(ClipValue(math.NaN(), 0, 1)) {
		t.Error("NaN should propagate through ClipValue")
	}
}
