package metrics

import (
	"math"
	"strconv"
)

// formatParam renders a hyperparameter the way Python's repr prints a float,
// so metric names match those produced by the Python bindings:
// 3 → "3.0", 0.5 → "0.5", 1e-05 → "1e-05".
func formatParam(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	a := math.Abs(v)
	if a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func wceName(alpha float64) string {
	return "WCE_alpha" + formatParam(alpha)
}

func focalName(alpha, gamma float64) string {
	return "Focal_alpha" + formatParam(alpha) + "_gamma" + formatParam(gamma)
}
