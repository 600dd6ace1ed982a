package metrics

import (
	"github.com/YuminosukeSato/gbloss/core/host"
	"github.com/YuminosukeSato/gbloss/core/params"
	"github.com/YuminosukeSato/gbloss/core/stability"
	"github.com/YuminosukeSato/gbloss/pkg/errors"
)

// Defaults used when a parameter map omits a hyperparameter.
const (
	DefaultWCEAlpha   = 0.5
	DefaultFocalAlpha = 1.0
	DefaultFocalGamma = 2.0
)

// Create creates a metric from a registry name and a host parameter map.
//
// Recognized names (case-insensitive, '-' and ' ' fold to '_'):
//
//	weighted_cross_entropy, wce
//	focal, focal_loss, weighted_focal
//	f1, f1_score
//	qwk, quadratic_weighted_kappa, kappa
//	log_cosh, logcosh
//	rmspe
//	rmsle
//
// Recognized keys: alpha, gamma, xgboost, space, average, pos_label, num_class.
// Extra options are applied after those derived from p.
func Create(name string, p map[string]interface{}, extra ...Option) (Metric, error) {
	ps := params.Params(p)
	opts, err := parseOptions(ps)
	if err != nil {
		return nil, err
	}
	opts = append(opts, extra...)

	switch params.NormalizeName(name) {
	case "weighted_cross_entropy", "wce":
		alpha, err := ps.Float(DefaultWCEAlpha, "alpha")
		if err != nil {
			return nil, err
		}
		return asMetric[*WeightedCrossEntropyMetric](NewWeightedCrossEntropyMetric(alpha, opts...))
	case "focal", "focal_loss", "weighted_focal":
		alpha, err := ps.Float(DefaultFocalAlpha, "alpha")
		if err != nil {
			return nil, err
		}
		gamma, err := ps.Float(DefaultFocalGamma, "gamma")
		if err != nil {
			return nil, err
		}
		return asMetric[*FocalMetric](NewFocalMetric(alpha, gamma, opts...))
	case "f1", "f1_score":
		return asMetric[*F1Metric](NewF1Metric(opts...))
	case "qwk", "quadratic_weighted_kappa", "kappa":
		return asMetric[*QuadraticWeightedKappaMetric](NewQuadraticWeightedKappaMetric(opts...))
	case "log_cosh", "logcosh":
		return asMetric[*LogCoshMetric](NewLogCoshMetric(opts...))
	case "rmspe":
		return asMetric[*RMSPEMetric](NewRMSPEMetric(opts...))
	case "rmsle":
		return asMetric[*RMSLEMetric](NewRMSLEMetric(opts...))
	default:
		return nil, errors.Wrapf(errors.ErrUnknownName, "metric %q", name)
	}
}

// asMetric avoids returning a typed nil pointer inside a non-nil interface.
func asMetric[T Metric](m T, err error) (Metric, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

func parseOptions(ps params.Params) ([]Option, error) {
	xgb, err := ps.Bool(false, "xgboost", "XGBoost")
	if err != nil {
		return nil, err
	}
	opts := []Option{WithConvention(host.ConventionFor(xgb))}

	spaceName, err := ps.String("", "space", "pred_space")
	if err != nil {
		return nil, err
	}
	if spaceName != "" {
		space, err := stability.ParseSpace(spaceName)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithSpace(space))
	}

	avg, err := ps.String("binary", "average")
	if err != nil {
		return nil, err
	}
	average, err := ParseAverage(avg)
	if err != nil {
		return nil, err
	}

	pos, err := ps.Float(1, "pos_label")
	if err != nil {
		return nil, err
	}
	k, err := ps.Int(0, "num_class", "num_classes")
	if err != nil {
		return nil, err
	}
	return append(opts, WithAverage(average), WithPosLabel(pos), WithNumClass(k)), nil
}
