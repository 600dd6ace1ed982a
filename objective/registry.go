package objective

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

// Create creates an objective from a registry name and a host parameter map.
//
// Recognized names (case-insensitive, '-' and ' ' fold to '_'):
//
//	weighted_cross_entropy, wce
//	focal, focal_loss, weighted_focal
//	log_cosh, logcosh
//	squared_log_error, sle
//	squared_percentage_error, spe
//
// Recognized keys: alpha, gamma, xgboost, space ("margin" or "probability").
// Extra options are applied after those derived from p.
func Create(name string, p map[string]interface{}, extra ...Option) (Objective, error) {
	ps := params.Params(p)
	opts, err := commonOptions(ps)
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
		return asObjective[*WeightedCrossEntropy](NewWeightedCrossEntropy(alpha, opts...))
	case "focal", "focal_loss", "weighted_focal":
		alpha, err := ps.Float(DefaultFocalAlpha, "alpha")
		if err != nil {
			return nil, err
		}
		gamma, err := ps.Float(DefaultFocalGamma, "gamma")
		if err != nil {
			return nil, err
		}
		return asObjective[*Focal](NewFocal(alpha, gamma, opts...))
	case "log_cosh", "logcosh":
		return asObjective[*LogCosh](NewLogCosh(opts...))
	case "squared_log_error", "sle":
		return asObjective[*SquaredLogError](NewSquaredLogError(opts...))
	case "squared_percentage_error", "spe":
		return asObjective[*SquaredPercentageError](NewSquaredPercentageError(opts...))
	default:
		return nil, errors.Wrapf(errors.ErrUnknownName, "objective %q", name)
	}
}

// asObjective avoids returning a typed nil pointer inside a non-nil interface.
func asObjective[T Objective](o T, err error) (Objective, error) {
	if err != nil {
		return nil, err
	}
	return o, nil
}

func commonOptions(ps params.Params) ([]Option, error) {
	xgb, err := ps.Bool(false, "xgboost", "XGBoost")
	if err != nil {
		return nil, err
	}
	s, err := ps.String("margin", "space", "pred_space")
	if err != nil {
		return nil, err
	}
	space, err := stability.ParseSpace(s)
	if err != nil {
		return nil, err
	}
	return []Option{WithConvention(host.ConventionFor(xgb)), WithSpace(space)}, nil
}
