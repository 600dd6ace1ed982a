// Package params reads loosely-typed host parameter maps, the form in which
// Python-side bindings and config files pass objective and metric settings.
package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/gbloss/pkg/errors"
)

// Params maps parameter names to values as decoded from JSON, YAML or a host binding.
type Params map[string]interface{}

// lookup returns the value of the first key present, trying aliases in order.
func (p Params) lookup(keys ...string) (string, interface{}, bool) {
	for _, k := range keys {
		if v, ok := p[k]; ok {
			return k, v, true
		}
	}
	return "", nil, false
}

// Float returns the first present key as float64, or def when none is set.
func (p Params) Float(def float64, keys ...string) (float64, error) {
	key, v, ok := p.lookup(keys...)
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, errors.NewValidationError(key, "not a number", v)
		}
		return f, nil
	default:
		return 0, errors.NewValidationError(key, fmt.Sprintf("unsupported type %T", v), v)
	}
}

// Int returns the first present key as int, or def when none is set.
func (p Params) Int(def int, keys ...string) (int, error) {
	key, v, ok := p.lookup(keys...)
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != float64(int(x)) {
			return 0, errors.NewValidationError(key, "not an integer", v)
		}
		return int(x), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, errors.NewValidationError(key, "not an integer", v)
		}
		return n, nil
	default:
		return 0, errors.NewValidationError(key, fmt.Sprintf("unsupported type %T", v), v)
	}
}

// Bool returns the first present key as bool, or def when none is set.
func (p Params) Bool(def bool, keys ...string) (bool, error) {
	key, v, ok := p.lookup(keys...)
	if !ok {
		return def, nil
	}
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, errors.NewValidationError(key, "not a boolean", v)
		}
		return b, nil
	default:
		return false, errors.NewValidationError(key, fmt.Sprintf("unsupported type %T", v), v)
	}
}

// String returns the first present key as a lower-cased string, or def when none is set.
func (p Params) String(def string, keys ...string) (string, error) {
	key, v, ok := p.lookup(keys...)
	if !ok {
		return def, nil
	}
	s, isStr := v.(string)
	if !isStr {
		return "", errors.NewValidationError(key, fmt.Sprintf("unsupported type %T", v), v)
	}
	return strings.ToLower(strings.TrimSpace(s)), nil
}

// NormalizeName lower-cases a registry name and folds '-' and ' ' into '_'.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", " ", "_").Replace(name)
}
