package params

import (
	"testing"

	"github.com/YuminosukeSato/gbloss/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	p := Params{"alpha": 3, "gamma": "0.5", "beta": float32(0.25), "bad": "x", "obj": []int{1}}

	v, err := p.Float(1, "alpha")
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = p.Float(1, "gamma")
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	v, err = p.Float(1, "beta")
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	v, err = p.Float(2, "missing", "also_missing")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	_, err = p.Float(0, "bad")
	var valErr *errors.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "bad", valErr.ParamName)

	_, err = p.Float(0, "obj")
	assert.Error(t, err)
}

func TestAliasOrder(t *testing.T) {
	p := Params{"num_classes": 4, "num_class": 3}

	n, err := p.Int(0, "num_class", "num_classes")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestInt(t *testing.T) {
	p := Params{"a": 4.0, "b": 4.5, "c": "7", "d": int64(2)}

	n, err := p.Int(0, "a")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = p.Int(0, "b")
	assert.Error(t, err)

	n, err = p.Int(0, "c")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = p.Int(0, "d")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBoolAndString(t *testing.T) {
	p := Params{"xgboost": "true", "flag": true, "space": " Probability ", "num": 1}

	b, err := p.Bool(false, "xgboost")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = p.Bool(false, "flag")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = p.Bool(false, "num")
	assert.Error(t, err)

	s, err := p.String("margin", "space")
	require.NoError(t, err)
	assert.Equal(t, "probability", s)

	_, err = p.String("", "num")
	assert.Error(t, err)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "weighted_cross_entropy", NormalizeName(" Weighted-Cross Entropy"))
}
