package metrics

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/gbloss/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorLowerIsBetter(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelInfo)
	mon := NewMonitor(2, logger)

	scores := []float64{0.9, 0.7, 0.75, 0.72, 0.6}
	var stopped []bool
	for i, s := range scores {
		stopped = append(stopped, mon.Record(i, Result{Name: "RMSPE", Score: s}))
	}

	assert.Equal(t, []bool{false, false, false, true, false}, stopped)
	assert.True(t, logger.ContainsMessage("early stopping"))

	it, best, ok := mon.Best("RMSPE")
	require.True(t, ok)
	assert.Equal(t, 4, it)
	assert.Equal(t, 0.6, best)
	assert.Equal(t, scores, mon.History("RMSPE"))
}

func TestMonitorHigherIsBetter(t *testing.T) {
	mon := NewMonitor(1, nil)

	assert.False(t, mon.Record(0, Result{Name: "QWK", Score: 0.2, HigherIsBetter: true}))
	assert.False(t, mon.Record(1, Result{Name: "QWK", Score: 0.5, HigherIsBetter: true}))
	assert.True(t, mon.Record(2, Result{Name: "QWK", Score: 0.4, HigherIsBetter: true}))

	it, best, ok := mon.Best("QWK")
	require.True(t, ok)
	assert.Equal(t, 1, it)
	assert.Equal(t, 0.5, best)
}

func TestMonitorNaNNeverImproves(t *testing.T) {
	mon := NewMonitor(0, nil)

	mon.Record(0, Result{Name: "QWK", Score: math.NaN(), HigherIsBetter: true})
	_, _, ok := mon.Best("QWK")
	assert.False(t, ok)

	// Patience 0 never stops.
	for i := 1; i < 10; i++ {
		assert.False(t, mon.Record(i, Result{Name: "QWK", Score: math.NaN(), HigherIsBetter: true}))
	}
	assert.Len(t, mon.History("QWK"), 10)

	_, _, ok = mon.Best("F1")
	assert.False(t, ok)
	assert.Empty(t, mon.History("F1"))
}
