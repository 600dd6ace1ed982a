package metrics

import (
	"math"
	"sync"

	"github.com/YuminosukeSato/gbloss/pkg/log"
)

// Monitor records metric results across boosting rounds and tracks, per
// metric name, the best round according to each result's direction.
// It can drive early stopping in a host loop: Record reports true once the
// named metric has gone Patience rounds without improving.
//
// Monitor is safe for concurrent use.
type Monitor struct {
	patience int
	logger   log.Logger

	mu      sync.Mutex
	history map[string][]float64
	best    map[string]*bestRound
}

type bestRound struct {
	score     float64
	iteration int
	stale     int
	higher    bool
}

// NewMonitor creates a Monitor. A non-positive patience disables stopping;
// results are still recorded.
func NewMonitor(patience int, logger log.Logger) *Monitor {
	if logger == nil {
		logger = log.GetLoggerWithName(log.ComponentMetrics)
	}
	return &Monitor{
		patience: patience,
		logger:   logger,
		history:  make(map[string][]float64),
		best:     make(map[string]*bestRound),
	}
}

// Record appends r to the history of r.Name and reports whether that metric
// has now gone Patience rounds without improvement. NaN never improves.
func (m *Monitor) Record(iteration int, r Result) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history[r.Name] = append(m.history[r.Name], r.Score)

	b, ok := m.best[r.Name]
	if !ok {
		b = &bestRound{score: math.Inf(1), iteration: -1, higher: r.HigherIsBetter}
		if r.HigherIsBetter {
			b.score = math.Inf(-1)
		}
		m.best[r.Name] = b
	}

	improved := r.Score < b.score
	if b.higher {
		improved = r.Score > b.score
	}

	if improved {
		b.score = r.Score
		b.iteration = iteration
		b.stale = 0
	} else {
		b.stale++
	}

	stop := m.patience > 0 && b.stale >= m.patience
	if stop {
		m.logger.Info("early stopping",
			log.MetricNameKey, r.Name,
			log.IterationKey, iteration,
			log.BestIterationKey, b.iteration,
			log.ScoreKey, b.score,
		)
	}
	return stop
}

// Best returns the best round and score recorded for name.
// ok is false when nothing finite has been recorded.
func (m *Monitor) Best(name string) (iteration int, score float64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, exists := m.best[name]
	if !exists || b.iteration < 0 {
		return -1, math.NaN(), false
	}
	return b.iteration, b.score, true
}

// History returns a copy of the scores recorded for name, in round order.
func (m *Monitor) History(name string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.history[name]...)
}
