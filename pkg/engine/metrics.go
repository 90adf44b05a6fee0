package engine

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type status string

const (
	statusSuccess status = "success"
	statusFailure status = "failure"
)

type metrics struct {
	sorts        *prometheus.CounterVec
	sortedRows   prometheus.Counter
	sortDuration prometheus.Histogram
}

func newMetrics() *metrics {
	return &metrics{
		sorts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sortorder",
			Name:      "sorts_total",
			Help:      "Total number of sorts by leading directive and status.",
		}, []string{"directive", "status"}),
		sortedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sortorder",
			Name:      "sorted_rows_total",
			Help:      "Total number of rows passed through successful sorts.",
		}),
		sortDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:                       "sortorder",
			Name:                            "sort_duration_seconds",
			Help:                            "Time taken to sort rows in seconds.",
			Buckets:                         prometheus.DefBuckets,
			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: 0,
		}),
	}
}

// register registers the collectors on reg. When another Engine already
// registered them, the existing collectors are adopted so that both engines
// report into the same series.
func (m *metrics) register(reg prometheus.Registerer) error {
	var err error
	if m.sorts, err = registerOrExisting(reg, m.sorts); err != nil {
		return err
	}
	if m.sortedRows, err = registerOrExisting(reg, m.sortedRows); err != nil {
		return err
	}
	if m.sortDuration, err = registerOrExisting(reg, m.sortDuration); err != nil {
		return err
	}
	return nil
}

func registerOrExisting[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	are, ok := err.(prometheus.AlreadyRegisteredError)
	if !ok {
		return c, err
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return c, errors.Wrapf(err, "existing collector has type %T", are.ExistingCollector)
	}
	return existing, nil
}

func (m *metrics) observe(directive string, st status, rows int, seconds float64) {
	m.sorts.WithLabelValues(directive, string(st)).Inc()
	m.sortDuration.Observe(seconds)
	if st == statusSuccess {
		m.sortedRows.Add(float64(rows))
	}
}
