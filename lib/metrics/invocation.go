package metrics

import (
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"

	"boscoin.io/votebook/lib/errors"
)

type InvocationMetrics struct {
	Total           metrics.Counter
	ErrorTotal      metrics.Counter
	DurationSeconds metrics.Histogram
}

// Observe counts one finished invocation of `method`; `err` is labeled by
// the code of `errors.Error`, "0" for the others.
func (m *InvocationMetrics) Observe(begin time.Time, method string, err error) {
	m.Total.With(InvocationMethod, method).Add(1)
	m.DurationSeconds.With(InvocationMethod, method).Observe(time.Since(begin).Seconds())

	if err == nil {
		return
	}

	var code uint
	if e, ok := err.(*errors.Error); ok {
		code = e.Code
	}
	m.ErrorTotal.With(
		InvocationMethod, method,
		InvocationCode, strconv.FormatUint(uint64(code), 10),
	).Add(1)
}

func PromInvocationMetrics() *InvocationMetrics {
	return &InvocationMetrics{
		Total: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: InvocationSubsystem,
			Name:      "total",
			Help:      "Total number of invocations.",
		}, []string{InvocationMethod}),
		ErrorTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: InvocationSubsystem,
			Name:      "error_total",
			Help:      "Number of aborted invocations.",
		}, []string{InvocationMethod, InvocationCode}),
		DurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: InvocationSubsystem,
			Name:      "duration_seconds",
			Help:      "Time processing one invocation.",
		}, []string{InvocationMethod}),
	}
}

func NopInvocationMetrics() *InvocationMetrics {
	return &InvocationMetrics{
		Total:           discard.NewCounter(),
		ErrorTotal:      discard.NewCounter(),
		DurationSeconds: discard.NewHistogram(),
	}
}
