package metrics

import (
	"strconv"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type LedgerMetrics struct {
	Sequence  metrics.Gauge
	Proposals metrics.Gauge
	Votes     metrics.Counter
}

func (l *LedgerMetrics) SetSequence(seq uint64) {
	l.Sequence.Set(float64(seq))
}

func (l *LedgerMetrics) SetProposals(count uint64) {
	l.Proposals.Set(float64(count))
}

func (l *LedgerMetrics) AddVote(vote bool) {
	l.Votes.With("vote", strconv.FormatBool(vote)).Add(1)
}

func PromLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Sequence: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "sequence",
			Help:      "Ledger sequence of the last committed invocation.",
		}, []string{}),
		Proposals: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "proposals",
			Help:      "Number of created proposals.",
		}, []string{}),
		Votes: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "votes_total",
			Help:      "Number of cast votes.",
		}, []string{"vote"}),
	}
}

func NopLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Sequence:  discard.NewGauge(),
		Proposals: discard.NewGauge(),
		Votes:     discard.NewCounter(),
	}
}
