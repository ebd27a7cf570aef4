package metrics

import (
	"testing"
	"time"

	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/errors"
)

func gatherNames(t *testing.T) map[string]float64 {
	families, err := stdprometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	found := map[string]float64{}
	for _, f := range families {
		var sum float64
		for _, m := range f.GetMetric() {
			if c := m.GetCounter(); c != nil {
				sum += c.GetValue()
			}
			if g := m.GetGauge(); g != nil {
				sum += g.GetValue()
			}
		}
		found[f.GetName()] = sum
	}

	return found
}

func TestPrometheusMetrics(t *testing.T) {
	InitPrometheusMetrics()
	SetVersion()

	begin := time.Now()
	Invocation.Observe(begin, "cast_vote", nil)
	Invocation.Observe(begin, "cast_vote", errors.AlreadyVoted)
	Ledger.SetSequence(3)
	Ledger.SetProposals(2)
	Ledger.AddVote(true)
	API.Observe(begin, "/api/v1/proposals", "GET", 200)
	API.Observe(begin, "/api/v1/proposals/{id}", "GET", 404)

	found := gatherNames(t)

	require.Equal(t, float64(2), found["votebook_invocation_total"])
	require.Equal(t, float64(1), found["votebook_invocation_error_total"])
	require.Equal(t, float64(3), found["votebook_ledger_sequence"])
	require.Equal(t, float64(2), found["votebook_ledger_proposals"])
	require.Equal(t, float64(1), found["votebook_ledger_votes_total"])
	require.Equal(t, float64(2), found["votebook_api_requests_total"])
	require.Equal(t, float64(1), found["votebook_api_request_errors_total"])
	require.Equal(t, float64(1), found["votebook_version"])
}

func TestNopMetrics(t *testing.T) {
	m := NopInvocationMetrics()
	m.Observe(time.Now(), "view_proposal", errors.InvalidProposal)

	l := NopLedgerMetrics()
	l.SetSequence(1)
	l.AddVote(false)
}
