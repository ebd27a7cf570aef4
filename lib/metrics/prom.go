package metrics

// InitPrometheusMetrics replaces the discarding metrics with prometheus
// ones; it must be called once, before the node starts.
func InitPrometheusMetrics() {
	Version = PromVersion()
	Invocation = PromInvocationMetrics()
	Ledger = PromLedgerMetrics()
	API = PromAPIMetrics()
}
