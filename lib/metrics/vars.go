package metrics

var (
	Invocation = NopInvocationMetrics()
	Ledger     = NopLedgerMetrics()
	API        = NopAPIMetrics()
)
