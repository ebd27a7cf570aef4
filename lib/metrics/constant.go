package metrics

const (
	Namespace           = "votebook"
	InvocationSubsystem = "invocation"
	LedgerSubsystem     = "ledger"
	APISubsystem        = "api"
)

const (
	InvocationMethod = "method"
	InvocationCode   = "code"
)
