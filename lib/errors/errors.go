package errors

// Contract errors. The codes are part of the invocation result and must not be
// renumbered.
var (
	AlreadyInitialized         = NewError(1, "contract already initialized")
	InvalidProposal            = NewError(2, "invalid proposal id")
	AlreadyVoted               = NewError(3, "already voted")
	ProposalClosed             = NewError(4, "proposal is closed")
	Unauthorized               = NewError(5, "caller is not authorized")
	NotInitialized             = NewError(6, "contract is not initialized")
	BadArgument                = NewError(7, "bad argument")
	InvocationAlreadyProcessed = NewError(8, "invocation already processed")
	ContractNotFound           = NewError(9, "contract not found")
	MethodNotFound             = NewError(10, "method not found")
	InvocationHashMismatch     = NewError(11, "invocation hash does not match")
	ProposalCountOverflow      = NewError(12, "proposal count reached the maximum")
)

// Storage errors
var (
	StorageRecordDoesNotExist  = NewError(100, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(101, "record already exists in storage")
	StorageCoreError           = NewError(102, "storage error")
	StorageNotTransaction      = NewError(103, "storage is not in transaction")
	StorageAlreadyTransaction  = NewError(104, "storage is already in transaction")
)

// API errors
var (
	BadRequestParameter = NewError(200, "bad request parameter")
	NotImplemented      = NewError(201, "not implemented")
	NotMatchHTTPRouter  = NewError(202, "router name does not match")
	TooManyRequests     = NewError(203, "too many requests")
)
