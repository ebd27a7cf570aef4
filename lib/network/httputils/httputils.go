package httputils

import (
	"net/http"

	"boscoin.io/votebook/lib/errors"
)

var (
	ErrorsToStatus = map[uint]int{
		errors.AlreadyInitialized.Code:         http.StatusConflict,
		errors.InvalidProposal.Code:            http.StatusNotFound,
		errors.AlreadyVoted.Code:               http.StatusConflict,
		errors.ProposalClosed.Code:             http.StatusConflict,
		errors.Unauthorized.Code:               http.StatusUnauthorized,
		errors.NotInitialized.Code:             http.StatusNotFound,
		errors.BadArgument.Code:                http.StatusBadRequest,
		errors.InvocationAlreadyProcessed.Code: http.StatusConflict,
		errors.ContractNotFound.Code:           http.StatusNotFound,
		errors.MethodNotFound.Code:             http.StatusNotFound,
		errors.InvocationHashMismatch.Code:     http.StatusBadRequest,
		errors.ProposalCountOverflow.Code:      http.StatusConflict,
		errors.StorageRecordDoesNotExist.Code:  http.StatusNotFound,
		errors.BadRequestParameter.Code:        http.StatusBadRequest,
		errors.NotImplemented.Code:             http.StatusNotImplemented,
		errors.TooManyRequests.Code:            http.StatusTooManyRequests,
	}
)

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if code, found := ErrorsToStatus[e.Code]; found {
			return code
		}
	}
	return http.StatusInternalServerError
}
