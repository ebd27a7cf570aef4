package httputils

import (
	"encoding/json"
	"net/http"

	"boscoin.io/votebook/lib/errors"
)

const ProblemTypeVotebook = "https://votebook.io/problems/"

// Problem is the RFC 7807 problem details object. `Code` and `Data` are
// extension members which keep the `errors.Error`, so clients can tell
// `AlreadyVoted` from `ProposalClosed`.
type Problem struct {
	// "type" (string) - A URI reference [RFC3986] that identifies the
	// problem type.
	Type string `json:"type"`

	// "title" (string) - A short, human-readable summary of the problem
	// type.
	Title string `json:"title"`

	// "status" (number) - The HTTP status code ([RFC7231], Section 6)
	// generated by the origin server for this occurrence of the problem.
	Status int `json:"status,omitempty"`

	// "detail" (string) - A human-readable explanation specific to this
	// occurrence of the problem.
	Detail string `json:"detail,omitempty"`

	// "instance" (string) - A URI reference that identifies the specific
	// occurrence of the problem.
	Instance string `json:"instance,omitempty"`

	Code uint                   `json:"code,omitempty"`
	Data map[string]interface{} `json:"data,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Title: http.StatusText(status), Status: status}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

func NewErrorProblem(err error, status int) Problem {
	e, ok := err.(*errors.Error)
	if !ok {
		return Problem{Type: "about:blank", Title: err.Error(), Status: status}
	}

	p := Problem{
		Type:   ProblemTypeVotebook + e.Slug(),
		Title:  e.Message,
		Status: status,
		Code:   e.Code,
	}
	if len(e.Data) > 0 {
		p.Data = e.Data
	}

	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}
