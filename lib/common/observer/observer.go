package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// InvocationObserver fires after an invocation has been committed. Handlers
// receive the `Event` which was changed.
var InvocationObserver = observable.New()

const (
	ResourceProposal      = "proposal"
	ResourceProposalCount = "proposal-count"
	ResourceAdmin         = "admin"
	ResourceInvocation    = "invocation"
	ConditionAll          = "*"
	ConditionID           = "id"
)

type Event struct {
	Resource  string `json:"resource"`
	Condition string `json:"condition"`
	Id        string `json:"id"`
}

func NewEvent(resource, condition, id string) Event {
	return Event{
		Resource:  resource,
		Condition: condition,
		Id:        id,
	}
}

func (e Event) String() string {
	toStr := e.Resource + "-"
	if e.Condition == ConditionAll {
		toStr += e.Condition
	} else {
		toStr += e.Condition + "="
		toStr += e.Id
	}
	return toStr
}
