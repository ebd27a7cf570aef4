package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"
)

type Voter struct {
	proposalID uint64
	address    string
}

func NewVoter(proposalID uint64, address string) *Voter {
	return &Voter{proposalID: proposalID, address: address}
}

func (v Voter) Address() string {
	return v.address
}

func (v Voter) GetMap() hal.Entry {
	return hal.Entry{
		"proposal_id": v.proposalID,
		"address":     v.address,
	}
}

func (v Voter) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("proposal", hal.NewLink(strings.Replace(URLProposal, "{id}", strconv.FormatUint(v.proposalID, 10), -1)))
	return r
}

func (v Voter) LinkSelf() string {
	return strings.Replace(URLProposalVoters, "{id}", strconv.FormatUint(v.proposalID, 10), -1) + "?cursor=" + v.address
}
